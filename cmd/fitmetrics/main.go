// Package main computes training load metrics offline from FIT activity files.
//
//	fitmetrics -max-hr 190 -resting-hr 50 -sex male -format csv -out load.csv a.fit b.fit
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/tron2005/markvera/internal/export"
	"github.com/tron2005/markvera/internal/importer"
	"github.com/tron2005/markvera/internal/trainingload"
	"github.com/tron2005/markvera/pkg"
)

type options struct {
	maxHR     float64
	restingHR float64
	sex       string
	age       int
	format    string
	weekly    bool
	timezone  string
	asOf      string
	out       string
}

func main() {
	var opts options
	flag.Float64Var(&opts.maxHR, "max-hr", 0, "max heart rate, estimated from age when not set")
	flag.Float64Var(&opts.restingHR, "resting-hr", 0, "resting heart rate")
	flag.StringVar(&opts.sex, "sex", "", "male | female")
	flag.IntVar(&opts.age, "age", 0, "age in years")
	flag.StringVar(&opts.format, "format", "json", "output format [json | csv | parquet]")
	flag.BoolVar(&opts.weekly, "weekly", false, "write the weekly series instead of the daily one (csv only)")
	flag.StringVar(&opts.timezone, "tz", "UTC", "time zone calendar days are bucketed in")
	flag.StringVar(&opts.asOf, "as-of", "", "extend the series to this day (YYYY-MM-DD)")
	flag.StringVar(&opts.out, "out", "", "output file, stdout when empty")
	flag.Parse()

	log.SetOutput(os.Stderr)

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: fitmetrics [flags] file.fit [file.fit ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var w io.Writer = os.Stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			log.Fatalf("create output file: %s", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Errorf("close output file: %s", err)
			}
		}()
		w = f
	}

	if err := run(opts, flag.Args(), w); err != nil {
		log.Errorf("fitmetrics: %s", err)
		os.Exit(1)
	}
}

func (o options) profile() trainingload.Profile {
	var profile trainingload.Profile
	if o.maxHR > 0 {
		profile.MaxHR = trainingload.Float(o.maxHR)
	}
	if o.restingHR > 0 {
		profile.RestingHR = trainingload.Float(o.restingHR)
	}
	if o.age > 0 {
		age := o.age
		profile.AgeYears = &age
	}
	profile.Sex = trainingload.ParseSex(o.sex)
	return profile
}

func run(opts options, files []string, w io.Writer) error {
	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	var asOf *time.Time
	if opts.asOf != "" {
		d, err := trainingload.ParseDate(opts.asOf)
		if err != nil {
			return err
		}
		t := d.Time()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		asOf = &day
	}

	records, err := readActivities(files)
	if len(records) == 0 {
		return multierr.Append(errors.New("no activity could be read"), err)
	}
	if err != nil {
		log.Warnf("skipped files: %s", err)
	}

	result := trainingload.ComputeMetrics(
		trainingload.FromRecords(records),
		opts.profile(),
		trainingload.Options{AsOf: asOf, Location: loc},
	)
	log.Infof("%d sessions over %d days, %d low confidence", len(result.Sessions), len(result.Daily), result.LowConfidenceDays())

	return write(w, opts, result)
}

// readActivities decodes every file, collecting the failures.
func readActivities(files []string) ([]trainingload.SourceRecord, error) {
	var (
		records []trainingload.SourceRecord
		errs    error
	)
	for _, path := range files {
		exists, err := pkg.PathExists(path, false)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if !exists {
			errs = multierr.Append(errs, fmt.Errorf("%s: not a file", path))
			continue
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		activity, err := importer.DecodeFIT(bytes.NewReader(raw))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		records = append(records, activity)
	}
	return records, errs
}

func write(w io.Writer, opts options, result trainingload.MetricsResult) error {
	switch opts.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "csv":
		if opts.weekly {
			return export.WriteWeeklyCSV(w, result.Weekly)
		}
		return export.WriteDailyCSV(w, result.Daily)
	case "parquet":
		raw, err := export.DailyParquet(result.Daily)
		if err != nil {
			return err
		}
		_, err = w.Write(raw)
		return err
	default:
		return fmt.Errorf("unknown format: %s", opts.format)
	}
}
