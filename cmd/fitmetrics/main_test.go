package main

import (
	"bytes"
	"encoding/binary"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tormoder/fit"

	"github.com/tron2005/markvera/internal/trainingload"
)

func writeTestFIT(t *testing.T, dir, name string, start time.Time) string {
	t.Helper()

	file, err := fit.NewFile(fit.FileTypeActivity, fit.NewHeader(fit.V20, true))
	require.NoError(t, err)
	activity, err := file.Activity()
	require.NoError(t, err)

	session := fit.NewSessionMsg()
	session.Timestamp = start.Add(time.Hour)
	session.StartTime = start
	session.Sport = fit.SportRunning
	session.TotalTimerTime = 3600 * 1000
	session.TotalElapsedTime = 3600 * 1000
	session.TotalDistance = 10000 * 100
	session.AvgHeartRate = 150
	session.MaxHeartRate = 170
	activity.Sessions = append(activity.Sessions, session)

	var buf bytes.Buffer
	require.NoError(t, fit.Encode(&buf, file, binary.LittleEndian))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func testOptions(format string) options {
	return options{
		maxHR:     190,
		restingHR: 50,
		sex:       "male",
		format:    format,
		timezone:  "UTC",
	}
}

func TestRun_JSON(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 3, 4, 7, 0, 0, 0, time.UTC)
	files := []string{
		writeTestFIT(t, dir, "a.fit", start),
		writeTestFIT(t, dir, "b.fit", start.AddDate(0, 0, 2)),
	}

	var out bytes.Buffer
	require.NoError(t, run(testOptions("json"), files, &out))

	var result trainingload.MetricsResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.Len(t, result.Daily, 3)
	assert.InDelta(t, 108.0954, result.Daily[0].Load, 1e-3)
	assert.Zero(t, result.Daily[1].Load)
	assert.Len(t, result.Sessions, 2)
}

func TestRun_CSVWithAsOf(t *testing.T) {
	dir := t.TempDir()
	files := []string{writeTestFIT(t, dir, "a.fit", time.Date(2024, 3, 4, 7, 0, 0, 0, time.UTC))}

	opts := testOptions("csv")
	opts.asOf = "2024-03-10"

	var out bytes.Buffer
	require.NoError(t, run(opts, files, &out))

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	// header plus 4th to 10th of March
	require.Len(t, rows, 8)
	assert.Equal(t, "2024-03-10", rows[7][0])

	opts.weekly = true
	out.Reset()
	require.NoError(t, run(opts, files, &out))
	rows, err = csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-03-04", rows[1][0])
}

func TestRun_Parquet(t *testing.T) {
	dir := t.TempDir()
	files := []string{writeTestFIT(t, dir, "a.fit", time.Date(2024, 3, 4, 7, 0, 0, 0, time.UTC))}

	var out bytes.Buffer
	require.NoError(t, run(testOptions("parquet"), files, &out))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("PAR1")))
}

func TestRun_SkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.fit")
	require.NoError(t, os.WriteFile(broken, []byte("not a fit file"), 0o600))
	good := writeTestFIT(t, dir, "a.fit", time.Date(2024, 3, 4, 7, 0, 0, 0, time.UTC))

	var out bytes.Buffer
	require.NoError(t, run(testOptions("json"), []string{broken, filepath.Join(dir, "missing.fit"), good}, &out))

	var result trainingload.MetricsResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Len(t, result.Sessions, 1)

	err := run(testOptions("json"), []string{broken}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no activity could be read")
	assert.Contains(t, err.Error(), "broken.fit")
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	files := []string{writeTestFIT(t, dir, "a.fit", time.Date(2024, 3, 4, 7, 0, 0, 0, time.UTC))}

	opts := testOptions("xml")
	assert.EqualError(t, run(opts, files, &bytes.Buffer{}), "unknown format: xml")

	opts = testOptions("json")
	opts.timezone = "Mars/Olympus"
	assert.Error(t, run(opts, files, &bytes.Buffer{}))

	opts = testOptions("json")
	opts.asOf = "yesterday"
	assert.Error(t, run(opts, files, &bytes.Buffer{}))
}

func TestOptions_Profile(t *testing.T) {
	p := options{age: 40, sex: "f"}.profile()
	assert.Nil(t, p.MaxHR)
	assert.Nil(t, p.RestingHR)
	require.NotNil(t, p.AgeYears)
	assert.Equal(t, 40, *p.AgeYears)
	assert.Equal(t, trainingload.SexFemale, p.Sex)
}
