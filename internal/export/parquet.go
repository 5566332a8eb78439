package export

import (
	"fmt"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/tron2005/markvera/internal/trainingload"
)

type dailyParquetRow struct {
	Date          string   `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Load          float64  `parquet:"name=load, type=DOUBLE"`
	SessionCount  int32    `parquet:"name=session_count, type=INT32"`
	ATL           float64  `parquet:"name=atl, type=DOUBLE"`
	CTL           float64  `parquet:"name=ctl, type=DOUBLE"`
	TSB           *float64 `parquet:"name=tsb, type=DOUBLE, repetitiontype=OPTIONAL"`
	VO2max        *float64 `parquet:"name=vo2max, type=DOUBLE, repetitiontype=OPTIONAL"`
	VO2maxClamped bool     `parquet:"name=vo2max_clamped, type=BOOLEAN"`
	LowConfidence bool     `parquet:"name=low_confidence, type=BOOLEAN"`
}

// DailyParquet encodes the daily series as a Snappy compressed parquet file.
func DailyParquet(daily []trainingload.DailyMetric) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(dailyParquetRow), 1)
	if err != nil {
		return nil, fmt.Errorf("new parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, d := range daily {
		row := dailyParquetRow{
			Date:          d.Date.String(),
			Load:          d.Load,
			SessionCount:  int32(d.SessionCount),
			ATL:           d.ATL,
			CTL:           d.CTL,
			TSB:           d.TSB,
			VO2max:        d.VO2max,
			VO2maxClamped: d.VO2maxClamped,
			LowConfidence: d.LowConfidence,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, fmt.Errorf("write parquet row %s: %w", row.Date, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finish parquet: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}
