package capture

import (
	"bytes"
	"io"
	"strconv"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// SampleRow is the columnar layout of one record.
type SampleRow struct {
	Index int64 `parquet:"index"`
	C1    int64 `parquet:"c1"`
	C2    int64 `parquet:"c2"`
	C3    int64 `parquet:"c3"`
}

// EstimateRow is the columnar layout of one line of an analysis summary.
type EstimateRow struct {
	Source   string             `parquet:"source"`
	Series   string             `parquet:"series"`
	Samples  int64              `parquet:"samples"`
	Estimate types.RateEstimate `parquet:"estimate"`
}

// ParquetCompression maps a codec name to a parquet page compression; snappy is the default.
func ParquetCompression(name string) parquet.WriterOption {
	switch name {
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	case "gzip", "gz":
		return parquet.Compression(&parquet.Gzip)
	default:
		return parquet.Compression(&parquet.Snappy)
	}
}

// EncodeParquet writes records as a parquet file.
func EncodeParquet(records []types.Record, compression parquet.WriterOption) ([]byte, error) {
	rows := make([]SampleRow, len(records))
	for i, r := range records {
		rows[i] = SampleRow{Index: int64(i), C1: r.C1, C2: r.C2, C3: r.C3}
	}
	return encodeRows(rows, compression)
}

// DecodeParquet reads records written by EncodeParquet, in index order.
func DecodeParquet(data []byte) ([]types.Record, error) {
	rows, err := decodeRows[SampleRow](bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	out := make([]types.Record, len(rows))
	for i, r := range rows {
		out[i] = types.Record{C1: r.C1, C2: r.C2, C3: r.C3}
	}
	return out, nil
}

// EstimateRows flattens an analysis result into one row per channel plus combined and respiration.
func EstimateRows(result types.AnalysisResult) []EstimateRow {
	rows := make([]EstimateRow, 0, types.ChannelCount+2)
	for _, ch := range result.Channels {
		rows = append(rows, EstimateRow{
			Source:   result.Source,
			Series:   "channel_" + strconv.Itoa(ch.Index),
			Samples:  int64(ch.Samples),
			Estimate: ch.Estimate,
		})
	}
	rows = append(rows,
		EstimateRow{Source: result.Source, Series: "combined", Samples: int64(result.TotalSamples), Estimate: result.Combined},
		EstimateRow{Source: result.Source, Series: "respiration", Samples: int64(result.TotalSamples), Estimate: result.Respiration},
	)
	return rows
}

// EncodeEstimates writes the analysis summary as a parquet file.
func EncodeEstimates(result types.AnalysisResult, compression parquet.WriterOption) ([]byte, error) {
	return encodeRows(EstimateRows(result), compression)
}

// DecodeEstimates reads rows written by EncodeEstimates.
func DecodeEstimates(data []byte) ([]EstimateRow, error) {
	return decodeRows[EstimateRow](bytes.NewReader(data))
}

func encodeRows[T any](rows []T, compression parquet.WriterOption) ([]byte, error) {
	var buf bytes.Buffer
	var pw *parquet.GenericWriter[T]
	if compression != nil {
		pw = parquet.NewGenericWriter[T](&buf, compression)
	} else {
		pw = parquet.NewGenericWriter[T](&buf)
	}
	if _, err := pw.Write(rows); err != nil {
		return nil, err
	}
	if err := pw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRows[T any](ra io.ReaderAt) ([]T, error) {
	gr := parquet.NewGenericReader[T](ra)
	defer gr.Close()

	out := make([]T, 0, 1024)
	batch := make([]T, 1024)
	for {
		n, err := gr.Read(batch)
		if n > 0 {
			out = append(out, batch[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
