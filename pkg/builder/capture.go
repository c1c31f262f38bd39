package builder

import (
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/capture"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

type (
	CaptureLoader       = capture.Loader
	CaptureLoaderOption = types.Option[*capture.Loader]
	CaptureInfo         = capture.Info
	CaptureCleaner      = capture.Cleaner
	Compression         = capture.Compression
)

const DefaultCaptureDir = capture.DefaultDir

// NewCaptureLoader reads captures from local paths, http(s) URLs and s3:// URIs.
func NewCaptureLoader(options ...types.Option[*capture.Loader]) *capture.Loader {
	return capture.NewLoader(options...)
}

func CaptureLoaderWithHTTPClient(c types.HTTPClientAdapter) types.Option[*capture.Loader] {
	return capture.WithHTTPClient(c)
}

func CaptureLoaderWithS3Client(c types.S3ClientAdapter) types.Option[*capture.Loader] {
	return capture.WithS3Client(c)
}

func CaptureLoaderWithCleaner(c capture.Cleaner) types.Option[*capture.Loader] {
	return capture.WithCleaner(c)
}

// ParseCompression maps a codec name ("gzip", "zstd", ...) to a Compression.
func ParseCompression(name string) (capture.Compression, error) {
	return capture.ParseCompression(name)
}

// SaveCapture writes records to dir under a timestamped file name.
func SaveCapture(dir string, records []types.Record, at time.Time, c capture.Compression) (string, error) {
	return capture.Save(dir, records, at, c)
}

// ListCaptures lists the captures in dir, newest first.
func ListCaptures(dir string) ([]capture.Info, error) {
	return capture.List(dir)
}

// EncodeCaptureText renders records in the newline-terminated capture text format.
func EncodeCaptureText(records []types.Record) []byte {
	return capture.EncodeText(records)
}

func CompressCapture(data []byte, c capture.Compression) ([]byte, error) {
	return capture.Compress(data, c)
}

// EncodeRecordsParquet writes records as a parquet file using codec ("snappy", "zstd", "gzip").
func EncodeRecordsParquet(records []types.Record, codec string) ([]byte, error) {
	return capture.EncodeParquet(records, capture.ParquetCompression(codec))
}

// EncodeEstimatesParquet writes one row per channel estimate plus the combined row.
func EncodeEstimatesParquet(result types.AnalysisResult, codec string) ([]byte, error) {
	return capture.EncodeEstimates(result, capture.ParquetCompression(codec))
}
