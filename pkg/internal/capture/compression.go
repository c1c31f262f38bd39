package capture

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Compression identifies the codec wrapping a capture file.
type Compression int

const (
	CompressNone Compression = iota
	CompressGzip
	CompressSnappy
	CompressZstd
	CompressBrotli
	CompressLZ4
)

var extensions = map[string]Compression{
	".gz":     CompressGzip,
	".sz":     CompressSnappy,
	".snappy": CompressSnappy,
	".zst":    CompressZstd,
	".br":     CompressBrotli,
	".lz4":    CompressLZ4,
}

func (c Compression) String() string {
	switch c {
	case CompressGzip:
		return "gzip"
	case CompressSnappy:
		return "snappy"
	case CompressZstd:
		return "zstd"
	case CompressBrotli:
		return "brotli"
	case CompressLZ4:
		return "lz4"
	default:
		return "none"
	}
}

// Extension returns the file suffix for c, empty for CompressNone.
func (c Compression) Extension() string {
	switch c {
	case CompressGzip:
		return ".gz"
	case CompressSnappy:
		return ".sz"
	case CompressZstd:
		return ".zst"
	case CompressBrotli:
		return ".br"
	case CompressLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompression maps a configuration name to a codec.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressNone, nil
	case "gzip", "gz":
		return CompressGzip, nil
	case "snappy", "sz":
		return CompressSnappy, nil
	case "zstd", "zst":
		return CompressZstd, nil
	case "brotli", "br":
		return CompressBrotli, nil
	case "lz4":
		return CompressLZ4, nil
	default:
		return CompressNone, fmt.Errorf("unknown compression %q", name)
	}
}

// CompressionFromPath infers the codec from the final extension of path.
func CompressionFromPath(path string) Compression {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Compress encodes data with c.
func Compress(data []byte, c Compression) ([]byte, error) {
	var b bytes.Buffer
	var w io.WriteCloser

	switch c {
	case CompressGzip:
		w = gzip.NewWriter(&b)
	case CompressSnappy:
		w = snappy.NewBufferedWriter(&b)
	case CompressZstd:
		var err error
		w, err = zstd.NewWriter(&b)
		if err != nil {
			return nil, err
		}
	case CompressBrotli:
		w = brotli.NewWriterLevel(&b, brotli.BestCompression)
	case CompressLZ4:
		w = lz4.NewWriter(&b)
	default:
		return data, nil
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Decompress decodes data encoded with c.
func Decompress(data []byte, c Compression) ([]byte, error) {
	var r io.Reader

	switch c {
	case CompressGzip:
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		r = gr
	case CompressSnappy:
		r = snappy.NewReader(bytes.NewReader(data))
	case CompressZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case CompressBrotli:
		r = brotli.NewReader(bytes.NewReader(data))
	case CompressLZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	default:
		return data, nil
	}

	return io.ReadAll(r)
}
