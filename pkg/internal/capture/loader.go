package capture

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// Loader resolves an analysis input (local path, http(s) URL or s3://bucket/key) to records.
type Loader struct {
	http    types.HTTPClientAdapter
	s3      types.S3ClientAdapter
	cleaner Cleaner
}

// NewLoader returns a loader using the default cleaner and no remote clients.
func NewLoader(options ...types.Option[*Loader]) *Loader {
	l := &Loader{cleaner: DefaultCleaner()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// WithHTTPClient enables http(s) sources.
func WithHTTPClient(c types.HTTPClientAdapter) types.Option[*Loader] {
	return func(l *Loader) { l.http = c }
}

// WithS3Client enables s3:// sources.
func WithS3Client(c types.S3ClientAdapter) types.Option[*Loader] {
	return func(l *Loader) { l.s3 = c }
}

// WithCleaner replaces the text cleaner.
func WithCleaner(c Cleaner) types.Option[*Loader] {
	return func(l *Loader) { l.cleaner = c }
}

// Load fetches source and parses it. Compressed sources are recognised by extension and .parquet
// sources are decoded as sample rows. A source that does not exist is types.ErrResourceNotFound.
func (l *Loader) Load(ctx context.Context, source string) ([]types.Record, error) {
	data, name, err := l.fetch(ctx, source)
	if err != nil {
		return nil, err
	}
	return l.Decode(name, data)
}

// Decode parses raw source bytes; name supplies the extension.
func (l *Loader) Decode(name string, data []byte) ([]types.Record, error) {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".parquet") {
		return DecodeParquet(data)
	}
	if c := CompressionFromPath(lower); c != CompressNone {
		var err error
		if data, err = Decompress(data, c); err != nil {
			return nil, fmt.Errorf("decompress %s: %w", name, err)
		}
	}
	return ParseText(l.cleaner.Clean(string(data))), nil
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, string, error) {
	switch {
	case strings.HasPrefix(source, "s3://"):
		bucket, key, err := ParseS3URI(source)
		if err != nil {
			return nil, "", err
		}
		if l.s3 == nil {
			return nil, "", fmt.Errorf("no s3 client configured for %s", source)
		}
		data, err := l.s3.GetObject(ctx, bucket, key)
		return data, key, err

	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		if l.http == nil {
			return nil, "", fmt.Errorf("no http client configured for %s", source)
		}
		name := source
		if u, err := url.Parse(source); err == nil {
			name = path.Base(u.Path)
		}
		data, err := l.http.Fetch(ctx, source)
		return data, name, err

	default:
		data, err := os.ReadFile(source)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", types.ErrResourceNotFound, source)
		}
		return data, source, err
	}
}

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %q", uri)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri needs bucket and key: %q", uri)
	}
	return bucket, key, nil
}
