package s3client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/joeydtaylor/npulse/pkg/internal/sensor"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

type storedObject struct {
	body        []byte
	contentType string
	meta        map[string]string
}

type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string]storedObject
	failPuts int
	puts     int
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string]storedObject{}} }

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(obj.body)), Metadata: obj.meta}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.failPuts > 0 {
		f.failPuts--
		return nil, errors.New("service unavailable: temporary failure")
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = storedObject{body: body, contentType: aws.ToString(in.ContentType), meta: in.Metadata}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := &s3.ListObjectsV2Output{}
	for k := range f.objects {
		bucket, key, _ := strings.Cut(k, "/")
		if bucket == aws.ToString(in.Bucket) && strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			out.Contents = append(out.Contents, s3types.Object{Key: aws.String(key)})
		}
	}
	return out, nil
}

func TestPutAndGetObject(t *testing.T) {
	fake := newFakeS3()
	var successes int
	s := sensor.NewSensor(sensor.WithOnS3PutSuccessFunc(func(types.ComponentMetadata, string, string, int, time.Duration) { successes++ }))
	a := NewS3ClientAdapter(WithSensor(s))
	a.cli = fake

	if err := a.PutObject(context.Background(), "bucket", "captures/a.txt", []byte("1,2,3\n"), "text/plain"); err != nil {
		t.Fatalf("PutObject: %v", err)
	}
	got, err := a.GetObject(context.Background(), "bucket", "captures/a.txt")
	if err != nil {
		t.Fatalf("GetObject: %v", err)
	}
	if string(got) != "1,2,3\n" {
		t.Fatalf("unexpected body %q", got)
	}
	if successes != 1 {
		t.Fatalf("expected 1 put success callback, got %d", successes)
	}
	if fake.objects["bucket/captures/a.txt"].contentType != "text/plain" {
		t.Fatalf("content type not forwarded")
	}
}

func TestGetObjectNotFound(t *testing.T) {
	a := NewS3ClientAdapter()
	a.cli = newFakeS3()
	_, err := a.GetObject(context.Background(), "bucket", "missing.txt")
	if !errors.Is(err, types.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
}

func TestPutObjectRetries(t *testing.T) {
	fake := newFakeS3()
	fake.failPuts = 2
	a := NewS3ClientAdapter(WithPutRetry(3, time.Millisecond))
	a.cli = fake

	if err := a.PutObject(context.Background(), "bucket", "k", []byte("x"), ""); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if fake.puts != 3 {
		t.Fatalf("expected 3 attempts, got %d", fake.puts)
	}
}

func TestPutObjectGivesUp(t *testing.T) {
	fake := newFakeS3()
	fake.failPuts = 5
	var putErrs int
	s := sensor.NewSensor(sensor.WithOnS3PutErrorFunc(func(types.ComponentMetadata, string, string, error) { putErrs++ }))
	a := NewS3ClientAdapter(WithPutRetry(2, time.Millisecond), WithSensor(s))
	a.cli = fake

	if err := a.PutObject(context.Background(), "bucket", "k", []byte("x"), ""); err == nil {
		t.Fatal("expected error")
	}
	if fake.puts != 2 || putErrs != 1 {
		t.Fatalf("expected 2 attempts and 1 error callback, got %d and %d", fake.puts, putErrs)
	}
}

func TestClientSideEncryptionRoundTrip(t *testing.T) {
	key := strings.Repeat("ab", 32)
	fake := newFakeS3()
	a := NewS3ClientAdapter(WithClientSideEncryption(key))
	a.cli = fake

	plain := []byte("100,150,200\n")
	if err := a.PutObject(context.Background(), "b", "enc.txt", plain, "text/plain"); err != nil {
		t.Fatalf("PutObject: %v", err)
	}
	stored := fake.objects["b/enc.txt"]
	if bytes.Contains(stored.body, plain) {
		t.Fatal("stored object is not encrypted")
	}
	if stored.meta[cseMetaKey] != cseModeAESGCM {
		t.Fatalf("missing encryption metadata: %v", stored.meta)
	}

	got, err := a.GetObject(context.Background(), "b", "enc.txt")
	if err != nil || !bytes.Equal(got, plain) {
		t.Fatalf("decrypt mismatch: %q %v", got, err)
	}

	plainReader := NewS3ClientAdapter()
	plainReader.cli = fake
	if _, err := plainReader.GetObject(context.Background(), "b", "enc.txt"); err == nil {
		t.Fatal("expected error reading encrypted object without a key")
	}
}

func TestInvalidClientSideKey(t *testing.T) {
	a := NewS3ClientAdapter(WithClientSideEncryption("nothex"))
	a.cli = newFakeS3()
	if err := a.PutObject(context.Background(), "b", "k", []byte("x"), ""); err == nil {
		t.Fatal("expected configuration error")
	}
}

func TestRenderKey(t *testing.T) {
	a := NewS3ClientAdapter(WithKeyTemplate("demo/{yyyy}/{MM}/{dd}", "{ts}"))
	ts := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	got := a.RenderKey(ts, ".txt.gz")
	want := fmt.Sprintf("demo/2024/02/03/%d.txt.gz", ts.UnixMilli())
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestListKeysFiltersSuffix(t *testing.T) {
	fake := newFakeS3()
	a := NewS3ClientAdapter()
	a.cli = fake
	for _, k := range []string{"p/a.txt", "p/b.parquet", "q/c.txt"} {
		if err := a.PutObject(context.Background(), "b", k, []byte("x"), ""); err != nil {
			t.Fatal(err)
		}
	}
	keys, err := a.ListKeys(context.Background(), "b", "p/", ".TXT")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != "p/a.txt" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestNotFoundOverHTTP(t *testing.T) {
	rt := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		body := `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Status:     "404 Not Found",
			Header:     http.Header{"Content-Type": []string{"application/xml"}},
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	})
	cli := s3.NewFromConfig(aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		HTTPClient:  &http.Client{Transport: rt},
	}, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://s3.test")
		o.RetryMaxAttempts = 1
	})

	a := NewS3ClientAdapter(WithClient(cli))
	_, err := a.GetObject(context.Background(), "bucket", "nope.txt")
	if !errors.Is(err, types.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
}
