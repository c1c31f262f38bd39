package capture

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// DefaultDir is where sessions are saved unless configured otherwise.
const DefaultDir = "files"

const filePrefix = "npulse_data_"

// FileName returns the capture file name for a session saved at t.
func FileName(t time.Time, c Compression) string {
	return filePrefix + t.Format("20060102_150405") + ".txt" + c.Extension()
}

// Save writes records to dir under a timestamped name and returns the path. An empty session is
// types.ErrNoData.
func Save(dir string, records []types.Record, at time.Time, c Compression) (string, error) {
	if len(records) == 0 {
		return "", types.ErrNoData
	}
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create capture dir: %w", err)
	}

	data, err := Compress(EncodeText(records), c)
	if err != nil {
		return "", fmt.Errorf("compress capture: %w", err)
	}
	path := filepath.Join(dir, FileName(at, c))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write capture: %w", err)
	}
	return path, nil
}

// Info describes one capture on disk.
type Info struct {
	Name        string      `json:"name"`
	Path        string      `json:"path"`
	Size        int64       `json:"size"`
	ModTime     time.Time   `json:"mod_time"`
	Compression Compression `json:"-"`
}

// List returns the .txt captures in dir (plain or compressed), newest first. A missing directory
// yields an empty list.
func List(dir string) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	files := utils.Filter(entries, func(e fs.DirEntry) bool {
		return !e.IsDir() && IsCaptureName(e.Name())
	})

	out := make([]Info, 0, len(files))
	for _, e := range files {
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{
			Name:        e.Name(),
			Path:        filepath.Join(dir, e.Name()),
			Size:        fi.Size(),
			ModTime:     fi.ModTime(),
			Compression: CompressionFromPath(e.Name()),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].ModTime.After(out[j].ModTime)
		}
		return out[i].Name > out[j].Name
	})
	return out, nil
}

// IsCaptureName reports whether name is a text capture, optionally compressed.
func IsCaptureName(name string) bool {
	name = strings.ToLower(name)
	if c := CompressionFromPath(name); c != CompressNone {
		name = strings.TrimSuffix(name, c.Extension())
		name = strings.TrimSuffix(name, ".snappy")
	}
	return strings.HasSuffix(name, ".txt")
}
