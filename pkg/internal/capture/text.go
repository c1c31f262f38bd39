// Package capture reads, writes, cleans and lists recorded sessions in the record text format and
// its compressed and columnar variants.
package capture

import (
	"bufio"
	"io"
	"strings"

	"github.com/joeydtaylor/npulse/pkg/internal/framer"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// ParseText returns the records of every valid line in text. Unlike a stream, the final line
// counts even without a trailing newline.
func ParseText(text string) []types.Record {
	var out []types.Record
	for _, line := range strings.Split(text, "\n") {
		if rec, _, ok := framer.ParseLine(line); ok {
			out = append(out, rec)
		}
	}
	return out
}

// WriteText writes records one per line.
func WriteText(w io.Writer, records []types.Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if _, err := bw.WriteString(r.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EncodeText renders records in the text format.
func EncodeText(records []types.Record) []byte {
	var sb strings.Builder
	sb.Grow(len(records) * 16)
	_ = WriteText(&sb, records)
	return []byte(sb.String())
}
