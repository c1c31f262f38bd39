package framer_test

import (
	"context"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/joeydtaylor/npulse/pkg/internal/framer"
	"github.com/joeydtaylor/npulse/pkg/internal/sensor"
	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

const fixture = "Start nPULSE001\n100,150,200\n50,60,0\n110,140,190\n  120 , 130 ,140,extra\nabc,1,2\n1,2\n\n\r\n-5,7,9\n300,301,302\n"

func frameAll(chunks []string) []types.Record {
	f := framer.NewFramer()
	var out []types.Record
	for _, c := range chunks {
		out = append(out, f.Write([]byte(c))...)
	}
	f.Flush()
	return out
}

func TestTwoChunkScenario(t *testing.T) {
	got := frameAll([]string{"100,150,2", "00\n50,60,0\n110,140,190\n"})
	want := []types.Record{{C1: 100, C2: 150, C3: 200}, {C1: 110, C2: 140, C3: 190}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRechunkInvariance(t *testing.T) {
	want := frameAll([]string{fixture})
	if len(want) != 5 {
		t.Fatalf("expected 5 records from fixture, got %d: %v", len(want), want)
	}

	rng := rand.New(rand.NewSource(7))
	data := []byte(fixture)
	for trial := 0; trial < 200; trial++ {
		var chunks []string
		for i := 0; i < len(data); {
			n := 1 + rng.Intn(12)
			if i+n > len(data) {
				n = len(data) - i
			}
			chunks = append(chunks, string(data[i:i+n]))
			i += n
		}
		if got := frameAll(chunks); !reflect.DeepEqual(got, want) {
			t.Fatalf("trial %d: chunking %q produced %v, want %v", trial, chunks, got, want)
		}
	}

	bytewise := make([]string, len(data))
	for i := range data {
		bytewise[i] = string(data[i : i+1])
	}
	if got := frameAll(bytewise); !reflect.DeepEqual(got, want) {
		t.Fatalf("byte-at-a-time chunking produced %v, want %v", got, want)
	}
}

func TestZeroFieldNeverEmitted(t *testing.T) {
	for _, line := range []string{"0,1,2\n", "1,0,2\n", "1,2,0\n", "0,0,0\n", "00,5,5\n"} {
		if got := frameAll([]string{line}); len(got) != 0 {
			t.Fatalf("line %q emitted %v", line, got)
		}
	}
}

func TestTrailingPartialLineDropped(t *testing.T) {
	f := framer.NewFramer()
	got := f.Write([]byte("1,2,3\n4,5,6"))
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %v", got)
	}
	if string(f.Pending()) != "4,5,6" {
		t.Fatalf("unexpected pending buffer %q", f.Pending())
	}
	if dropped := f.Flush(); dropped != 5 {
		t.Fatalf("expected 5 dropped bytes, got %d", dropped)
	}
	if len(f.Pending()) != 0 {
		t.Fatalf("expected empty pending after flush")
	}
}

func TestChunkWithoutNewlineOnlyBuffers(t *testing.T) {
	f := framer.NewFramer()
	if got := f.Write([]byte("123,45")); got != nil {
		t.Fatalf("expected no records, got %v", got)
	}
	if got := f.Write([]byte("6,789")); got != nil {
		t.Fatalf("expected no records, got %v", got)
	}
	got := f.Write([]byte("\n"))
	want := []types.Record{{C1: 123, C2: 456, C3: 789}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRejectReasons(t *testing.T) {
	reasons := map[string]int{}
	s := sensor.NewSensor(sensor.WithOnRejectFunc(func(c types.ComponentMetadata, line string, reason string) {
		reasons[reason]++
	}))
	f := framer.NewFramer(framer.WithSensor(s))
	f.Write([]byte("1,2\nx,1,2\n1,0,2\n\n7,8,9\n"))

	if reasons[framer.RejectTooFewFields] != 1 || reasons[framer.RejectParseError] != 1 || reasons[framer.RejectGlitch] != 1 {
		t.Fatalf("unexpected reasons %v", reasons)
	}
	lines, accepted, rejected := f.Stats()
	if lines != 4 || accepted != 1 || rejected != 3 {
		t.Fatalf("unexpected stats lines=%d accepted=%d rejected=%d", lines, accepted, rejected)
	}

	f.Reset()
	if lines, _, _ := f.Stats(); lines != 0 {
		t.Fatalf("expected stats cleared by reset")
	}
}

func TestRecordsIterator(t *testing.T) {
	f := framer.NewFramer()
	chunks := make(chan []byte, 4)
	chunks <- []byte("10,20,")
	chunks <- []byte("30\n40,50,60\n70,")
	chunks <- []byte("80,90")
	close(chunks)

	var got []types.Record
	for rec := range f.Records(context.Background(), chunks) {
		got = append(got, rec)
	}
	want := []types.Record{{C1: 10, C2: 20, C3: 30}, {C1: 40, C2: 50, C3: 60}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(f.Pending()) != 0 {
		t.Fatalf("expected iterator to flush the partial line on close")
	}
}

func TestRecordsIteratorEarlyBreak(t *testing.T) {
	f := framer.NewFramer()
	chunks := make(chan []byte, 1)
	chunks <- []byte(strings.Repeat("1,2,3\n", 10))

	count := 0
	for range f.Records(context.Background(), chunks) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Fatalf("expected to stop after 3, got %d", count)
	}
}

func TestParseLine(t *testing.T) {
	rec, reason, ok := framer.ParseLine(" 5, 6 ,7 ")
	if !ok || reason != "" || rec != (types.Record{C1: 5, C2: 6, C3: 7}) {
		t.Fatalf("unexpected parse %v %q %v", rec, reason, ok)
	}
	if _, reason, ok := framer.ParseLine("   "); ok || reason != "" {
		t.Fatalf("blank line should be skipped silently")
	}
	if _, reason, _ := framer.ParseLine("1.5,2,3"); reason != framer.RejectParseError {
		t.Fatalf("expected parse error, got %q", reason)
	}
}
