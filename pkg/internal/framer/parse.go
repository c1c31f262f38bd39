package framer

import (
	"strconv"
	"strings"

	"github.com/joeydtaylor/npulse/pkg/internal/types"
)

// ParseLine validates one text line. Blank lines return ok=false with an empty reason;
// every other failure carries one of the Reject* reasons.
func ParseLine(line string) (types.Record, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return types.Record{}, "", false
	}

	fields := strings.Split(line, ",")
	if len(fields) < 3 {
		return types.Record{}, RejectTooFewFields, false
	}

	var vals [3]int64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseInt(strings.TrimSpace(fields[i]), 10, 64)
		if err != nil {
			return types.Record{}, RejectParseError, false
		}
		vals[i] = v
	}

	rec := types.Record{C1: vals[0], C2: vals[1], C3: vals[2]}
	if !rec.Valid() {
		return types.Record{}, RejectGlitch, false
	}
	return rec, "", true
}
