package capture

import "strings"

// Defaults observed in device captures.
var (
	DefaultBanners      = []string{"Start nPULSE001", "Start"}
	DefaultTrailingTrim = 25
)

// Cleaner strips device noise from a capture before line parsing.
type Cleaner struct {
	// Banners are removed everywhere they occur, in order.
	Banners []string
	// TrailingTrim characters are dropped from the end when the text is longer than that.
	TrailingTrim int
}

// DefaultCleaner returns a cleaner with the observed banner tokens and trailing trim.
func DefaultCleaner() Cleaner {
	return Cleaner{
		Banners:      append([]string(nil), DefaultBanners...),
		TrailingTrim: DefaultTrailingTrim,
	}
}

// Clean trims surrounding whitespace, removes banners and drops the trailing suffix.
func (c Cleaner) Clean(text string) string {
	text = strings.TrimSpace(text)
	for _, b := range c.Banners {
		if b != "" {
			text = strings.ReplaceAll(text, b, "")
		}
	}
	if c.TrailingTrim > 0 && len(text) > c.TrailingTrim {
		text = text[:len(text)-c.TrailingTrim]
	}
	return text
}
