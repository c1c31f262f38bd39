package s3client

import (
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/joeydtaylor/npulse/pkg/internal/utils"
)

// RenderKey expands the prefix and file name templates for now and appends ext.
// Placeholders: {yyyy} {MM} {dd} {HH} {mm} {ts} (unix millis) {id} (short random id).
func (a *S3ClientAdapter) RenderKey(now time.Time, ext string) string {
	ts := now.UTC()
	repl := strings.NewReplacer(
		"{yyyy}", ts.Format("2006"),
		"{MM}", ts.Format("01"),
		"{dd}", ts.Format("02"),
		"{HH}", ts.Format("15"),
		"{mm}", ts.Format("04"),
		"{ts}", strconv.FormatInt(ts.UnixMilli(), 10),
		"{id}", utils.ShortID(utils.GenerateUniqueHash()),
	)
	name := a.fileNameTmpl
	if name == "" {
		name = "{ts}-{id}"
	}
	return path.Join(repl.Replace(a.prefixTemplate), repl.Replace(name)) + ext
}
