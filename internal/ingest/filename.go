// Package ingest turns delivered CSV batches into raw rows: filename
// metadata extraction and CSV decoding. It trusts nothing about field
// formatting; canonicalization happens downstream in the dedup engine.
package ingest

import (
	"fmt"
	"regexp"
	"strings"
)

// FileMeta is the instrument metadata encoded in an upload's filename.
type FileMeta struct {
	Symbol       string
	OptionType   string // "call", "put", or "stock"
	TimeframeTag string // e.g. "1min"
}

// Option files: ib_data_<date>_<symbol>_<call|put>_<timeframe>_<date>.csv
// Stock files:  ib_data_<date>_<symbol>_<timeframe>.csv
// Some exports write the timeframe as "1 min"; the space is dropped.
var (
	optionFilePattern = regexp.MustCompile(`^.*_([a-z]+)_(call|put)_(\d+\s*min)_.*\.csv$`)
	stockFilePattern  = regexp.MustCompile(`^.*_([a-z]+)_(\d+\s*min)\.csv$`)
)

// ParseFilename extracts symbol, option type and timeframe tag from an
// upload filename. Matching is case-insensitive; stock/index files carry no
// call/put marker and report type "stock".
func ParseFilename(name string) (FileMeta, error) {
	lower := strings.ToLower(strings.TrimSpace(name))

	if m := optionFilePattern.FindStringSubmatch(lower); m != nil {
		return FileMeta{
			Symbol:       m[1],
			OptionType:   m[2],
			TimeframeTag: stripSpaces(m[3]),
		}, nil
	}
	if m := stockFilePattern.FindStringSubmatch(lower); m != nil {
		return FileMeta{
			Symbol:       m[1],
			OptionType:   "stock",
			TimeframeTag: stripSpaces(m[2]),
		}, nil
	}
	return FileMeta{}, fmt.Errorf("invalid filename format: %s", name)
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
