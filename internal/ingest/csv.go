package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/avelez/ohlc-data/internal/model"
)

// Column names expected in upload headers, after normalization (lowercase,
// whitespace and underscores removed).
const (
	colStrike   = "strikeprice"
	colContract = "contracttype"
	colExpiry   = "expirydate"
	colTime     = "timestamp"
	colOpen     = "open"
	colClose    = "close"
	colHigh     = "high"
	colLow      = "low"
	colVolume   = "volume"
)

// ReadBars decodes one uploaded CSV into raw rows. The header row maps
// columns by name, so column order is free. Broker exports are sometimes
// UTF-16 with a BOM; those are transparently decoded. Option uploads must
// carry the strike/contract/expiry columns; volume is optional everywhere.
func ReadBars(r io.Reader, kind model.InstrumentKind) ([]model.RawBar, error) {
	br := bufio.NewReader(r)
	if b, _ := br.Peek(2); len(b) >= 2 &&
		((b[0] == 0xFF && b[1] == 0xFE) || (b[0] == 0xFE && b[1] == 0xFF)) {
		br = bufio.NewReader(transform.NewReader(br,
			unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty csv")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[normalizeHeader(h)] = i
	}

	required := []string{colTime, colOpen, colClose, colHigh, colLow}
	if kind == model.KindOption {
		required = append(required, colStrike, colContract, colExpiry)
	}
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("csv missing required column %q", c)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var out []model.RawBar
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}

		row := model.RawBar{
			Timestamp: field(rec, colTime),
			Open:      field(rec, colOpen),
			Close:     field(rec, colClose),
			High:      field(rec, colHigh),
			Low:       field(rec, colLow),
			Volume:    field(rec, colVolume),
		}
		if kind == model.KindOption {
			row.StrikePrice = field(rec, colStrike)
			row.ContractType = field(rec, colContract)
			row.ExpiryDate = field(rec, colExpiry)
		}
		out = append(out, row)
	}
	return out, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
	h = strings.ToLower(h)
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}
