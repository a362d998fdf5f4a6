package dedup

import (
	"errors"

	"github.com/avelez/ohlc-data/internal/model"
)

// Partition is the result of splitting an incoming batch against an existing
// key set. len(New) + len(Duplicates) == input length - IntraBatch, every key
// in New is absent from the existing set, and no key appears in both slices.
type Partition struct {
	New           []model.RawBar
	Duplicates    []model.RawBar
	DuplicateKeys []Key // aligned with Duplicates
	IntraBatch    int   // rows dropped as duplicates within the batch itself
}

// PartitionRows splits incoming rows into new and duplicate sets.
//
// The batch is first deduplicated against itself by identity key, keeping the
// first occurrence of each key. Surviving rows whose key is present in
// existing go to Duplicates; the rest to New. A malformed key component fails
// the whole batch with a *model.FieldError carrying the row position.
func PartitionRows(rows []model.RawBar, existing Set, kind model.InstrumentKind) (*Partition, error) {
	p := &Partition{}
	seen := make(Set, len(rows))

	for i, row := range rows {
		k, err := ExtractKey(row, kind)
		if err != nil {
			var fe *model.FieldError
			if errors.As(err, &fe) {
				fe.Row = i
			}
			return nil, err
		}

		if _, dup := seen[k]; dup {
			p.IntraBatch++
			continue
		}
		seen[k] = struct{}{}

		if _, exists := existing[k]; exists {
			p.Duplicates = append(p.Duplicates, row)
			p.DuplicateKeys = append(p.DuplicateKeys, k)
		} else {
			p.New = append(p.New, row)
		}
	}

	return p, nil
}
