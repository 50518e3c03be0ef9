package product

import (
	"fmt"

	"keepapush/internal/codec"
)

// DecodeSnapshot parses a product's csv table into a Snapshot. Each entry is
// either null (empty history) or a flat sequence of alternating
// (minute-offset, value) integers, consumed two at a time; a dangling
// trailing integer is ignored. Only positions present in the table appear in
// the result.
func DecodeSnapshot(entries [][]int64) (Snapshot, error) {
	if len(entries) > NumPriceTypes {
		return nil, fmt.Errorf("csv has %d entries, expected at most %d", len(entries), NumPriceTypes)
	}

	snap := make(Snapshot, len(entries))
	for i, entry := range entries {
		history := make(History, 0, len(entry)/2)
		for j := 0; j+1 < len(entry); j += 2 {
			history = append(history, PricePoint{
				Time:  codec.MinutesToTime(entry[j]),
				Value: entry[j+1],
			})
		}
		snap[csvIndexToType[i]] = history
	}

	return snap, nil
}
