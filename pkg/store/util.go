package store

import (
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
)

// ChunkRange calls fn for consecutive [start, end) windows of at most
// chunkSize elements.
func ChunkRange(total, chunkSize int, fn func(start, end int) error) error {
	if total <= 0 {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = total
	}
	for start := 0; start < total; start += chunkSize {
		end := min(start+chunkSize, total)
		if err := fn(start, end); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBatch checks a batch before it is written: the method tag must be
// known, names must be non-empty and distinct, types must be known and every
// unordered pair may appear only once. Errors wrap ErrInvalidBatch.
func ValidateBatch(relationships []common.Relationship, method common.AnalysisMethod) error {
	if !method.Valid() {
		return fmt.Errorf("%w: unknown analysis method %q", ErrInvalidBatch, method)
	}

	seen := make(map[string]struct{}, len(relationships))
	for i, r := range relationships {
		c1 := strings.ToLower(strings.TrimSpace(r.Character1))
		c2 := strings.ToLower(strings.TrimSpace(r.Character2))
		if c1 == "" || c2 == "" {
			return fmt.Errorf("%w: relationship %d has an empty character name", ErrInvalidBatch, i)
		}
		if c1 == c2 {
			return fmt.Errorf("%w: relationship %d pairs %q with itself", ErrInvalidBatch, i, r.Character1)
		}
		if !r.Type.Valid() {
			return fmt.Errorf("%w: relationship %d has unknown type %q", ErrInvalidBatch, i, r.Type)
		}
		if r.Strength < 0 || r.Strength > 1 {
			return fmt.Errorf("%w: relationship %d has strength %v outside [0,1]", ErrInvalidBatch, i, r.Strength)
		}
		if c1 > c2 {
			c1, c2 = c2, c1
		}
		key := c1 + "\x00" + c2
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate pair %q / %q", ErrInvalidBatch, r.Character1, r.Character2)
		}
		seen[key] = struct{}{}
	}
	return nil
}
