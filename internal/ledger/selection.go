package ledger

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"mangareel/internal/catalog"
)

// ErrInsufficientCatalog is returned when the catalog holds fewer items than
// one batch even after a reset. This is fatal and happens before any side
// effect.
var ErrInsufficientCatalog = errors.New("catalog smaller than batch size")

// SelectBatch draws n distinct items from the catalog that are not in the used
// set. When fewer than n unused items remain, the used set is treated as
// exhausted: the draw falls back to the full catalog and reset is reported so
// the caller can clear the persisted ledger on commit.
//
// The draw is uniform without replacement (partial Fisher-Yates), so catalog
// order never biases selection. Pass a seeded rng for deterministic tests; nil
// uses a time-seeded source.
func SelectBatch(items []catalog.Item, used *Set, n int, rng *rand.Rand) (batch []catalog.Item, reset bool, err error) {
	if n <= 0 {
		return nil, false, fmt.Errorf("batch size must be positive, got %d", n)
	}
	if len(items) < n {
		return nil, false, fmt.Errorf("%w: have %d items, need %d", ErrInsufficientCatalog, len(items), n)
	}

	remaining := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		if !used.Contains(item.ID) {
			remaining = append(remaining, item)
		}
	}

	if len(remaining) < n {
		remaining = append(remaining[:0:0], items...)
		reset = true
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Partial shuffle: only the first n positions need to be drawn.
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(remaining)-i)
		remaining[i], remaining[j] = remaining[j], remaining[i]
	}

	batch = make([]catalog.Item, n)
	copy(batch, remaining[:n])
	return batch, reset, nil
}

// Commit merges the batch ids into the used set and returns it. Duplicate ids
// are absorbed, so committing the same batch twice is a no-op the second time.
// Callers must invoke this only after the render pipeline has produced output;
// items never rendered must not be burned from the rotation.
func Commit(used *Set, batch []catalog.Item) *Set {
	if used == nil {
		used = NewSet()
	}
	for _, item := range batch {
		used.Add(item.ID)
	}
	return used
}
