// Package ledger tracks which catalog items have already appeared in a
// produced video and chooses each run's batch.
//
// The used set is persisted as a JSON id list, loaded once per run, mutated in
// memory, and written back as a deduplicated whole-file snapshot only after
// the render pipeline succeeds. Selection enforces no-repeat-until-exhausted
// semantics: when fewer unused items remain than one batch needs, the set is
// treated as exhausted and the draw falls back to the full catalog. A catalog
// smaller than the batch size is fatal (ErrInsufficientCatalog).
//
// Guard wraps the read-modify-write in an exclusive flock so overlapping
// invocations cannot double-select or clobber each other's commit.
package ledger
