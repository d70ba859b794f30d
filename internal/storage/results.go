// Package storage holds the write outcomes every store reports back to
// services. They mirror what the document store returns so handlers can pass
// them through unchanged.
package storage

// UpdateResult reports how many documents an update matched and changed.
// A zero MatchedCount is a valid outcome, not an error.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports how many documents a delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// InsertResult carries the generated identifier of an inserted document.
type InsertResult struct {
	InsertedID string `json:"insertedId"`
}
