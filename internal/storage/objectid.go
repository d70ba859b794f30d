package storage

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID returns a fresh document identifier in hex form. In-memory stores use
// it so identifiers look the same as those generated by MongoDB.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ParseID converts a hex identifier into an ObjectID. ok is false for
// malformed input, which stores treat as "matches nothing".
func ParseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
