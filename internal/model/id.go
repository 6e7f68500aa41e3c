package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// IDLength is the canonical length of every entity id (24 hex characters).
const IDLength = 24

// NewID returns a fresh object id in its canonical hex form.
func NewID() string { return primitive.NewObjectID().Hex() }

// ValidID reports whether id is a well-formed object id.  Ids failing this
// check are rejected before any query is issued.
func ValidID(id string) bool {
	if len(id) != IDLength {
		return false
	}
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
