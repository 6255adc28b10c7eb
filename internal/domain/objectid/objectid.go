// Package objectid wraps MongoDB ObjectIDs used as user and post identifiers.
package objectid

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ID is the hex form of a 12-byte ObjectID
type ID string

// New generates a new identifier
func New() ID {
	return ID(bson.NewObjectID().Hex())
}

// Parse validates s and returns it as an ID
func Parse(s string) (ID, error) {
	oid, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return "", err
	}
	return ID(oid.Hex()), nil
}

// FromObjectID converts a driver ObjectID
func FromObjectID(oid bson.ObjectID) ID {
	return ID(oid.Hex())
}

// ObjectID converts back to the driver type
func (id ID) ObjectID() (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(string(id))
}

// String returns the hex representation
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the ID is empty
func (id ID) IsZero() bool {
	return id == ""
}
