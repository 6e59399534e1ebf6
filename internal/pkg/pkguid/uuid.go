package pkguid

import "github.com/google/uuid"

// UUID generates version 7 UUID strings, which sort by creation time.
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

// Generate falls back to a random version 4 UUID if the v7 clock source
// fails.
func (*UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
