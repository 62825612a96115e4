package uid

import "github.com/google/uuid"

// UUID generates time-ordered RFC 9562 UUID strings.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a UUIDv7, falling back to v4 if the v7 source fails.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// IsUUID reports whether s parses as a UUID of any version.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
