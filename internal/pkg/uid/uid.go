// Package uid generates identifiers.
//
// UUIDv7 strings identify reset tokens and correlation IDs, Snowflake numbers
// identify delivery log rows and ObjectIDs name archive batches.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates numeric identifiers.
type NumberID interface {
	Generate() int64
}
