// Package config reads runtime configuration.
//
// Keys are dotted paths ("mail.sendgrid.api_key"). Every key can be overridden
// from the environment by its upper snake form (MAIL_SENDGRID_API_KEY).
package config

import (
	"io"
	"time"
)

// TimeConfig reads integer values scaled to a duration unit.
type TimeConfig interface {
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration
	GetDay(key string) time.Duration
}

// Config is the read-only view of configuration handed to the application.
// Missing keys return the zero value.
type Config interface {
	io.Closer
	TimeConfig

	GetInt(key string) int
	GetInt64(key string) int64
	GetUint32(key string) uint32
	GetFloat64(key string) float64
	GetBool(key string) bool
	GetString(key string) string

	// GetBinary decodes a base64 value; invalid base64 yields nil.
	GetBinary(key string) []byte

	// GetArray splits a "a,b,c" value, trimming blanks and dropping empties.
	GetArray(key string) []string

	// GetMap parses a "k1:v1,k2:v2" value.
	GetMap(key string) map[string]string

	// OnChange registers fn to run after the backing file is reloaded.
	OnChange(fn func())
}
