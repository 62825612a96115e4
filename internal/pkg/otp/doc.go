// Package otp generates and checks short numeric one-time codes delivered out
// of band (email). Codes are drawn from crypto/rand, never from a time-based
// secret.
package otp
