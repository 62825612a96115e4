// Package jwt issues and verifies the short-lived service tokens that guard
// the internal email and SMS relay endpoints. Tokens are HS512-signed and
// carry the calling service as subject.
package jwt
