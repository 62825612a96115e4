// Package clock provides a tiny time abstraction.
//
// Code that compares against an expiry (one-time codes, reset tokens, resend
// cooldowns) depends on Clocker instead of calling time.Now directly, so tests
// can pin or advance time with Manual.
package clock
