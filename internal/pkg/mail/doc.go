// Package mail sends email through a provider-agnostic Mail interface.
//
// Drivers: "sendgrid" (HTTP API, selected when an API key is configured),
// "smtp" (gomail) and "log" (writes the message to the logger, for local runs).
package mail
