// Package validator validates request structs.
//
// Usecases depend on the Validator interface. The go-playground/validator v10
// implementation registers English messages and the project rules "password",
// "otp", "role" and "phone", and reports failures keyed by snake_case field.
package validator
