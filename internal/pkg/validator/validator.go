package validator

// Validator validates a struct and returns a V10ValidationError on failure.
type Validator interface {
	Validate(data any) error
}
