package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Store errors
	ErrConnection    = fmt.Errorf("database connection failed")
	ErrAlreadyExists = fmt.Errorf("already exists")
	ErrNotFound      = fmt.Errorf("not found")

	// Fixture errors
	ErrInvalidFixture     = fmt.Errorf("invalid fixture")
	ErrVerificationFailed = fmt.Errorf("verification failed")

	// Journal errors
	ErrJournalDisabled = fmt.Errorf("journal disabled")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
