package dispatch

// ValidationError is a request problem reported back to the caller as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	// ErrBusinessNameRequired is returned when business info has no name.
	ErrBusinessNameRequired = &ValidationError{Message: "Business name is required"}

	// ErrEmailMappingRequired is returned when no column is mapped to the
	// client email.
	ErrEmailMappingRequired = &ValidationError{Message: "Client Email field mapping is required"}

	// ErrNoClients is returned when no row carries a client email.
	ErrNoClients = &ValidationError{Message: "No valid client emails found in your data"}
)
