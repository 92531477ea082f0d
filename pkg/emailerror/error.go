package emailerror

// ErrorType classifies send failures for retry decisions
type ErrorType string

const (
	// ErrorTypeRecipient indicates a recipient-specific permanent failure
	// (bad address, mailbox full). Never retried.
	ErrorTypeRecipient ErrorType = "recipient"

	// ErrorTypeTransport indicates a relay/infrastructure failure (connection
	// refused, 4xx deferral, auth trouble). Retried with backoff.
	ErrorTypeTransport ErrorType = "transport"

	// ErrorTypeUnknown indicates an unclassified error, retried for safety.
	ErrorTypeUnknown ErrorType = "unknown"
)

// ClassifiedError wraps a send error with retry metadata
type ClassifiedError struct {
	// Original is the underlying error
	Original error

	// Type classifies the error
	Type ErrorType

	// SMTPCode is the extracted SMTP reply code (0 if none found)
	SMTPCode int

	// Retryable indicates whether the send may be attempted again
	Retryable bool
}

// Error implements the error interface
func (e *ClassifiedError) Error() string {
	if e.Original == nil {
		return ""
	}
	return e.Original.Error()
}

// Unwrap returns the underlying error for errors.Is/As compatibility
func (e *ClassifiedError) Unwrap() error {
	return e.Original
}

// IsPermanent reports whether the failure should move the item to its
// terminal Failed state without further retries.
func (e *ClassifiedError) IsPermanent() bool {
	return !e.Retryable
}
