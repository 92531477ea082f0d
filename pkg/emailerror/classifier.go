package emailerror

import (
	"regexp"
	"strconv"
	"strings"
)

// SMTP error classification
//
// RECIPIENT ERRORS (5xx permanent failures - never retried):
// - 550: Mailbox unavailable (recipient doesn't exist)
// - 551: User not local (routing issue)
// - 552: Storage exceeded (mailbox full; counts as permanent)
// - 553: Mailbox name not allowed (invalid format)
// - 554: Transaction failed
//
// TRANSPORT ERRORS (4xx temporary failures - retried):
// - 421: Service temporarily unavailable
// - 450: Mailbox busy
// - 451: Local error in processing
// - 452: Insufficient storage
// - Connection timeouts, TLS failures, auth hiccups

var recipientPatterns = []string{
	"550 ",
	"550:",
	"551 ",
	"551:",
	"552 ",
	"552:",
	"553 ",
	"553:",
	"554 ",
	"554:",
	"5.1.1", // Mailbox does not exist
	"5.1.2", // Bad destination mailbox
	"5.1.3", // Bad destination mailbox syntax
	"5.2.1", // Mailbox disabled
	"5.2.2", // Mailbox full
	"5.7.1", // Delivery not authorized (recipient policy)
	"mailbox unavailable",
	"mailbox not found",
	"user unknown",
	"no such user",
	"recipient rejected",
	"does not exist",
	"mailbox full",
	"over quota",
	"invalid recipient",
}

var transportPatterns = []string{
	"421 ",
	"421:",
	"450 ",
	"450:",
	"451 ",
	"451:",
	"452 ",
	"452:",
	"4.7.1", // Delivery not authorized (server policy)
	"connection refused",
	"connection reset",
	"connection timeout",
	"timed out",
	"timeout",
	"broken pipe",
	"tls handshake",
	"tls error",
	"ssl error",
	"authentication failed",
	"auth failed",
	"login failed",
	"service unavailable",
	"try again later",
	"temporary failure",
	"greylisted",
	"greylist",
	"no such host",
	"network is unreachable",
}

// Matches a leading SMTP reply code such as "451 try again" or "error: 550 no such user"
var smtpCodeRegex = regexp.MustCompile(`\b([245]\d{2})[ :-]`)

// Classifier classifies SMTP send errors
type Classifier struct{}

// NewClassifier creates a new error classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify analyzes a send error and decides whether it is retryable.
// A nil error yields nil.
func (c *Classifier) Classify(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	result := &ClassifiedError{
		Original:  err,
		SMTPCode:  extractSMTPCode(errStr),
		Retryable: true,
	}

	if containsAny(errStr, recipientPatterns) {
		result.Type = ErrorTypeRecipient
		result.Retryable = false
		return result
	}

	if containsAny(errStr, transportPatterns) {
		result.Type = ErrorTypeTransport
		result.Retryable = true
		return result
	}

	// Fall back to the bare reply code when the text matched nothing.
	switch {
	case result.SMTPCode >= 500:
		result.Type = ErrorTypeRecipient
		result.Retryable = false
	case result.SMTPCode >= 400:
		result.Type = ErrorTypeTransport
		result.Retryable = true
	default:
		result.Type = ErrorTypeUnknown
		result.Retryable = true
	}

	return result
}

// extractSMTPCode attempts to pull an SMTP reply code out of an error message
func extractSMTPCode(errStr string) int {
	if matches := smtpCodeRegex.FindStringSubmatch(errStr); len(matches) >= 2 {
		if code, err := strconv.Atoi(matches[1]); err == nil {
			return code
		}
	}
	return 0
}

// containsAny checks if the error string contains any of the patterns (case-insensitive)
func containsAny(errStr string, patterns []string) bool {
	errLower := strings.ToLower(errStr)
	for _, pattern := range patterns {
		if strings.Contains(errLower, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}
