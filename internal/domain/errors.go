package domain

import (
	"fmt"
)

// ErrNotFound indicates a missing entity
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ValidationError represents an error that occurs due to invalid input or parameters.
// Items failing validation are never retried.
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// ErrTemplateResolution indicates a template lookup failure during processing.
// Retriable at processing time: the template may have been deactivated in a
// race and can come back.
type ErrTemplateResolution struct {
	TemplateID int64
	Name       string
	Reason     string
}

func (e *ErrTemplateResolution) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("template %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("template %d: %s", e.TemplateID, e.Reason)
}

// ErrInvalidTransition indicates an operation attempted against a row whose
// current status forbids it (e.g. cancelling a Processing item).
type ErrInvalidTransition struct {
	QueueID string
	From    EmailStatus
	Op      string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot %s queue item %s in status %s", e.Op, e.QueueID, e.From)
}
