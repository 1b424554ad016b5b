package shared

import "fmt"

// NotFoundError reports an id that is not part of the loaded dataset.
// Suggestion carries the closest known id, if any.
type NotFoundError struct {
	Kind       string
	ID         string
	Suggestion string
}

func (e *NotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s %q not found (did you mean %q?)", e.Kind, e.ID, e.Suggestion)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func NewNotFoundError(kind, id, suggestion string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id, Suggestion: suggestion}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UpgradeBlockedError is returned by commands when a quick upgrade cannot be
// paid for. The domain operation itself only reports false.
type UpgradeBlockedError struct {
	PieceID string
	Target  int
}

func (e *UpgradeBlockedError) Error() string {
	return fmt.Sprintf("cannot upgrade %s to level %d: requirements not met", e.PieceID, e.Target)
}
