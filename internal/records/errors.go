package records

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("invalid student record")

	// ErrNotFound is returned when an id or index names no record.
	ErrNotFound = errors.New("student not found")
)

// Rule names the validation rule a submission broke.
type Rule string

const (
	RuleRequired       Rule = "required"
	RuleAgeRange       Rule = "age_range"
	RuleDuplicateEmail Rule = "duplicate_email"
)

// ValidationError reports the first rule a submission failed.
// Fields lists the offending input fields (json names).
type ValidationError struct {
	Rule   Rule
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrValidation, e.Rule, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Message is the text shown to the user for this failure.
func (e *ValidationError) Message() string {
	switch e.Rule {
	case RuleRequired:
		return "Please fill in all fields."
	case RuleAgeRange:
		return "Please enter a valid age between 16 and 100."
	case RuleDuplicateEmail:
		return "A student with this email already exists."
	default:
		return "Invalid student record."
	}
}

// IndexError is returned by the positional operations when index is
// outside the current list. It matches ErrNotFound.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("record index %d out of range [0,%d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrNotFound }
