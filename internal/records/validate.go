package records

import (
	"errors"
	"strings"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/go-playground/validator/v10"
)

// normalize trims surrounding whitespace the way the form does before
// validation, so "  " counts as missing.
func normalize(in types.StudentInput) types.StudentInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Course = strings.TrimSpace(in.Course)
	in.Phone = strings.TrimSpace(in.Phone)
	return in
}

// check runs the rules in order: required fields, age range, duplicate
// email. The duplicate check skips the record with id excludeID.
func (s *Store) check(in types.StudentInput, excludeID string) error {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		return ruleFromFieldErrors(verrs)
	}

	if s.IsDuplicateEmail(in.Email, excludeID) {
		return &ValidationError{Rule: RuleDuplicateEmail, Fields: []string{"email"}}
	}

	return nil
}

// ruleFromFieldErrors folds validator's per-field errors into one rule.
// A missing field wins over an out-of-range age.
func ruleFromFieldErrors(verrs validator.ValidationErrors) *ValidationError {
	var missing, ranged []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "min", "max":
			ranged = append(ranged, fe.Field())
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Rule: RuleRequired, Fields: missing}
	}
	return &ValidationError{Rule: RuleAgeRange, Fields: ranged}
}
