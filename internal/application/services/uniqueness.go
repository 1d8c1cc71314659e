package services

import (
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

// ensureAvailable interprets a lookup by a unique field. A NotFound lookup
// means the value is free; a hit on a different record is a Conflict naming
// the field.
func ensureAvailable(lookupErr error, sameRecord bool, field string) error {
	if lookupErr == nil {
		if sameRecord {
			return nil
		}
		return apperrors.NewConflictError(field + " already exists")
	}
	if apperrors.IsType(lookupErr, apperrors.ErrorTypeNotFound) {
		return nil
	}
	return lookupErr
}

// ensureReference turns a NotFound lookup of a referenced row into a
// Validation error naming the referencing field
func ensureReference(lookupErr error, field string) error {
	if lookupErr == nil {
		return nil
	}
	if apperrors.IsType(lookupErr, apperrors.ErrorTypeNotFound) {
		return apperrors.NewValidationError(field + " references a record that does not exist")
	}
	return lookupErr
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
