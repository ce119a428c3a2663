package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRow reports the required fields a decoded row is missing.
// Stores return rows as-is, so readers check them before display.
func ValidateRow(row any) error {
	err := validate.Struct(row)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating row: %w", err)
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, strings.ToLower(fe.Field()))
	}
	return &RowError{Fields: missing}
}

// RowError flags a stored row missing required fields.
type RowError struct {
	Fields []string
}

func (e *RowError) Error() string {
	return "row missing required fields: " + strings.Join(e.Fields, ", ")
}

// Valid splits rows into those passing ValidateRow and the errors for the
// rest. Order of the valid rows is preserved.
func Valid[T any](rows []T) ([]T, []error) {
	out := make([]T, 0, len(rows))
	var errs []error
	for i := range rows {
		if err := ValidateRow(rows[i]); err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i, err))
			continue
		}
		out = append(out, rows[i])
	}
	return out, errs
}
