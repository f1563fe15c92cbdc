// Package validate holds the pure input checks that gate every write.
// Nothing here touches the store; each function either returns nil or a
// *domain.ValidationError with the exact user-facing message.
package validate

import (
	"regexp"
	"strings"

	"github.com/taskforge/todo-service/internal/domain"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field is a named request value checked by RequireFields.
type Field struct {
	Name  string
	Value string
}

// RequireFields checks fields in declaration order and reports the first
// missing one. Empty string counts as missing.
func RequireFields(fields ...Field) error {
	for _, f := range fields {
		if f.Value == "" {
			return domain.NewValidationError("Please provide a " + f.Name)
		}
	}
	return nil
}

// Todo validates todo content. Emptiness is the only check; whitespace-only
// values are deliberately accepted.
func Todo(title, description string) error {
	if title == "" {
		return domain.NewValidationError("Title is required")
	}
	if description == "" {
		return domain.NewValidationError("Description is required")
	}
	return nil
}

// Registration validates name, email and password in that order and reports
// the first failure.
func Registration(name, email, password string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	return validatePassword(password)
}

func validateName(name string) error {
	if name == "" {
		return domain.NewValidationError("Name is required")
	}
	if len(strings.Fields(name)) < 2 {
		return domain.NewValidationError("Invalid name. Please provide your first and last name")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return domain.NewValidationError("Email is required")
	}
	if !emailRe.MatchString(email) {
		return domain.NewValidationError("Invalid email. Please provide a valid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return domain.NewValidationError("Password is required")
	}
	if len(password) < 5 || !strings.ContainsAny(password, "0123456789") {
		return domain.NewValidationError("Invalid password. Password must be at least 5 characters long and contain at least one number")
	}
	return nil
}
