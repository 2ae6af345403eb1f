// Package validate provides shared validation functions for user input.
package validate

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/hay-kot/criterio"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Required validates a value is non-empty after trimming whitespace.
func Required(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

// Email validates a bare email address.
func Email(value string) error {
	if err := Required(value); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != strings.TrimSpace(value) {
		return fmt.Errorf("%q is not a valid email address", value)
	}
	return nil
}

// Password validates a new password.
func Password(value string) error {
	if len(value) < MinPasswordLength {
		return fmt.Errorf("must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// Login validates sign-in credentials.
func Login(email, password string) error {
	return criterio.ValidateStruct(
		criterio.Run("email", email, Email),
		criterio.Run("password", password, Required),
	)
}

// Registration validates the sign-up form.
func Registration(name, email, password string) error {
	return criterio.ValidateStruct(
		criterio.Run("name", name, Required),
		criterio.Run("email", email, Email),
		criterio.Run("password", password, Password),
	)
}

// Post validates a new post. A post needs a caption, an image, or both.
func Post(caption string, hasImage bool) error {
	if strings.TrimSpace(caption) == "" && !hasImage {
		return criterio.NewFieldErrors("caption", fmt.Errorf("write something or attach an image"))
	}
	return nil
}

// Comment validates comment text.
func Comment(text string) error {
	return criterio.Run("text", text, Required)
}
