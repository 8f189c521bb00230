// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateName checks the display name: at least 2 characters after trimming.
func ValidateName(name string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return fmt.Errorf("name is required and must be at least 2 characters")
	}
	if len(name) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}
	return nil
}

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("a valid email is required")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidatePassword checks the password length bounds. The ceiling is
// bcrypt's 72-byte input limit; anything longer would fail at hash time.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if len(password) > 72 {
		return fmt.Errorf("password must not exceed 72 characters")
	}
	return nil
}

// ValidatePostText checks that post text is non-empty after trimming.
func ValidatePostText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("post text is required")
	}
	if len(text) > 50000 {
		return fmt.Errorf("post text too long (max 50000 characters)")
	}
	return nil
}

// ValidateCommentText checks that comment text is non-empty after trimming.
func ValidateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("comment text is required")
	}
	if len(text) > 10000 {
		return fmt.Errorf("comment too long (max 10000 characters)")
	}
	return nil
}
