package validation

import (
	"regexp"
	"strings"
)

// Validator provides common validation utilities
type Validator struct {
	emailRegex *regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		emailRegex: regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`),
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidEmail checks if a string looks like an email address
func (v *Validator) IsValidEmail(s string) bool {
	return v.emailRegex.MatchString(strings.TrimSpace(s))
}

// IsValidID checks if an identifier is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// TrimString trims whitespace and returns the cleaned string
func (v *Validator) TrimString(s string) string {
	return strings.TrimSpace(s)
}
