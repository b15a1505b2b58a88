package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// String length limits
const (
	MaxPackageLength = 255
	MaxLabelLength   = 256
	MaxColorLength   = 9
)

// Regular expressions for validation
var (
	// PackagePattern allows dotted segments, each starting with a letter
	PackagePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)*$`)
	// ColorPattern allows #rrggbb and #rrggbbaa
	ColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil // Optional field, empty is OK
	}

	if !utf8.ValidString(value) {
		return fmt.Errorf("%s is not valid UTF-8", fieldName)
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidatePackage validates an application package identifier
func ValidatePackage(pkg, fieldName string) error {
	if err := ValidateString(pkg, fieldName, 1, MaxPackageLength, true); err != nil {
		return err
	}

	if !PackagePattern.MatchString(pkg) {
		return fmt.Errorf("%s %q is not a valid package name", fieldName, pkg)
	}

	return nil
}

// ValidateLabel validates an optional display label
func ValidateLabel(label, fieldName string) error {
	return ValidateString(label, fieldName, 0, MaxLabelLength, false)
}

// ValidateColor validates an optional #rrggbb[aa] color
func ValidateColor(color, fieldName string) error {
	if color == "" {
		return nil
	}
	if len(color) > MaxColorLength || !ColorPattern.MatchString(color) {
		return fmt.Errorf("%s %q must be #rrggbb or #rrggbbaa", fieldName, color)
	}
	return nil
}
