package errors

import (
	"strings"
	"unicode"
)

// ValidateCellName checks that a macro name can be written to LEF and GDS.
// Both formats treat whitespace as a token separator, so names with spaces,
// control characters or a ';' would corrupt the output.
func ValidateCellName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "cell name cannot be empty")
	}

	const maxNameLength = 256
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "cell name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "cell name %q contains whitespace or control characters", name)
		}
	}

	if strings.Contains(name, ";") {
		return New(ErrCodeInvalidName, "cell name %q contains ';'", name)
	}

	return nil
}

// ValidateTechName validates a technology name before it is joined into a
// configuration path. It rejects anything that could escape the tech root.
//
// Validation rules:
//   - Name cannot be empty
//   - No path separators or traversal sequences
//   - No null bytes or control characters
func ValidateTechName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidOption, "technology name cannot be empty")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidOption, "technology name contains invalid characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidOption, "technology name %q cannot contain path separators", name)
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidOption, "technology name %q cannot contain '..'", name)
	}

	return nil
}
