package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// SeparatorPrefix and SeparatorSuffix enclose a section name on its own line.
	SeparatorPrefix = "<section="
	SeparatorSuffix = ">"

	// PlaceholderName names the section that always exists in an otherwise empty document.
	PlaceholderName = "first"

	// MinNameLength is the minimal rune count of a section name.
	MinNameLength = 2
)

// SeparatorFromName transforms a section name into its separator line.
func SeparatorFromName(name string) string {
	return SeparatorPrefix + name + SeparatorSuffix
}

// NameFromSeparator transforms a separator back into the section name.
// It is the inverse of SeparatorFromName for every valid name.
func NameFromSeparator(separator string) (string, error) {
	name, ok := parseSeparator(separator)
	if !ok {
		return "", fmt.Errorf("%w: malformed separator %q", ErrValidation, separator)
	}
	return name, nil
}

// ValidateName checks a user supplied section name and returns it trimmed.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < MinNameLength {
		return "", fmt.Errorf("%w: section name must have at least %d characters", ErrValidation, MinNameLength)
	}
	if strings.ContainsAny(name, "<>=\r\n") {
		return "", fmt.Errorf("%w: section name %q contains a reserved character", ErrValidation, name)
	}
	return name, nil
}

// parseSeparator reports whether line is exactly a separator of a valid name.
func parseSeparator(line string) (string, bool) {
	if !strings.HasPrefix(line, SeparatorPrefix) || !strings.HasSuffix(line, SeparatorSuffix) {
		return "", false
	}
	name := line[len(SeparatorPrefix) : len(line)-len(SeparatorSuffix)]
	valid, err := ValidateName(name)
	if err != nil || valid != name {
		return "", false
	}
	return name, true
}

// containsSeparatorLine reports whether text holds a line that would be read back as a separator.
func containsSeparatorLine(text string) bool {
	for line := range strings.SplitSeq(text, "\n") {
		if _, ok := parseSeparator(strings.TrimSuffix(line, "\r")); ok {
			return true
		}
	}
	return false
}
