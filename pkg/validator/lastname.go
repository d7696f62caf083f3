package validator

import (
	"strings"
)

// RuleError is a field rule violation whose text is shown to the user as is.
type RuleError string

func (e RuleError) Error() string { return string(e) }

const (
	ErrLastNameEdge     = RuleError("Last name cannot start or end with a hyphen or quote.")
	ErrLastNameAdjacent = RuleError("Hyphens and quotes cannot be adjacent.")
	ErrLastNameHyphens  = RuleError("Last name can contain a maximum of one hyphen.")
	ErrLastNameQuotes   = RuleError("Last name can contain a maximum of two single quotes.")

	ErrDateOfBirthInFuture = RuleError("Date of Birth cannot be in the future.")
)

const (
	maxLastNameHyphens = 1
	maxLastNameQuotes  = 2
)

var adjacentPunctuation = []string{"--", "''", "'-", "-'"}

// CheckLastName applies the punctuation rules for last names. The rules are
// checked in order and the first violation is returned.
func CheckLastName(lastName string) error {
	name := strings.TrimSpace(lastName)
	if name == "" {
		return nil
	}

	if isNamePunct(name[0]) || isNamePunct(name[len(name)-1]) {
		return ErrLastNameEdge
	}

	for _, pair := range adjacentPunctuation {
		if strings.Contains(name, pair) {
			return ErrLastNameAdjacent
		}
	}

	if strings.Count(name, "-") > maxLastNameHyphens {
		return ErrLastNameHyphens
	}
	if strings.Count(name, "'") > maxLastNameQuotes {
		return ErrLastNameQuotes
	}

	return nil
}

func isNamePunct(b byte) bool {
	return b == '-' || b == '\''
}
