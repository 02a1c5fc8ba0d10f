package service

import (
	"strings"

	"github.com/xwb1989/sqlparser"
)

// SyntaxValidator checks whether text parses as at least one non-empty
// statement under the MySQL grammar. It checks grammar only, never schema
// conformance.
type SyntaxValidator struct{}

func NewSyntaxValidator() *SyntaxValidator {
	return &SyntaxValidator{}
}

// IsValid is total over arbitrary input: parse failures and panics report
// false instead of propagating.
func (v *SyntaxValidator) IsValid(sql string) (valid bool) {
	defer func() {
		if recover() != nil {
			valid = false
		}
	}()

	if strings.TrimSpace(sql) == "" {
		return false
	}

	stmt, err := sqlparser.Parse(sql)
	if err != nil || stmt == nil {
		return false
	}
	return true
}
