// Package coverage extracts declared coverage from test and documentation
// files. Content is treated as raw text and scanned by pattern: the contract
// is a bounded, documented declaration syntax, not the host language's
// grammar, so no parsing beyond regular expressions is done here.
package coverage

import (
	"regexp"
	"strings"
)

// Test suites declare the classes they run common tests over with an
// assignment of the form:
//
//	all_model_classes = ((FooModel, FooForMaskedLM))
//
// The stricter pattern tolerates the nested grouping; if it does not match,
// the single-parenthesis form is tried as a fallback.
var (
	nestedDeclaration = regexp.MustCompile(`all_model_classes\s+=\s+\(\s*\(([^)]*)\)`)
	flatDeclaration   = regexp.MustCompile(`all_model_classes\s+=\s+\(([^)]*)\)`)
)

// DeclaredTestClasses extracts the list of model classes a test file declares
// common-test coverage for. The second return value reports whether a
// declaration was found at all: a file with no declaration returns
// (nil, false), while a declaration that yields no names returns an empty
// list and true. The two states are distinct; only the former means the
// file lacks the coverage mechanism entirely.
func DeclaredTestClasses(content string) ([]string, bool) {
	match := nestedDeclaration.FindStringSubmatch(content)
	if match == nil {
		match = flatDeclaration.FindStringSubmatch(content)
	}
	if match == nil {
		return nil, false
	}

	classes := []string{}
	for _, name := range strings.Split(match[1], ",") {
		name = strings.TrimSpace(name)
		if len(name) > 0 {
			classes = append(classes, name)
		}
	}
	return classes, true
}
