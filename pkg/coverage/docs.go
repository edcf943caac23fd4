package coverage

import (
	"regexp"
	"strings"
)

// Documentation pages pull a class's reference docs in with a directive line:
//
//	autoclass:: transformers.FooModel
//
// The namespace qualifier is optional; the class name is the final dotted
// component.
var docDirective = regexp.MustCompile(`autoclass::\s*([\w.]+)`)

// DocumentedClasses extracts every class referenced by an inclusion directive
// in a documentation file. Duplicate references collapse; order is
// irrelevant to the callers, which only do membership checks.
func DocumentedClasses(content string) map[string]bool {
	documented := make(map[string]bool)
	for _, match := range docDirective.FindAllStringSubmatch(content, -1) {
		name := match[1]
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			name = name[idx+1:]
		}
		if name != "" {
			documented[name] = true
		}
	}
	return documented
}
