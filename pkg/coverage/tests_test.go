package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeclaredTestClasses(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
		declared bool
	}{
		{
			name:     "nested grouping form",
			content:  "all_model_classes = ((Foo, Bar))",
			expected: []string{"Foo", "Bar"},
			declared: true,
		},
		{
			name:     "single parenthesis fallback form",
			content:  "all_model_classes = (Foo,)",
			expected: []string{"Foo"},
			declared: true,
		},
		{
			name: "declaration inside a larger file",
			content: `class FooModelTester:
    all_model_classes = (
        (
            FooModel,
            FooForMaskedLM,
        )
    )
    test_pruning = False
`,
			expected: []string{"FooModel", "FooForMaskedLM"},
			declared: true,
		},
		{
			name:     "no declaration returns the absent state",
			content:  "def test_something():\n    pass\n",
			expected: nil,
			declared: false,
		},
		{
			name:     "declared but empty is present, not absent",
			content:  "all_model_classes = ()",
			expected: []string{},
			declared: true,
		},
		{
			name:     "whitespace around names is trimmed",
			content:  "all_model_classes = ( Foo ,  Bar , )",
			expected: []string{"Foo", "Bar"},
			declared: true,
		},
		{
			name:     "slightly different syntax degrades to absent",
			content:  "all_model_classes=[Foo, Bar]",
			expected: nil,
			declared: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classes, declared := DeclaredTestClasses(tt.content)
			assert.Equal(t, tt.declared, declared)
			assert.Equal(t, tt.expected, classes)
		})
	}
}

func TestDeclaredTestClassesAbsentIsNotEmpty(t *testing.T) {
	// The absent sentinel and a degenerate empty declaration are distinct
	// states and must not be conflated.
	_, declared := DeclaredTestClasses("nothing here")
	assert.False(t, declared)

	classes, declared := DeclaredTestClasses("all_model_classes = ( )")
	assert.True(t, declared)
	assert.Empty(t, classes)
	assert.NotNil(t, classes)
}
