package audit

// Conventions fixes the naming conventions that tie modules to their
// coverage artifacts. The zero value is not usable; start from
// DefaultConventions.
type Conventions struct {
	// ModulePrefix marks a module as model-bearing (e.g. "modeling").
	ModulePrefix string `yaml:"module_prefix" mapstructure:"module_prefix"`

	// TestFilePrefix and TestFileSuffix bracket a module identifier to form
	// its expected test filename.
	TestFilePrefix string `yaml:"test_file_prefix" mapstructure:"test_file_prefix"`
	TestFileSuffix string `yaml:"test_file_suffix" mapstructure:"test_file_suffix"`

	// DocFileSuffix is appended to a resolved family name to form the
	// expected documentation filename.
	DocFileSuffix string `yaml:"doc_file_suffix" mapstructure:"doc_file_suffix"`

	// AbstractMarkers are substrings that mark a class as an abstract base
	// rather than a concrete model implementation.
	AbstractMarkers []string `yaml:"abstract_markers" mapstructure:"abstract_markers"`
}

// DefaultConventions returns the conventions of the audited library.
func DefaultConventions() Conventions {
	return Conventions{
		ModulePrefix:    "modeling",
		TestFilePrefix:  "test_",
		TestFileSuffix:  ".py",
		DocFileSuffix:   ".rst",
		AbstractMarkers: []string{"Pretrained", "PreTrained"},
	}
}

// Exceptions are the maintained allow-lists exempting specific classes or
// files from otherwise-enforced coverage rules. Membership here is an
// exception and should not be the rule.
type Exceptions struct {
	// UntestedClasses are exempt from the tested-coverage check.
	UntestedClasses []string `yaml:"untested_classes" mapstructure:"untested_classes"`

	// UndocumentedClasses are exempt from the documented-coverage check.
	UndocumentedClasses []string `yaml:"undocumented_classes" mapstructure:"undocumented_classes"`

	// TestFilesWithoutDeclarations are test files allowed to lack an
	// all_model_classes declaration (they don't run the common tests).
	TestFilesWithoutDeclarations []string `yaml:"test_files_without_declarations" mapstructure:"test_files_without_declarations"`
}

// Config carries everything one audit run needs: where the corpora live,
// the naming conventions, the block-lists, and the exception tables. It is
// loaded once at process start and passed in explicitly; the engine never
// consults ambient state.
type Config struct {
	// TestsDir and DocsDir are the corpus directories.
	TestsDir string `yaml:"tests_dir" mapstructure:"tests_dir"`
	DocsDir  string `yaml:"docs_dir" mapstructure:"docs_dir"`

	Conventions Conventions `yaml:"conventions" mapstructure:"conventions"`

	// ModuleBlocklist names modules that carry the model prefix but define
	// no models (shared output types, auto-dispatch, low-level helpers).
	ModuleBlocklist []string `yaml:"module_blocklist" mapstructure:"module_blocklist"`

	// CommonTestFiles are test-corpus filenames (without extension) that
	// hold shared test plumbing rather than per-module suites.
	CommonTestFiles []string `yaml:"common_test_files" mapstructure:"common_test_files"`

	// SharedDocFiles are doc-corpus filenames (without extension) that
	// intentionally document no concrete classes.
	SharedDocFiles []string `yaml:"shared_doc_files" mapstructure:"shared_doc_files"`

	Exceptions Exceptions `yaml:"exceptions" mapstructure:"exceptions"`

	// DocFileOverrides maps a resolved family name to an exact doc filename
	// when the automatic derivation fails (irregular pluralization,
	// acronyms, compound family names).
	DocFileOverrides map[string]string `yaml:"doc_file_overrides" mapstructure:"doc_file_overrides"`
}
