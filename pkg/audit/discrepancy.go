package audit

import (
	"github.com/agentstation/modelaudit/pkg/errors"
)

// Kind classifies a discrepancy.
type Kind string

// Discrepancy kinds, structural first, then declarative.
const (
	// KindMissingTestFile means a model module has no test file at all.
	KindMissingTestFile Kind = "missing_test_file"
	// KindNoDeclaration means a test file exists but declares no coverage.
	KindNoDeclaration Kind = "no_coverage_declaration"
	// KindClassNotTested means a class is absent from its declared test list.
	KindClassNotTested Kind = "class_not_tested"
	// KindMissingDocFile means a model module has no documentation page.
	KindMissingDocFile Kind = "missing_doc_file"
	// KindClassNotDocumented means a class is absent from its doc page.
	KindClassNotDocumented Kind = "class_not_documented"
)

// Discrepancy is one reported instance of missing or incomplete coverage.
// Discrepancies are accumulated for a whole pass, never raised individually.
type Discrepancy struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Module  string `json:"module" yaml:"module"`
	Class   string `json:"class,omitempty" yaml:"class,omitempty"`
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Report aggregates every discrepancy of one audit pass.
type Report struct {
	Pass          string        `json:"pass" yaml:"pass"`
	RunID         string        `json:"run_id" yaml:"run_id"`
	Modules       int           `json:"modules" yaml:"modules"`
	Discrepancies []Discrepancy `json:"discrepancies" yaml:"discrepancies"`
}

// OK reports whether the pass found no discrepancies.
func (r *Report) OK() bool {
	return len(r.Discrepancies) == 0
}

// Failures returns the human-readable discrepancy messages in report order.
func (r *Report) Failures() []string {
	failures := make([]string, 0, len(r.Discrepancies))
	for _, d := range r.Discrepancies {
		failures = append(failures, d.Message)
	}
	return failures
}

// Err returns nil for a clean pass, or an AuditError carrying the count and
// the full itemized failure list.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return errors.NewAuditError(r.Pass, r.Failures())
}
