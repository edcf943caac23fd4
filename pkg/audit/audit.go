// Package audit implements the cross-reference reconciliation engine: it
// walks the model-class registry, compares it against what the test and
// documentation corpora declare they cover, filters through the maintained
// exception lists, and aggregates every discrepancy into a single report
// per pass. The engine is a pure function of the snapshot, the corpora on
// disk, and the configuration: re-running over identical state produces
// identical reports.
package audit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/modelaudit/pkg/coverage"
	"github.com/agentstation/modelaudit/pkg/errors"
	"github.com/agentstation/modelaudit/pkg/logging"
	"github.com/agentstation/modelaudit/pkg/naming"
	"github.com/agentstation/modelaudit/pkg/registry"
)

// Pass names used in reports and errors.
const (
	PassTested     = "tested"
	PassDocumented = "documented"
)

// Auditor runs coverage passes over one registry snapshot. It holds no
// mutable state between passes; both passes are independent and can run in
// either order.
type Auditor struct {
	snapshot registry.Snapshot
	config   *Config
	logger   zerolog.Logger
	runID    string
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithLogger sets the logger used for progress and debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Auditor) {
		a.logger = logger
	}
}

// New creates an Auditor over the given snapshot and configuration.
func New(snapshot registry.Snapshot, config *Config, opts ...Option) (*Auditor, error) {
	if config == nil {
		return nil, errors.NewConfigError("audit", "nil config", nil)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	a := &Auditor{
		snapshot: snapshot,
		config:   config,
		logger:   *logging.Default(),
		runID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With().Str("run_id", a.runID).Logger()
	return a, nil
}

// RunID identifies this audit run in log output.
func (a *Auditor) RunID() string {
	return a.runID
}

// modelModules returns the audited modules, sorted by name so report order
// is deterministic.
func (a *Auditor) modelModules() []registry.Module {
	return a.snapshot.ModelModules(a.config.Conventions.ModulePrefix, a.config.ModuleBlocklist)
}

// CheckTested runs the tested-coverage pass: every concrete model class must
// appear in the all_model_classes declaration of its module's test file,
// unless exempted. The returned error covers operational failures only
// (unreadable corpus); coverage discrepancies live in the report.
func (a *Auditor) CheckTested() (*Report, error) {
	testFiles, err := a.listTestFiles()
	if err != nil {
		return nil, err
	}

	exemptClasses := stringSet(a.config.Exceptions.UntestedClasses)
	exemptFiles := stringSet(a.config.Exceptions.TestFilesWithoutDeclarations)

	modules := a.modelModules()
	report := &Report{Pass: PassTested, RunID: a.runID, Modules: len(modules)}

	for _, module := range modules {
		testFile := a.config.Conventions.TestFilePrefix + module.Name + a.config.Conventions.TestFileSuffix
		if !testFiles[testFile] {
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				Kind:   KindMissingTestFile,
				Module: module.Name,
				File:   testFile,
				Message: fmt.Sprintf("%s does not have its corresponding test file %s.",
					module.Name, testFile),
			})
			continue
		}

		path := filepath.Join(a.config.TestsDir, testFile)
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapIO("read", path, err)
		}

		declared, ok := coverage.DeclaredTestClasses(string(content))
		if !ok {
			if exemptFiles[testFile] {
				a.logger.Debug().Str("file", testFile).Msg("no coverage declaration, exempted")
				continue
			}
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				Kind:   KindNoDeclaration,
				Module: module.Name,
				File:   testFile,
				Message: fmt.Sprintf("%s should declare `all_model_classes` to apply common tests to "+
					"the models it tests. If this is intentional, add the filename to the "+
					"`test_files_without_declarations` exception list.", testFile),
			})
			continue
		}

		declaredSet := stringSet(declared)
		for _, class := range module.ModelClasses(a.config.Conventions.AbstractMarkers) {
			if declaredSet[class.Name] || exemptClasses[class.Name] {
				continue
			}
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				Kind:   KindClassNotTested,
				Module: module.Name,
				Class:  class.Name,
				File:   testFile,
				Message: fmt.Sprintf("%s is defined in %s but is not tested in %s. Add it to the "+
					"`all_model_classes` in that file. If common tests should not be applied to that "+
					"model, add it to the `untested_classes` exception list.",
					class.Name, module.Name, path),
			})
		}
	}

	a.logger.Info().
		Int("modules", report.Modules).
		Int("discrepancies", len(report.Discrepancies)).
		Msg("tested-coverage pass complete")
	return report, nil
}

// CheckDocumented runs the documented-coverage pass: every concrete model
// class must be referenced by an inclusion directive in its family's doc
// page, unless exempted.
func (a *Auditor) CheckDocumented() (*Report, error) {
	docFiles, err := a.listDocFiles()
	if err != nil {
		return nil, err
	}

	exemptClasses := stringSet(a.config.Exceptions.UndocumentedClasses)

	modules := a.modelModules()
	report := &Report{Pass: PassDocumented, RunID: a.runID, Modules: len(modules)}

	for _, module := range modules {
		family := naming.Family(module.Name)
		docFile, overridden := a.config.DocFileOverrides[family]
		if !overridden {
			docFile = family + a.config.Conventions.DocFileSuffix
		}

		if !docFiles[docFile] {
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				Kind:   KindMissingDocFile,
				Module: module.Name,
				File:   docFile,
				Message: fmt.Sprintf("%s does not have its corresponding doc file %s. If the doc "+
					"file exists but isn't named %s, add a `doc_file_overrides` entry for %q.",
					module.Name, docFile, docFile, family),
			})
			continue
		}

		path := filepath.Join(a.config.DocsDir, docFile)
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapIO("read", path, err)
		}

		documented := coverage.DocumentedClasses(string(content))
		for _, class := range module.ModelClasses(a.config.Conventions.AbstractMarkers) {
			if documented[class.Name] || exemptClasses[class.Name] {
				continue
			}
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				Kind:   KindClassNotDocumented,
				Module: module.Name,
				Class:  class.Name,
				File:   docFile,
				Message: fmt.Sprintf("%s is defined in %s but is not documented in %s. Add it to "+
					"that file. If this model should not be documented, add it to the "+
					"`undocumented_classes` exception list.",
					class.Name, module.Name, path),
			})
		}
	}

	a.logger.Info().
		Int("modules", report.Modules).
		Int("discrepancies", len(report.Discrepancies)).
		Msg("documented-coverage pass complete")
	return report, nil
}

func stringSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
