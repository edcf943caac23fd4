package audit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/modelaudit/pkg/errors"
	"github.com/agentstation/modelaudit/pkg/logging"
	"github.com/agentstation/modelaudit/pkg/registry"
)

// newTestConfig returns a config pointing at fresh corpus directories with
// empty exception lists.
func newTestConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		TestsDir:    t.TempDir(),
		DocsDir:     t.TempDir(),
		Conventions: DefaultConventions(),
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newTestAuditor(t *testing.T, snapshot registry.Snapshot, cfg *Config) *Auditor {
	t.Helper()
	auditor, err := New(snapshot, cfg, WithLogger(logging.Nop))
	require.NoError(t, err)
	return auditor
}

func fooSnapshot() registry.Snapshot {
	r := registry.New()
	r.Register("modeling_foo", "FooModel", "FooForMaskedLM")
	return r.Snapshot()
}

func TestCheckTestedReportsUndeclaredClass(t *testing.T) {
	cfg := newTestConfig(t)
	writeFile(t, cfg.TestsDir, "test_modeling_foo.py", "all_model_classes = (FooModel,)\n")

	auditor := newTestAuditor(t, fooSnapshot(), cfg)
	report, err := auditor.CheckTested()
	require.NoError(t, err)

	require.Len(t, report.Discrepancies, 1)
	d := report.Discrepancies[0]
	assert.Equal(t, KindClassNotTested, d.Kind)
	assert.Equal(t, "modeling_foo", d.Module)
	assert.Equal(t, "FooForMaskedLM", d.Class)
	assert.Contains(t, d.Message, "FooForMaskedLM")
	assert.Contains(t, d.Message, "untested_classes")
}

func TestCheckTestedMissingTestFile(t *testing.T) {
	cfg := newTestConfig(t)

	auditor := newTestAuditor(t, fooSnapshot(), cfg)
	report, err := auditor.CheckTested()
	require.NoError(t, err)

	// Exactly one structural discrepancy and no per-class discrepancies.
	require.Len(t, report.Discrepancies, 1)
	d := report.Discrepancies[0]
	assert.Equal(t, KindMissingTestFile, d.Kind)
	assert.Equal(t, "modeling_foo", d.Module)
	assert.Equal(t, "test_modeling_foo.py", d.File)
}

func TestCheckTestedNoDeclaration(t *testing.T) {
	cfg := newTestConfig(t)
	writeFile(t, cfg.TestsDir, "test_modeling_foo.py", "def test_foo():\n    pass\n")

	auditor := newTestAuditor(t, fooSnapshot(), cfg)
	report, err := auditor.CheckTested()
	require.NoError(t, err)

	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, KindNoDeclaration, report.Discrepancies[0].Kind)
}

func TestCheckTestedNoDeclarationExemptedFile(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Exceptions.TestFilesWithoutDeclarations = []string{"test_modeling_foo.py"}
	writeFile(t, cfg.TestsDir, "test_modeling_foo.py", "def test_foo():\n    pass\n")

	auditor := newTestAuditor(t, fooSnapshot(), cfg)
	report, err := auditor.CheckTested()
	require.NoError(t, err)
	assert.True(t, report.OK())
}

func TestCheckTestedExemptedClassNeverReported(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Exceptions.UntestedClasses = []string{"FooForMaskedLM"}
	writeFile(t, cfg.TestsDir, "test_modeling_foo.py", "all_model_classes = (FooModel,)\n")

	auditor := newTestAuditor(t, fooSnapshot(), cfg)
	report, err := auditor.CheckTested()
	require.NoError(t, err)
	assert.True(t, report.OK())
}

func TestCheckTestedAbstractMarkerClassesIgnored(t *testing.T) {
	cfg := newTestConfig(t)
	writeFile(t, cfg.TestsDir, "test_modeling_foo.py", "all_model_classes = (FooModel,)\n")

	r := registry.New()
	r.Register("modeling_foo", "FooModel", "FooPreTrainedModel")
	auditor := newTestAuditor(t, r.Snapshot(), cfg)

	report, err := auditor.CheckTested()
	require.NoError(t, err)
	assert.True(t, report.OK())
}

func TestCheckTestedBlocklistedModuleSkipped(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.ModuleBlocklist = []string{"modeling_auto"}

	r := registry.New()
	r.Register("modeling_foo", "FooModel")
	r.Register("modeling_auto", "AutoModel")
	writeFile(t, cfg.TestsDir, "test_modeling_foo.py", "all_model_classes = (FooModel,)\n")

	auditor := newTestAuditor(t, r.Snapshot(), cfg)
	report, err := auditor.CheckTested()
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 1, report.Modules)
}

func TestCheckTestedCommonTestFilesNotACorpusMatch(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.CommonTestFiles = []string{"test_modeling_foo"}
	// The file exists on disk but is declared shared plumbing, so the
	// module counts as missing its test file.
	writeFile(t, cfg.TestsDir, "test_modeling_foo.py", "all_model_classes = (FooModel,)\n")

	r := registry.New()
	r.Register("modeling_foo", "FooModel")
	auditor := newTestAuditor(t, r.Snapshot(), cfg)

	report, err := auditor.CheckTested()
	require.NoError(t, err)
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, KindMissingTestFile, report.Discrepancies[0].Kind)
}

func TestCheckTestedIdempotent(t *testing.T) {
	cfg := newTestConfig(t)
	writeFile(t, cfg.TestsDir, "test_modeling_foo.py", "all_model_classes = (FooModel,)\n")
	writeFile(t, cfg.TestsDir, "test_modeling_bar.py", "def test_bar():\n    pass\n")

	r := registry.New()
	r.Register("modeling_foo", "FooModel", "FooForMaskedLM")
	r.Register("modeling_bar", "BarModel")
	auditor := newTestAuditor(t, r.Snapshot(), cfg)

	first, err := auditor.CheckTested()
	require.NoError(t, err)
	second, err := auditor.CheckTested()
	require.NoError(t, err)

	assert.Equal(t, first.Discrepancies, second.Discrepancies)
}

func TestCheckTestedAccumulatesAcrossModules(t *testing.T) {
	cfg := newTestConfig(t)
	writeFile(t, cfg.TestsDir, "test_modeling_foo.py", "all_model_classes = ()\n")

	r := registry.New()
	r.Register("modeling_foo", "FooModel", "FooForMaskedLM")
	r.Register("modeling_bar", "BarModel")
	auditor := newTestAuditor(t, r.Snapshot(), cfg)

	report, err := auditor.CheckTested()
	require.NoError(t, err)

	// One missing test file for bar plus two untested classes for foo: the
	// whole run completes before reporting.
	require.Len(t, report.Discrepancies, 3)
	assert.Equal(t, KindMissingTestFile, report.Discrepancies[0].Kind)
	assert.Equal(t, "modeling_bar", report.Discrepancies[0].Module)
	assert.Equal(t, KindClassNotTested, report.Discrepancies[1].Kind)
	assert.Equal(t, "FooModel", report.Discrepancies[1].Class)
	assert.Equal(t, KindClassNotTested, report.Discrepancies[2].Kind)
	assert.Equal(t, "FooForMaskedLM", report.Discrepancies[2].Class)
}

func TestCheckDocumented(t *testing.T) {
	cfg := newTestConfig(t)
	writeFile(t, cfg.DocsDir, "foo.rst", "autoclass:: transformers.FooModel\n")

	auditor := newTestAuditor(t, fooSnapshot(), cfg)
	report, err := auditor.CheckDocumented()
	require.NoError(t, err)

	require.Len(t, report.Discrepancies, 1)
	d := report.Discrepancies[0]
	assert.Equal(t, KindClassNotDocumented, d.Kind)
	assert.Equal(t, "FooForMaskedLM", d.Class)
	assert.Equal(t, "foo.rst", d.File)
}

func TestCheckDocumentedMissingDocFile(t *testing.T) {
	cfg := newTestConfig(t)

	auditor := newTestAuditor(t, fooSnapshot(), cfg)
	report, err := auditor.CheckDocumented()
	require.NoError(t, err)

	require.Len(t, report.Discrepancies, 1)
	d := report.Discrepancies[0]
	assert.Equal(t, KindMissingDocFile, d.Kind)
	assert.Equal(t, "foo.rst", d.File)
}

func TestCheckDocumentedOverriddenDocFile(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.DocFileOverrides = map[string]string{"transfo_xl": "transformerxl.rst"}
	writeFile(t, cfg.DocsDir, "transformerxl.rst",
		"autoclass:: transformers.TransfoXLModel\n")

	r := registry.New()
	r.Register("modeling_transfo_xl", "TransfoXLModel")
	auditor := newTestAuditor(t, r.Snapshot(), cfg)

	report, err := auditor.CheckDocumented()
	require.NoError(t, err)
	assert.True(t, report.OK())
}

func TestCheckDocumentedExemptedClass(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Exceptions.UndocumentedClasses = []string{"FooForMaskedLM"}
	writeFile(t, cfg.DocsDir, "foo.rst", "autoclass:: transformers.FooModel\n")

	auditor := newTestAuditor(t, fooSnapshot(), cfg)
	report, err := auditor.CheckDocumented()
	require.NoError(t, err)
	assert.True(t, report.OK())
}

func TestCheckDocumentedSharedDocFilesIgnored(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.SharedDocFiles = []string{"foo"}
	writeFile(t, cfg.DocsDir, "foo.rst", "autoclass:: transformers.FooModel\n")

	r := registry.New()
	r.Register("modeling_foo", "FooModel")
	auditor := newTestAuditor(t, r.Snapshot(), cfg)

	report, err := auditor.CheckDocumented()
	require.NoError(t, err)
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, KindMissingDocFile, report.Discrepancies[0].Kind)
}

func TestReportErr(t *testing.T) {
	clean := &Report{Pass: PassTested}
	assert.NoError(t, clean.Err())

	failed := &Report{
		Pass: PassTested,
		Discrepancies: []Discrepancy{
			{Kind: KindMissingTestFile, Module: "modeling_foo", Message: "modeling_foo has no test file"},
		},
	}
	err := failed.Err()
	require.Error(t, err)
	assert.True(t, errors.IsAuditFailed(err))
	assert.Contains(t, err.Error(), "1 failures")
	assert.Contains(t, err.Error(), "modeling_foo has no test file")
}

func TestNewRejectsNilConfigAndEmptySnapshot(t *testing.T) {
	_, err := New(fooSnapshot(), nil)
	assert.Error(t, err)

	_, err = New(registry.Snapshot{}, newTestConfig(t))
	assert.Error(t, err)
}

func TestCorpusListingFailure(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.TestsDir = filepath.Join(cfg.TestsDir, "does-not-exist")

	auditor := newTestAuditor(t, fooSnapshot(), cfg)
	_, err := auditor.CheckTested()
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}
