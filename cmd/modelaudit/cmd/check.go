package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/modelaudit/internal/cmd/output"
	"github.com/agentstation/modelaudit/internal/config"
	"github.com/agentstation/modelaudit/pkg/audit"
	"github.com/agentstation/modelaudit/pkg/errors"
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Audit test and documentation coverage",
	Long: `Audit the model library for declared coverage.

Without arguments, runs both checks:
  - every concrete model class appears in its test file's all_model_classes
  - every concrete model class is referenced by its family's doc page

Use subcommands to run a single pass:
  modelaudit check            # Run both passes
  modelaudit check tests      # Tested-coverage pass only
  modelaudit check docs       # Documented-coverage pass only

Discrepancies are accumulated: one invocation surfaces every problem in the
repository state, not just the first.`,
	RunE: runCheck,
}

// checkTestsCmd runs only the tested-coverage pass.
var checkTestsCmd = &cobra.Command{
	Use:   "tests",
	Short: "Check all models are properly tested",
	RunE: func(_ *cobra.Command, _ []string) error {
		auditor, err := newAuditor()
		if err != nil {
			return err
		}
		return runPass(auditor.CheckTested)
	},
}

// checkDocsCmd runs only the documented-coverage pass.
var checkDocsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Check all models are properly documented",
	RunE: func(_ *cobra.Command, _ []string) error {
		auditor, err := newAuditor()
		if err != nil {
			return err
		}
		return runPass(auditor.CheckDocumented)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.AddCommand(checkTestsCmd)
	checkCmd.AddCommand(checkDocsCmd)
}

// runCheck runs both passes. Both always run to completion; the command
// fails if either found discrepancies.
func runCheck(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	auditor, err := newAuditor()
	if err != nil {
		return err
	}

	fmt.Println("Checking all models are properly tested.")
	testedErr := runPass(auditor.CheckTested)

	fmt.Println("Checking all models are properly documented.")
	documentedErr := runPass(auditor.CheckDocumented)

	if testedErr != nil {
		return testedErr
	}
	return documentedErr
}

// newAuditor assembles an auditor from the configured snapshot and audit
// configuration.
func newAuditor() (*audit.Auditor, error) {
	snapshot, err := loadSnapshot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return audit.New(snapshot, cfg)
}

// runPass executes one audit pass and surfaces its report: silent on a
// clean pass, the full itemized discrepancy list otherwise.
func runPass(pass func() (*audit.Report, error)) error {
	report, err := pass()
	if err != nil {
		return err
	}
	if report.OK() {
		return nil
	}
	printReport(report)
	return fmt.Errorf("%s pass found %d discrepancies: %w",
		report.Pass, len(report.Discrepancies), errors.ErrAuditFailed)
}

// printReport renders a failed pass. The default rendering is one
// self-explanatory line per discrepancy, which is what CI logs want; an
// explicit --output switches to a structured format.
func printReport(report *audit.Report) {
	if outputFlag == "" {
		for _, failure := range report.Failures() {
			fmt.Println(failure)
		}
		return
	}

	format, err := output.ParseFormat(outputFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	switch format {
	case output.FormatTable:
		data := output.Data{Headers: []string{"Kind", "Module", "Class", "File"}}
		for _, d := range report.Discrepancies {
			data.Rows = append(data.Rows, []string{string(d.Kind), d.Module, d.Class, d.File})
		}
		if err := output.NewFormatter(format).Format(os.Stdout, data); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	default:
		if err := output.NewFormatter(format).Format(os.Stdout, report); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
