package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/modelaudit/internal/cmd/output"
	"github.com/agentstation/modelaudit/internal/config"
	"github.com/agentstation/modelaudit/pkg/audit"
	"github.com/agentstation/modelaudit/pkg/naming"
	"github.com/agentstation/modelaudit/pkg/registry"
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List audited modules and classes",
	Long: `List what the auditor sees: the model modules that will be audited and
the concrete model classes attributed to each, after the block-list and
abstract-marker filters are applied.

Examples:
  modelaudit list modules     # Audited modules with class counts
  modelaudit list classes     # Every concrete class and its owning module`,
}

// listModulesCmd lists audited model modules.
var listModulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List audited model modules",
	RunE: func(_ *cobra.Command, _ []string) error {
		snapshot, cfg, err := loadAuditInputs()
		if err != nil {
			return err
		}

		data := output.Data{Headers: []string{"Module", "Family", "Classes"}}
		for _, module := range snapshot.ModelModules(cfg.Conventions.ModulePrefix, cfg.ModuleBlocklist) {
			classes := module.ModelClasses(cfg.Conventions.AbstractMarkers)
			data.Rows = append(data.Rows, []string{
				module.Name,
				naming.Family(module.Name),
				strconv.Itoa(len(classes)),
			})
		}
		return render(data)
	},
}

// listClassesCmd lists concrete model classes.
var listClassesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List concrete model classes and their owning modules",
	RunE: func(_ *cobra.Command, _ []string) error {
		snapshot, cfg, err := loadAuditInputs()
		if err != nil {
			return err
		}

		data := output.Data{Headers: []string{"Class", "Module"}}
		for _, module := range snapshot.ModelModules(cfg.Conventions.ModulePrefix, cfg.ModuleBlocklist) {
			for _, class := range module.ModelClasses(cfg.Conventions.AbstractMarkers) {
				data.Rows = append(data.Rows, []string{class.Name, class.Module})
			}
		}
		return render(data)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listModulesCmd)
	listCmd.AddCommand(listClassesCmd)
}

// loadAuditInputs loads the snapshot and audit configuration shared by the
// list subcommands.
func loadAuditInputs() (registry.Snapshot, *audit.Config, error) {
	snapshot, err := loadSnapshot()
	if err != nil {
		return registry.Snapshot{}, nil, err
	}
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return registry.Snapshot{}, nil, err
	}
	return snapshot, cfg, nil
}

// render writes table data in the configured output format.
func render(data output.Data) error {
	formatter := output.NewFormatter(output.DetectFormat(outputFlag))
	return formatter.Format(os.Stdout, data)
}
