package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hkporter/hkporter/internal/export"
	"github.com/hkporter/hkporter/internal/hardening"
	"github.com/hkporter/hkporter/internal/remediation"
	"github.com/hkporter/hkporter/internal/review"
	"github.com/hkporter/hkporter/internal/scoring"
	"github.com/hkporter/hkporter/internal/webapp"
	"github.com/hkporter/hkporter/internal/workbook"
	"github.com/hkporter/hkporter/pkg/shared/config"
	"github.com/hkporter/hkporter/pkg/shared/logger"
)

// RunOptionsReport holds the arguments for the report command.
type RunOptionsReport struct {
	Input     string
	Templates []string
	OutputDir string
	Title     string
	Progress  string
	Workbook  bool
	Webapp    bool
	Sarif     bool
}

var (
	AppConfig          *config.Config
	reportOptions      RunOptionsReport
	exampleReportUsage = `  # Generate the workbook and the interactive page for a scan export
  hkporter report -i hardening_report.csv

  # Reconcile against two templates; the later one wins on id collisions
  hkporter report -i hardening_report.csv -t baseline.csv -t overrides.csv

  # Only the SARIF export, written into a reports folder
  hkporter report -i hardening_report.csv --xlsx=false --html=false --sarif -o ./reports

  # Pre-apply previously saved review progress
  hkporter report -i hardening_report.csv --progress progress.json`
)

var ReportCmd = &cobra.Command{
	Use:                   "report --input/-i PATH [--template/-t PATH ...] [--output/-o DIR]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleReportUsage,
	Short:                 "Reconciles a hardening scan against templates and writes the review surfaces",
	RunE:                  runReportCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runReportCommand executes the report command: one synchronous pass
// over the scan input, then the requested output surfaces.
func runReportCommand(cmd *cobra.Command, args []string) error {
	// No scan input means nothing to do, by design not an error.
	if reportOptions.Input == "" {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-report")

	resolveSurfaceFlags(cmd, &reportOptions, AppConfig)
	if err := validateReportArgs(&reportOptions); err != nil {
		logger.Error("invalid report arguments", "error", err)
		return err
	}

	findings, err := hardening.ReadScanReport(reportOptions.Input, logger)
	if err != nil {
		logger.Error("failed to read scan report", "error", err)
		return err
	}

	lookup := hardening.MergeTemplates(reportOptions.Templates, logger)
	findings = hardening.Reconcile(findings, lookup)

	scorer := scoring.New(AppConfig)
	for i := range findings {
		findings[i].RiskScore = scorer.Score(findings[i])
		findings[i].Remediation = remediation.Command(findings[i])
	}

	session := review.NewSession(findings)
	if reportOptions.Progress != "" {
		ids, err := review.LoadProgress(reportOptions.Progress)
		if err != nil {
			logger.Error("failed to load progress file", "error", err)
			return err
		}
		applied := session.ApplyFixedIDs(ids)
		logger.Info("applied saved progress", "requested", len(ids), "applied", applied)
	}

	runID := uuid.New().String()
	now := time.Now()
	paths := outputPaths(&reportOptions, now)

	if reportOptions.Workbook {
		meta := workbook.Meta{Title: reportOptions.Title, RunID: runID, GeneratedAt: now}
		if err := workbook.Write(paths.Workbook, session, meta); err != nil {
			logger.Error("failed to write workbook", "path", paths.Workbook, "error", err)
			return err
		}
		logger.Info("workbook written", "path", paths.Workbook)
	}

	if reportOptions.Webapp {
		meta := webapp.Meta{Title: reportOptions.Title, RunID: runID, GeneratedAt: now}
		if err := webapp.Write(paths.Webapp, session, meta); err != nil {
			logger.Error("failed to write review page", "path", paths.Webapp, "error", err)
			return err
		}
		logger.Info("review page written", "path", paths.Webapp)
	}

	if reportOptions.Sarif {
		if err := export.WriteSARIF(paths.Sarif, findings); err != nil {
			logger.Error("failed to write SARIF export", "path", paths.Sarif, "error", err)
			return err
		}
		logger.Info("SARIF export written", "path", paths.Sarif)
	}

	kpis := session.KPIs()
	logger.Info("report command completed successfully",
		"findings", kpis.Total, "failed", kpis.Failed, "passed", kpis.Passed,
		"compliance", kpis.Compliance)
	return nil
}

func init() {
	ReportCmd.Flags().StringVarP(&reportOptions.Input, "input", "i", "", "Path to the scan report CSV. Without it the command prints help and exits.")
	ReportCmd.Flags().StringSliceVarP(&reportOptions.Templates, "template", "t", nil, "Template CSVs to reconcile against; repeatable, later files take precedence.")
	ReportCmd.Flags().StringVarP(&reportOptions.OutputDir, "output", "o", "", "Output directory (default: the scan report's directory).")
	ReportCmd.Flags().StringVar(&reportOptions.Title, "title", "", "Title for the generated surfaces.")
	ReportCmd.Flags().StringVar(&reportOptions.Progress, "progress", "", "Progress JSON file with Fixed finding ids to pre-apply.")
	ReportCmd.Flags().BoolVar(&reportOptions.Workbook, "xlsx", true, "Write the review workbook.")
	ReportCmd.Flags().BoolVar(&reportOptions.Webapp, "html", true, "Write the interactive review page.")
	ReportCmd.Flags().BoolVar(&reportOptions.Sarif, "sarif", false, "Write a SARIF export of the failed findings.")
	ReportCmd.Flags().BoolP("help", "h", false, "Show help for the report command.")
}
