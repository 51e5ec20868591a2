package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hkporter/hkporter/cmd/report"
	"github.com/hkporter/hkporter/cmd/version"
	"github.com/hkporter/hkporter/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "hkporter [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Hkporter turns hardening scan exports into reviewable reports.",
		Long: `Hkporter reconciles machine-generated hardening scan results against
	control-definition templates, assigns each finding a risk score, and
	produces a review workbook and a standalone interactive page that track
	remediation progress.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(report.ReportCmd)
}

func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	report.Init(AppConfig)
}
