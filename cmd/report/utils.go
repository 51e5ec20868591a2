package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hkporter/hkporter/pkg/shared/config"
	"github.com/hkporter/hkporter/pkg/shared/files"
)

// surfacePaths holds the resolved output file paths for one run.
type surfacePaths struct {
	Workbook string
	Webapp   string
	Sarif    string
}

// resolveSurfaceFlags merges the configuration file into the options.
// An explicitly set flag always wins over the configuration value.
func resolveSurfaceFlags(cmd *cobra.Command, opts *RunOptionsReport, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if !cmd.Flags().Changed("xlsx") && cfg.Report.Workbook != nil {
		opts.Workbook = *cfg.Report.Workbook
	}
	if !cmd.Flags().Changed("html") && cfg.Report.Webapp != nil {
		opts.Webapp = *cfg.Report.Webapp
	}
	if !cmd.Flags().Changed("sarif") && cfg.Report.Sarif != nil {
		opts.Sarif = *cfg.Report.Sarif
	}
	if opts.Title == "" {
		opts.Title = cfg.Report.Title
	}
}

// outputPaths derives the timestamped output file names next to the
// scan report, or under the requested output directory.
func outputPaths(opts *RunOptionsReport, now time.Time) surfacePaths {
	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(opts.Input)
	}
	base := files.BaseWithoutExt(opts.Input)
	stamp := now.Format("20060102_1504")

	return surfacePaths{
		Workbook: filepath.Join(dir, fmt.Sprintf("%s_Report_%s.xlsx", base, stamp)),
		Webapp:   filepath.Join(dir, fmt.Sprintf("%s_App_%s.html", base, stamp)),
		Sarif:    filepath.Join(dir, fmt.Sprintf("%s_Findings_%s.sarif", base, stamp)),
	}
}
