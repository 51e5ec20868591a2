package report

import (
	"fmt"

	"github.com/hkporter/hkporter/pkg/shared/files"
)

// validateReportArgs checks that every path the command will read exists
// before any output surface is written.
func validateReportArgs(opts *RunOptionsReport) error {
	input, err := files.ExpandPath(opts.Input)
	if err != nil {
		return fmt.Errorf("invalid input path %q: %w", opts.Input, err)
	}
	if err := files.ValidatePath(input); err != nil {
		return fmt.Errorf("scan report is not readable: %w", err)
	}
	opts.Input = input

	for i, tmpl := range opts.Templates {
		expanded, err := files.ExpandPath(tmpl)
		if err != nil {
			return fmt.Errorf("invalid template path %q: %w", tmpl, err)
		}
		opts.Templates[i] = expanded
	}

	if opts.Progress != "" {
		progress, err := files.ExpandPath(opts.Progress)
		if err != nil {
			return fmt.Errorf("invalid progress path %q: %w", opts.Progress, err)
		}
		if err := files.ValidatePath(progress); err != nil {
			return fmt.Errorf("progress file is not readable: %w", err)
		}
		opts.Progress = progress
	}

	if opts.OutputDir != "" {
		out, err := files.ExpandPath(opts.OutputDir)
		if err != nil {
			return fmt.Errorf("invalid output directory %q: %w", opts.OutputDir, err)
		}
		if err := files.CreateFolderIfNotExists(out); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
		opts.OutputDir = out
	}

	if !opts.Workbook && !opts.Webapp && !opts.Sarif {
		return fmt.Errorf("all output surfaces are disabled, nothing to write")
	}

	return nil
}
