package cmd

import (
	"fmt"

	"github.com/harrison/rttools/internal/config"
	"github.com/harrison/rttools/internal/display"
	"github.com/harrison/rttools/internal/fileutil"
	"github.com/harrison/rttools/internal/rtplan"
	"github.com/spf13/cobra"
)

// NewListCommand creates the ls_rtplan command
func NewListCommand() *cobra.Command {
	defaults := config.DefaultListOptions()

	cmd := &cobra.Command{
		Use:   "ls_rtplan",
		Short: "List DICOM RT plan files in a directory",
		Long: `ls_rtplan scans a directory (non-recursively) for DICOM RTPLAN files and
prints one row per plan with the patient ID, patient name, plan name and
plan label.

Files that are not DICOM, or DICOM objects of another modality, are skipped.
Use --verbose to see why each file was skipped.

Examples:
  ls_rtplan -d /data/export
  ls_rtplan -d /data/export -p RP -l 10 --sort mtime
  ls_rtplan -d /data/export --output yaml`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE:          runList,
	}

	cmd.Flags().StringP("dir", "d", defaults.Dir, "Directory to scan")
	cmd.Flags().StringP("prefix", "p", defaults.Prefix, "Only consider files whose name starts with this prefix")
	cmd.Flags().IntP("limit", "l", defaults.Limit, "Maximum number of plans to list (0 = unlimited)")
	cmd.Flags().StringP("sort", "s", string(defaults.Sort), "Listing order: none, name or mtime (newest first)")
	cmd.Flags().StringP("output", "o", defaults.Output, "Output format: table or yaml")
	cmd.Flags().IntP("width", "w", defaults.PathWidth, "Width of the file path column")
	cmd.Flags().BoolP("verbose", "v", false, "Log skipped files to stderr")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	opts, err := listOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	// Flags are valid from here on; failures are not usage errors
	cmd.SilenceUsage = true

	log := newCommandLogger(cmd.ErrOrStderr(), opts.Verbose)
	defer routeLibraryLog(log)()

	result, err := rtplan.NewLister(log).List(cmd.Context(), *opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.Output {
	case config.OutputYAML:
		err = display.WriteYAML(out, result.Records)
	default:
		err = display.WriteTable(out, result.Records, opts.PathWidth, isStyledOutput(out))
	}
	if err != nil {
		return err
	}

	if warning, ok := display.WarnScanErrors(result.ScanErrors); ok {
		warning.Display(cmd.ErrOrStderr())
	}
	return nil
}

func listOptionsFromFlags(cmd *cobra.Command) (*config.ListOptions, error) {
	opts := config.DefaultListOptions()

	opts.Dir, _ = cmd.Flags().GetString("dir")
	opts.Prefix, _ = cmd.Flags().GetString("prefix")
	opts.Limit, _ = cmd.Flags().GetInt("limit")
	opts.Output, _ = cmd.Flags().GetString("output")
	opts.PathWidth, _ = cmd.Flags().GetInt("width")
	opts.Verbose, _ = cmd.Flags().GetBool("verbose")

	sortFlag, _ := cmd.Flags().GetString("sort")
	order, err := fileutil.ParseSortOrder(sortFlag)
	if err != nil {
		return nil, fmt.Errorf("--sort: %w", err)
	}
	opts.Sort = order

	opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}
