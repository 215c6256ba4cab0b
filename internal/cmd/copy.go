package cmd

import (
	"github.com/harrison/rttools/internal/config"
	"github.com/harrison/rttools/internal/copier"
	"github.com/spf13/cobra"
)

// NewCopyCommand creates the dcmcp command
func NewCopyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dcmcp",
		Short: "Copy the DICOM files of one patient to another directory",
		Long: `dcmcp scans an input directory (non-recursively) and copies every DICOM
file whose PatientID equals --id into the output directory, creating it if
needed. File names are kept and existing files are overwritten.

The PatientID comparison is exact and case-sensitive. Files that are not
DICOM are skipped.

Example:
  dcmcp -i /data/export -o /data/P001 --id P001 -v`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE:          runCopy,
	}

	cmd.Flags().StringP("input", "i", "", "Directory to copy from (required)")
	cmd.Flags().StringP("output", "o", "", "Directory to copy to (required)")
	cmd.Flags().String("id", "", "PatientID to match (required)")
	cmd.Flags().BoolP("verbose", "v", false, "Print each copied file and a summary")

	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
	cmd.MarkFlagRequired("id")

	return cmd
}

func runCopy(cmd *cobra.Command, args []string) error {
	opts := &config.CopyOptions{}
	opts.InputDir, _ = cmd.Flags().GetString("input")
	opts.OutputDir, _ = cmd.Flags().GetString("output")
	opts.PatientID, _ = cmd.Flags().GetString("id")
	opts.Verbose, _ = cmd.Flags().GetBool("verbose")

	// An empty --id passes cobra's required check but is still a usage error
	if err := opts.Validate(); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	log := newCommandLogger(cmd.OutOrStdout(), opts.Verbose)
	defer routeLibraryLog(log)()

	_, err := copier.New(log).CopyByPatientID(cmd.Context(), *opts)
	return err
}
