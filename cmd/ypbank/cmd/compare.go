package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/ssargent/ypbank/pkg/compare"
	"github.com/ssargent/ypbank/pkg/convert"
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two record files",
	Long: `Compare two transaction record files, possibly in different formats.

Records are paired by position and every differing field is reported with its
1-based record number. The command exits with status 1 when the files differ.

Examples:
  ypbank compare --file1 records.bin --file2 records.csv
  ypbank compare --file1 a.txt --file2 b.txt --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file1, _ := cmd.Flags().GetString("file1")
		file2, _ := cmd.Flags().GetString("file2")
		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = container.GetConfig().Report.Format
		}

		return runCompare(cmd.OutOrStdout(), container.GetConvertService(), file1, file2, format)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().String("file1", "", "First file path (required)")
	compareCmd.Flags().String("file2", "", "Second file path (required)")
	compareCmd.Flags().String("format", "", "Report format: table or json (default from config)")
	for _, name := range []string{"file1", "file2"} {
		if err := compareCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

// runCompare prints the comparison report and returns errFilesDiffer when the files differ
func runCompare(out io.Writer, svc *convert.Service, file1, file2, format string) error {
	report, err := svc.CompareFiles(file1, file2)
	if err != nil {
		return err
	}
	if err := compare.Write(out, report, format); err != nil {
		return err
	}
	if !report.Identical() {
		return errFilesDiffer
	}
	return nil
}
