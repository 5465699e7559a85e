package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/ssargent/ypbank/pkg/codec"
	"github.com/ssargent/ypbank/pkg/convert"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a record file to another format",
	Long: `Convert a transaction record file to another format.

The input format is taken from the file extension (.bin, .csv or .txt). Unless
--output is given the result is written next to the input with the extension
of the output format.

Examples:
  ypbank convert --input records.csv --output-format bin
  ypbank convert --input records.bin --output-format txt --output /tmp/out.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		outputFormat, _ := cmd.Flags().GetString("output-format")
		output, _ := cmd.Flags().GetString("output")

		return runConvert(cmd.OutOrStdout(), container.GetConvertService(), input, outputFormat, output)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().String("input", "", "Input file path (required)")
	convertCmd.Flags().String("output-format", "", "Output format: bin, csv or txt (required)")
	convertCmd.Flags().String("output", "", "Output file path (default: input path with the new extension)")
	for _, name := range []string{"input", "output-format"} {
		if err := convertCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

// runConvert converts input and reports where the result went
func runConvert(out io.Writer, svc *convert.Service, input, outputFormat, output string) error {
	format, err := codec.ParseFormat(outputFormat)
	if err != nil {
		return fmt.Errorf("invalid --output-format %q: %w", outputFormat, err)
	}

	result, err := svc.ConvertFile(input, format, output)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Converted %d records from %s to %s: %s\n",
		result.Records, result.InputFormat, result.OutputFormat, result.OutputPath)
	return nil
}
