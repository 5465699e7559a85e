package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/ypbank/pkg/archive"
	"github.com/ssargent/ypbank/pkg/codec"
	"github.com/ssargent/ypbank/pkg/convert"
	"github.com/ssargent/ypbank/pkg/di"
)

// archiveCmd groups the record archive commands
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Store and retrieve record sets",
	Long: `Keep decoded record sets in a local archive.

Each stored set gets a KSUID that is used to read it back or delete it. The
archive location is archive.data_dir from the config file unless --data-dir
is given.`,
}

// archivePutCmd represents the archive put command
var archivePutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Archive the records of a file",
	Long: `Decode a record file and store its records in the archive.

Example:
  ypbank archive put records.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		return runArchivePut(cmd.OutOrStdout(), container.GetConvertService(), store, args[0])
	},
}

// archiveGetCmd represents the archive get command
var archiveGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Write an archived record set",
	Long: `Read an archived record set and write it in the requested format.

Examples:
  ypbank archive get 2Hn1R8b0sWfLmZ0gY2lNzX3m4Qp --output-format txt
  ypbank archive get 2Hn1R8b0sWfLmZ0gY2lNzX3m4Qp --output-format csv --output records.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFormat, _ := cmd.Flags().GetString("output-format")
		output, _ := cmd.Flags().GetString("output")

		store, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		return runArchiveGet(cmd.OutOrStdout(), container.GetConvertService(), store, args[0], outputFormat, output)
	},
}

// archiveDeleteCmd represents the archive delete command
var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an archived record set",
	Long: `Delete a record set from the archive.

Example:
  ypbank archive delete 2Hn1R8b0sWfLmZ0gY2lNzX3m4Qp`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		return runArchiveDelete(cmd.OutOrStdout(), store, args[0])
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archivePutCmd, archiveGetCmd, archiveDeleteCmd)

	archiveCmd.PersistentFlags().StringP("data-dir", "d", "", "Archive directory (overrides config)")
	archiveGetCmd.Flags().String("output-format", "", "Output format: bin, csv or txt (required)")
	archiveGetCmd.Flags().String("output", "", "Output file path (default: stdout)")
	if err := archiveGetCmd.MarkFlagRequired("output-format"); err != nil {
		panic(err)
	}
}

// openArchive opens the archive, creating its directory when needed
func openArchive(cmd *cobra.Command) (di.ArchiveStore, error) {
	cfg := container.GetConfig()
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.Archive.DataDir = dataDir
	}
	if err := os.MkdirAll(cfg.Archive.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return container.OpenArchive()
}

func runArchivePut(out io.Writer, svc *convert.Service, store di.ArchiveStore, path string) error {
	set, err := svc.ReadFile(path)
	if err != nil {
		return err
	}

	id, err := store.Put(set.Records())
	recordArchive("put", err)
	if err != nil {
		return err
	}
	container.GetLogger().Info("archived record set", "id", id.String(), "file", path, "records", set.Len())

	fmt.Fprintln(out, id.String())
	return nil
}

func runArchiveGet(out io.Writer, svc *convert.Service, store di.ArchiveStore, rawID, outputFormat, output string) error {
	format, err := codec.ParseFormat(outputFormat)
	if err != nil {
		return fmt.Errorf("invalid --output-format %q: %w", outputFormat, err)
	}
	id, err := archive.ParseID(rawID)
	if err != nil {
		return err
	}

	set, err := store.Get(id)
	recordArchive("get", err)
	if err != nil {
		return err
	}

	if output != "" {
		if err := svc.WriteFile(output, format, set.Records()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d records to %s\n", set.Len(), output)
		return nil
	}

	w := bufio.NewWriter(out)
	if err := svc.Encode(w, format, set.Records()); err != nil {
		return err
	}
	return w.Flush()
}

func runArchiveDelete(out io.Writer, store di.ArchiveStore, rawID string) error {
	id, err := archive.ParseID(rawID)
	if err != nil {
		return err
	}

	err = store.Delete(id)
	recordArchive("delete", err)
	if err != nil {
		return err
	}
	container.GetLogger().Info("deleted record set", "id", id.String())

	fmt.Fprintf(out, "Deleted record set %s\n", id)
	return nil
}

func recordArchive(op string, err error) {
	container.GetMetrics().RecordArchiveOperation(op, err)
}
