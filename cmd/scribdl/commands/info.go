package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scribdl/scribdl/internal/fsutil"
	"github.com/scribdl/scribdl/internal/metadata"
	"github.com/scribdl/scribdl/internal/output"
)

var infoCmd = &cobra.Command{
	Use:   "info [dir]",
	Short: "Show metadata for a downloaded document",
	Long: `Show the metadata recorded alongside a downloaded document.

The directory defaults to "downloads". When it contains per-document
subdirectories, each one with a metadata sidecar is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().String("format", "json", "output format (json or yaml)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	initLogger()

	dir := "downloads"
	if len(args) == 1 {
		dir = args[0]
	}
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	// A directory holding the sidecar directly.
	if rec := metadata.Load(dir); rec != nil {
		return output.Print(out, output.Format(format), rec)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(out, "No downloaded documents found in %s\n", dir)
			return nil
		}
		logError("reading %s: %v", dir, err)
		return err
	}

	var records []*metadata.Record
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if rec := metadata.Load(filepath.Join(dir, entry.Name())); rec != nil {
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		fmt.Fprintf(out, "No downloaded documents found in %s\n", dir)
		return nil
	}

	if err := output.Print(out, output.Format(format), records); err != nil {
		return err
	}

	logInfo("%d document(s), %s on disk", len(records), fsutil.HumanSize(fsutil.DirSize(dir)))
	return nil
}
