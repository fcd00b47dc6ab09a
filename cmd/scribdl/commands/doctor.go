package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scribdl/scribdl/internal/browser"
	"github.com/scribdl/scribdl/internal/version"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the environment can run scribdl",
	Long: `Check the local environment for the pieces scribdl needs.

Currently this verifies that a Chrome or Chromium binary can be found
on PATH, which the headless browser session requires.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	initLogger()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "scribdl %s\n\n", version.String())

	if cfg := viper.ConfigFileUsed(); cfg != "" {
		fmt.Fprintf(out, "Config file:     %s\n", cfg)
	} else {
		fmt.Fprintln(out, "Config file:     none (using defaults)")
	}

	path := browser.FindChromePath()
	if path == "" {
		fmt.Fprintln(out, "Chrome/Chromium: NOT FOUND")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Install Google Chrome or Chromium and make sure it is on PATH.")
		fmt.Fprintln(out, "On Debian/Ubuntu:  apt install chromium")
		fmt.Fprintln(out, "On macOS:          brew install --cask google-chrome")
		return fmt.Errorf("no usable browser found")
	}

	fmt.Fprintf(out, "Chrome/Chromium: %s\n", path)
	fmt.Fprintln(out, "Everything looks good.")
	return nil
}
