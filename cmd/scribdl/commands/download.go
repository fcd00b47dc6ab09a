package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scribdl/scribdl/internal/browser"
	"github.com/scribdl/scribdl/internal/downloader"
	"github.com/scribdl/scribdl/internal/scribd"
)

var downloadCmd = &cobra.Command{
	Use:   "download <url>...",
	Short: "Download one or more Scribd documents",
	Long: `Download Scribd documents to the local filesystem.

Each URL gets its own browser session and runs through the retrieval
pipeline: download button, page screenshots, then text extraction.

Examples:
  scribdl download "https://www.scribd.com/document/123456/example"

  # Several documents in one go
  scribdl download -o papers \
      "https://www.scribd.com/document/111/first" \
      "https://www.scribd.com/document/222/second"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	flags := downloadCmd.Flags()
	flags.StringP("output", "o", "downloads", "output directory")
	flags.Bool("no-headless", false, "run the browser in visible mode")
	flags.Duration("timeout", 10*time.Second, "page load timeout")
	flags.Int("max-pages", 10, "maximum pages to capture as screenshots")
	flags.String("user-agent", browser.DefaultUserAgent, "browser user agent")
}

func runDownload(cmd *cobra.Command, args []string) error {
	initLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	outputDir, _ := cmd.Flags().GetString("output")
	noHeadless, _ := cmd.Flags().GetBool("no-headless")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	maxPages, _ := cmd.Flags().GetInt("max-pages")
	userAgent, _ := cmd.Flags().GetString("user-agent")

	cfg := downloader.DefaultConfig()
	cfg.OutputDir = outputDir
	cfg.Headless = !noHeadless
	cfg.PageLoadTimeout = timeout
	cfg.MaxPages = maxPages
	cfg.UserAgent = userAgent

	d, err := downloader.New(cfg)
	if err != nil {
		logError("%v", err)
		return err
	}

	out := cmd.OutOrStdout()
	succeeded := 0

	for i, raw := range args {
		url := scribd.NormalizeURL(raw)
		if ok, reason := scribd.ValidateURL(url); !ok {
			logError("skipping %q: %s", raw, reason)
			continue
		}

		logInfo("[%d/%d] Starting download from: %s", i+1, len(args), url)
		logInfo("Output directory: %s", outputDir)

		res, err := d.Retrieve(ctx, url)
		if err != nil {
			if errors.Is(err, browser.ErrSessionUnavailable) {
				logError("%v", err)
				logError("make sure Chrome or Chromium is installed (try 'scribdl doctor')")
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Download failed. Please check the URL and try again.")
				return nil
			}
			logError("downloading %s: %v", url, err)
			continue
		}

		fmt.Fprintln(out)
		if res.Succeeded {
			succeeded++
			fmt.Fprintln(out, "Download completed successfully!")
			if res.OutputPath != "" {
				fmt.Fprintf(out, "Saved to: %s\n", res.OutputPath)
			}
		} else {
			fmt.Fprintln(out, "Download failed. Please check the URL and try again.")
			fmt.Fprintln(out, "Note: Some documents may require a Scribd subscription to download.")
		}
	}

	if len(args) > 1 {
		logInfo("finished: %d/%d documents retrieved", succeeded, len(args))
	}
	return nil
}
