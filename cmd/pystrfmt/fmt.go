package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pystrfmt/internal/config"
	"pystrfmt/internal/diagfmt"
	"pystrfmt/internal/driver"
	"pystrfmt/internal/format"
	"pystrfmt/internal/ui"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format string literals in Python source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Int("jobs", 0, "number of files formatted concurrently (0 = number of CPUs)")
	fmtCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
	fmtCmd.Flags().Bool("no-cache", false, "format every file even if a cached result exists")
	fmtCmd.Flags().String("quotes", "", "preferred quote style (double|single|preserve), overrides pystrfmt.toml")
	fmtCmd.Flags().String("target-version", "", "Python version the output must parse under (py311|py312), overrides pystrfmt.toml")
	fmtCmd.Flags().Int("line-width", 0, "line width for breaking decisions, overrides pystrfmt.toml")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	formatOptions, err := resolveFormatOptions(cmd)
	if err != nil {
		return err
	}

	opts := driver.FormatOptions{
		Check:          check,
		Stdout:         writeToStdout,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Options:        formatOptions,
	}
	if !noCache {
		// A missing cache directory degrades to uncached formatting.
		opts.Cache, _ = driver.OpenDiskCache("pystrfmt")
	}

	var formatResults []driver.FormatResult
	if shouldUseTUI(mode) && !writeToStdout && outputFormat == "text" {
		formatResults, err = runFmtWithUI(cmd.Context(), args, opts)
	} else {
		formatResults, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}

	renderDiagnostics(cmd, formatResults)

	var hasErrors bool
	var hasChanges bool

	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(formatResults, &hasErrors)
			if hasErrors {
				return fmt.Errorf("fmt: failed to format some files")
			}
			return nil
		}
		renderFmtText(formatResults, check, quiet, &hasErrors, &hasChanges)
	case "json":
		if err := renderFmtJSON(formatResults, check); err != nil {
			return err
		}
		for _, res := range formatResults {
			if res.Err != nil {
				hasErrors = true
			}
			if res.Changed {
				hasChanges = true
			}
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

// resolveFormatOptions loads pystrfmt.toml from the working directory
// upward and layers explicit flags on top.
func resolveFormatOptions(cmd *cobra.Command) (format.Options, error) {
	var opts format.Options
	if manifest, ok, err := config.Load("."); err != nil {
		return opts, err
	} else if ok {
		opts = manifest.Config.Options()
	}

	if cmd.Flags().Changed("quotes") {
		value, err := cmd.Flags().GetString("quotes")
		if err != nil {
			return opts, err
		}
		style, ok := format.ParseQuoteStyle(value)
		if !ok {
			return opts, fmt.Errorf("fmt: invalid --quotes value %q (expected double|single|preserve)", value)
		}
		opts.Quotes = style
	}
	if cmd.Flags().Changed("target-version") {
		value, err := cmd.Flags().GetString("target-version")
		if err != nil {
			return opts, err
		}
		target, ok := format.ParseTargetVersion(value)
		if !ok {
			return opts, fmt.Errorf("fmt: invalid --target-version value %q (expected py311|py312)", value)
		}
		opts.Target = target
	}
	if cmd.Flags().Changed("line-width") {
		width, err := cmd.Flags().GetInt("line-width")
		if err != nil {
			return opts, err
		}
		if width <= 0 {
			return opts, fmt.Errorf("fmt: --line-width must be positive")
		}
		opts.LineWidth = width
	}
	return opts, nil
}

type fmtOutcome struct {
	results []driver.FormatResult
	err     error
}

func runFmtWithUI(ctx context.Context, paths []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan fmtOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		results, err := driver.FormatPaths(ctx, paths, optsCopy)
		outcomeCh <- fmtOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("formatting", nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

// renderDiagnostics prints the per-file diagnostic bags to stderr.
func renderDiagnostics(cmd *cobra.Command, results []driver.FormatResult) {
	opts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
	}
	for _, res := range results {
		if res.Bag == nil || res.Bag.Len() == 0 {
			continue
		}
		res.Bag.Sort()
		diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, opts)
	}
}

func renderFmtStdout(results []driver.FormatResult, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = os.Stdout.Write(res.Formatted)
	}
}

func renderFmtText(results []driver.FormatResult, check, quiet bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}

		if check {
			if res.Changed {
				*hasChanges = true
				if !quiet {
					fmt.Fprintln(os.Stdout, res.Path)
				}
			}
			continue
		}

		if res.Changed && !quiet {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
	}
}

func renderFmtJSON(results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path        string `json:"path"`
		Changed     bool   `json:"changed"`
		Error       string `json:"error,omitempty"`
		Diagnostics int    `json:"diagnostics,omitempty"`
		CheckRun    bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		if res.Bag != nil {
			jr.Diagnostics = res.Bag.Len()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
