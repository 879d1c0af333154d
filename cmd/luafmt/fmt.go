package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"luafmt/internal/driver"
	"luafmt/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format Lua source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Int("range-start", -1, "only format statements starting at or after this byte offset")
	fmtCmd.Flags().Int("range-end", -1, "only format statements ending at or before this byte offset")
	fmtCmd.Flags().Bool("verify", false, "reparse output and verify it matches the input structurally")
	fmtCmd.Flags().String("config", "", "path to a luafmt.toml (default: discovered from the first path)")
	fmtCmd.Flags().Bool("no-cache", false, "disable the clean-file cache")
	fmtCmd.Flags().Int("jobs", 0, "number of files to format concurrently (0 = one per CPU)")
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
	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}

	cfg, err := resolveFmtConfig(cmd, args)
	if err != nil {
		return err
	}
	rng, err := resolveFmtRange(cmd)
	if err != nil {
		return err
	}
	verify, err := cmd.Flags().GetBool("verify")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	verification := format.VerifyNone
	if verify {
		verification = format.VerifyFull
	}
	results, err := driver.FormatPaths(cmd.Context(), args, driver.FormatOptions{
		Check:   check,
		Stdout:  writeToStdout,
		Jobs:    jobs,
		NoCache: noCache,
		Options: format.Options{Config: cfg, Range: rng, Verify: verification},
	})
	if err != nil {
		return err
	}

	var hasErrors bool
	var hasChanges bool

	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(results, &hasErrors)
			if hasErrors {
				return fmt.Errorf("fmt: failed to format some files")
			}
			return nil
		}
		renderFmtText(results, check, quiet, &hasErrors, &hasChanges)
	case "json":
		if err := renderFmtJSON(results, check); err != nil {
			return err
		}
		for _, res := range results {
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

func resolveFmtConfig(cmd *cobra.Command, args []string) (format.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return format.Config{}, err
	}
	if configPath != "" {
		return driver.LoadConfig(configPath)
	}

	startDir := "."
	if len(args) > 0 {
		if info, statErr := os.Stat(args[0]); statErr == nil && info.IsDir() {
			startDir = args[0]
		} else {
			startDir = filepath.Dir(args[0])
		}
	}
	cfg, _, err := driver.ResolveConfig(startDir)
	return cfg, err
}

func resolveFmtRange(cmd *cobra.Command) (*format.Range, error) {
	start, err := cmd.Flags().GetInt("range-start")
	if err != nil {
		return nil, err
	}
	end, err := cmd.Flags().GetInt("range-end")
	if err != nil {
		return nil, err
	}
	if start < 0 && end < 0 {
		return nil, nil
	}
	rng := &format.Range{}
	if start >= 0 {
		rng.Start = &start
	}
	if end >= 0 {
		rng.End = &end
	}
	return rng, nil
}

func renderFmtStdout(results []driver.FormatResult, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if res.Warning != nil {
			fmt.Fprintf(os.Stderr, "fmt: warning: %v\n", res.Warning)
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
		if res.Warning != nil {
			fmt.Fprintf(os.Stderr, "fmt: warning: %v\n", res.Warning)
		}
		if !res.Changed {
			continue
		}
		*hasChanges = true
		if !quiet {
			fmt.Fprintln(os.Stdout, res.Path)
		}
	}
}

type fmtJSONResult struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
}

func renderFmtJSON(results []driver.FormatResult, check bool) error {
	payload := struct {
		Check   bool            `json:"check"`
		Results []fmtJSONResult `json:"results"`
	}{Check: check}
	for _, res := range results {
		r := fmtJSONResult{Path: res.Path, Changed: res.Changed}
		if res.Err != nil {
			r.Error = res.Err.Error()
		}
		if res.Warning != nil {
			r.Warning = res.Warning.Error()
		}
		payload.Results = append(payload.Results, r)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
