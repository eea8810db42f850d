package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/wclint/pkg/cli"
	"mercator-hq/wclint/pkg/diag"
	"mercator-hq/wclint/pkg/report"
	"mercator-hq/wclint/pkg/service"
)

var validateFlags struct {
	dir    string
	strict bool
	format string
	record bool
}

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate markup files",
	Long: `Validate markup files against the configured custom elements manifests.

Files are given as arguments or discovered with --dir. Paths excluded by
the configuration's include/exclude globs are skipped.

Examples:
  # Validate specific files
  wclint validate index.html about.html

  # Validate every .html file under a directory
  wclint validate --dir src/

  # Strict mode (warnings fail the run)
  wclint validate --strict index.html

  # JSON output for CI/CD
  wclint validate --format json index.html

  # Persist the run to the configured report database
  wclint validate --record index.html`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.dir, "dir", "d", "", "directory of markup files")
	validateCmd.Flags().BoolVar(&validateFlags.strict, "strict", false, "treat warnings as errors")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
	validateCmd.Flags().BoolVar(&validateFlags.record, "record", false, "record the run in the report database")
}

// FileReport is the per-file validation outcome in command output.
type FileReport struct {
	File        string       `json:"file"`
	Skipped     bool         `json:"skipped,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Diagnostic is one finding in command output.
type Diagnostic struct {
	Line      int    `json:"line"`
	Character int    `json:"character"`
	Rule      string `json:"rule"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no markup files given; pass files or --dir")
	}

	svc, err := service.New(service.Options{
		ConfigPath: cfgFile,
		Report:     validateFlags.record,
	})
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := cli.SetupSignalHandler()
	if err := svc.Start(ctx); err != nil {
		return err
	}

	if cfgErr := svc.ConfigError(); cfgErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using default configuration)\n", cfgErr)
	}

	startedAt := time.Now()
	reports := make([]FileReport, 0, len(files))
	results := make([]report.FileResult, 0, len(files))
	var errors, warnings int

	for _, file := range files {
		if !svc.MatchesPath(file) {
			reports = append(reports, FileReport{File: file, Skipped: true})
			continue
		}

		text, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", file, err)
		}

		diags, err := svc.ProvideDiagnostics(ctx, file, string(text))
		if err != nil {
			return fmt.Errorf("failed to validate %q: %w", file, err)
		}

		errors += diags.Count(diag.SeverityError)
		warnings += diags.Count(diag.SeverityWarning)
		reports = append(reports, fileReport(file, diags))
		results = append(results, report.FileResult{URI: file, Diagnostics: diags})
	}

	if validateFlags.record {
		if run, err := svc.Record(ctx, startedAt, results); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record run: %v\n", err)
		} else if run != nil {
			fmt.Fprintf(os.Stderr, "run %s recorded\n", run.ID)
		}
	}

	if validateFlags.format == "json" {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, reports); err != nil {
			return err
		}
	} else {
		printText(reports, errors, warnings)
	}

	if errors > 0 || (validateFlags.strict && warnings > 0) {
		return cli.NewCommandError("validate", fmt.Errorf("validation failed"))
	}
	return nil
}

// collectFiles merges explicit arguments with --dir discovery.
func collectFiles(args []string) ([]string, error) {
	files := append([]string(nil), args...)

	if validateFlags.dir != "" {
		err := filepath.WalkDir(validateFlags.dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == ".html" {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list markup files: %w", err)
		}
	}

	return files, nil
}

func fileReport(file string, diags diag.Diagnostics) FileReport {
	fr := FileReport{File: file}
	for _, d := range diags {
		fr.Diagnostics = append(fr.Diagnostics, Diagnostic{
			Line:      d.Range.Start.Line + 1,
			Character: d.Range.Start.Character + 1,
			Rule:      string(d.Rule),
			Severity:  string(d.Severity),
			Message:   d.Message,
		})
	}
	return fr
}

func printText(reports []FileReport, errors, warnings int) {
	for _, fr := range reports {
		if fr.Skipped {
			fmt.Printf("%s: skipped (excluded by configuration)\n", fr.File)
			continue
		}
		if len(fr.Diagnostics) == 0 {
			fmt.Printf("%s: ok\n", fr.File)
			continue
		}
		for _, d := range fr.Diagnostics {
			fmt.Printf("%s:%d:%d: %s [%s] %s\n",
				fr.File, d.Line, d.Character, d.Severity, d.Rule, d.Message)
		}
	}

	fmt.Println()
	fmt.Printf("Summary: %d error(s), %d warning(s)\n", errors, warnings)
}
