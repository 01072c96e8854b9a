package cmd

import (
	"fmt"
	"github.com/cottand/typelint/diag"
	"github.com/cottand/typelint/internal/log"
	"github.com/cottand/typelint/lint"
	"github.com/cottand/typelint/rules"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/cobra"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var CheckCmd = &cobra.Command{
	Use:          "check ./facts.json|./folder...",
	Short:        "Check extracted facts against their documentation annotations",
	RunE:         runCheck,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

var (
	checkRules  *[]string
	strict      *bool
	exact       *bool
	timeFormat  *string
	logLevel    *int
	logSections *[]string
)

func init() {
	checkRules = CheckCmd.Flags().StringSliceP("rules", "r", nil,
		"rules to run, any of "+strings.Join(rules.All, ", ")+" (default all)")
	strict = CheckCmd.Flags().Bool("strict", false, "fail on annotations that cannot be used instead of reporting them")
	exact = CheckCmd.Flags().Bool("exact", false, "reject records with properties that were not documented")
	timeFormat = CheckCmd.Flags().String("time-format", "", "strftime pattern of a timestamp printed before the report")
	logLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level")
	logSections = CheckCmd.Flags().StringSlice("log-sections", nil, "sections to log below warn level, like types or lint.rules")
}

func checkSettings() lint.Settings {
	settings := lint.Settings{Rules: *checkRules, Strict: *strict}
	if *exact {
		settings.Mode = rules.Exact
	}
	return settings
}

func runCheck(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))
	log.EnableSections(*logSections...)

	var sources []lint.Source
	for _, arg := range args {
		found, err := sourcesAt(arg)
		if err != nil {
			return err
		}
		sources = append(sources, found...)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no facts files found in %s", strings.Join(args, ", "))
	}

	units, err := lint.CheckAll(sources, checkSettings())
	if err != nil {
		return fmt.Errorf("could not check: %w", err)
	}
	return report(cmd.OutOrStdout(), units, *timeFormat, time.Now())
}

// sourcesAt returns target if it is a file, or the .json files directly inside it
// if it is a folder
func sourcesAt(target string) ([]lint.Source, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("could not get absolute path of target: %w", err)
	}
	stat, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("could not stat target: %w", err)
	}
	if !stat.IsDir() {
		return []lint.Source{{FS: os.DirFS(filepath.Dir(abs)), Name: filepath.Base(abs)}}, nil
	}
	folderFS := os.DirFS(abs)
	names, err := fs.Glob(folderFS, "*.json")
	if err != nil {
		return nil, fmt.Errorf("could not list %s: %w", target, err)
	}
	sources := make([]lint.Source, 0, len(names))
	for _, name := range names {
		sources = append(sources, lint.Source{FS: folderFS, Name: name})
	}
	return sources, nil
}

// report writes the diagnostics of every unit, and fails if any is an error
func report(w io.Writer, units []*lint.Unit, format string, now time.Time) error {
	if format != "" {
		stamp, err := strftime.Format(format, now)
		if err != nil {
			return fmt.Errorf("invalid time format '%s': %w", format, err)
		}
		_, _ = fmt.Fprintf(w, "typelint report %s\n", stamp)
	}
	errorCount := 0
	for _, unit := range units {
		for _, d := range unit.Errors().Sorted() {
			_, _ = fmt.Fprintln(w, diag.FormatWithPosition(d, unit.File()))
			if d.Severity() == diag.SeverityError {
				errorCount++
			}
		}
	}
	if errorCount > 0 {
		return fmt.Errorf("found %d errors", errorCount)
	}
	return nil
}
