package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/skew/internal/harness"
)

// ScenarioResult holds the result of a single scenario run.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall result of a test run.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <scenario.yaml|scenarios-dir>",
		Short: "Run evolution scenarios",
		Long: `Run one scenario file, or every *.yaml scenario in a directory, and
report pass/fail per scenario.

Exit codes:
  0  all scenarios passed
  1  at least one scenario failed
  2  command error (path missing, malformed scenario)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runTest(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	paths, err := scenarioPaths(path)
	if err != nil {
		formatter.Error("E001", err.Error(), nil)
		return NewExitError(ExitCommandError, "resolve scenarios")
	}

	result := TestResult{}
	for _, p := range paths {
		scenario, err := harness.LoadScenario(p)
		if err != nil {
			formatter.Error("E002", fmt.Sprintf("%s: %v", p, err), nil)
			return NewExitError(ExitCommandError, "load scenario")
		}
		formatter.VerboseLog("running scenario %s (%s)", scenario.Name, p)

		run, err := harness.Run(cmd.Context(), scenario)
		if err != nil {
			formatter.Error("E003", fmt.Sprintf("%s: %v", scenario.Name, err), nil)
			return NewExitError(ExitCommandError, "run scenario")
		}

		result.Scenarios = append(result.Scenarios, ScenarioResult{
			Name:   scenario.Name,
			Pass:   run.Pass,
			Errors: run.Errors,
		})
		result.Total++
		if run.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		writeTestText(formatter, result)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total))
	}
	return nil
}

// scenarioPaths resolves a file or directory argument into scenario file
// paths, sorted for deterministic run order.
func scenarioPaths(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.yaml"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no *.yaml scenarios in %s", path)
	}
	sort.Strings(matches)
	return matches, nil
}

func writeTestText(formatter *OutputFormatter, result TestResult) {
	for _, s := range result.Scenarios {
		status := "PASS"
		if !s.Pass {
			status = "FAIL"
		}
		fmt.Fprintf(formatter.Writer, "%s  %s\n", status, s.Name)
		for _, e := range s.Errors {
			fmt.Fprintf(formatter.Writer, "      %s\n", e)
		}
	}
	fmt.Fprintf(formatter.Writer, "%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
}
