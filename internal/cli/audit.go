package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/skew/internal/compat"
	"github.com/roach88/skew/internal/schema"
)

// AuditReport is one record's audit result in CLI output.
type AuditReport struct {
	Record   string   `json:"record"`
	OldRev   string   `json:"old_revision"`
	NewRev   string   `json:"new_revision"`
	Changes  []string `json:"changes"`
	Backward bool     `json:"backward_compatible"`
	Forward  bool     `json:"forward_compatible"`
	Agrees   bool     `json:"prediction_agrees"`
}

// AuditResult is the full audit output.
type AuditResult struct {
	Reports []AuditReport `json:"reports"`
	Agrees  bool          `json:"prediction_agrees"`
}

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <revisions.cue>",
		Short: "Audit compatibility between declared schema revisions",
		Long: `Audit directional compatibility between schema revisions declared in a
CUE file. For each record, every adjacent revision pair is diffed, the
expected compatibility is derived from the structural changes, and both
directions are verified against the codec with synthesized values.

Exit codes:
  0  audit ran and every observation matched its prediction
  1  at least one observation disagreed with its prediction
  2  command error (file missing or malformed)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runAudit(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	revisions, err := schema.LoadRevisions(path)
	if err != nil {
		formatter.Error("E001", err.Error(), nil)
		return NewExitError(ExitCommandError, "load revisions")
	}
	formatter.VerboseLog("loaded %d revisions from %s", len(revisions), path)

	result := AuditResult{Agrees: true}
	for _, record := range schema.Records(revisions) {
		var recordRevs []schema.Revision
		for _, r := range revisions {
			if r.Record == record {
				recordRevs = append(recordRevs, r)
			}
		}

		// Audit adjacent pairs in version order.
		for i := 0; i+1 < len(recordRevs); i++ {
			report, err := compat.AuditRevisions(recordRevs[i], recordRevs[i+1])
			if err != nil {
				formatter.Error("E002", err.Error(), nil)
				return NewExitError(ExitCommandError, "audit revisions")
			}
			result.Reports = append(result.Reports, toAuditReport(recordRevs[i], recordRevs[i+1], report))
			if !report.Agrees() {
				result.Agrees = false
			}
		}
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		writeAuditText(formatter, result)
	}

	if !result.Agrees {
		return NewExitError(ExitFailure, "observed compatibility disagrees with prediction")
	}
	return nil
}

func toAuditReport(oldRev, newRev schema.Revision, report compat.Report) AuditReport {
	changes := make([]string, len(report.Changes))
	for i, c := range report.Changes {
		switch c.(type) {
		case schema.AddField:
			changes[i] = "+" + c.Field()
		case schema.DropField:
			changes[i] = "-" + c.Field()
		}
	}
	observed := report.Observed()
	return AuditReport{
		Record:   report.Record,
		OldRev:   oldRev.Version,
		NewRev:   newRev.Version,
		Changes:  changes,
		Backward: observed.Backward,
		Forward:  observed.Forward,
		Agrees:   report.Agrees(),
	}
}

func writeAuditText(formatter *OutputFormatter, result AuditResult) {
	for _, r := range result.Reports {
		changes := "none"
		if len(r.Changes) > 0 {
			changes = strings.Join(r.Changes, " ")
		}
		fmt.Fprintf(formatter.Writer, "%s %s -> %s  changes: %s  backward: %s  forward: %s\n",
			r.Record, r.OldRev, r.NewRev, changes, yesNo(r.Backward), yesNo(r.Forward))
		if !r.Agrees {
			fmt.Fprintf(formatter.Writer, "  MISMATCH: observed compatibility disagrees with the structural prediction\n")
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
