package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/config"
)

const arrowPrefix = "→"

// WritePlan writes a structured view of what a release run with cfg does:
// the release branches, the commit analysis rules and the plugins that run
// at each lifecycle step.
func WritePlan(w io.Writer, cfg *config.Config) error {
	// --- Branches ---
	fmt.Fprintln(w, "Branches:")
	for _, b := range cfg.Branches {
		var notes []string
		if b.IsPrerelease() {
			notes = append(notes, "prerelease "+b.Prerelease.Identifier(b.Name))
		}
		if b.Channel != "" {
			notes = append(notes, "channel "+b.Channel)
		}
		if b.Range != "" {
			notes = append(notes, "range "+b.Range)
		}
		if len(notes) > 0 {
			fmt.Fprintf(w, "  %s (%s)\n", b.Name, strings.Join(notes, ", "))
		} else {
			fmt.Fprintf(w, "  %s\n", b.Name)
		}
	}

	// --- Commit analysis ---
	opts, ok, err := cfg.AnalyzerOptions()
	if err != nil {
		return fmt.Errorf("reading commit-analyzer options: %w", err)
	}
	if ok {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Commit analysis (preset: %s):\n", orNone(opts.EffectivePreset(cfg)))
		if len(opts.ReleaseRules) == 0 {
			fmt.Fprintln(w, "  (preset defaults)")
		}
		for _, r := range opts.ReleaseRules {
			fmt.Fprintf(w, "  %-22s %s %s\n", describeRule(r), arrowPrefix, r.Release)
		}
	}

	// --- Lifecycle ---
	plan := cfg.Plan()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Lifecycle:")
	for _, step := range plan.Steps {
		fmt.Fprintf(w, "  %-18s %s\n", string(step.Step)+":", strings.Join(step.Plugins, ", "))
	}
	if len(plan.Unresolved) > 0 {
		fmt.Fprintf(w, "  %-18s %s\n", "unresolved:", strings.Join(plan.Unresolved, ", "))
	}

	// --- Requirements ---
	reqs := cfg.RequiredEnv()
	pkgs := cfg.ExtraPackages()
	if len(reqs) > 0 || len(pkgs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Requires:")
		for _, req := range reqs {
			fmt.Fprintf(w, "  %s %s env %s\n", req.Plugin, arrowPrefix, strings.Join(req.AnyOf, " or "))
		}
		for _, pkg := range pkgs {
			fmt.Fprintf(w, "  npm package %s\n", pkg)
		}
	}

	return nil
}

// FormatPlan returns the plan output as a string.
func FormatPlan(cfg *config.Config) (string, error) {
	var sb strings.Builder
	err := WritePlan(&sb, cfg)
	return sb.String(), err
}

func describeRule(r config.ReleaseRule) string {
	var parts []string
	if r.Type != "" {
		parts = append(parts, r.Type)
	}
	if r.Scope != "" {
		parts = append(parts, "scope="+r.Scope)
	}
	if r.Subject != "" {
		parts = append(parts, "subject="+r.Subject)
	}
	if r.Breaking != nil {
		parts = append(parts, fmt.Sprintf("breaking=%t", *r.Breaking))
	}
	if r.Revert != nil {
		parts = append(parts, fmt.Sprintf("revert=%t", *r.Revert))
	}
	return strings.Join(parts, " ")
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
