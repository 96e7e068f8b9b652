package output

import (
	"strings"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/config"
)

// DefaultTagFormat is the engine's tag format when none is configured.
const DefaultTagFormat = "v${version}"

// GetVariables flattens the facts a pipeline usually needs from a release
// configuration into string variables.
func GetVariables(cfg *config.Config) map[string]string {
	vars := map[string]string{
		"Branches":      strings.Join(cfg.BranchNames(), ","),
		"Plugins":       strings.Join(cfg.PluginNames(), ","),
		"Preset":        cfg.Preset,
		"TagFormat":     cfg.TagFormat,
		"ExtraPackages": strings.Join(cfg.ExtraPackages(), " "),
		"ReleaseRules":  "",
		"MaxRelease":    "none",
	}
	if vars["TagFormat"] == "" {
		vars["TagFormat"] = DefaultTagFormat
	}

	if opts, ok, err := cfg.AnalyzerOptions(); ok && err == nil {
		vars["Preset"] = opts.EffectivePreset(cfg)
		rules := make([]string, 0, len(opts.ReleaseRules))
		for _, r := range opts.ReleaseRules {
			if r.Type != "" {
				rules = append(rules, r.Type+"="+r.Release.String())
			}
		}
		vars["ReleaseRules"] = strings.Join(rules, ",")
		vars["MaxRelease"] = opts.MaxRelease().String()
	}

	var env []string
	for _, req := range cfg.RequiredEnv() {
		env = append(env, strings.Join(req.AnyOf, "|"))
	}
	vars["RequiredEnv"] = strings.Join(env, ",")

	return vars
}
