package config

// Builder constructs a Config by layering overrides on top of the engine
// defaults.
type Builder struct {
	base      *Config
	overrides []*Config
}

// NewBuilder creates a new configuration builder based on EngineDefaults.
func NewBuilder() *Builder {
	return &Builder{base: EngineDefaults()}
}

// WithBase replaces the base layer.
func (b *Builder) WithBase(base *Config) *Builder {
	if base != nil {
		b.base = base.Clone()
	}
	return b
}

// Add adds a configuration override. Overrides are applied in order:
// later overrides take precedence over earlier ones.
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// Build applies all overrides to a copy of the base layer and validates the
// result.
func (b *Builder) Build() (*Config, error) {
	cfg := b.base.Clone()
	if cfg == nil {
		cfg = &Config{}
	}

	for _, override := range b.overrides {
		mergeConfig(cfg, override.Clone())
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig applies the keys set in src to dst. Lists replace the lower
// layer wholesale, the way the engine treats them.
func mergeConfig(dst, src *Config) {
	if src.Branches != nil {
		dst.Branches = src.Branches
	}
	if src.Plugins != nil {
		dst.Plugins = src.Plugins
	}
	if src.Preset != "" {
		dst.Preset = src.Preset
	}
	if src.TagFormat != "" {
		dst.TagFormat = src.TagFormat
	}
	if src.RepositoryURL != "" {
		dst.RepositoryURL = src.RepositoryURL
	}
	if src.DryRun != nil {
		dst.DryRun = src.DryRun
	}
	if src.CI != nil {
		dst.CI = src.CI
	}
}
