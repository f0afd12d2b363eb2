package can

import "errors"

// Builder assembles an [Engine]. A builder is single-use: Build fails on a
// second call so a half-configured builder cannot produce two engines that
// disagree.
type Builder struct {
	config      Config
	permissions Permissions
	built       bool
}

// New creates a Builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder's entire configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithPermissions sets the Permissions value the engine binds. The value is
// deep-copied at Build time; the caller keeps ownership of its own maps.
func (b *Builder) WithPermissions(p Permissions) *Builder {
	b.permissions = p
	return b
}

// WithStrictChecks toggles strict resolution of check names.
func (b *Builder) WithStrictChecks(strict bool) *Builder {
	b.config.Checks.Strict = strict
	return b
}

// WithDecisionIDs toggles per-decision UUID assignment.
func (b *Builder) WithDecisionIDs(enabled bool) *Builder {
	b.config.Decision.IDEnabled = enabled
	return b
}

// WithMetricsEnabled toggles the engine's internal counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles decision latency histograms. Requires
// metrics to be enabled; Validate switches histograms off otherwise.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and produces the engine. Permissions may
// be empty — an engine over empty permissions denies every module-scoped
// rule — but they must at least be provided, since an engine with nothing
// bound is almost always a wiring mistake.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.permissions == nil {
		return nil, errors.New("permissions must be provided")
	}

	engine := &Engine{
		config:      cfg,
		permissions: clonePermissions(b.permissions),
		metrics:     NewMetrics(cfg.Metrics),
	}

	b.built = true

	return engine, nil
}
