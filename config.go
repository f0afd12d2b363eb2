package can

/*
====================================
CHECK CONFIG
====================================
*/

// CheckConfig controls how the engine resolves check names.
//
// With Strict disabled (the default), a rule naming a check the resolved
// module does not declare is denied. With Strict enabled, Decide and
// DecideAll fail fast with [ErrUnknownCheck] instead, surfacing the
// configuration error to the caller. Neither mode ever coerces an unknown
// check to an allow.
type CheckConfig struct {
	Strict bool
}

/*
====================================
DECISION CONFIG
====================================
*/

// DecisionConfig controls the structured result of Decide and DecideAll.
// When IDEnabled is set, every Decision carries a fresh UUID for caller-side
// correlation.
type DecisionConfig struct {
	IDEnabled bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig enables the engine's internal decision counters. Latency
// histograms additionally require Enabled.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// Config aggregates all engine configuration sections. The zero value is
// valid: lenient check resolution, no decision IDs, metrics disabled.
//
// Config instances are intended to be set before [Builder.Build] and then
// treated as immutable.
type Config struct {
	Checks   CheckConfig
	Decision DecisionConfig
	Metrics  MetricsConfig
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{}
}

// Validate normalizes dependent settings. Latency histograms are meaningless
// without counters, so they are switched off when metrics are disabled.
func (c *Config) Validate() error {
	if !c.Metrics.Enabled {
		c.Metrics.EnableLatencyHistograms = false
	}
	return nil
}
