package can

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Engine binds a Permissions value to an engine configuration. It is built
// once through [Builder.Build] and is safe for concurrent use afterwards:
// evaluation never writes to the bound permissions, and the builder deep-
// copies them so later caller mutation cannot leak into a live engine.
type Engine struct {
	config      Config
	permissions Permissions
	metrics     *Metrics
}

// Matches evaluates one rule against the engine's bound permissions. It has
// the exact semantics of the package-level [Matches]; unknown check names
// deny even in strict mode, since a bool return has no fault channel. A nil
// engine denies.
func (e *Engine) Matches(rule Rule) bool {
	if e == nil {
		return false
	}

	e.metricInc(MetricEvaluation)
	allowed, err := matchRule(e.permissions, rule)
	if err != nil {
		e.metricInc(MetricUnknownCheck)
	}
	if allowed {
		e.metricInc(MetricAllow)
	} else {
		e.metricInc(MetricDeny)
	}
	return allowed
}

// AllAllowed evaluates a batch of labeled rules against the engine's bound
// permissions, with the semantics of the package-level [AllAllowed]. A nil
// engine denies.
func (e *Engine) AllAllowed(rules TestRules) bool {
	if e == nil {
		return false
	}

	allowed := true
	for label, rule := range rules {
		rule.Module = label
		e.metricInc(MetricEvaluation)
		ok, err := matchRule(e.permissions, rule)
		if err != nil {
			e.metricInc(MetricUnknownCheck)
		}
		if !ok {
			allowed = false
			break
		}
	}

	if allowed {
		e.metricInc(MetricAllow)
	} else {
		e.metricInc(MetricDeny)
	}
	return allowed
}

// Decide evaluates one rule and returns a structured [Decision]. In strict
// mode an unresolvable check name returns [ErrUnknownCheck] instead of a
// silent denial; in lenient mode it counts toward MetricUnknownCheck and
// denies.
func (e *Engine) Decide(rule Rule) (Decision, error) {
	if e == nil {
		return Decision{}, ErrEngineNotReady
	}

	start := time.Now()
	e.metricInc(MetricEvaluation)

	allowed, err := matchRule(e.permissions, rule)
	if err != nil {
		e.metricInc(MetricUnknownCheck)
		if e.config.Checks.Strict {
			return Decision{}, err
		}
		allowed = false
	}

	d := e.newDecision(allowed, rule.Module)
	e.metrics.Observe(MetricDecideLatency, time.Since(start))
	return d, nil
}

// DecideAll evaluates a batch of labeled rules and returns a structured
// [Decision] for the conjunction. FailedModule carries the label of the
// first rule that denied. Strict-mode unknown checks fail fast with
// [ErrUnknownCheck].
func (e *Engine) DecideAll(rules TestRules) (Decision, error) {
	if e == nil {
		return Decision{}, ErrEngineNotReady
	}

	start := time.Now()

	allowed := true
	failed := ""
	for label, rule := range rules {
		rule.Module = label
		e.metricInc(MetricEvaluation)

		ok, err := matchRule(e.permissions, rule)
		if err != nil {
			e.metricInc(MetricUnknownCheck)
			if e.config.Checks.Strict {
				return Decision{}, err
			}
		}
		if !ok {
			allowed = false
			failed = label
			break
		}
	}

	d := e.newDecision(allowed, failed)
	e.metrics.Observe(MetricDecideLatency, time.Since(start))
	return d, nil
}

// Permissions returns a deep copy of the engine's bound permissions for
// introspection. Mutating the copy has no effect on the engine.
func (e *Engine) Permissions() Permissions {
	if e == nil {
		return nil
	}
	return clonePermissions(e.permissions)
}

// MetricsSnapshot returns a point-in-time copy of the engine's counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) newDecision(allowed bool, failedModule string) Decision {
	d := Decision{Allowed: allowed}
	if allowed {
		e.metricInc(MetricAllow)
	} else {
		d.FailedModule = failedModule
		e.metricInc(MetricDeny)
	}
	if e.config.Decision.IDEnabled {
		d.ID = uuid.NewString()
	}
	return d
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// IsUnknownCheck reports whether err originates from an unresolvable check
// reference.
func IsUnknownCheck(err error) bool {
	return errors.Is(err, ErrUnknownCheck)
}
