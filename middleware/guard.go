package middleware

import (
	"context"
	"net/http"

	can "github.com/VeselinReljic/go-can"
)

type decisionContextKey struct{}

// DecisionFromContext returns the decision injected by [Guard] for the
// current request.
func DecisionFromContext(ctx context.Context) (can.Decision, bool) {
	d, ok := ctx.Value(decisionContextKey{}).(can.Decision)
	return d, ok
}

// Guard evaluates rules against the engine's bound permissions on every
// request. A denial rejects with 403, an engine fault (nil engine, or an
// unknown check in strict mode) with 500; on allow the decision is attached
// to the request context and the wrapped handler runs.
func Guard(engine *can.Engine, rules can.TestRules) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			decision, err := engine.DecideAll(rules)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !decision.Allowed {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), decisionContextKey{}, decision)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GuardRule is a single-rule convenience over [Guard].
func GuardRule(engine *can.Engine, module string, rule can.Rule) func(http.Handler) http.Handler {
	return Guard(engine, can.TestRules{module: rule})
}
