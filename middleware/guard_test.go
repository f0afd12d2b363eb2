package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	can "github.com/VeselinReljic/go-can"
)

func newGuardEngine(t *testing.T, strict bool) *can.Engine {
	t.Helper()

	perms := can.Permissions{
		"documents": {Abilities: can.Abilities{"read": true, "write": false}},
	}

	engine, err := can.New().
		WithPermissions(perms).
		WithStrictChecks(strict).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return engine
}

func serveGuarded(t *testing.T, engine *can.Engine, rules can.TestRules) *httptest.ResponseRecorder {
	t.Helper()

	var sawDecision bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawDecision = DecisionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	Guard(engine, rules)(handler).ServeHTTP(rec, req)

	if rec.Code == http.StatusOK && !sawDecision {
		t.Fatalf("expected decision in request context on allow")
	}
	return rec
}

func TestGuardAllows(t *testing.T) {
	engine := newGuardEngine(t, false)

	rec := serveGuarded(t, engine, can.TestRules{
		"documents": {Abilities: []string{"read"}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuardDeniesWithForbidden(t *testing.T) {
	engine := newGuardEngine(t, false)

	rec := serveGuarded(t, engine, can.TestRules{
		"documents": {Abilities: []string{"write"}},
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestGuardStrictUnknownCheckIsServerError(t *testing.T) {
	engine := newGuardEngine(t, true)

	rec := serveGuarded(t, engine, can.TestRules{
		"documents": {Checks: []string{"doesNotExist"}, Target: struct{}{}},
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestGuardNilEngineIsServerError(t *testing.T) {
	rec := serveGuarded(t, nil, can.TestRules{
		"documents": {Abilities: []string{"read"}},
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestGuardRule(t *testing.T) {
	engine := newGuardEngine(t, false)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	GuardRule(engine, "documents", can.Rule{Abilities: []string{"read"}})(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
