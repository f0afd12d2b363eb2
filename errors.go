package can

import "errors"

var (
	// ErrEngineNotReady is returned by Engine methods invoked on a nil or
	// unbuilt engine.
	ErrEngineNotReady = errors.New("engine not ready")
	// ErrUnknownCheck is returned in strict mode when a rule names a check
	// the resolved module does not declare. This is a caller/configuration
	// error, not a denial.
	ErrUnknownCheck = errors.New("unknown check reference")
)
