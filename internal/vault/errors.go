package vault

import "fmt"

// ConfigError reports a local storage read, write, or parse failure.
// The credential vault raises it for failures in the storage of last
// resort; callers surface it as a fatal error rather than falling
// through to another layer.
type ConfigError struct {
	Op  string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErr(op string, err error) *ConfigError {
	return &ConfigError{Op: op, Err: err}
}
