// Package bridge implements the boundary contract of spec.md §6 in pure
// Go, independent of cgo, so it can be unit tested without building a
// C shared library. cmd/tsblank-capi wraps this package with the actual
// C ABI entry points.
package bridge

import "github.com/tsblank/tsblank/internal/erase"

// statusOK and statusFail are the trailing payload bytes spec.md §6
// defines: '1' for a successful transform, '2' for a diagnostic.
const (
	statusOK   = '1'
	statusFail = '2'
)

// Transform runs the core transform and frames the result exactly as
// spec.md §6 describes: the returned bytes are the payload (transformed
// source, or diagnostic message) followed by a single trailing status
// byte. ok reports which case occurred, for callers that don't want to
// re-inspect the trailing byte themselves.
func Transform(src, path []byte) (out []byte, ok bool) {
	result, err := erase.Transform(src, string(path))
	if err != nil {
		return appendStatus([]byte(err.Error()), statusFail), false
	}
	return appendStatus([]byte(result), statusOK), true
}

func appendStatus(payload []byte, status byte) []byte {
	out := make([]byte, len(payload)+1)
	copy(out, payload)
	out[len(payload)] = status
	return out
}
