// Package build carries version metadata stamped at link time.
package build

// Set via -ldflags "-X github.com/openreelio/reel/cmd/reel/internal/build.Version=...".
var (
	Version  = "0.1.0-dev"
	Revision = "unknown"
	BuiltAt  = "unknown"
)
