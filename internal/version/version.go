// Package version exposes the build version stamped in via -ldflags.
package version

// version is overridden at build time, see magefile.go.
var version = "v0.0.0"

// Version returns the build version string.
func Version() string {
	return version
}
