// Package version exposes the runcache build version.
package version

// version is overridden at build time via
// -ldflags "-X github.com/rshade/runcache/pkg/version.version=vX.Y.Z".
var version = "dev" //nolint:gochecknoglobals // Set by the linker at build time

// GetVersion returns the version string baked into the binary.
func GetVersion() string {
	return version
}
