// Package version reports the build version embedded by the Go toolchain.
package version

import "runtime/debug"

// swappable in tests
var readBuildInfo = debug.ReadBuildInfo

// BuildVersion returns the module version, or "dev" for local builds where
// the toolchain records no release version.
func BuildVersion() string {
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}
	switch v := info.Main.Version; v {
	case "", "(devel)":
		return "dev"
	default:
		return v
	}
}
