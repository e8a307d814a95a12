// Package build holds version metadata stamped at link time.
package build

// Version is the costwise release, set with -ldflags "-X go.trai.ch/costwise/internal/build.Version=...".
var Version = "dev"
