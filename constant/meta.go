// Package constant holds application-wide identifiers.
package constant

const (
	// App names the configuration file, the environment prefix and every per-user directory.
	App = "playcore"

	Version = "0.1.0"

	// UserAgent is sent by network streams that do not set their own.
	UserAgent = App + "/" + Version
)

// Set at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
