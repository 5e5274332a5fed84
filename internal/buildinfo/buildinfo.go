package buildinfo

import "runtime/debug"

// Set via -ldflags "-X routeviz/internal/buildinfo.Version=..."
var (
	Version = "dev"
	Commit  = ""
	BuiltAt = ""
)

func Info() map[string]string {
	goVersion := ""
	if bi, ok := debug.ReadBuildInfo(); ok {
		goVersion = bi.GoVersion
	}
	return map[string]string{
		"version":   Version,
		"commit":    Commit,
		"builtAt":   BuiltAt,
		"goVersion": goVersion,
	}
}
