package app

// buildVersion is set at build time via -ldflags "-X ...app.buildVersion=v1.2.3".
var buildVersion = "dev"

// BuildVersion returns the version stamped into the binary.
func BuildVersion() string {
	return buildVersion
}
