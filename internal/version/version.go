// Package version reports the routemap release and the shape of the result
// documents it writes.
package version

// Version is the release tag, stamped with -ldflags "-X" at build time.
// Development builds report "dev", which Compare orders before any release.
var Version = "dev"

// SchemaVersion is written as "schemaVersion" at the top of the raw, JSON
// and YAML result documents, beside "project" and "routes". Renaming or
// removing a Route field, or changing how nested routes are keyed, bumps it;
// adding optional fields does not.
const SchemaVersion = 1

// GetVersion returns the release tag.
func GetVersion() string {
	return Version
}

// GetSchemaVersion returns the result document schema version.
func GetSchemaVersion() int {
	return SchemaVersion
}
