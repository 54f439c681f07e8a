// Package environment reads runtime environment configuration.
package environment

import (
	"os"
	"strings"

	"github.com/stfwi/redstonepen-meta/internal/buildmeta"
)

// GradleProjectPropertyPrefix is the prefix Gradle uses to pass project
// properties through the environment.
const GradleProjectPropertyPrefix = "ORG_GRADLE_PROJECT_"

const helpURLPlaceholder = "REPL_HELP_URL"

var (
	appVersion = "REPL_VERSION"     // replaced through -ldflags by tools/build
	helpURL    = helpURLPlaceholder // replaced through -ldflags by tools/build
)

var environ = os.Environ

func AppVersion() string {
	return appVersion
}

// HelpURL is the project help page baked in at build time, or "" when the
// binary was built without one.
func HelpURL() string {
	if helpURL == helpURLPlaceholder {
		return ""
	}
	return helpURL
}

// GradleProjectProperties collects ORG_GRADLE_PROJECT_<key>=<value> variables.
func GradleProjectProperties() buildmeta.Properties {
	properties := make(buildmeta.Properties)
	for _, entry := range environ() {
		name, value, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		key, ok := strings.CutPrefix(name, GradleProjectPropertyPrefix)
		if !ok || key == "" {
			continue
		}
		properties[key] = value
	}
	return properties
}
