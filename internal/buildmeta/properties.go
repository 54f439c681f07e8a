package buildmeta

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// PropertyStore looks up Gradle project properties by key.
type PropertyStore interface {
	Lookup(key string) (string, bool)
}

type Properties map[string]string

func (props Properties) Lookup(key string) (string, bool) {
	value, ok := props[key]
	return value, ok
}

type Versions struct {
	Mod       string
	Minecraft string
	Loader    string
}

type PropertyNotFoundError struct {
	Key string
}

func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("Build property not found: %s", e.Key)
}

func (e *PropertyNotFoundError) Is(target error) bool {
	t, ok := target.(*PropertyNotFoundError)
	if !ok {
		return false
	}
	return e.Key == t.Key
}

// ResolveVersions reads the mod, Minecraft and loader versions from store.
// A missing or blank property yields a *PropertyNotFoundError. A nil store
// holds no properties.
func (config Config) ResolveVersions(store PropertyStore) (Versions, error) {
	if store == nil {
		store = Properties(nil)
	}
	var versions Versions
	targets := []struct {
		key   string
		field *string
	}{
		{config.VersionPropertyKey(), &versions.Mod},
		{config.MinecraftVersionPropertyKey(), &versions.Minecraft},
		{config.LoaderVersionPropertyKey(), &versions.Loader},
	}

	for _, target := range targets {
		value, ok := store.Lookup(target.key)
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			return Versions{}, errors.Wrapf(&PropertyNotFoundError{Key: target.key}, "resolving %s versions", config.ModID())
		}
		*target.field = value
	}

	return versions, nil
}
