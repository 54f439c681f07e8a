// Package i18n localizes user-facing strings into the locales the mod ships.
//
// Each locale of the build metadata has a catalog named after its Minecraft
// locale code (lang/de_de.json). The first declared locale is the default.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	goLocale "github.com/jeandeaual/go-locale"
	i18nLib "github.com/kaptinlin/go-i18n"
	"github.com/pkg/errors"
	"github.com/stfwi/redstonepen-meta/internal/buildmeta"
	"github.com/stfwi/redstonepen-meta/internal/constants"
	"golang.org/x/text/language"
)

type LocaleProvider interface {
	GetLocales() ([]string, error)
}

type DefaultLocaleProvider struct{}

func (provider DefaultLocaleProvider) GetLocales() ([]string, error) {
	return goLocale.GetLocales()
}

//go:embed lang/*.json
var catalogFS embed.FS

var langDir = "lang"

type TData map[string]interface{}

type Tvars struct {
	Count int
	Data  *TData
}

type catalog struct {
	// go-i18n caches runtime lookups without locking
	mu        sync.Mutex
	localizer *i18nLib.Localizer
	locale    string
}

var (
	active         *catalog
	activeOnce     sync.Once
	localeProvider LocaleProvider
)

func ResetForTesting() {
	active = nil
	activeOnce = sync.Once{}
}

func current() *catalog {
	activeOnce.Do(func() {
		if localeProvider == nil {
			localeProvider = DefaultLocaleProvider{}
		}
		loaded, err := newCatalog(catalogFS, buildmeta.Get(), getUserLocales())
		if err != nil {
			panic(err)
		}
		active = loaded
	})
	return active
}

// Locale is the BCP 47 tag of the locale translations are served in.
func Locale() string {
	return current().locale
}

func T(key string, args ...Tvars) string {
	if _, present := os.LookupEnv(constants.TestModeEnv); present {
		return formatKeyAndArgs(key, args...)
	}

	if len(args) > 1 {
		panic("Too many arguments")
	}

	return current().translate(key, args...)
}

func (cat *catalog) translate(key string, args ...Tvars) string {
	var vars i18nLib.Vars
	if len(args) > 0 {
		vars = i18nLib.Vars{"count": args[0].Count}
		if args[0].Data != nil {
			for varKey, value := range *args[0].Data {
				vars[varKey] = value
			}
		}
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()

	if vars == nil {
		return cat.localizer.Get(key)
	}
	return cat.localizer.Get(key, vars)
}

func newCatalog(fsys fs.FS, config buildmeta.Config, requested []string) (*catalog, error) {
	locales, err := catalogLocales(fsys, config)
	if err != nil {
		return nil, err
	}

	bundle := i18nLib.NewBundle(
		i18nLib.WithDefaultLocale(locales[0]),
		i18nLib.WithLocales(locales...),
	)
	if err := bundle.LoadFS(fsys, path.Join(langDir, "*.json")); err != nil {
		return nil, errors.Wrap(err, "loading translation catalogs")
	}

	locale := bundle.MatchAvailableLocale(buildLocalizerLocales(requested)...)
	return &catalog{
		localizer: bundle.NewLocalizer(locale),
		locale:    locale,
	}, nil
}

// catalogLocales lists the BCP 47 tags of the mod's locales in declaration
// order. Every locale must have a catalog file.
func catalogLocales(fsys fs.FS, config buildmeta.Config) ([]string, error) {
	codes := config.LanguageCodes()
	if len(codes) == 0 {
		return nil, errors.New("no locales declared")
	}

	locales := make([]string, 0, len(codes))
	for _, code := range codes {
		lang, _ := config.Language(code)
		tag, err := lang.Tag()
		if err != nil {
			return nil, errors.Wrapf(err, "locale %s", code)
		}
		if _, err := fs.Stat(fsys, path.Join(langDir, code+".json")); err != nil {
			return nil, errors.Wrapf(err, "no catalog for locale %s", code)
		}
		locales = append(locales, tag.String())
	}
	return locales, nil
}

func getUserLocales() []string {
	envLocale, present := os.LookupEnv("LANG")

	if present {
		return []string{envLocale}
	}

	detectedLocales, err := localeProvider.GetLocales()

	if err != nil {
		return []string{
			language.English.String(),
		}
	}

	locales := make([]string, 0, len(detectedLocales))
	for _, localeName := range detectedLocales {
		if localeName == "" {
			continue
		}
		locales = append(locales, localeName)
	}
	return locales
}

func formatKeyAndArgs(key string, args ...Tvars) string {
	var sb strings.Builder
	sb.WriteString(key)

	for i, arg := range args {
		sb.WriteString(fmt.Sprintf(", Arg %d: {Count: %d, Data: %v}", i+1, arg.Count, arg.Data))
	}

	return sb.String()
}

// buildLocalizerLocales turns OS locale names into BCP 47 tags, each followed
// by its base language, without duplicates.
func buildLocalizerLocales(rawLocales []string) []string {
	locales := make([]string, 0, len(rawLocales)*2)
	seen := make(map[string]struct{}, len(rawLocales)*2)
	add := func(locale string) {
		if _, ok := seen[locale]; !ok {
			locales = append(locales, locale)
			seen[locale] = struct{}{}
		}
	}

	for _, localeName := range rawLocales {
		tag, err := language.Parse(stripPosixSuffix(localeName))
		if err != nil || tag == language.Und {
			continue
		}
		add(tag.String())
		if base, _ := tag.Base(); base.String() != "" {
			add(base.String())
		}
	}

	return locales
}

// stripPosixSuffix drops the codeset and modifier of a POSIX locale name,
// de_DE.UTF-8@euro becomes de_DE.
func stripPosixSuffix(localeName string) string {
	if idx := strings.IndexAny(localeName, ".@"); idx >= 0 {
		return localeName[:idx]
	}
	return localeName
}
