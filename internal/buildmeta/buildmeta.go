// Package buildmeta holds the static build metadata of the Redstone Pen mod.
//
// The record is immutable: every field is unexported and accessors hand out
// values or copies. Derived values are computed from the mod id on each call.
package buildmeta

import (
	"encoding/json"
	"sync"
)

const (
	modID                       = "redstonepen"
	assetsPathPrefix            = "src/main/resources/assets/"
	referenceRepositoryURL      = "https://github.com/stfwi/redstonepen.git"
	versionPropertyKey          = "version_redstonepen"
	minecraftVersionPropertyKey = "version_minecraft"
	loaderVersionPropertyKey    = "version_forge_minecraft"
	downloadPageURL             = "https://www.curseforge.com/minecraft/mc-mods/redstone-pen/"
)

// Options are flags for optional validation done by the build tooling.
type Options struct {
	SkipReferenceRepositoryCheck bool
}

type Config struct {
	modID                       string
	referenceRepositoryURL      string
	versionPropertyKey          string
	minecraftVersionPropertyKey string
	loaderVersionPropertyKey    string
	downloadPageURL             string
	options                     Options
	languages                   map[string]Language
}

var shared = sync.OnceValue(New)

// Get returns a copy of the process-wide metadata record. The first call
// builds it; the shared value itself is never handed out.
func Get() Config {
	return shared()
}

// New builds a fresh record equal to the one returned by Get.
func New() Config {
	return Config{
		modID:                       modID,
		referenceRepositoryURL:      referenceRepositoryURL,
		versionPropertyKey:          versionPropertyKey,
		minecraftVersionPropertyKey: minecraftVersionPropertyKey,
		loaderVersionPropertyKey:    loaderVersionPropertyKey,
		downloadPageURL:             downloadPageURL,
		options: Options{
			SkipReferenceRepositoryCheck: true,
		},
		languages: supportedLanguages(),
	}
}

func (config Config) ModID() string {
	return config.modID
}

// RegistryName is the namespace used for assets and registry entries.
func (config Config) RegistryName() string {
	return config.ModID()
}

// LocalAssetsRoot is the source tree directory holding the mod's assets.
func (config Config) LocalAssetsRoot() string {
	return assetsPathPrefix + config.RegistryName()
}

func (config Config) ReferenceRepositoryURL() string {
	return config.referenceRepositoryURL
}

// VersionPropertyKey names the Gradle property carrying the mod version.
func (config Config) VersionPropertyKey() string {
	return config.versionPropertyKey
}

func (config Config) MinecraftVersionPropertyKey() string {
	return config.minecraftVersionPropertyKey
}

func (config Config) LoaderVersionPropertyKey() string {
	return config.loaderVersionPropertyKey
}

func (config Config) DownloadPageURL() string {
	return config.downloadPageURL
}

func (config Config) Options() Options {
	return config.options
}

// Languages returns a copy of the locale table keyed by locale code.
// Changes to the returned map do not reach the record.
func (config Config) Languages() map[string]Language {
	out := make(map[string]Language, len(config.languages))
	for code, lang := range config.languages {
		out[code] = lang
	}
	return out
}

func (config Config) Language(code string) (Language, bool) {
	lang, ok := config.languages[code]
	return lang, ok
}

// LanguageCodes lists the supported locale codes in declaration order.
func (config Config) LanguageCodes() []string {
	codes := make([]string, 0, len(config.languages))
	for _, lang := range languageTable {
		if _, ok := config.languages[lang.Code]; ok {
			codes = append(codes, lang.Code)
		}
	}
	return codes
}

type document struct {
	ModID                       string              `json:"modid"`
	RegistryName                string              `json:"mod_registry_name"`
	LocalAssetsRoot             string              `json:"local_assets_root"`
	ReferenceRepository         string              `json:"reference_repository"`
	VersionPropertyKey          string              `json:"gradle_property_modversion"`
	MinecraftVersionPropertyKey string              `json:"gradle_property_version_minecraft"`
	LoaderVersionPropertyKey    string              `json:"gradle_property_version_forge"`
	DownloadPage                string              `json:"project_download_inet_page"`
	Options                     documentOptions     `json:"options"`
	Languages                   map[string]Language `json:"languages"`
}

type documentOptions struct {
	WithoutRefRepositoryCheck bool `json:"without_ref_repository_check"`
}

// MarshalJSON renders the record, derived values included, using the key
// names the build scripts expect.
func (config Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{
		ModID:                       config.ModID(),
		RegistryName:                config.RegistryName(),
		LocalAssetsRoot:             config.LocalAssetsRoot(),
		ReferenceRepository:         config.ReferenceRepositoryURL(),
		VersionPropertyKey:          config.VersionPropertyKey(),
		MinecraftVersionPropertyKey: config.MinecraftVersionPropertyKey(),
		LoaderVersionPropertyKey:    config.LoaderVersionPropertyKey(),
		DownloadPage:                config.DownloadPageURL(),
		Options: documentOptions{
			WithoutRefRepositoryCheck: config.options.SkipReferenceRepositoryCheck,
		},
		Languages: config.Languages(),
	})
}
