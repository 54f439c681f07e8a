package buildmeta

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type Language struct {
	Code        string `json:"code"`
	DisplayName string `json:"name"`
	Region      string `json:"region"`
}

var languageTable = [...]Language{
	{Code: "en_us", DisplayName: "English", Region: "United States"},
	{Code: "de_de", DisplayName: "German", Region: "Germany"},
	{Code: "ru_ru", DisplayName: "Russian", Region: "Russia"},
	{Code: "zh_cn", DisplayName: "Chinese", Region: "China"},
}

func supportedLanguages() map[string]Language {
	languages := make(map[string]Language, len(languageTable))
	for _, lang := range languageTable {
		languages[lang.Code] = lang
	}
	return languages
}

// Tag converts the Minecraft style locale code (de_de) to a BCP 47 tag (de-DE).
func (lang Language) Tag() (language.Tag, error) {
	return language.Parse(strings.ReplaceAll(lang.Code, "_", "-"))
}

// NativeName is the name of the language in that language, e.g. "Deutsch".
// It falls back to DisplayName when the code cannot be parsed.
func (lang Language) NativeName() string {
	tag, err := lang.Tag()
	if err != nil {
		return lang.DisplayName
	}
	base, _ := tag.Base()
	name := display.Self.Name(language.Make(base.String()))
	if name == "" {
		return lang.DisplayName
	}
	return name
}
