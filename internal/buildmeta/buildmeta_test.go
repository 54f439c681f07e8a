package buildmeta

import (
	"encoding/json"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryNameMatchesModID(t *testing.T) {
	config := Get()
	assert.Equal(t, "redstonepen", config.ModID())
	assert.Equal(t, config.ModID(), config.RegistryName())
}

func TestLocalAssetsRoot(t *testing.T) {
	config := Get()
	assert.Equal(t, "src/main/resources/assets/"+config.RegistryName(), config.LocalAssetsRoot())
	assert.Equal(t, "src/main/resources/assets/redstonepen", config.LocalAssetsRoot())
}

func TestDerivedValuesFollowModID(t *testing.T) {
	config := Config{modID: "otherpen"}
	assert.Equal(t, "otherpen", config.RegistryName())
	assert.Equal(t, "src/main/resources/assets/otherpen", config.LocalAssetsRoot())
}

func TestLiterals(t *testing.T) {
	config := Get()
	assert.Equal(t, "https://github.com/stfwi/redstonepen.git", config.ReferenceRepositoryURL())
	assert.Equal(t, "version_redstonepen", config.VersionPropertyKey())
	assert.Equal(t, "version_minecraft", config.MinecraftVersionPropertyKey())
	assert.Equal(t, "version_forge_minecraft", config.LoaderVersionPropertyKey())
	assert.Equal(t, "https://www.curseforge.com/minecraft/mc-mods/redstone-pen/", config.DownloadPageURL())
}

func TestSkipReferenceRepositoryCheck(t *testing.T) {
	assert.True(t, Get().Options().SkipReferenceRepositoryCheck)
}

func TestLanguageKeys(t *testing.T) {
	languages := Get().Languages()
	require.Len(t, languages, 4)

	for _, code := range []string{"en_us", "de_de", "ru_ru", "zh_cn"} {
		lang, ok := languages[code]
		require.True(t, ok, "missing locale %s", code)
		assert.Equal(t, code, lang.Code)
	}
}

func TestGermanLanguage(t *testing.T) {
	assert.Equal(t, Language{Code: "de_de", DisplayName: "German", Region: "Germany"}, Get().Languages()["de_de"])
}

func TestLanguageLookup(t *testing.T) {
	lang, ok := Get().Language("zh_cn")
	assert.True(t, ok)
	assert.Equal(t, "China", lang.Region)

	_, ok = Get().Language("fr_fr")
	assert.False(t, ok)
}

func TestLanguageCodesInDeclarationOrder(t *testing.T) {
	assert.Equal(t, []string{"en_us", "de_de", "ru_ru", "zh_cn"}, Get().LanguageCodes())
}

func TestLanguagesMutationDoesNotReachRecord(t *testing.T) {
	config := New()

	languages := config.Languages()
	languages["fr_fr"] = Language{Code: "fr_fr", DisplayName: "French", Region: "France"}
	delete(languages, "en_us")
	languages["de_de"] = Language{Code: "de_de", DisplayName: "Changed", Region: "Nowhere"}

	assert.Len(t, config.Languages(), 4)
	assert.Contains(t, config.Languages(), "en_us")
	assert.NotContains(t, config.Languages(), "fr_fr")
	assert.Equal(t, "German", config.Languages()["de_de"].DisplayName)
	assert.Equal(t, New(), config)
}

func TestOptionsMutationDoesNotReachRecord(t *testing.T) {
	config := New()

	options := config.Options()
	options.SkipReferenceRepositoryCheck = false

	assert.True(t, config.Options().SkipReferenceRepositoryCheck)
}

func TestGetReturnsSharedInstance(t *testing.T) {
	first := Get()
	second := Get()

	assert.Equal(t, first, second)
	assert.Equal(t, reflect.ValueOf(first.languages).Pointer(), reflect.ValueOf(second.languages).Pointer())
}

func TestNewReturnsEqualCopies(t *testing.T) {
	first := New()
	second := New()

	assert.NotEqual(t, reflect.ValueOf(first.languages).Pointer(), reflect.ValueOf(second.languages).Pointer())
	assert.Equal(t, first, second)
	assert.Equal(t, Get(), first)
}

func TestGetConcurrentFirstAccess(t *testing.T) {
	const callers = 32

	results := make([]Config, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = Get()
		}(i)
	}
	wg.Wait()

	shared := reflect.ValueOf(results[0].languages).Pointer()
	for _, result := range results {
		assert.Equal(t, shared, reflect.ValueOf(result.languages).Pointer())
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Get())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "redstonepen", decoded["modid"])
	assert.Equal(t, "redstonepen", decoded["mod_registry_name"])
	assert.Equal(t, "src/main/resources/assets/redstonepen", decoded["local_assets_root"])
	assert.Equal(t, "version_forge_minecraft", decoded["gradle_property_version_forge"])
	assert.Equal(t, map[string]any{"without_ref_repository_check": true}, decoded["options"])

	languages, ok := decoded["languages"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, languages, 4)
	assert.Equal(t, map[string]any{"code": "ru_ru", "name": "Russian", "region": "Russia"}, languages["ru_ru"])
}
