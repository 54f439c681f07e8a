package show

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stfwi/redstonepen-meta/internal/buildmeta"
	"github.com/stfwi/redstonepen-meta/internal/cli"
	"github.com/stfwi/redstonepen-meta/internal/i18n"
	"github.com/stfwi/redstonepen-meta/internal/tui"
	"go.opentelemetry.io/otel/attribute"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return i18n.T("cmd.show.error.format", i18n.Tvars{
		Data: &i18n.TData{"format": e.Format},
	})
}

func Command(config buildmeta.Config) *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: i18n.T("cmd.show.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, config, format)
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", formatText, i18n.T("cmd.show.format.usage"))

	return showCmd
}

func run(cmd *cobra.Command, config buildmeta.Config, format string) error {
	_, region := cli.StartRegion(cmd, attribute.String("format", format))
	defer region.End()

	log := cli.Logger(cmd)

	switch strings.ToLower(format) {
	case formatText:
		log.Log(renderText(tui.RendererFor(cmd.OutOrStdout()), config), true)
		return nil
	case formatJSON:
		data, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode build metadata: %w", err)
		}
		log.Log(string(data), true)
		return nil
	default:
		return &UnsupportedFormatError{Format: format}
	}
}

func renderText(renderer *tui.Renderer, config buildmeta.Config) string {
	return renderer.KeyValues([]tui.Pair{
		{Label: i18n.T("cmd.show.label.modid"), Value: config.ModID()},
		{Label: i18n.T("cmd.show.label.registry_name"), Value: config.RegistryName()},
		{Label: i18n.T("cmd.show.label.assets_root"), Value: config.LocalAssetsRoot()},
		{Label: i18n.T("cmd.show.label.reference_repository"), Value: config.ReferenceRepositoryURL()},
		{Label: i18n.T("cmd.show.label.version_property"), Value: config.VersionPropertyKey()},
		{Label: i18n.T("cmd.show.label.minecraft_property"), Value: config.MinecraftVersionPropertyKey()},
		{Label: i18n.T("cmd.show.label.loader_property"), Value: config.LoaderVersionPropertyKey()},
		{Label: i18n.T("cmd.show.label.download_page"), Value: config.DownloadPageURL()},
		{Label: i18n.T("cmd.show.label.skip_repository_check"), Value: strconv.FormatBool(config.Options().SkipReferenceRepositoryCheck)},
		{Label: i18n.T("cmd.show.label.languages"), Value: strings.Join(config.LanguageCodes(), ", ")},
	})
}
