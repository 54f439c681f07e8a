package languages

import (
	"github.com/spf13/cobra"
	"github.com/stfwi/redstonepen-meta/internal/buildmeta"
	"github.com/stfwi/redstonepen-meta/internal/cli"
	"github.com/stfwi/redstonepen-meta/internal/i18n"
	"github.com/stfwi/redstonepen-meta/internal/tui"
	"go.opentelemetry.io/otel/attribute"
)

func Command(config buildmeta.Config) *cobra.Command {
	var native bool

	languagesCmd := &cobra.Command{
		Use:     "languages",
		Aliases: []string{"langs"},
		Short:   i18n.T("cmd.languages.short"),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, config, native)
		},
	}
	languagesCmd.Flags().BoolVar(&native, "native", false, i18n.T("cmd.languages.native.usage"))

	return languagesCmd
}

func run(cmd *cobra.Command, config buildmeta.Config, native bool) error {
	_, region := cli.StartRegion(cmd, attribute.Bool("native", native))
	defer region.End()

	log := cli.Logger(cmd)
	renderer := tui.RendererFor(cmd.OutOrStdout())

	headers, rows, err := tableFor(config, native)
	if err != nil {
		return err
	}

	log.Debugf("translations served in %s", i18n.Locale())
	log.Log(renderer.Table(headers, rows), true)
	log.Log("", false)
	log.Log(renderer.Muted(i18n.T("cmd.languages.summary", i18n.Tvars{Count: len(rows)})), false)
	return nil
}

func tableFor(config buildmeta.Config, native bool) ([]string, [][]string, error) {
	headers := []string{
		i18n.T("cmd.languages.header.code"),
		i18n.T("cmd.languages.header.name"),
		i18n.T("cmd.languages.header.region"),
	}
	if native {
		headers = append(headers, i18n.T("cmd.languages.header.tag"), i18n.T("cmd.languages.header.native"))
	}

	rows := make([][]string, 0, len(config.LanguageCodes()))
	for _, code := range config.LanguageCodes() {
		lang, _ := config.Language(code)
		row := []string{lang.Code, lang.DisplayName, lang.Region}
		if native {
			tag, err := lang.Tag()
			if err != nil {
				return nil, nil, err
			}
			row = append(row, tag.String(), lang.NativeName())
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}
