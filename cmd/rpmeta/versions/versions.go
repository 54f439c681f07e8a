package versions

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/stfwi/redstonepen-meta/internal/buildmeta"
	"github.com/stfwi/redstonepen-meta/internal/cli"
	"github.com/stfwi/redstonepen-meta/internal/environment"
	"github.com/stfwi/redstonepen-meta/internal/i18n"
	"github.com/stfwi/redstonepen-meta/internal/tui"
)

func Command(config buildmeta.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: i18n.T("cmd.versions.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, config, environment.GradleProjectProperties())
		},
	}
}

func run(cmd *cobra.Command, config buildmeta.Config, store buildmeta.PropertyStore) error {
	_, region := cli.StartRegion(cmd)
	defer region.End()

	log := cli.Logger(cmd)
	renderer := tui.RendererFor(cmd.OutOrStdout())

	resolved, err := config.ResolveVersions(store)
	if err != nil {
		var notFound *buildmeta.PropertyNotFoundError
		if errors.As(err, &notFound) {
			log.Error(tui.RendererFor(cmd.ErrOrStderr()).Error(i18n.T("cmd.versions.error.missing", i18n.Tvars{
				Data: &i18n.TData{
					"key": notFound.Key,
					"env": environment.GradleProjectPropertyPrefix + notFound.Key,
				},
			})))
			return cli.Reported(err)
		}
		return err
	}

	log.Debugf("resolved %s=%s %s=%s %s=%s",
		config.VersionPropertyKey(), resolved.Mod,
		config.MinecraftVersionPropertyKey(), resolved.Minecraft,
		config.LoaderVersionPropertyKey(), resolved.Loader)

	log.Log(renderer.KeyValues([]tui.Pair{
		{Label: i18n.T("cmd.versions.label.mod"), Value: resolved.Mod},
		{Label: i18n.T("cmd.versions.label.minecraft"), Value: resolved.Minecraft},
		{Label: i18n.T("cmd.versions.label.loader"), Value: resolved.Loader},
	}), true)
	return nil
}
