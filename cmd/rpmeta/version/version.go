package version

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stfwi/redstonepen-meta/internal/constants"
	"github.com/stfwi/redstonepen-meta/internal/environment"
	"github.com/stfwi/redstonepen-meta/internal/i18n"
)

func Command() *cobra.Command {
	versionCmd := &cobra.Command{
		Use: "version",
		Short: i18n.T("cmd.version.short", i18n.Tvars{
			Data: &i18n.TData{"appName": constants.AppName},
		}),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), environment.AppVersion())
			return err
		},
	}

	return versionCmd
}
