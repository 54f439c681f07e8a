package rpmeta

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stfwi/redstonepen-meta/cmd/rpmeta/languages"
	"github.com/stfwi/redstonepen-meta/cmd/rpmeta/show"
	"github.com/stfwi/redstonepen-meta/cmd/rpmeta/version"
	"github.com/stfwi/redstonepen-meta/cmd/rpmeta/versions"
	"github.com/stfwi/redstonepen-meta/internal/buildmeta"
	"github.com/stfwi/redstonepen-meta/internal/cli"
	"github.com/stfwi/redstonepen-meta/internal/constants"
	"github.com/stfwi/redstonepen-meta/internal/environment"
	"github.com/stfwi/redstonepen-meta/internal/i18n"
	"github.com/stfwi/redstonepen-meta/internal/tui"
)

func Command(config buildmeta.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           constants.CommandName,
		Short:         i18n.T("app.description"),
		Version:       environment.AppVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cobra.MousetrapHelpText = "" // allow the app to run in windows by clicking the exe

	flags := rootCmd.PersistentFlags()
	flags.BoolP(cli.QuietFlag, "q", false, i18n.T("cmd.root.quiet.usage"))
	flags.Bool(cli.DebugFlag, false, i18n.T("cmd.root.debug.usage"))
	flags.Bool(cli.PerfFlag, false, i18n.T("cmd.root.perf.usage"))

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(show.Command(config))
	rootCmd.AddCommand(languages.Command(config))
	rootCmd.AddCommand(versions.Command(config))
	rootCmd.AddCommand(version.Command())

	translateDefaultHelpFacilities(rootCmd)
	fixFlagUsageAlignment(rootCmd, tui.TerminalWidth(os.Stdout))
	appendHelpLink(rootCmd, environment.HelpURL())

	return rootCmd
}

func translateDefaultHelpFacilities(rootCmd *cobra.Command) {
	subcommands := rootCmd.Commands()
	allCommands := make([]*cobra.Command, 0, len(subcommands)+1)
	allCommands = append(allCommands, rootCmd)
	allCommands = append(allCommands, subcommands...)

	for _, cmd := range allCommands {
		cmd.InitDefaultHelpFlag()
		flags := cmd.Flags()
		flags.Lookup("help").Usage = i18n.T("cmd.help.template", i18n.Tvars{
			Data: &i18n.TData{"command": cmd.Name()},
		})
	}

	rootCmd.InitDefaultHelpCmd()
	helpCmd, _, e := rootCmd.Find([]string{"help"})

	if e == nil {
		helpCmd.Short = i18n.T("cmd.help.usage.short")
		helpCmd.Long = i18n.T("cmd.help.usage.long", i18n.Tvars{
			Data: &i18n.TData{"appName": rootCmd.Name()},
		})
		helpCmd.Run = func(c *cobra.Command, args []string) {
			cmd, _, e := c.Root().Find(args)
			if cmd == nil || e != nil {
				c.PrintErrln(i18n.T("cmd.help.error", i18n.Tvars{
					Data: &i18n.TData{"topic": fmt.Sprintf("%#q", args)},
				}) + "\n")
				cobra.CheckErr(c.Root().Usage())
			} else {
				cmd.InitDefaultHelpFlag()    // make possible 'help' flag to be shown
				cmd.InitDefaultVersionFlag() // make possible 'version' flag to be shown
				cobra.CheckErr(cmd.Help())
			}
		}
	}
}

func fixFlagUsageAlignment(rootCmd *cobra.Command, width int) {
	usageTemplate := rootCmd.UsageTemplate()
	usageTemplate = strings.ReplaceAll(usageTemplate, ".FlagUsages", fmt.Sprintf(".FlagUsagesWrapped %d", width))
	rootCmd.SetUsageTemplate(usageTemplate)
}

func appendHelpLink(rootCmd *cobra.Command, url string) {
	if url == "" {
		return
	}
	link := i18n.T("cmd.help.more", i18n.Tvars{
		Data: &i18n.TData{"url": url},
	})
	rootCmd.SetUsageTemplate(rootCmd.UsageTemplate() + "\n" + link + "\n")
}

// Execute runs the command line with args against config.
func Execute(ctx context.Context, config buildmeta.Config, args []string) error {
	rootCmd := Command(config)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
