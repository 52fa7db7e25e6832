// Package cmd implements the command-line interface for reel.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openreelio/reel/cmd/reel/internal/fsys"
	"github.com/openreelio/reel/cmd/reel/internal/settings"
	"github.com/openreelio/reel/pkg/log"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the reel config file")

	rootCmd.PersistentFlags().String("log-level", "info", "Log verbosity: panic, fatal, error, warn, info, debug, trace")
	lo.Must0(viper.BindPFlag(settings.LogsLevel, rootCmd.PersistentFlags().Lookup("log-level")))

	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON instead of text")
	lo.Must0(viper.BindPFlag(settings.LogsJSON, rootCmd.PersistentFlags().Lookup("log-json")))

	rootCmd.PersistentFlags().String("log-file", "", "Append logs to this file instead of stderr")
	lo.Must0(viper.BindPFlag(settings.LogsFile, rootCmd.PersistentFlags().Lookup("log-file")))
}

// rootCmd defines the entry point for the reel application.
var rootCmd = &cobra.Command{
	Use:   "reel",
	Short: "A drift-free playback clock for your terminal",
	Long: `Reel is a playback transport built around a drift-free clock:
position is derived from an absolute time anchor, so long sessions,
rate changes, and background throttling never accumulate error.

Use "reel <command> --help" for more information about a command.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile := lo.Must(cmd.Flags().GetString("config")); configFile != "" {
			if err := settings.Setup(configFile); err != nil {
				return err
			}
		}

		return log.Setup(log.Options{
			Level: viper.GetString(settings.LogsLevel),
			JSON:  viper.GetBool(settings.LogsJSON),
			File:  viper.GetString(settings.LogsFile),
			Fs:    fsys.API(),
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return nil
		}
		return cmd.Help()
	},
}

// Execute initializes child command routing and processes the CLI entry
// point.
func Execute() {
	if viper.GetBool(settings.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "error: %s\n", strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
