package cmd

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openreelio/reel/cmd/reel/internal/build"
	"github.com/openreelio/reel/cmd/reel/internal/fsys"
	"github.com/openreelio/reel/cmd/reel/internal/project"
	"github.com/openreelio/reel/cmd/reel/internal/settings"
	"github.com/openreelio/reel/cmd/reel/internal/tui"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Float64P("start", "s", 0, "Seek to this position (seconds) before playback")

	playCmd.Flags().Float64("step-fps", 0, "Frame rate used for single-frame stepping")
	lo.Must0(viper.BindPFlag(settings.PlayStepFPS, playCmd.Flags().Lookup("step-fps")))

	playCmd.Flags().Float64("target-fps", 0, "Throttle tick processing to this rate (0 disables)")
	lo.Must0(viper.BindPFlag(settings.PlayTargetFPS, playCmd.Flags().Lookup("target-fps")))

	playCmd.Flags().Float64("seek-step", 0, "Seconds moved by a seek key press")
	lo.Must0(viper.BindPFlag(settings.PlaySeekStep, playCmd.Flags().Lookup("seek-step")))
}

// playCmd opens the interactive transport for a project timeline.
var playCmd = &cobra.Command{
	Use:   "play [project file]",
	Short: "Open the interactive playback transport",
	Long: `Open the interactive playback transport for a project timeline.
Reads ` + project.DefaultFile + ` from the working directory unless a project
file is given; a missing file falls back to a one-minute timeline.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		proj, err := project.LoadOptional(fsys.API(), path)
		if err != nil {
			return err
		}
		if err := proj.CheckEngine(build.Version); err != nil {
			return err
		}

		if cmd.Flags().Changed("step-fps") {
			proj.Timeline.FPS = viper.GetFloat64(settings.PlayStepFPS)
		}

		startAt := mo.None[float64]()
		if cmd.Flags().Changed("start") {
			startAt = mo.Some(lo.Must(cmd.Flags().GetFloat64("start")))
		}

		return tui.Run(tui.Options{
			Project:   proj,
			StartAt:   startAt,
			TargetFPS: viper.GetFloat64(settings.PlayTargetFPS),
			SeekStep:  viper.GetFloat64(settings.PlaySeekStep),
		})
	},
}
