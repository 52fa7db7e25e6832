package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openreelio/reel/cmd/reel/internal/build"
	"github.com/openreelio/reel/cmd/reel/internal/fsys"
	"github.com/openreelio/reel/cmd/reel/internal/project"
	"github.com/openreelio/reel/cmd/reel/internal/settings"
	"github.com/openreelio/reel/pkg/log"
	"github.com/openreelio/reel/pkg/playback"
	"github.com/openreelio/reel/pkg/remote"
	"github.com/openreelio/reel/pkg/state"
	"github.com/openreelio/reel/pkg/util"
)

const shutdownTimeout = 5 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "Listen address of the remote bridge")
	lo.Must0(viper.BindPFlag(settings.ServeAddress, serveCmd.Flags().Lookup("addr")))
}

// serveCmd runs a headless clock behind the websocket bridge.
var serveCmd = &cobra.Command{
	Use:   "serve [project file]",
	Short: "Serve a headless playback clock over websockets",
	Long: `Serve a headless playback clock over websockets. Remote clients
connect to /ws, receive state snapshots and playback events, and drive
the transport with JSON commands. Without a host render loop the clock
ticks on a fixed-interval timer.`,
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

		return serve(cmd.Context(), proj, viper.GetString(settings.ServeAddress))
	},
}

func serve(parent context.Context, proj *project.Project, addr string) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	clk := playback.New(playback.Options{
		Duration:     proj.Timeline.Duration,
		PlaybackRate: proj.Timeline.Rate,
		Loop:         proj.Timeline.Loop,
		TargetFPS:    viper.GetFloat64(settings.PlayTargetFPS),
		Store:        store,
	})
	defer clk.Dispose()
	store.SetPlaybackRate(clk.PlaybackRate())
	store.SetLoop(clk.Loop())

	bridge := remote.NewBridge(store, remote.Options{})
	defer bridge.Close()
	bridge.AttachClock(clk)

	mux := http.NewServeMux()
	mux.Handle("/ws", bridge)

	srv := &http.Server{Addr: addr, Handler: mux}

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	log.WithFields(map[string]any{
		"addr":     addr,
		"project":  proj.Project.Name,
		"duration": proj.Timeline.Duration,
	}).Info("bridge listening")

	// Host loop: the bridge queues inbound commands, this goroutine
	// applies them, keeping every clock mutation on one goroutine.
	for {
		select {
		case c := <-bridge.Commands():
			c.Apply(clk)
			log.WithFields(map[string]any{
				"action":  c.Action,
				"clients": util.Quantify(bridge.ClientCount(), "client", "clients"),
			}).Debug("command applied")

		case err := <-errc:
			return err

		case <-ctx.Done():
			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
}
