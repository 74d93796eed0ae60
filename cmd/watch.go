package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/janindragoonetilleke-oss/codeassist/internal/episode"
	"github.com/janindragoonetilleke-oss/codeassist/internal/telemetry"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch an episode drop directory and report every recorded episode",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := GetConfig().EpisodeDir
		if len(args) == 1 {
			dir = args[0]
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fmt.Errorf("episode directory not found: %s", dir)
		}

		pusher := telemetry.New(GetConfig())

		cmd.Printf("Watching %s for episodes. Press Ctrl-C to stop.\n", dir)
		return episode.WatchDir(cmd.Context(), dir, func(path string, ep *episode.Episode) {
			slog.Info("episode recorded", "path", path, "episode_id", ep.ID)
			pusher.Push(cmd.Context(), ep)
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
