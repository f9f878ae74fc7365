package commands

import (
	"github.com/rahulAtGit/ZentriqVision/application/queries"
	querybus "github.com/rahulAtGit/ZentriqVision/application/queries/bus"

	"github.com/spf13/cobra"
)

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Read a single video",
}

var videoGetCmd = &cobra.Command{
	Use:   "get <videoId>",
	Short: "Show a video record with its detections",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return askAndPrint(cmd, queries.GetVideoQuery{OrgID: orgID, VideoID: args[0]})
	},
}

var videoPlaybackCmd = &cobra.Command{
	Use:   "playback <videoId>",
	Short: "Issue a playback URL for a processed video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return askAndPrint(cmd, queries.GetPlaybackQuery{OrgID: orgID, VideoID: args[0]})
	},
}

func init() {
	videoCmd.AddCommand(videoGetCmd, videoPlaybackCmd)
}

func askAndPrint(cmd *cobra.Command, query querybus.Query) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	container, err := loadContainer(ctx)
	if err != nil {
		return err
	}
	defer container.Shutdown(ctx)

	result, err := container.QueryBus.Ask(ctx, query)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), result)
}
