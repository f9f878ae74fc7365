package commands

import (
	"net/url"
	"strconv"

	"github.com/rahulAtGit/ZentriqVision/application/queries"
	"github.com/rahulAtGit/ZentriqVision/interfaces/http/rest/handlers"

	"github.com/spf13/cobra"
)

var searchFlags struct {
	color, emotion, age string
	videoID, personID   string
	mask                string
	start, end          string
	limit               int
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search videos of an organization",
	Long: `Search videos and detections with the same routing as GET /search.

Examples:
  zvctl search --org acme --color red
  zvctl search --org acme --start 2024-03-10T00:00:00Z --end 2024-03-11T00:00:00Z -o yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		set := func(key, value string) {
			if value != "" {
				q.Set(key, value)
			}
		}
		set("color", searchFlags.color)
		set("emotion", searchFlags.emotion)
		set("ageBucket", searchFlags.age)
		set("videoId", searchFlags.videoID)
		set("personId", searchFlags.personID)
		set("mask", searchFlags.mask)
		set("start", searchFlags.start)
		set("end", searchFlags.end)
		if searchFlags.limit > 0 {
			q.Set("limit", strconv.Itoa(searchFlags.limit))
		}

		filters, err := handlers.ParseSearchFilters(q)
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()
		container, err := loadContainer(ctx)
		if err != nil {
			return err
		}
		defer container.Shutdown(ctx)

		result, err := container.QueryBus.Ask(ctx, queries.SearchVideosQuery{OrgID: orgID, Filters: filters})
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), result)
	},
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchFlags.color, "color", "", "upper clothing color")
	f.StringVar(&searchFlags.emotion, "emotion", "", "dominant emotion")
	f.StringVar(&searchFlags.age, "age", "", "age bucket, e.g. 25-34")
	f.StringVar(&searchFlags.videoID, "video", "", "restrict to one video")
	f.StringVar(&searchFlags.personID, "person", "", "person id")
	f.StringVar(&searchFlags.mask, "mask", "", "true or false")
	f.StringVar(&searchFlags.start, "start", "", "RFC 3339 window start")
	f.StringVar(&searchFlags.end, "end", "", "RFC 3339 window end")
	f.IntVar(&searchFlags.limit, "limit", 0, "maximum results")
}
