package commands

import (
	"fmt"
	"time"

	"github.com/rahulAtGit/ZentriqVision/infrastructure/config"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/persistence/seed"

	"github.com/spf13/cobra"
)

var seedUser string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the demo dataset to the data table",
	Long: `Write three demo videos (processed, processing, error) and the indexed
detections of the processed one. Video ids are derived from the organization,
so seeding twice overwrites the same records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		container, err := loadContainer(ctx)
		if err != nil {
			return err
		}
		defer container.Shutdown(ctx)

		if container.Config.StoreBackend == config.StoreMemory {
			return fmt.Errorf("seed needs STORE_BACKEND=%s", config.StoreDynamoDB)
		}

		records, err := seed.Demo(orgID, seedUser, time.Now())
		if err != nil {
			return err
		}
		n, err := seed.Load(ctx, container.Store, records, container.Logger)
		if err != nil {
			return err
		}

		ids := seed.VideoIDs(orgID)
		return printResult(cmd.OutOrStdout(), map[string]interface{}{
			"orgId":   orgID,
			"records": n,
			"videos":  ids[:],
		})
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedUser, "user", "demo-user", "owner of the demo videos")
}
