package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rahulAtGit/ZentriqVision/infrastructure/config"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/di"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/persistence/seed"
	"github.com/rahulAtGit/ZentriqVision/pkg/auth"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	orgID   string
	output  string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "zvctl",
	Short:         "ZentriqVision operations CLI",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&orgID, "org", auth.DefaultOrgID, "organization to operate on")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "json", "output format (json or yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")

	rootCmd.AddCommand(searchCmd, videoCmd, seedCmd, tokenCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadContainer wires the same dependencies as the API. The in-memory
// backend starts with the demo dataset so commands have something to read.
func loadContainer(ctx context.Context) (*di.Container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}
	if cfg.StoreBackend == config.StoreMemory {
		records, err := seed.Demo(orgID, "local-user", time.Now())
		if err != nil {
			return nil, err
		}
		if _, err := seed.Load(ctx, container.Store, records, container.Logger); err != nil {
			return nil, err
		}
	}
	return container, nil
}

// printResult writes v in the selected output format
func printResult(w io.Writer, v interface{}) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		// Round-trip through JSON so yaml honours the json field names
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic interface{}
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		return yaml.NewEncoder(w).Encode(generic)
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}
