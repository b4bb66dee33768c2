// playerctl/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ftotnem/player-roster/shared/service"
)

// NewRootCmd creates the root command. Subcommands share cfg and the client
// built from it in PersistentPreRunE.
func NewRootCmd() *cobra.Command {
	cfg := DefaultConfig()
	var client *service.PlayerServiceClient

	rootCmd := &cobra.Command{
		Use:   "playerctl",
		Short: "CLI tool for the player roster service",
		Long: `playerctl talks to the player roster REST API.

It lists, counts, creates, updates and deletes players, and can show the
player-service instances registered in Redis.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cfg.Output {
			case "text", "json":
			default:
				return fmt.Errorf("unknown output format %q (want text or json)", cfg.Output)
			}
			client = service.NewPlayerClient(cfg.ServerURL, nil)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Player service URL (env: PLAYERCTL_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: PLAYERCTL_OUTPUT)")
	rootCmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Request timeout")

	clientFn := func() *service.PlayerServiceClient { return client }
	rootCmd.AddCommand(newListCmd(cfg, clientFn))
	rootCmd.AddCommand(newCountCmd(cfg, clientFn))
	rootCmd.AddCommand(newGetCmd(cfg, clientFn))
	rootCmd.AddCommand(newCreateCmd(cfg, clientFn))
	rootCmd.AddCommand(newUpdateCmd(cfg, clientFn))
	rootCmd.AddCommand(newDeleteCmd(cfg, clientFn))
	rootCmd.AddCommand(newRegistryCmd(cfg))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
