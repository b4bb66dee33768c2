// playerctl/cli/registry.go
package cli

import (
	"time"

	"github.com/spf13/cobra"

	redisu "github.com/Ftotnem/player-roster/shared/redis"
	"github.com/Ftotnem/player-roster/shared/registry"
)

const defaultServiceTTL = 15 * time.Second

func newRegistryCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Service registry commands",
	}
	cmd.PersistentFlags().StringSliceVar(&cfg.RedisAddrs, "redis-addrs", cfg.RedisAddrs, "Redis addresses (env: PLAYERCTL_REDIS_ADDRS)")
	cmd.PersistentFlags().StringVar(&cfg.RedisPassword, "redis-password", cfg.RedisPassword, "Redis password (env: PLAYERCTL_REDIS_PASSWORD)")

	cmd.AddCommand(newRegistryListCmd(cfg))
	return cmd
}

func newRegistryListCmd(cfg *Config) *cobra.Command {
	var (
		serviceType string
		ttl         = defaultServiceTTL
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active service instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rdb, err := redisu.NewUniversalClient(cfg.RedisAddrs, cfg.RedisPassword)
			if err != nil {
				return err
			}
			defer rdb.Close()

			ctx, cancel := commandContext(cmd, cfg)
			defer cancel()
			services, err := registry.NewRegistryClient(rdb, ttl, nil).GetActiveServices(ctx, serviceType)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(services)
			return nil
		},
	}

	cmd.Flags().StringVar(&serviceType, "type", registry.PlayerServiceType, "Service type")
	cmd.Flags().DurationVar(&ttl, "ttl", ttl, "Instances silent for longer are hidden")
	return cmd
}
