// playerctl/cli/players.go
package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Ftotnem/player-roster/shared/models"
	"github.com/Ftotnem/player-roster/shared/service"
)

type clientFunc func() *service.PlayerServiceClient

// filterFlags maps CLI flags onto the query parameters of the list and count endpoints.
type filterFlags struct {
	name, title, race, profession string
	after, before                 string
	banned                        bool
	minExp, maxExp                int
	minLevel, maxLevel            int
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Name contains")
	fs.StringVar(&f.title, "title", "", "Title contains")
	fs.StringVar(&f.race, "race", "", "Race, e.g. ELF")
	fs.StringVar(&f.profession, "profession", "", "Profession, e.g. WARRIOR")
	fs.BoolVar(&f.banned, "banned", false, "Banned status")
	fs.StringVar(&f.after, "after", "", "Born on or after this date (YYYY-MM-DD)")
	fs.StringVar(&f.before, "before", "", "Born on or before this date (YYYY-MM-DD)")
	fs.IntVar(&f.minExp, "min-experience", 0, "Minimum experience")
	fs.IntVar(&f.maxExp, "max-experience", 0, "Maximum experience")
	fs.IntVar(&f.minLevel, "min-level", 0, "Minimum level")
	fs.IntVar(&f.maxLevel, "max-level", 0, "Maximum level")
}

// values returns only the parameters whose flags were set on the command line.
func (f *filterFlags) values(fs *pflag.FlagSet) (url.Values, error) {
	q := url.Values{}
	setString := func(flag, param, v string) {
		if fs.Changed(flag) {
			q.Set(param, v)
		}
	}
	setInt := func(flag, param string, v int) {
		if fs.Changed(flag) {
			q.Set(param, strconv.Itoa(v))
		}
	}
	setDate := func(flag, param, v string) error {
		if !fs.Changed(flag) {
			return nil
		}
		ms, err := parseDate(v)
		if err != nil {
			return fmt.Errorf("--%s: %w", flag, err)
		}
		q.Set(param, strconv.FormatInt(ms, 10))
		return nil
	}

	setString("name", "name", f.name)
	setString("title", "title", f.title)
	setString("race", "race", f.race)
	setString("profession", "profession", f.profession)
	if fs.Changed("banned") {
		q.Set("banned", strconv.FormatBool(f.banned))
	}
	if err := setDate("after", "after", f.after); err != nil {
		return nil, err
	}
	if err := setDate("before", "before", f.before); err != nil {
		return nil, err
	}
	setInt("min-experience", "minExperience", f.minExp)
	setInt("max-experience", "maxExperience", f.maxExp)
	setInt("min-level", "minLevel", f.minLevel)
	setInt("max-level", "maxLevel", f.maxLevel)
	return q, nil
}

func parseDate(s string) (int64, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t.UnixMilli(), nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid player id %q", s)
	}
	return id, nil
}

func commandContext(cmd *cobra.Command, cfg *Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), cfg.Timeout)
}

func newListCmd(cfg *Config, client clientFunc) *cobra.Command {
	var (
		filters              filterFlags
		order                string
		pageNumber, pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := filters.values(cmd.Flags())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("order") {
				q.Set("order", order)
			}
			if cmd.Flags().Changed("page-number") {
				q.Set("pageNumber", strconv.Itoa(pageNumber))
			}
			if cmd.Flags().Changed("page-size") {
				q.Set("pageSize", strconv.Itoa(pageSize))
			}

			ctx, cancel := commandContext(cmd, cfg)
			defer cancel()
			players, err := client().ListPlayers(ctx, q)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(players)
			return nil
		},
	}

	filters.register(cmd.Flags())
	cmd.Flags().StringVar(&order, "order", "", "Sort by ID, NAME, EXPERIENCE or BIRTHDAY")
	cmd.Flags().IntVar(&pageNumber, "page-number", 0, "Zero-based page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 3, "Page size")
	return cmd
}

func newCountCmd(cfg *Config, client clientFunc) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count players matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := filters.values(cmd.Flags())
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cfg)
			defer cancel()
			count, err := client().CountPlayers(ctx, q)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(count)
			return nil
		},
	}

	filters.register(cmd.Flags())
	return cmd
}

func newGetCmd(cfg *Config, client clientFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cfg)
			defer cancel()
			player, err := client().GetPlayer(ctx, id)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(player)
			return nil
		},
	}
}

// playerFlags collects the writable player fields. Only flags set on the
// command line end up in the request body.
type playerFlags struct {
	name, title, race, profession, birthday string
	banned                                  bool
	experience                              int
}

func (f *playerFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Name (up to 12 characters)")
	fs.StringVar(&f.title, "title", "", "Title (up to 30 characters)")
	fs.StringVar(&f.race, "race", "", "Race, e.g. DWARF")
	fs.StringVar(&f.profession, "profession", "", "Profession, e.g. PALADIN")
	fs.StringVar(&f.birthday, "birthday", "", "Birthday (YYYY-MM-DD)")
	fs.BoolVar(&f.banned, "banned", false, "Banned status")
	fs.IntVar(&f.experience, "experience", 0, "Experience points")
}

func (f *playerFlags) input(fs *pflag.FlagSet) (models.PlayerInput, error) {
	var in models.PlayerInput
	if fs.Changed("name") {
		in.Name = models.Some(f.name)
	}
	if fs.Changed("title") {
		in.Title = models.Some(f.title)
	}
	if fs.Changed("race") {
		race, err := models.ParseRace(f.race)
		if err != nil {
			return in, err
		}
		in.Race = models.Some(race)
	}
	if fs.Changed("profession") {
		profession, err := models.ParseProfession(f.profession)
		if err != nil {
			return in, err
		}
		in.Profession = models.Some(profession)
	}
	if fs.Changed("birthday") {
		ms, err := parseDate(f.birthday)
		if err != nil {
			return in, fmt.Errorf("--birthday: %w", err)
		}
		in.Birthday = models.Some(ms)
	}
	if fs.Changed("banned") {
		in.Banned = models.Some(f.banned)
	}
	if fs.Changed("experience") {
		in.Experience = models.Some(f.experience)
	}
	return in, nil
}

func newCreateCmd(cfg *Config, client clientFunc) *cobra.Command {
	var fields playerFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := fields.input(cmd.Flags())
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cfg)
			defer cancel()
			player, err := client().CreatePlayer(ctx, in)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(player)
			return nil
		},
	}

	fields.register(cmd.Flags())
	for _, name := range []string{"name", "title", "birthday", "experience"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newUpdateCmd(cfg *Config, client clientFunc) *cobra.Command {
	var fields playerFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in, err := fields.input(cmd.Flags())
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cfg)
			defer cancel()
			player, err := client().UpdatePlayer(ctx, id, in)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(player)
			return nil
		},
	}

	fields.register(cmd.Flags())
	return cmd
}

func newDeleteCmd(cfg *Config, client clientFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cfg)
			defer cancel()
			if err := client().DeletePlayer(ctx, id); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Deleted player %d.", id))
			return nil
		},
	}
}
