package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezBadminton/racquet/core"
	"github.com/ezBadminton/racquet/internal/config"
	"github.com/ezBadminton/racquet/internal/roster"
	"github.com/ezBadminton/racquet/pairing"
	"github.com/ezBadminton/racquet/standings"
)

var errGroupsRunning = errors.New("the group phase is not finished")

func Standings() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standings tournament-file [division...]",
		Short: "Show the standings of the divisions",
		Args:  cobra.MinimumNArgs(1),
		Long: heredoc.Doc(`standings prints the standings table of every division of
			the tournament file, or of the divisions given by their id or
			name. The rows are ordered by points, set difference, game
			difference and games won.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTournament(args[0])
			if err != nil {
				return err
			}
			r, err := loadRoster(cmd)
			if err != nil {
				return err
			}

			tables := make(map[string][]*standings.Row)
			out := cmd.OutOrStdout()
			asJSON, _ := cmd.Flags().GetBool("json")
			for _, d := range t.Divisions {
				if !selected(d, args[1:]) || d.IsBracket() {
					continue
				}
				rows := standings.Generate(d, t.Format)
				tables[d.ID] = rows
				if !asJSON {
					printTable(out, d, rows, r)
				}
			}

			if asJSON {
				return writeJSON(cmd, "", tables)
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the rows as JSON")
	return cmd
}

func selected(d *core.Division, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if strings.HasPrefix(d.ID, f) || strings.EqualFold(d.Name, f) {
			return true
		}
	}
	return false
}

func printTable(out io.Writer, d *core.Division, rows []*standings.Row, r *roster.Roster) {
	title := d.Name
	if title == "" {
		title = fmt.Sprintf("Division %d", d.Number)
	}
	fmt.Fprintf(out, "\u001B[32m%s\u001B[0m:\n\n", title)
	fmt.Fprintf(out, "%3s  %-32s %4s %3s %3s %3s %5s %5s\n", "#", "", "Pts", "W", "D", "L", "Sets", "Games")
	for _, row := range rows {
		fmt.Fprintf(out, "%3d  %-32s %4d %3d %3d %3d %+5d %+5d\n",
			row.Position, displayName(row.Pair, r),
			row.Points, row.Wins, row.Draws, row.Losses,
			row.SetDifference, row.GameDifference,
		)
	}
	fmt.Fprintln(out)
}

func displayName(pair core.Pair, r *roster.Roster) string {
	names := make([]string, 0, 2)
	for _, id := range pair.Players() {
		name := id
		if r != nil {
			if p, ok := r.Player(id); ok {
				name = p.Name
			}
		}
		names = append(names, name)
	}
	return strings.Join(names, " / ")
}

func Promote() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote tournament-file",
		Short: "Create the next season with promotions and relegations",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`promote moves the best players of every league division one
			tier up and the worst one tier down and creates the schedules
			of the new divisions. Division 1 is the top tier.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			t, err := readTournament(args[0])
			if err != nil {
				return err
			}

			up, _ := cmd.Flags().GetInt("up")
			down, _ := cmd.Flags().GetInt("down")
			regenerate := pairing.League(t.Format, search(cmd, cfg, cfg.Search.LeagueAttempts))
			promotions := standings.CalculatePromotions(t.Divisions, t.Format, up, down, regenerate)

			for _, move := range promotions.Moves {
				logrus.WithFields(logrus.Fields{
					"from": move.From,
					"to":   move.To,
				}).Info("Moved ", move.Player)
			}

			next := nextSeason(cfg, t, promotions.Divisions)
			return writeOut(cmd, next)
		},
	}

	cmd.Flags().Int("up", 1, "Promoted players or pairs per division")
	cmd.Flags().Int("down", 1, "Relegated players or pairs per division")
	outFlag(cmd)
	return cmd
}

// Returns the tournament of the new divisions with the settings of the old one
func nextSeason(cfg *config.Config, t *core.Tournament, divisions []*core.Division) *core.Tournament {
	next := newTournament(cfg, t.Format, divisions...)
	next.Points = t.Points
	next.SchedulerConfig = t.SchedulerConfig
	next.PlayerConstraints = t.PlayerConstraints
	return next
}

func Playoff() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playoff tournament-file",
		Short: "Draw the playoff bracket of a groups and playoff tournament",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`playoff draws the elimination bracket from the standings of
			the groups once all group matches are decided. The group
			winners are seeded first, then the runners-up and so on.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTournament(args[0])
			if err != nil {
				return err
			}
			format, ok := t.Format.(core.HybridFormat)
			if !ok {
				return fmt.Errorf("%w: the playoff needs the hybrid format", core.ErrUnknownFormat)
			}

			groups := make([]*core.Division, 0, len(t.Divisions))
			for _, d := range t.Divisions {
				if d.Stage == core.StageGroup {
					groups = append(groups, d)
				}
			}
			if !standings.GroupsFinished(groups) {
				return errGroupsRunning
			}

			playoff := standings.BuildPlayoff(groups, format)
			t.AddDivisions(playoff...)
			if err := core.ValidateBracket(t); err != nil {
				return err
			}
			logrus.WithField("divisions", len(playoff)).Info("Drew the playoff")

			path, _ := cmd.Flags().GetString("out")
			if path == "" {
				path = args[0]
			}
			return writeJSON(cmd, path, t)
		},
	}

	cmd.Flags().StringP("out", "o", "", "Write the tournament to this file instead of the input file")
	return cmd
}
