package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezBadminton/racquet/core"
	"github.com/ezBadminton/racquet/internal/config"
	"github.com/ezBadminton/racquet/pairing"
	"github.com/ezBadminton/racquet/standings"
)

type generator func(cfg *config.Config, players []string) ([]*core.Match, error)

// Creates the tournament of a single league division
func leagueTournament(cmd *cobra.Command, args []string, format core.Format, generate generator) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	players, err := participants(cmd, args)
	if err != nil {
		return err
	}
	matches, err := generate(cfg, players)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return core.ErrTooFewEntries
	}

	name, _ := cmd.Flags().GetString("name")
	division := core.NewDivision(1, name, players, matches)

	logrus.WithFields(logrus.Fields{
		"format":  format.FormatType(),
		"players": len(players),
		"matches": len(matches),
	}).Info("Created the league")

	return writeOut(cmd, newTournament(cfg, format, division))
}

func leagueFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Name of the division")
	outFlag(cmd)
}

func League() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "league player...",
		Short: "Create an individual league with changing partners",
		Args:  cobra.MinimumNArgs(4),
		Long: heredoc.Doc(`league creates the schedule of a league of single players
			that change partners every round. Leagues of 4 to 8 players
			are scheduled so that no two players partner twice. Larger
			leagues get random rounds.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			individual, _ := cmd.Flags().GetBool("individual")
			format := core.ClassicFormat{Individual: individual}
			return leagueTournament(cmd, args, format, func(cfg *config.Config, players []string) ([]*core.Match, error) {
				return pairing.GenerateIndividualLeague(players, search(cmd, cfg, cfg.Search.LeagueAttempts)), nil
			})
		},
	}

	cmd.Flags().Bool("individual", false, "Score single set matches with the full win points")
	leagueFlags(cmd)
	return cmd
}

func Pairs() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairs pair...",
		Short: "Create a round robin league of fixed pairs",
		Args:  cobra.MinimumNArgs(2),
		Long: heredoc.Doc(`pairs creates a round robin league in which every pair
			plays every other pair once. A pair is written as id1::id2.
			With an odd number of pairs one pair rests each round.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return leagueTournament(cmd, args, core.PairsFormat{}, func(_ *config.Config, tokens []string) ([]*core.Match, error) {
				pairs, err := core.ParseParticipants(tokens, nil)
				if err != nil {
					return nil, err
				}
				return pairing.GeneratePairsLeague(pairs), nil
			})
		},
	}

	leagueFlags(cmd)
	return cmd
}

func Americano() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "americano player...",
		Short: "Create an americano where everybody partners everybody",
		Args:  cobra.MinimumNArgs(4),
		Long: heredoc.Doc(`americano creates the rounds of an americano. Every player
			partners every other player once, with an odd number of
			players one player rests each round. The matches are counted
			by their raw points.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			courts, _ := cmd.Flags().GetInt("courts")
			format := core.AmericanoFormat{Courts: courts}
			return leagueTournament(cmd, args, format, func(cfg *config.Config, players []string) ([]*core.Match, error) {
				return pairing.GenerateAmericano(players, courts, search(cmd, cfg, cfg.Search.AmericanoAttempts)), nil
			})
		},
	}

	cmd.Flags().Int("courts", 1, "Number of courts")
	leagueFlags(cmd)
	return cmd
}

func Mexicano() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mexicano { player... | --next tournament-file }",
		Short: "Create a mexicano or draw its next round",
		Long: heredoc.Doc(`mexicano creates the first round of a mexicano from the
			players in their seed order. With --next the following round
			is drawn from the standings of the tournament file and added
			to it: on every court the first and the fourth of a group of
			four play against the second and the third.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			courts, _ := cmd.Flags().GetInt("courts")

			path, _ := cmd.Flags().GetString("next")
			if path != "" {
				return nextMexicanoRound(cmd, path, courts)
			}

			if len(args) < 4 {
				return core.ErrTooFewEntries
			}
			format := core.AmericanoFormat{Courts: courts, Mexicano: true}
			return leagueTournament(cmd, args, format, func(_ *config.Config, players []string) ([]*core.Match, error) {
				return pairing.GenerateMexicanoRound(players, 1, courts), nil
			})
		},
	}

	cmd.Flags().Int("courts", 1, "Number of courts")
	cmd.Flags().String("next", "", "Tournament file to add the next round to")
	leagueFlags(cmd)
	return cmd
}

func nextMexicanoRound(cmd *cobra.Command, path string, courts int) error {
	t, err := readTournament(path)
	if err != nil {
		return err
	}
	format, ok := t.Format.(core.AmericanoFormat)
	if !ok || !format.Mexicano {
		return core.ErrUnknownFormat
	}
	if format.Courts > 0 && !cmd.Flags().Changed("courts") {
		courts = format.Courts
	}

	for _, d := range t.Divisions {
		order := standings.MexicanoOrder(standings.Generate(d, format))
		round := d.NumRounds() + 1
		matches := pairing.GenerateMexicanoRound(order, round, courts)
		d.Matches = append(d.Matches, matches...)
		logrus.WithFields(logrus.Fields{
			"division": d.ID,
			"round":    round,
			"matches":  len(matches),
		}).Info("Drew the next round")
	}
	t.Reindex()

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		path = out
	}
	return writeJSON(cmd, path, t)
}
