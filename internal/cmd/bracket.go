package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezBadminton/racquet/core"
	"github.com/ezBadminton/racquet/pairing"
)

func Bracket() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bracket participant...",
		Short: "Draw a single elimination bracket",
		Args:  cobra.MinimumNArgs(2),
		Long: heredoc.Doc(`bracket draws a single elimination bracket for the given
			participants in seed order. A participant is a player id or a
			pair written as id1::id2. With a roster the players can also
			be given by their names.

			The bracket is padded with byes to the next power of two and
			the best seeds get the byes. With --consolation the losers of
			the first round play a consolation bracket.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			tokens, err := participants(cmd, args)
			if err != nil {
				return err
			}

			seeding, _ := cmd.Flags().GetString("seeding")
			mode, err := core.ParseSeedingMode(seeding)
			if err != nil {
				return err
			}
			core.SeededShuffle(tokens, mode, seed(cmd, cfg))

			consolation, _ := cmd.Flags().GetBool("consolation")
			divisions, err := core.GenerateBracket(tokens, consolation)
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"participants": len(tokens),
				"rounds":       divisions[0].NumRounds(),
			}).Info("Drew the bracket")

			t := newTournament(cfg, core.EliminationFormat{Consolation: consolation}, divisions...)
			if err := core.ValidateBracket(t); err != nil {
				return err
			}
			return writeOut(cmd, t)
		},
	}

	cmd.Flags().Bool("consolation", false, "Add a consolation bracket for the first round losers")
	cmd.Flags().String("seeding", "single", "Seeding mode: single, tiered or random")
	outFlag(cmd)
	return cmd
}

func Groups() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups pair...",
		Short: "Draw the group phase of a groups and playoff tournament",
		Args:  cobra.MinimumNArgs(4),
		Long: heredoc.Doc(`groups distributes the pairs in seed order over the groups
			and creates a pairs league in every group. The best of each
			group qualify for the playoff bracket that the playoff command
			draws once all group matches are decided.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			tokens, err := participants(cmd, args)
			if err != nil {
				return err
			}
			pairs, err := core.ParseParticipants(tokens, nil)
			if err != nil {
				return err
			}

			numGroups, _ := cmd.Flags().GetInt("groups")
			divisions := pairing.GenerateGroupPhase(pairs, numGroups)
			if divisions == nil {
				return core.ErrTooFewEntries
			}

			qualifiers, _ := cmd.Flags().GetInt("qualifiers")
			consolation, _ := cmd.Flags().GetBool("consolation")
			format := core.HybridFormat{QualifiersPerGroup: qualifiers, Consolation: consolation}
			return writeOut(cmd, newTournament(cfg, format, divisions...))
		},
	}

	cmd.Flags().Int("groups", 2, "Number of groups")
	cmd.Flags().Int("qualifiers", 2, "Qualifiers for the playoff per group")
	cmd.Flags().Bool("consolation", false, "Add a consolation bracket to the playoff")
	outFlag(cmd)
	return cmd
}
