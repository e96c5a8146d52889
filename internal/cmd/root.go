// Package cmd implements the racquet command line.
package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezBadminton/racquet/internal/config"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "racquet",
		Short: "Run racquet sports tournaments",
		Long: heredoc.Doc(`racquet draws brackets and league schedules, records the
			results of the matches and calculates the standings.

			The state of a tournament is kept in a JSON file. The commands
			that create a tournament print it or write it with --out, the
			commands that change it read the file and write it back.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().StringP("config", "c", "", "Config file (default "+config.DefaultFile+")")
	root.PersistentFlags().StringP("roster", "r", "", "Roster file to resolve player names")
	root.PersistentFlags().Int64("seed", 0, "Seed of the random draws, random when zero")

	// Register the various commands.
	root.AddCommand(Bracket())
	root.AddCommand(Groups())
	root.AddCommand(League())
	root.AddCommand(Pairs())
	root.AddCommand(Americano())
	root.AddCommand(Mexicano())
	root.AddCommand(Result())
	root.AddCommand(Standings())
	root.AddCommand(Promote())
	root.AddCommand(Playoff())
	root.AddCommand(Slot())
	root.AddCommand(Serve())

	return root
}
