package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezBadminton/racquet/schedule"
)

var errNoSlot = errors.New("no free slot in the search window")

func Slot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot tournament-file match-id",
		Short: "Schedule a match on the next free court",
		Args:  cobra.ExactArgs(2),
		Long: heredoc.Doc(`slot assigns the first free court and start time to a match.
			The slot does not overlap other matches on its court, keeps
			the rest time after the last match of its players and
			respects their unavailable times and the opening hours.

			The time is given in RFC 3339 format, e.g. 2026-05-02T10:00:00Z,
			or as 15:04 for today.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTournament(args[0])
			if err != nil {
				return err
			}
			match, err := findMatch(t, args[1])
			if err != nil {
				return err
			}

			after := time.Time{}
			if value, _ := cmd.Flags().GetString("after"); value != "" {
				after, err = parseTime(value, time.Now())
				if err != nil {
					return err
				}
			}

			candidate, ok := schedule.Planner{}.ScheduleMatch(t, match, after)
			if !ok {
				return errNoSlot
			}
			logrus.WithFields(logrus.Fields{
				"match": match.String(),
				"court": candidate.Court,
			}).Info("Scheduled at ", candidate.Start.Format(time.RFC3339))

			path, _ := cmd.Flags().GetString("out")
			if path == "" {
				path = args[0]
			}
			return writeJSON(cmd, path, t)
		},
	}

	cmd.Flags().String("after", "", "Earliest start of the match")
	cmd.Flags().StringP("out", "o", "", "Write the tournament to this file instead of the input file")
	return cmd
}

func parseTime(value string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	clock, err := time.ParseInLocation("15:04", value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q: %w", value, err)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, now.Location()), nil
}
