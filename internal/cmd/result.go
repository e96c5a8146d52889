package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezBadminton/racquet/core"
	"github.com/ezBadminton/racquet/play"
)

var (
	errMalformedScore = errors.New("a score is written as games1-games2")
	errAmbiguousMatch = errors.New("the match id prefix matches more than one match")
)

func Result() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "result tournament-file match-id [set...]",
		Short: "Enter the result of a match",
		Args:  cobra.MinimumNArgs(2),
		Long: heredoc.Doc(`result enters the result of a match into the tournament file
			and writes the changed tournament back to it. The match id may
			be shortened to a unique prefix. The sets are written from the
			perspective of the first pair, e.g. 6-4 3-6 7-5.

			In a bracket the winner advances and the loser drops into the
			consolation bracket when there is one. The matches that got
			both opponents are scheduled on the next free court.

			With --undo the result is taken back as long as neither pair
			played its following match.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTournament(args[0])
			if err != nil {
				return err
			}
			match, err := findMatch(t, args[1])
			if err != nil {
				return err
			}

			if undo, _ := cmd.Flags().GetBool("undo"); undo {
				if _, err := play.UndoResult(t, match.ID); err != nil {
					return err
				}
				logrus.WithField("match", match.String()).Info("Took back the result")
				return writeResult(cmd, args[0], t)
			}

			var report *play.Report
			if walkover, _ := cmd.Flags().GetInt("walkover"); walkover >= 0 {
				report, err = play.Walkover(t, match.ID, walkover)
			} else {
				var result play.Result
				result, err = resultFromFlags(cmd, args[2:])
				if err != nil {
					return err
				}
				if strict, _ := cmd.Flags().GetBool("strict"); strict {
					if err := play.ValidateResult(t.Format, result); err != nil {
						return err
					}
				}
				report, err = play.ReportResult(t, match.ID, result)
			}
			if report == nil {
				return err
			}
			if err != nil {
				// The result is entered even when the propagation failed
				logrus.Warn(err)
			}

			logrus.WithFields(logrus.Fields{
				"match":     report.Match.String(),
				"result":    report.Outcome.Description,
				"advanced":  report.Advanced,
				"dropped":   report.Dropped,
				"scheduled": len(report.Scheduled),
			}).Info("Entered the result")

			return writeResult(cmd, args[0], t)
		},
	}

	cmd.Flags().Bool("incomplete", false, "The match was stopped before it was complete")
	cmd.Flags().Bool("force-draw", false, "Award the draw points to both sides")
	cmd.Flags().String("points", "", "Raw points of an americano match, e.g. 21-15")
	cmd.Flags().Int("walkover", -1, "The absent side (0 or 1) of a walkover")
	cmd.Flags().Bool("undo", false, "Take back the result so that it can be entered again")
	cmd.Flags().Bool("strict", false, "Reject sets that break the best of 3 rules")
	cmd.Flags().StringP("out", "o", "", "Write the tournament to this file instead of the input file")
	return cmd
}

// Writes the tournament to the --out file or back to the input file
func writeResult(cmd *cobra.Command, input string, t *core.Tournament) error {
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		path = input
	}
	return writeJSON(cmd, path, t)
}

func resultFromFlags(cmd *cobra.Command, setArgs []string) (play.Result, error) {
	var result play.Result
	result.Incomplete, _ = cmd.Flags().GetBool("incomplete")
	result.ForceDraw, _ = cmd.Flags().GetBool("force-draw")

	if points, _ := cmd.Flags().GetString("points"); points != "" {
		p1, p2, err := parseScore(points)
		if err != nil {
			return result, err
		}
		result.Points1, result.Points2 = p1, p2
	}

	for _, arg := range setArgs {
		games1, games2, err := parseScore(arg)
		if err != nil {
			return result, err
		}
		result.Sets = append(result.Sets, core.Set{P1: games1, P2: games2})
	}
	return result, nil
}

func parseScore(s string) (int, int, error) {
	first, second, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", errMalformedScore, s)
	}
	p1, err1 := strconv.Atoi(strings.TrimSpace(first))
	p2, err2 := strconv.Atoi(strings.TrimSpace(second))
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("%w: %q", errMalformedScore, s)
	}
	return p1, p2, nil
}

// Finds the match by its id or a unique prefix of it
func findMatch(t *core.Tournament, id string) (*core.Match, error) {
	if m := t.Match(id); m != nil {
		return m, nil
	}

	var found *core.Match
	for _, m := range t.Matches() {
		if !strings.HasPrefix(m.ID, id) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %v", errAmbiguousMatch, id)
		}
		found = m
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMatchNotFound, id)
	}
	return found, nil
}
