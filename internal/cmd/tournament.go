package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezBadminton/racquet/core"
	"github.com/ezBadminton/racquet/internal/config"
	"github.com/ezBadminton/racquet/internal/roster"
	"github.com/ezBadminton/racquet/pairing"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func loadRoster(cmd *cobra.Command) (*roster.Roster, error) {
	path, _ := cmd.Flags().GetString("roster")
	if path == "" {
		return nil, nil
	}
	return roster.Load(path)
}

// Resolves the participant arguments against the roster when one is given
func participants(cmd *cobra.Command, args []string) ([]string, error) {
	r, err := loadRoster(cmd)
	if err != nil || r == nil {
		return args, err
	}
	return r.ResolveTokens(args)
}

func seed(cmd *cobra.Command, cfg *config.Config) int64 {
	if s, _ := cmd.Flags().GetInt64("seed"); s != 0 {
		return s
	}
	return cfg.Search.Seed
}

func search(cmd *cobra.Command, cfg *config.Config, attempts int) pairing.Search {
	search := pairing.Search{Attempts: attempts}
	if s := seed(cmd, cfg); s != 0 {
		search.Rng = rand.New(rand.NewSource(s))
	}
	return search
}

func newTournament(cfg *config.Config, format core.Format, divisions ...*core.Division) *core.Tournament {
	t := core.NewTournament(divisions...)
	t.Points = cfg.Points
	scheduler := cfg.Scheduler
	t.SchedulerConfig = &scheduler
	t.Format = format
	return t
}

func readTournament(path string) (*core.Tournament, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t := &core.Tournament{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("tournament file %v: %w", path, err)
	}
	if err := core.ValidateBracket(t); err != nil {
		return nil, fmt.Errorf("tournament file %v: %w", path, err)
	}
	return t, nil
}

// Writes the value as indented JSON to the file or stdout when path is empty
func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func outFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "Write the tournament to this file instead of stdout")
}

func writeOut(cmd *cobra.Command, v any) error {
	path, _ := cmd.Flags().GetString("out")
	return writeJSON(cmd, path, v)
}
