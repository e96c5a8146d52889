// Package roster reads player lists and resolves the names that
// users type into player ids.
package roster

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/go-andiamo/splitter"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ezBadminton/racquet/core"
)

var (
	ErrUnknownPlayer   = errors.New("no player matches the name")
	ErrAmbiguousPlayer = errors.New("more than one player matches the name")
	ErrDuplicateID     = errors.New("duplicate player id")
)

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// A Roster is the ordered list of the players of a competition.
// The order is the seeding order.
type Roster struct {
	Players []Player `json:"players"`
}

// Parse reads a roster with one player per line. A line holds the
// id followed by the display name, names with spaces are quoted:
//
//	ana-lopez "Ana López"
//	bea Bea
//
// Empty lines and lines starting with # are skipped. A line with
// only an id uses the id as the name.
func Parse(r io.Reader) (*Roster, error) {
	lineSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}

	roster := &Roster{}
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber += 1
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts, err := lineSplitter.Split(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		fields := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = unquote(p); p != "" {
				fields = append(fields, p)
			}
		}

		if len(fields) == 0 {
			continue
		}

		id := fields[0]
		if seen[id] {
			return nil, fmt.Errorf("line %d: %w: %v", lineNumber, ErrDuplicateID, id)
		}
		seen[id] = true

		name := id
		if len(fields) > 1 {
			name = strings.Join(fields[1:], " ")
		}
		roster.Players = append(roster.Players, Player{ID: id, Name: name})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return roster, nil
}

func Load(path string) (*Roster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"“”")
}

// IDs returns the player ids in roster order.
func (r *Roster) IDs() []string {
	ids := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

// Returns the player with the given id
func (r *Roster) Player(id string) (Player, bool) {
	for _, p := range r.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Resolve finds the player that the query names.
//
// An exact id or a case-insensitive exact name wins. Otherwise the
// query is fuzzy matched against the names and the closest match is
// taken. Two closest matches at the same distance are ambiguous.
func (r *Roster) Resolve(query string) (Player, error) {
	if p, ok := r.Player(query); ok {
		return p, nil
	}

	lowerQuery := strings.ToLower(strings.TrimSpace(query))
	names := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		lowerName := strings.ToLower(p.Name)
		if lowerName == lowerQuery {
			return p, nil
		}
		names = append(names, lowerName)
	}

	ranks := fuzzy.RankFind(lowerQuery, names)
	if len(ranks) == 0 {
		return Player{}, fmt.Errorf("%w: %v", ErrUnknownPlayer, query)
	}
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	if len(ranks) > 1 && ranks[0].Distance == ranks[1].Distance {
		return Player{}, fmt.Errorf("%w: %v (%v, %v)", ErrAmbiguousPlayer, query, ranks[0].Target, ranks[1].Target)
	}
	return r.Players[ranks[0].OriginalIndex], nil
}

// ResolveToken turns a participant token made of player names or ids
// into a token of player ids. "Ana::Bea" resolves both players of the
// pair. A legacy "id1-id2" token is only accepted when it splits into
// two roster ids in exactly one way, an ambiguous split is an error.
func (r *Roster) ResolveToken(token string) (string, error) {
	if first, second, ok := strings.Cut(token, core.PairSeparator); ok {
		p1, err := r.Resolve(first)
		if err != nil {
			return "", err
		}
		p2, err := r.Resolve(second)
		if err != nil {
			return "", err
		}
		return core.Pair{P1: p1.ID, P2: p2.ID}.Token(), nil
	}

	if _, ok := r.Player(token); !ok && strings.Contains(token, "-") {
		pair, err := core.ResolveLegacyToken(token, r.IDs())
		switch {
		case err == nil:
			return pair.Token(), nil
		case !errors.Is(err, core.ErrUnknownToken):
			return "", fmt.Errorf("%v: %w", token, err)
		}
	}

	p, err := r.Resolve(token)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

// ResolveTokens resolves every token and collects all failures.
func (r *Roster) ResolveTokens(tokens []string) ([]string, error) {
	resolved := make([]string, 0, len(tokens))
	var errs []error
	for _, token := range tokens {
		id, err := r.ResolveToken(token)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		resolved = append(resolved, id)
	}
	return resolved, errors.Join(errs...)
}
