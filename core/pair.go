package core

import (
	"errors"
	"slices"
	"strings"
)

// ByeID is the sentinel participant id for a free win.
const ByeID = "BYE"

// PairSeparator joins the two player ids of a pair token.
const PairSeparator = "::"

var (
	ErrEmptyToken         = errors.New("empty participant token")
	ErrMalformedToken     = errors.New("malformed pair token")
	ErrUnknownToken       = errors.New("participant token matches no roster entry")
	ErrAmbiguousPairToken = errors.New("legacy pair token has more than one interpretation")
)

// A Pair occupies one side of a Match.
//
// A Pair represents one of 3 things:
//   - An actual participant: a single player (P2 empty)
//     or a team of two players
//   - A not yet determined participant: both ids are
//     empty and the Placeholder names where the
//     participant will come from (e.g. "Winner R1.3")
//   - A free win for the opponent: P1 is ByeID
type Pair struct {
	P1          string `json:"p1Id"`
	P2          string `json:"p2Id,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Returns the pair that stands for a free win
func ByePair() Pair {
	return Pair{P1: ByeID}
}

// Returns a placeholder pair that waits for a participant
func PlaceholderPair(label string) Pair {
	return Pair{Placeholder: label}
}

// IsEmpty is true when no participant has been assigned yet.
func (p Pair) IsEmpty() bool {
	return p.P1 == "" && p.P2 == ""
}

func (p Pair) IsBye() bool {
	return p.P1 == ByeID
}

// IsReal is true when the pair holds at least one actual player.
func (p Pair) IsReal() bool {
	return !p.IsEmpty() && !p.IsBye()
}

// Returns the ids of the actual players in the pair
func (p Pair) Players() []string {
	if !p.IsReal() {
		return nil
	}
	players := make([]string, 0, 2)
	if p.P1 != "" {
		players = append(players, p.P1)
	}
	if p.P2 != "" {
		players = append(players, p.P2)
	}
	return players
}

// Same reports whether both pairs hold the same players,
// regardless of their order. Empty pairs are never the same.
func (p Pair) Same(other Pair) bool {
	if p.IsEmpty() || other.IsEmpty() {
		return false
	}
	if p.P1 == other.P1 && p.P2 == other.P2 {
		return true
	}
	return p.P1 == other.P2 && p.P2 == other.P1
}

// HasPlayer reports whether the given player is part of the pair.
func (p Pair) HasPlayer(id string) bool {
	return p.IsReal() && slices.Contains(p.Players(), id)
}

// Returns the pair without its placeholder label
func (p Pair) Filled() Pair {
	return Pair{P1: p.P1, P2: p.P2}
}

// Token encodes the pair in the canonical participant wire format.
func (p Pair) Token() string {
	if p.P2 == "" {
		return p.P1
	}
	return p.P1 + PairSeparator + p.P2
}

func (p Pair) String() string {
	switch {
	case p.IsBye():
		return ByeID
	case p.IsEmpty() && p.Placeholder != "":
		return "[" + p.Placeholder + "]"
	case p.IsEmpty():
		return "[Empty]"
	case p.P2 == "":
		return p.P1
	}
	return p.P1 + " / " + p.P2
}

// Key returns an order independent identity of the pair
// which is usable as a map key.
func (p Pair) Key() string {
	a, b := p.P1, p.P2
	if b != "" && b < a {
		a, b = b, a
	}
	if b == "" {
		return a
	}
	return a + PairSeparator + b
}

// ParseParticipant decodes a participant token.
//
// "id1::id2" is a pair, any other token is a single
// player id. Hyphens are never interpreted because
// player ids can contain them (see ResolveLegacyToken).
func ParseParticipant(token string) (Pair, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Pair{}, ErrEmptyToken
	}
	if token == ByeID {
		return ByePair(), nil
	}

	before, after, found := strings.Cut(token, PairSeparator)
	if !found {
		return Pair{P1: token}, nil
	}

	before = strings.TrimSpace(before)
	after = strings.TrimSpace(after)
	if before == "" || after == "" || strings.Contains(after, PairSeparator) {
		return Pair{}, ErrMalformedToken
	}

	return Pair{P1: before, P2: after}, nil
}

// ResolveLegacyToken decodes a participant token that might use
// the legacy "id1-id2" pair encoding.
//
// A hyphen split is only accepted when the result is unambiguous
// with respect to the given roster of player ids:
//   - a token that is itself a roster id is a single player
//   - exactly one hyphen position producing two roster ids is a pair
//   - no valid interpretation returns ErrUnknownToken
//   - more than one interpretation returns ErrAmbiguousPairToken
func ResolveLegacyToken(token string, roster []string) (Pair, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Pair{}, ErrEmptyToken
	}
	if strings.Contains(token, PairSeparator) {
		return ParseParticipant(token)
	}

	interpretations := make([]Pair, 0, 2)
	if slices.Contains(roster, token) {
		interpretations = append(interpretations, Pair{P1: token})
	}

	for i, r := range token {
		if r != '-' {
			continue
		}
		a, b := token[:i], token[i+1:]
		if slices.Contains(roster, a) && slices.Contains(roster, b) {
			interpretations = append(interpretations, Pair{P1: a, P2: b})
		}
	}

	switch len(interpretations) {
	case 0:
		return Pair{}, ErrUnknownToken
	case 1:
		return interpretations[0], nil
	}
	return Pair{}, ErrAmbiguousPairToken
}
