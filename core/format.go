package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownFormat = errors.New("unknown tournament format")

// A Format is one of the closed set of tournament formats.
//
// The variants are ClassicFormat, PairsFormat, AmericanoFormat,
// EliminationFormat and HybridFormat. Consumers switch over the
// concrete type.
type Format interface {
	FormatType() string
	isFormat()
}

const (
	FormatClassic     = "classic"
	FormatPairs       = "pairs"
	FormatAmericano   = "americano"
	FormatElimination = "elimination"
	FormatHybrid      = "hybrid"
)

// ClassicFormat is a league of individual players that
// change partners every round.
type ClassicFormat struct {
	// Individual scoring: single set matches count
	// for the full win points
	Individual bool `json:"individual,omitempty"`
}

// PairsFormat is a league of fixed pairs.
type PairsFormat struct{}

// AmericanoFormat is a point based rotation format.
// With Mexicano set, the pairings of the following rounds
// are derived from the standings.
type AmericanoFormat struct {
	Courts   int  `json:"courts,omitempty"`
	Mexicano bool `json:"mexicano,omitempty"`
}

// EliminationFormat is a single elimination bracket.
type EliminationFormat struct {
	Consolation bool `json:"consolation,omitempty"`
}

// HybridFormat is a group phase followed by an
// elimination playoff of the best of each group.
type HybridFormat struct {
	QualifiersPerGroup int  `json:"qualifiersPerGroup"`
	Consolation        bool `json:"consolation,omitempty"`
}

func (ClassicFormat) FormatType() string     { return FormatClassic }
func (PairsFormat) FormatType() string       { return FormatPairs }
func (AmericanoFormat) FormatType() string   { return FormatAmericano }
func (EliminationFormat) FormatType() string { return FormatElimination }
func (HybridFormat) FormatType() string      { return FormatHybrid }

func (ClassicFormat) isFormat()     {}
func (PairsFormat) isFormat()       {}
func (AmericanoFormat) isFormat()   {}
func (EliminationFormat) isFormat() {}
func (HybridFormat) isFormat()      {}

// PairedFormat reports whether the format's standings are
// kept per pair instead of per player.
func PairedFormat(f Format) bool {
	switch f.(type) {
	case PairsFormat, EliminationFormat, HybridFormat:
		return true
	}
	return false
}

// NewFormat returns the zero value variant of the given type name.
func NewFormat(formatType string) (Format, error) {
	switch formatType {
	case FormatClassic:
		return ClassicFormat{}, nil
	case FormatPairs:
		return PairsFormat{}, nil
	case FormatAmericano:
		return AmericanoFormat{}, nil
	case FormatElimination:
		return EliminationFormat{}, nil
	case FormatHybrid:
		return HybridFormat{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, formatType)
}

// MarshalFormat encodes the format with its type tag:
//
//	{"type": "americano", "courts": 2}
func MarshalFormat(f Format) ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	body, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["type"] = f.FormatType()
	return json.Marshal(fields)
}

// UnmarshalFormat decodes a type tagged format.
func UnmarshalFormat(data []byte) (Format, error) {
	if string(data) == "null" {
		return nil, nil
	}
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}

	var err error
	var f Format
	switch envelope.Type {
	case FormatClassic:
		var v ClassicFormat
		err = json.Unmarshal(data, &v)
		f = v
	case FormatPairs:
		f = PairsFormat{}
	case FormatAmericano:
		var v AmericanoFormat
		err = json.Unmarshal(data, &v)
		f = v
	case FormatElimination:
		var v EliminationFormat
		err = json.Unmarshal(data, &v)
		f = v
	case FormatHybrid:
		var v HybridFormat
		err = json.Unmarshal(data, &v)
		f = v
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, envelope.Type)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
