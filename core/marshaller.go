package core

import (
	"encoding/json"
	"maps"
)

// Tournament without its methods so that the default
// encoding does not recurse into MarshalJSON
type tournamentFields Tournament

func marshalTournament(t *Tournament) (map[string]any, error) {
	body, err := json.Marshal((*tournamentFields)(t))
	if err != nil {
		return nil, err
	}
	result := make(map[string]any)
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	if t.Format != nil {
		format, err := MarshalFormat(t.Format)
		if err != nil {
			return nil, err
		}
		result["format"] = json.RawMessage(format)
	}

	return result, nil
}

// marshalBracket summarizes the bracket divisions of a tournament
// as rounds of match ids, the same way the divisions are laid out
// in a bracket view.
func marshalBracket(division *Division) map[string]any {
	numRounds := division.NumRounds()
	rounds := make([][]string, numRounds)
	for r := range numRounds {
		round := division.Round(r + 1)
		ids := make([]string, len(round))
		for i, m := range round {
			ids[i] = m.ID
		}
		rounds[r] = ids
	}

	result := map[string]any{
		"division": division.ID,
		"rounds":   rounds,
	}
	if division.Type == DivisionConsolation {
		result["consolation"] = true
	}
	return result
}

func (t *Tournament) MarshalJSON() ([]byte, error) {
	anymap, err := marshalTournament(t)
	if err != nil {
		return nil, err
	}

	brackets := make([]map[string]any, 0)
	for _, d := range t.Divisions {
		if d.IsBracket() {
			brackets = append(brackets, marshalBracket(d))
		}
	}
	if len(brackets) > 0 {
		maps.Copy(anymap, map[string]any{"brackets": brackets})
	}

	return json.Marshal(anymap)
}

func (t *Tournament) UnmarshalJSON(data []byte) error {
	var fields struct {
		tournamentFields
		Format json.RawMessage `json:"format"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*t = Tournament(fields.tournamentFields)
	if len(fields.Format) > 0 {
		format, err := UnmarshalFormat(fields.Format)
		if err != nil {
			return err
		}
		t.Format = format
	}
	t.index = nil
	return nil
}
