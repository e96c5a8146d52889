package core

import (
	"encoding/json"
	"testing"
)

func TestTournamentIndex(t *testing.T) {
	divisions, _ := GenerateBracket(PlayerSlice(4), true)
	tournament := NewTournament(divisions...)

	final := divisions[0].Round(2)[0]
	eq1 := tournament.Match(final.ID) == final
	eq2 := tournament.DivisionOf(final.ID) == divisions[0]
	eq3 := tournament.Match("unknown") == nil
	if !eq1 || !eq2 || !eq3 {
		t.Fatal("The match index does not resolve the matches")
	}

	added := NewMatch(3, single("x"), single("y"))
	divisions[1].Matches = append(divisions[1].Matches, added)
	if tournament.Match(added.ID) != added {
		t.Fatal("The index was not rebuilt for a new match")
	}
}

func TestTournamentClone(t *testing.T) {
	divisions, _ := GenerateBracket(PlayerSlice(7), true)
	tournament := NewTournament(divisions...)
	tournament.Format = EliminationFormat{Consolation: true}

	clone, err := tournament.Clone()
	if err != nil {
		t.Fatal(err)
	}

	byeMatch := clone.Divisions[0].Round(1)[0]
	eq1 := byeMatch.IsByeResolved()
	eq2 := byeMatch.ID == divisions[0].Round(1)[0].ID
	eq3 := clone.Format == EliminationFormat{Consolation: true}
	if !eq1 || !eq2 || !eq3 {
		t.Fatal("The clone lost tournament state")
	}

	byeMatch.Reset()
	if !divisions[0].Round(1)[0].IsByeResolved() {
		t.Fatal("Changing the clone changed the original")
	}
}

func TestFormatEnvelope(t *testing.T) {
	data, err := MarshalFormat(AmericanoFormat{Courts: 3, Mexicano: true})
	if err != nil {
		t.Fatal(err)
	}

	fields := make(map[string]any)
	json.Unmarshal(data, &fields)
	if fields["type"] != FormatAmericano {
		t.Fatal("The format envelope has no type tag")
	}

	format, err := UnmarshalFormat(data)
	if err != nil {
		t.Fatal(err)
	}
	americano, ok := format.(AmericanoFormat)
	if !ok || americano.Courts != 3 || !americano.Mexicano {
		t.Fatal("The format was not decoded into its variant")
	}

	if _, err := UnmarshalFormat([]byte(`{"type":"pozo"}`)); err == nil {
		t.Fatal("An unknown format was decoded")
	}
}
