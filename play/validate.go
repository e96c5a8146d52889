package play

import (
	"github.com/ezBadminton/racquet/core"
	"github.com/ezBadminton/racquet/score"
)

// ValidateResult checks an entered result by the rules of the format.
// Set based formats need valid best of 3 sets, stopped matches and
// the individual league may end before the deciding set. Point formats
// only need non-negative points. A forced draw is always valid.
func ValidateResult(format core.Format, result Result) error {
	if _, ok := format.(core.AmericanoFormat); ok {
		return score.ValidatePoints(result.Points1, result.Points2, 0)
	}
	if result.ForceDraw {
		return nil
	}

	settings := score.DefaultSettings()
	if f, ok := format.(core.ClassicFormat); ok && f.Individual || result.Incomplete {
		return score.ValidatePartial(result.Sets, settings)
	}
	return score.Validate(result.Sets, settings)
}
