package ledger

import "github.com/shopspring/decimal"

// matchTarget is the tuple update and delete locate a record by.
// Amount is signed: unlike Find, the match procedure never compares
// absolute values.
type matchTarget struct {
	Date        string
	Category    Category
	Amount      decimal.Decimal
	Description string
}

// match runs the four-stage narrowing filter over the document and
// returns the first surviving record together with its position in the
// original document order. Each stage filters the previous stage's
// survivors; the first stage that empties the set stops the procedure
// with a stage-specific error, and later stages never run.
func match(doc *Document, target matchTarget, action string) (Record, int, error) {
	survivors := make([]int, len(doc.Notes))
	for i := range doc.Notes {
		survivors[i] = i
	}

	stages := []struct {
		stage MatchStage
		value string
		keep  func(Record) bool
	}{
		{StageDate, target.Date, func(r Record) bool {
			return r.Date == target.Date
		}},
		{StageCategory, string(target.Category), func(r Record) bool {
			return r.Category == target.Category
		}},
		{StageAmount, target.Amount.String(), func(r Record) bool {
			return r.Amount().Equal(target.Amount)
		}},
		{StageDescription, target.Description, func(r Record) bool {
			return r.Description == target.Description
		}},
	}

	for _, st := range stages {
		var next []int
		for _, idx := range survivors {
			if st.keep(doc.Notes[idx]) {
				next = append(next, idx)
			}
		}
		if len(next) == 0 {
			return Record{}, 0, &MatchError{Stage: st.stage, Value: st.value, Action: action}
		}
		survivors = next
	}

	// Records indistinguishable by all four fields resolve to the
	// earliest-inserted one.
	pos := survivors[0]
	return doc.Notes[pos], pos, nil
}
