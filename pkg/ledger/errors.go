package ledger

import (
	"errors"
	"fmt"
)

// Validation and lookup failures surfaced by the engine. All of them
// are detected before any mutation, so a failed operation never leaves
// a partially updated document.
var (
	ErrMissingArguments = errors.New("missing required arguments")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyStore       = errors.New("the database is empty")
	ErrNoMatches        = errors.New("no matches")
)

// MatchStage identifies one stage of the match procedure.
type MatchStage int

const (
	StageDate MatchStage = iota
	StageCategory
	StageAmount
	StageDescription
)

// String returns the field name the stage filters on.
func (s MatchStage) String() string {
	switch s {
	case StageDate:
		return "date"
	case StageCategory:
		return "category"
	case StageAmount:
		return "amount"
	case StageDescription:
		return "description"
	}
	return "unknown"
}

// MatchError reports that a match stage left no surviving records.
// Later stages are never attempted once one stage fails.
type MatchError struct {
	Stage  MatchStage
	Value  string // the target value the failing stage compared against
	Action string // "update" or "delete", for user-facing messages
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("no matches with %s %q to %s", e.Stage, e.Value, e.Action)
}

// Is makes every MatchError satisfy errors.Is(err, ErrNoMatches).
func (e *MatchError) Is(target error) bool {
	return target == ErrNoMatches
}
