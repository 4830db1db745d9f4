// internal/game/types.go
//
// Core type definitions for the guessing game engine.
// Defines:
//   - Difficulty: the three fixed presets (easy/medium/hard).
//   - Verdict: directional result of a single guess.
//   - Round: state for a single in-progress or finished play-through.

package game

import "time"

// Difficulty is one of the three fixed presets controlling attempts allowed.
// The string value doubles as the persisted record key.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists every preset in menu order.
func Difficulties() []Difficulty { return []Difficulty{Easy, Medium, Hard} }

// Attempts reports how many well-formed guesses the preset allows.
// Unknown values get the Medium budget.
func (d Difficulty) Attempts() int {
	switch d {
	case Easy:
		return 10
	case Hard:
		return 3
	default:
		return 5
	}
}

// Title is the capitalized display name ("Easy", "Medium", "Hard").
func (d Difficulty) Title() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	}
	return string(d)
}

// Valid reports whether d is one of the three presets.
func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}

// Verdict is the evaluation result for a single guess.
//   - "correct": guess equals the secret.
//   - "greater": the secret is greater than the guess.
//   - "less":    the secret is less than the guess.
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictGreater Verdict = "greater"
	VerdictLess    Verdict = "less"
)

// Round holds the state of a single play-through.
type Round struct {
	ID         string     // Unique round identifier (uuid), used in logs.
	Secret     int        // The number to guess, in [MinSecret, MaxSecret].
	Difficulty Difficulty // Chosen preset.
	Allowed    int        // Attempts allowed by the preset.
	Taken      int        // Well-formed guesses made so far.
	StartedAt  time.Time  // When the guess loop began.
	Finished   bool       // True once the round is over (won or lost).
	Won        bool       // True if the round finished with a correct guess.
}
