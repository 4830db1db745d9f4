// internal/game/engine.go
//
// Core game engine for a single guessing round.
// Responsibilities:
//   - Create rounds with a secret in [1,100] and the preset's attempt budget.
//   - Map the difficulty menu choice to a preset (unrecognized → Medium).
//   - Apply guesses: count the attempt, compare, report direction.
//   - Track state transitions: playing → won/lost.
//   - Produce the one-shot hints at exactly the 2nd and 4th attempt.
//
// Only well-formed integers reach ApplyGuess; parsing free text is the
// caller's job so malformed input never costs an attempt.
package game

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	MinSecret = 1
	MaxSecret = 100

	// hintBand is the half-width of the range revealed by the 4th-attempt hint.
	hintBand = 10
)

// ErrRoundFinished is returned when a guess is applied to a finished round.
var ErrRoundFinished = errors.New("round finished")

// randSource feeds RandomSecret.
var randSource io.Reader = rand.Reader

// New constructs a round for difficulty d.
// If secret is outside [MinSecret, MaxSecret], a random one is drawn.
func New(secret int, d Difficulty, now time.Time) *Round {
	if secret < MinSecret || secret > MaxSecret {
		secret = RandomSecret()
	}
	if !d.Valid() {
		d = Medium
	}
	return &Round{
		ID:         uuid.NewString(),
		Secret:     secret,
		Difficulty: d,
		Allowed:    d.Attempts(),
		StartedAt:  now,
	}
}

// ParseChoice maps a menu answer to a preset.
// "1" → Easy, "2" → Medium, "3" → Hard. Anything else yields (Medium, false);
// the false tells the caller to announce the fallback.
func ParseChoice(s string) (Difficulty, bool) {
	switch s {
	case "1":
		return Easy, true
	case "2":
		return Medium, true
	case "3":
		return Hard, true
	}
	return Medium, false
}

// ApplyGuess counts one attempt and compares guess to the secret.
// Returns the verdict and the new state string ("playing"/"won"/"lost").
//
// State transitions:
//   - Correct guess → Finished = true, Won = true.
//   - Else if Taken reaches Allowed → Finished = true (loss).
func (r *Round) ApplyGuess(guess int) (Verdict, string, error) {
	if r.Finished {
		return "", r.State(), ErrRoundFinished
	}
	r.Taken++

	var v Verdict
	switch {
	case guess == r.Secret:
		v = VerdictCorrect
		r.Finished, r.Won = true, true
	case guess < r.Secret:
		v = VerdictGreater
	default:
		v = VerdictLess
	}
	if !r.Finished && r.Taken >= r.Allowed {
		r.Finished = true
	}
	return v, r.State(), nil
}

// State reports a coarse string representation of the round.
func (r *Round) State() string {
	if r.Finished {
		if r.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// Elapsed is the time since the guess loop started.
func (r *Round) Elapsed(now time.Time) time.Duration { return now.Sub(r.StartedAt) }

// Hint returns the clue for the current attempt count, if any.
// Only meaningful after a wrong guess.
func (r *Round) Hint() (string, bool) { return HintFor(r.Secret, r.Taken) }

// HintFor implements the hint policy. Hints are tied to exact attempt counts:
//   - 2: parity of the secret.
//   - 4: inclusive band [secret-10, secret+10] clipped to [MinSecret, MaxSecret].
func HintFor(secret, attempts int) (string, bool) {
	switch attempts {
	case 2:
		if secret%2 == 0 {
			return "Hint: The number is even.", true
		}
		return "Hint: The number is odd.", true
	case 4:
		lo, hi := Band(secret)
		return fmt.Sprintf("Hint: The number is between %d and %d.", lo, hi), true
	}
	return "", false
}

// Band returns the range revealed by the 4th-attempt hint.
func Band(secret int) (lo, hi int) {
	return max(MinSecret, secret-hintBand), min(MaxSecret, secret+hintBand)
}

// RandomSecret returns a uniformly random integer in [MinSecret, MaxSecret].
func RandomSecret() int {
	nBig, err := rand.Int(randSource, big.NewInt(MaxSecret-MinSecret+1))
	if err != nil {
		fallback := (MinSecret + MaxSecret) / 2
		log.Error().Err(err).Int("secret", fallback).Msg("random source failed, using fixed secret")
		return fallback
	}
	return int(nBig.Int64()) + MinSecret
}
