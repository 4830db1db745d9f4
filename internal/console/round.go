package console

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess/internal/game"
)

// Result summarizes a finished round.
type Result struct {
	RoundID      string
	Difficulty   game.Difficulty
	Secret       int
	Attempts     int
	Won          bool
	NewHighScore bool
	Elapsed      time.Duration
}

// PlayRound drives exactly one play-through: banner, scores, difficulty
// menu, guess loop, and the win/loss report. On a new best the record is
// updated and persisted before the announcement.
func (c *Controller) PlayRound(ctx context.Context) (Result, error) {
	c.banner()
	c.showHighScores()

	secret := c.secret()
	d, err := c.chooseDifficulty()
	if err != nil {
		return Result{}, err
	}
	c.say("You have %d chances to guess the correct number.", d.Attempts())

	r := game.New(secret, d, c.clock.Now())
	log.Debug().Str("round", r.ID).Str("difficulty", string(d)).Int("allowed", r.Allowed).Msg("round started")

	for !r.Finished {
		guess, shown, err := c.readGuess()
		if err != nil {
			return Result{}, err
		}
		v, state, err := r.ApplyGuess(guess)
		if err != nil {
			return Result{}, err
		}
		log.Debug().Str("round", r.ID).Int("attempt", r.Taken).Str("verdict", string(v)).Str("state", state).Msg("guess")

		switch v {
		case game.VerdictCorrect:
			return c.reportWin(ctx, r)
		case game.VerdictGreater:
			c.say("Incorrect! The number is greater than %s.", shown)
		case game.VerdictLess:
			c.say("Incorrect! The number is less than %s.", shown)
		}
		if hint, ok := r.Hint(); ok {
			c.say("%s", hint)
		}
	}
	return c.reportLoss(r), nil
}

func (c *Controller) banner() {
	c.say("Welcome to the Number Guessing Game!")
	c.say("I'm thinking of a number between %d and %d.", game.MinSecret, game.MaxSecret)
	c.say("Your goal is to guess the correct number within the allowed chances.\n")
}

func (c *Controller) showHighScores() {
	c.say("\n--- Current High Scores ---")
	for _, d := range game.Difficulties() {
		if best, ok := c.record.Best(d); ok {
			c.say("%s: %d attempts", d.Title(), best)
		} else {
			c.say("%s: No score yet", d.Title())
		}
	}
	c.say("---------------------------\n")
}

func (c *Controller) chooseDifficulty() (game.Difficulty, error) {
	c.say("Please select the difficulty level:")
	for i, d := range game.Difficulties() {
		c.say("%d. %s (%d chances)", i+1, d.Title(), d.Attempts())
	}
	choice, err := c.ask("Enter your choice (1/2/3): ")
	if err != nil {
		return "", err
	}
	d, ok := game.ParseChoice(choice)
	if !ok {
		c.say("Invalid choice. Defaulting to %s difficulty.", d.Title())
		return d, nil
	}
	c.say("Great! You selected %s difficulty.", d.Title())
	return d, nil
}

// readGuess re-prompts until a well-formed integer arrives and returns it
// together with its canonical decimal text for feedback.
// Malformed lines never reach the round, so they cost no attempt.
// Integers beyond the int range are still guesses: they are clamped, which
// keeps their direction relative to any secret.
func (c *Controller) readGuess() (int, string, error) {
	for {
		line, err := c.ask("Enter your guess: ")
		if err != nil {
			return 0, "", err
		}
		text := strings.TrimSpace(line)
		n, err := strconv.Atoi(text)
		if err == nil {
			return n, strconv.Itoa(n), nil
		}
		if errors.Is(err, strconv.ErrRange) {
			if b, ok := new(big.Int).SetString(text, 10); ok {
				return n, b.String(), nil
			}
		}
		c.say("Please enter a valid integer.")
	}
}

func (c *Controller) reportWin(ctx context.Context, r *game.Round) (Result, error) {
	res := c.result(r)
	c.say("Congratulations! You guessed the correct number in %d attempts.", r.Taken)
	c.say("Time taken: %.2f seconds.", res.Elapsed.Seconds())

	if c.record.Submit(r.Difficulty, r.Taken) {
		if err := c.store.Save(ctx, c.record); err != nil {
			return res, fmt.Errorf("save high scores: %w", err)
		}
		res.NewHighScore = true
		log.Info().Str("round", r.ID).Str("difficulty", string(r.Difficulty)).Int("attempts", r.Taken).Msg("new high score saved")
		c.say("New High Score!")
		return res, nil
	}
	best, _ := c.record.Best(r.Difficulty)
	c.say("Current High Score for %s: %d attempts.", r.Difficulty.Title(), best)
	return res, nil
}

func (c *Controller) reportLoss(r *game.Round) Result {
	res := c.result(r)
	c.say("Sorry, you've run out of chances. The correct number was %d.", r.Secret)
	c.say("Time taken: %.2f seconds.", res.Elapsed.Seconds())

	if best, ok := c.record.Best(r.Difficulty); ok {
		c.say("High Score for %s: %d attempts.", r.Difficulty.Title(), best)
	} else {
		c.say("No High Score yet for %s.", r.Difficulty.Title())
	}
	log.Debug().Str("round", r.ID).Int("secret", r.Secret).Msg("round lost")
	return res
}

func (c *Controller) result(r *game.Round) Result {
	return Result{
		RoundID:    r.ID,
		Difficulty: r.Difficulty,
		Secret:     r.Secret,
		Attempts:   r.Taken,
		Won:        r.Won,
		Elapsed:    r.Elapsed(c.clock.Now()),
	}
}
