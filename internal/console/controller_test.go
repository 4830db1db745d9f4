package console

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guess/internal/game"
	"github.com/robalobadob/guess/internal/scores"
)

// tickingClock advances a fixed step on every read, so each round
// measures a predictable, non-zero elapsed time.
type tickingClock struct {
	fake *game.FakeClock
	step time.Duration
}

func (c *tickingClock) Now() time.Time {
	now := c.fake.Now()
	c.fake.Advance(c.step)
	return now
}

func newController(t *testing.T, input string, secret int, st scores.Store, rec scores.Record) (*Controller, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	clk := &tickingClock{fake: game.NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)), step: 1250 * time.Millisecond}
	c := New(strings.NewReader(input), out, st, rec,
		WithClock(clk),
		WithSecret(func() int { return secret }),
	)
	return c, out
}

func lines(s ...string) string { return strings.Join(s, "\n") + "\n" }

func TestPlayRound_MediumWinSetsHighScore(t *testing.T) {
	ctx := context.Background()
	st := scores.NewFileStore(filepath.Join(t.TempDir(), "high_scores.json"))
	prior := scores.Default()
	prior.Set(game.Easy, 6)

	c, out := newController(t, lines("2", "10", "90", "50"), 50, st, prior)
	res, err := c.PlayRound(ctx)
	require.NoError(t, err)

	assert.True(t, res.Won)
	assert.True(t, res.NewHighScore)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, game.Medium, res.Difficulty)

	text := out.String()
	assert.Contains(t, text, "Great! You selected Medium difficulty.")
	assert.Contains(t, text, "You have 5 chances to guess the correct number.")
	assert.Contains(t, text, "Incorrect! The number is greater than 10.")
	assert.Contains(t, text, "Incorrect! The number is less than 90.")
	assert.Contains(t, text, "Hint: The number is even.")
	assert.Contains(t, text, "Congratulations! You guessed the correct number in 3 attempts.")
	assert.Contains(t, text, "Time taken: 1.25 seconds.")
	assert.Contains(t, text, "New High Score!")

	saved, err := st.Load(ctx)
	require.NoError(t, err)
	want := scores.Default()
	want.Set(game.Easy, 6)
	want.Set(game.Medium, 3)
	assert.True(t, saved.Equal(want))
	assert.True(t, c.Record().Equal(want))
}

func TestPlayRound_HardLossLeavesRecordAlone(t *testing.T) {
	st := scores.NewMemoryStore()
	c, out := newController(t, lines("3", "1", "2", "3"), 99, st, scores.Default())

	res, err := c.PlayRound(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Won)
	assert.Equal(t, 3, res.Attempts)

	text := out.String()
	assert.Equal(t, 3, strings.Count(text, "Incorrect! The number is greater than"))
	assert.Contains(t, text, "Sorry, you've run out of chances. The correct number was 99.")
	assert.Contains(t, text, "No High Score yet for Hard.")
	assert.Equal(t, 0, st.Saves())
	assert.True(t, c.Record().Equal(scores.Default()))
}

func TestPlayRound_LossShowsExistingBest(t *testing.T) {
	rec := scores.Default()
	rec.Set(game.Hard, 2)
	c, out := newController(t, lines("3", "1", "2", "3"), 99, scores.NewMemoryStore(), rec)

	_, err := c.PlayRound(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "High Score for Hard: 2 attempts.")
}

func TestPlayRound_EmptyChoiceDefaultsToMedium(t *testing.T) {
	c, out := newController(t, lines("", "1", "2", "3", "4", "5"), 99, scores.NewMemoryStore(), scores.Default())

	res, err := c.PlayRound(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.Medium, res.Difficulty)
	assert.Equal(t, 5, res.Attempts)
	assert.Contains(t, out.String(), "Invalid choice. Defaulting to Medium difficulty.")
	assert.Contains(t, out.String(), "You have 5 chances to guess the correct number.")
	assert.Contains(t, out.String(), "Hint: The number is between 89 and 100.")
}

func TestPlayRound_MalformedGuessIsFree(t *testing.T) {
	c, out := newController(t, lines("3", "abc", "", "4.5", " 7 ", "x", "8", "9"), 9, scores.NewMemoryStore(), scores.Default())

	res, err := c.PlayRound(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 4, strings.Count(out.String(), "Please enter a valid integer."))
}

func TestPlayRound_WorseWinKeepsBest(t *testing.T) {
	st := scores.NewMemoryStore()
	rec := scores.Default()
	rec.Set(game.Easy, 1)
	c, out := newController(t, lines("1", "40", "42"), 42, st, rec)

	res, err := c.PlayRound(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.False(t, res.NewHighScore)
	assert.Contains(t, out.String(), "Current High Score for Easy: 1 attempts.")
	assert.Equal(t, 0, st.Saves())
}

func TestPlayRound_ShowsScoreBlock(t *testing.T) {
	rec := scores.Default()
	rec.Set(game.Medium, 4)
	c, out := newController(t, lines("2", "50"), 50, scores.NewMemoryStore(), rec)

	_, err := c.PlayRound(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), lines(
		"--- Current High Scores ---",
		"Easy: No score yet",
		"Medium: 4 attempts",
		"Hard: No score yet",
		"---------------------------",
	))
}

func TestRun_ReplaysAndKeepsMinimum(t *testing.T) {
	ctx := context.Background()
	st := scores.NewMemoryStore()
	input := lines(
		"2", "1", "2", "80", "y", // medium win in 3
		"2", "80", " Y ", // medium win in 1
		"2", "1", "80", "n", // medium win in 2, worse
	)
	c, out := newController(t, input, 80, st, scores.Default())

	require.NoError(t, c.Run(ctx))

	best, ok := c.Record().Best(game.Medium)
	require.True(t, ok)
	assert.Equal(t, 1, best)
	assert.Equal(t, 2, st.Saves())
	assert.Equal(t, 3, strings.Count(out.String(), "Welcome to the Number Guessing Game!"))
	assert.True(t, strings.HasSuffix(out.String(), "Thanks for playing! Goodbye.\n"))
}

func TestRun_EOFEndsGracefully(t *testing.T) {
	c, out := newController(t, lines("1", "3"), 50, scores.NewMemoryStore(), scores.Default())

	require.NoError(t, c.Run(context.Background()))
	assert.True(t, strings.HasSuffix(out.String(), "Thanks for playing! Goodbye.\n"))
}

type failingStore struct{ scores.Store }

func (failingStore) Save(context.Context, scores.Record) error { return errors.New("disk full") }

func TestPlayRound_SaveFailurePropagates(t *testing.T) {
	c, _ := newController(t, lines("1", "5"), 5, failingStore{scores.NewMemoryStore()}, scores.Default())

	_, err := c.PlayRound(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestPlayRound_OverlongLineIsMalformed(t *testing.T) {
	c, out := newController(t, lines("3", strings.Repeat("x", 70000), "50"), 50, scores.NewMemoryStore(), scores.Default())

	res, err := c.PlayRound(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, 1, strings.Count(out.String(), "Please enter a valid integer."))
}

func TestPlayRound_OverlongDigitsCountAsAttempt(t *testing.T) {
	c, out := newController(t, lines("3", strings.Repeat("9", 70000), "50"), 50, scores.NewMemoryStore(), scores.Default())

	res, err := c.PlayRound(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, 2, res.Attempts)
	assert.NotContains(t, out.String(), "Please enter a valid integer.")
}

func TestPlayRound_HugeIntegersAreGuesses(t *testing.T) {
	c, out := newController(t, lines("3", "99999999999999999999", "-0099999999999999999999", "+50"), 50, scores.NewMemoryStore(), scores.Default())

	res, err := c.PlayRound(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, 3, res.Attempts)

	text := out.String()
	assert.Contains(t, text, "Incorrect! The number is less than 99999999999999999999.")
	assert.Contains(t, text, "Incorrect! The number is greater than -99999999999999999999.")
	assert.NotContains(t, text, "Please enter a valid integer.")
}

func TestPlayRound_FeedbackUsesCanonicalNumber(t *testing.T) {
	c, out := newController(t, lines("1", "007", "+60", "50"), 50, scores.NewMemoryStore(), scores.Default())

	_, err := c.PlayRound(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Incorrect! The number is greater than 7.")
	assert.Contains(t, out.String(), "Incorrect! The number is less than 60.")
}

func TestRun_LastLineWithoutNewline(t *testing.T) {
	c, out := newController(t, "2\n50\nn", 50, scores.NewMemoryStore(), scores.Default())

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "New High Score!")
	assert.True(t, strings.HasSuffix(out.String(), "Do you want to play again? (y/n): Thanks for playing! Goodbye.\n"))
}
