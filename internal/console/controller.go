// internal/console/controller.go
//
// Console front end for the guessing game.
// Responsibilities:
//   - Own the high-score record for the life of the process.
//   - Drive rounds over a line-oriented reader/writer pair (stdin/stdout).
//   - Ask to replay after each round; anything but "y" ends the session.
//
// The Controller is single-threaded: every prompt blocks until a line
// arrives. EOF on input ends the session as if the player declined.

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/guess/internal/game"
	"github.com/robalobadob/guess/internal/scores"
)

// ErrInputClosed is returned when input ends while a prompt is waiting.
var ErrInputClosed = errors.New("input closed")

const farewell = "Thanks for playing! Goodbye."

// Controller runs rounds and keeps the record in sync with its Store.
type Controller struct {
	in     *bufio.Reader
	out    io.Writer
	store  scores.Store
	record scores.Record
	clock  game.Clock
	secret func() int
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock used to time rounds.
func WithClock(c game.Clock) Option { return func(ct *Controller) { ct.clock = c } }

// WithSecret replaces the secret generator.
func WithSecret(f func() int) Option { return func(ct *Controller) { ct.secret = f } }

// New constructs a Controller that owns rec and persists improvements to st.
func New(in io.Reader, out io.Writer, st scores.Store, rec scores.Record, opts ...Option) *Controller {
	c := &Controller{
		in:     bufio.NewReader(in),
		out:    out,
		store:  st,
		record: rec.Clone(),
		clock:  game.RealClock{},
		secret: game.RandomSecret,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Record returns a copy of the current record.
func (c *Controller) Record() scores.Record { return c.record.Clone() }

// Run plays rounds until the player declines to continue or input ends.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if _, err := c.PlayRound(ctx); err != nil {
			if errors.Is(err, ErrInputClosed) {
				c.say("\n%s", farewell)
				return nil
			}
			return err
		}

		again, err := c.ask("Do you want to play again? (y/n): ")
		if err != nil {
			if errors.Is(err, ErrInputClosed) {
				c.say("\n%s", farewell)
				return nil
			}
			return err
		}
		if strings.ToLower(strings.TrimSpace(again)) != "y" {
			c.say("%s", farewell)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// ask writes prompt and returns the next line without its terminator.
// Lines of any length are accepted; a final line without a newline still counts.
func (c *Controller) ask(prompt string) (string, error) {
	_, _ = io.WriteString(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", ErrInputClosed
		}
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

// say writes one formatted line.
func (c *Controller) say(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format+"\n", args...)
}
