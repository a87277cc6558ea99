package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"blockdrop/tetris"

	"github.com/eiannone/keyboard"
)

// frameRate is how often the game clock advances and the screen is redrawn.
const frameRate = 16 * time.Millisecond

const scoreTimeout = 3 * time.Second

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time { return t.ticker.C }
func (t *wrappedTicker) Stop()               { t.ticker.Stop() }

// ScoreKeeper stores the best score across sessions.
// Submit reports whether the score became the new high score.
type ScoreKeeper interface {
	HighScore(ctx context.Context) (int64, error)
	Submit(ctx context.Context, gameID string, score int64) (bool, error)
}

type renderer interface {
	draw(s *tetris.Snapshot, status string)
}

type Client struct {
	game   *tetris.Game
	render renderer
	scores ScoreKeeper
	logger *slog.Logger
	kbCh   <-chan keyboard.KeyEvent
	ticker Ticker
	status string
	last   time.Time
}

type Options struct {
	Writer  io.Writer
	Seed    uint64
	NoGhost bool

	// Scores is optional. Without it the high score lives only in memory.
	Scores ScoreKeeper
}

func New(l *slog.Logger, o *Options) (*Client, error) {
	w := o.Writer
	if w == nil {
		w = os.Stdout
	}
	r, err := newRender(w, l)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Client{
		game:   tetris.NewGame(&tetris.Options{Seed: o.Seed, NoGhost: o.NoGhost}),
		render: r,
		scores: o.Scores,
		logger: l,
		kbCh:   kb,
		ticker: newWrappedTicker(frameRate),
	}, nil
}

// Close stops the clock and gives the terminal back.
func (c *Client) Close() {
	c.ticker.Stop()
	if err := keyboard.Close(); err != nil {
		c.logger.Error("unable to close keyboard", slog.String("error", err.Error()))
	}
}

// Start runs the game until the player exits, Ctrl-C is pressed or ctx is
// done. It is the only goroutine touching the game.
func (c *Client) Start(ctx context.Context) {
	c.loadHighScore(ctx)
	c.draw()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-c.ticker.C():
			if c.last.IsZero() {
				c.last = now
			}
			dt := now.Sub(c.last)
			c.last = now
			c.update(ctx, func() { c.game.Tick(dt) })
		case event, ok := <-c.kbCh:
			if !ok {
				c.logger.Error("keyboard events channel closed unexpectedly")
				return
			}
			if event.Err != nil {
				c.logger.Error("keyboard event error", slog.String("error", event.Err.Error()))
				return
			}
			if event.Key == keyboard.KeyCtrlC {
				return
			}
			if !c.handleKey(ctx, event) {
				return
			}
		}
	}
}

// handleKey applies a key press and reports whether the client keeps running.
func (c *Client) handleKey(ctx context.Context, event keyboard.KeyEvent) bool {
	if c.game.State() == tetris.Menu && event.Rune >= '1' && event.Rune <= '9' {
		switch c.game.Select(int(event.Rune - '0')) {
		case tetris.StartGame:
			c.status = ""
			c.logger.Info("new game", slog.String("game_id", c.game.ID()))
		case tetris.ResumeGame:
			c.status = ""
		case tetris.HighScore:
			c.status = fmt.Sprintf("High score: %d", c.game.HighScore())
		case tetris.Exit:
			return false
		}
		c.draw()
		return true
	}
	a := keyAction(event)
	if a == "" {
		return true
	}
	c.update(ctx, func() { c.game.Action(a) })
	return true
}

func keyAction(event keyboard.KeyEvent) tetris.Action {
	switch {
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.MoveDown
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'e':
		return tetris.RotateRight
	case event.Rune == 'q':
		return tetris.RotateLeft
	case event.Key == keyboard.KeySpace:
		return tetris.DropDown
	case event.Rune == 'g':
		return tetris.ToggleGhost
	case event.Key == keyboard.KeyEsc || event.Rune == 'p':
		return tetris.Pause
	}
	return ""
}

// update runs f against the game, submits the score when f finished the
// game and redraws the screen.
func (c *Client) update(ctx context.Context, f func()) {
	before := c.game.State()
	f()
	if before == tetris.Play && c.game.State() == tetris.Done {
		c.submit(ctx)
	}
	c.draw()
}

func (c *Client) draw() {
	c.render.draw(c.game.Snapshot(), c.status)
}

func (c *Client) loadHighScore(ctx context.Context) {
	if c.scores == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, scoreTimeout)
	defer cancel()
	hs, err := c.scores.HighScore(ctx)
	if err != nil {
		c.logger.Warn("unable to load high score", slog.String("error", err.Error()))
		return
	}
	c.game.SetHighScore(int(hs))
}

func (c *Client) submit(ctx context.Context) {
	s := c.game.Snapshot()
	c.logger.Info("game over",
		slog.String("game_id", s.ID),
		slog.Int("score", s.Stats.Score),
		slog.Int("lines", s.Stats.LinesCleared),
		slog.Int("level", s.Stats.Level),
	)
	if c.scores == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, scoreTimeout)
	defer cancel()
	best, err := c.scores.Submit(ctx, s.ID, int64(s.Stats.Score))
	if err != nil {
		c.logger.Error("unable to submit score", slog.String("game_id", s.ID), slog.String("error", err.Error()))
		c.status = "Score not saved"
		return
	}
	if best {
		c.status = "New high score!"
	}
}
