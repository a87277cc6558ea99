package tetris

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	MoveLeft    Action = "left"      // Moves the Tetromino one step to the left.
	MoveRight   Action = "right"     // Moves the Tetromino one step to the right.
	MoveDown    Action = "down"      // Moves the Tetromino one step down, locking it when blocked.
	DropDown    Action = "drop"      // Drops the Tetromino down the stack.
	RotateRight Action = "rotatecw"  // Rotates the Tetromino clockwise.
	RotateLeft  Action = "rotateccw" // Rotates the Tetromino counter-clockwise.
	ToggleGhost Action = "ghost"     // Shows or hides the ghost piece.
	Pause       Action = "pause"     // Pauses the game, resumes it from the pause menu, or leaves the game over screen.
)

type State int

const (
	Menu State = iota
	Play
	Done
)

func (s State) String() string {
	switch s {
	case Menu:
		return "menu"
	case Play:
		return "play"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

type MenuOption string

const (
	NoOption   MenuOption = ""
	StartGame  MenuOption = "New Game"
	ResumeGame MenuOption = "Resume Game"
	HighScore  MenuOption = "High Score"
	Exit       MenuOption = "Exit"
)

// Options configures a Game.
type Options struct {
	// Seed makes the piece sequence reproducible. Zero picks a random seed.
	Seed uint64

	// HighScore is the best score known before the first game.
	HighScore int

	// NoGhost starts with the ghost piece hidden.
	NoGhost bool
}

// Game drives a Tetris board through the Menu, Play and Done states.
type Game struct {
	tetris      *Tetris
	state       State
	paused      bool
	showGhost   bool
	accumulator time.Duration
	highScore   int
	id          string
	seed        uint64
	games       uint64
}

func NewGame(o *Options) *Game {
	if o == nil {
		o = &Options{}
	}
	seed := o.Seed
	if seed == 0 {
		seed = newSeed()
	}
	return &Game{
		tetris:    newTetris(seed),
		state:     Menu,
		showGhost: !o.NoGhost,
		highScore: o.HighScore,
		seed:      seed,
	}
}

// ID identifies the current game. It is empty until the first game starts.
func (g *Game) ID() string { return g.id }

func (g *Game) State() State { return g.state }

// Paused reports whether the menu was reached by pausing a game.
func (g *Game) Paused() bool { return g.paused }

func (g *Game) HighScore() int { return g.highScore }

// Tick advances the gravity clock by dt. Once the accumulated time reaches
// the current level's drop interval the piece moves down one row, and if it
// cannot it is locked. Only the Play state runs the clock.
func (g *Game) Tick(dt time.Duration) {
	if g.state != Play {
		return
	}
	g.accumulator += dt
	if g.accumulator >= DropInterval(g.tetris.Stats.Level) {
		g.accumulator = 0
		if !g.tetris.move(Down) {
			g.settle()
		}
	}
	if g.state == Play {
		g.tetris.updateShadow()
	}
}

// Action applies an input. Movement and rotation are only accepted while playing.
func (g *Game) Action(a Action) {
	if a == ToggleGhost {
		g.showGhost = !g.showGhost
		return
	}
	switch g.state {
	case Play:
		g.play(a)
	case Menu:
		if a == Pause && g.paused {
			g.resume()
		}
	case Done:
		if a == Pause {
			g.state = Menu
			g.paused = false
		}
	}
}

func (g *Game) play(a Action) {
	t := g.tetris
	switch a {
	case MoveLeft:
		t.move(Left)
	case MoveRight:
		t.move(Right)
	case MoveDown:
		if !t.move(Down) {
			g.settle()
		}
	case DropDown:
		t.drop()
		g.settle()
	case RotateRight:
		t.rotate(CW)
	case RotateLeft:
		t.rotate(CCW)
	case Pause:
		g.state = Menu
		g.paused = true
		return
	}
	if g.state == Play {
		t.updateShadow()
	}
}

// settle locks the active piece and clears full lines. The game ends when
// the next piece collided with the stack at spawn, even if the clear freed it.
func (g *Game) settle() {
	t := g.tetris
	ok := t.lockActivePiece()
	t.removeLines()
	if !ok {
		g.gameOver()
		return
	}
	t.updateShadow()
}

func (g *Game) gameOver() {
	g.state = Done
	g.paused = false
	if g.tetris.Stats.Score > g.highScore {
		g.highScore = g.tetris.Stats.Score
	}
}

// MenuOptions lists the options of the current menu, numbered from 1 with no gaps.
func (g *Game) MenuOptions() []MenuOption {
	if g.state != Menu {
		return nil
	}
	opts := []MenuOption{StartGame}
	if g.paused {
		opts = append(opts, ResumeGame)
	}
	return append(opts, HighScore, Exit)
}

// Select picks the n-th menu option, starting from 1. New Game and Resume
// Game are applied to the game; the chosen option is returned so the caller
// can act on High Score and Exit. Invalid choices return NoOption.
func (g *Game) Select(n int) MenuOption {
	opts := g.MenuOptions()
	if n < 1 || n > len(opts) {
		return NoOption
	}
	o := opts[n-1]
	switch o {
	case StartGame:
		g.newGame()
	case ResumeGame:
		g.resume()
	}
	return o
}

func (g *Game) newGame() {
	g.games++
	g.tetris = newTetris(g.seed + g.games)
	g.tetris.updateShadow()
	g.accumulator = 0
	g.paused = false
	g.state = Play
	g.id = uuid.NewString()
}

func (g *Game) resume() {
	g.paused = false
	g.state = Play
}

// SetHighScore raises the known high score, for example from durable storage.
func (g *Game) SetHighScore(score int) {
	if score > g.highScore {
		g.highScore = score
	}
}
