package client

import (
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"blockdrop/tetris"
)

func emptyBoard() [visibleRows][tetris.Cols]string {
	want := [visibleRows][tetris.Cols]string{}
	for y := range want {
		for x := range want[y] {
			want[y][x] = emptyCell
		}
	}
	return want
}

func TestBoard(t *testing.T) {
	blueCell := "\x1b[7m\x1b[34m[]\x1b[0m"
	redCell := "\x1b[7m\x1b[31m[]\x1b[0m"

	t.Run("piece in the hidden rows only shows its ghost", func(t *testing.T) {
		s := tetris.NewTestGame(tetris.NewTestTetris(tetris.J)).Snapshot()
		want := emptyBoard()
		want[18][3] = ghostCell
		want[19][3] = ghostCell
		want[19][4] = ghostCell
		want[19][5] = ghostCell
		if got := board(s); !reflect.DeepEqual(got, want) {
			t.Errorf("want %v, got %v", want, got)
		}
	})

	t.Run("piece and stack", func(t *testing.T) {
		tts := tetris.NewTestTetris(tetris.J)
		tts.Grid.SetColor(0, 21, tetris.Red)
		s := tetris.NewTestGame(tts).Snapshot()
		s.Piece.Row = 10
		s.ShowGhost = false
		want := emptyBoard()
		want[19][0] = redCell
		want[8][3] = blueCell
		want[9][3] = blueCell
		want[9][4] = blueCell
		want[9][5] = blueCell
		if got := board(s); !reflect.DeepEqual(got, want) {
			t.Errorf("want %v, got %v", want, got)
		}
	})

	t.Run("piece hidden once the game is over", func(t *testing.T) {
		tts := tetris.NewTestTetris(tetris.J)
		tts.Grid.SetColor(0, 21, tetris.Red)
		tts.Piece.Row = 10
		want := emptyBoard()
		want[19][0] = redCell

		for _, state := range []tetris.State{tetris.Done, tetris.Menu} {
			s := tetris.NewTestGame(tts).Snapshot()
			s.State = state
			s.Paused = false
			if got := board(s); !reflect.DeepEqual(got, want) {
				t.Errorf("%v: want %v, got %v", state, want, got)
			}
		}
	})

	t.Run("paused menu keeps the piece", func(t *testing.T) {
		tts := tetris.NewTestTetris(tetris.J)
		tts.Piece.Row = 10
		game := tetris.NewTestGame(tts)
		game.Action(tetris.Pause)
		s := game.Snapshot()
		if s.State != tetris.Menu || !s.Paused {
			t.Fatalf("wanted a paused menu, got %v paused=%t", s.State, s.Paused)
		}
		want := emptyBoard()
		want[8][3] = blueCell
		want[9][3] = blueCell
		want[9][4] = blueCell
		want[9][5] = blueCell
		if got := board(s); !reflect.DeepEqual(got, want) {
			t.Errorf("want %v, got %v", want, got)
		}
	})

	t.Run("menu before the first game shows an empty board", func(t *testing.T) {
		s := tetris.NewGame(&tetris.Options{Seed: 1}).Snapshot()
		if got := board(s); !reflect.DeepEqual(got, emptyBoard()) {
			t.Errorf("wanted an empty board, got %v", got)
		}
	})
}

func TestNextPiece(t *testing.T) {
	cyan := "\x1b[7m\x1b[36m[]\x1b[0m"
	yellow := "\x1b[7m\x1b[33m[]\x1b[0m"
	tests := []struct {
		kind tetris.Kind
		want []string
	}{
		{tetris.I, []string{"        ", cyan + cyan + cyan + cyan}},
		{tetris.O, []string{"  " + yellow + yellow + "  ", "  " + yellow + yellow + "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()
			if got := nextPiece(tt.kind); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRender(t *testing.T) {
	paused := tetris.NewGame(&tetris.Options{Seed: 1})
	paused.Select(1)
	paused.Action(tetris.Pause)

	tests := []struct {
		name     string
		snapshot *tetris.Snapshot
		status   string
		contains []string
		missing  []string
	}{
		{
			name:     "main menu",
			snapshot: tetris.NewGame(&tetris.Options{Seed: 1}).Snapshot(),
			contains: []string{"1) New Game", "2) High Score", "3) Exit", "Score: 0"},
			missing:  []string{"Next:", "Resume Game", "Paused"},
		},
		{
			name:     "paused menu",
			snapshot: paused.Snapshot(),
			contains: []string{"Paused", "1) New Game", "2) Resume Game", "Next:"},
		},
		{
			name:     "playing",
			snapshot: tetris.NewTestGame(tetris.NewTestTetris(tetris.T)).Snapshot(),
			status:   "High score: 10",
			contains: []string{"Next:", "Level: 0", "pause p", "High score: 10"},
			missing:  []string{"New Game"},
		},
	}
	tmpl, err := loadTemplate()
	if err != nil {
		t.Fatalf("unable to load template: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := &strings.Builder{}
			r := &render{writer: w, logger: slog.Default(), template: tmpl}
			r.draw(tt.snapshot, tt.status)
			out := w.String()
			if !strings.HasPrefix(out, resetPos) {
				t.Error("wanted the cursor reset before the frame")
			}
			if strings.Count(out, "\r\n") != visibleRows+2 {
				t.Errorf("wanted %d lines, got %d", visibleRows+2, strings.Count(out, "\r\n"))
			}
			for _, c := range tt.contains {
				if !strings.Contains(out, c) {
					t.Errorf("wanted %q in the frame", c)
				}
			}
			for _, m := range tt.missing {
				if strings.Contains(out, m) {
					t.Errorf("did not want %q in the frame", m)
				}
			}
		})
	}
}
