package tetris

import (
	"reflect"
	"testing"
	"time"
)

func TestMenu(t *testing.T) {
	game := NewGame(&Options{Seed: 3})
	if game.State() != Menu || game.Paused() {
		t.Fatalf("wanted a new game to start in the menu, got %v paused=%t", game.State(), game.Paused())
	}
	wantOptions := []MenuOption{StartGame, HighScore, Exit}
	if !reflect.DeepEqual(game.MenuOptions(), wantOptions) {
		t.Errorf("wanted options %v, got %v", wantOptions, game.MenuOptions())
	}

	for _, n := range []int{0, 4, -1} {
		if o := game.Select(n); o != NoOption {
			t.Errorf("wanted option %d to be invalid, got %q", n, o)
		}
	}
	if o := game.Select(2); o != HighScore || game.State() != Menu {
		t.Errorf("wanted High Score to keep the menu open, got %q in %v", o, game.State())
	}

	if o := game.Select(1); o != StartGame {
		t.Errorf("wanted New Game, got %q", o)
	}
	if game.State() != Play {
		t.Errorf("wanted play state, got %v", game.State())
	}
	if game.ID() == "" {
		t.Error("wanted the new game to have an id")
	}
	if game.MenuOptions() != nil {
		t.Errorf("wanted no menu options while playing, got %v", game.MenuOptions())
	}
}

func TestPauseAndResume(t *testing.T) {
	game := NewGame(&Options{Seed: 3})
	game.Select(1)
	game.Action(MoveLeft)
	game.Tick(300 * time.Millisecond)
	before := game.Snapshot()

	game.Action(Pause)
	if game.State() != Menu || !game.Paused() {
		t.Fatalf("wanted paused menu, got %v paused=%t", game.State(), game.Paused())
	}
	wantOptions := []MenuOption{StartGame, ResumeGame, HighScore, Exit}
	if !reflect.DeepEqual(game.MenuOptions(), wantOptions) {
		t.Errorf("wanted options %v, got %v", wantOptions, game.MenuOptions())
	}

	// the menu ignores movement and gravity.
	game.Action(MoveRight)
	game.Action(RotateRight)
	game.Action(DropDown)
	game.Tick(10 * time.Second)
	if got := game.Snapshot(); got.Piece != before.Piece || !reflect.DeepEqual(got.Cells, before.Cells) {
		t.Errorf("wanted the paused game untouched, got %+v", got.Piece)
	}

	if o := game.Select(2); o != ResumeGame || game.State() != Play {
		t.Fatalf("wanted to resume, got %q in %v", o, game.State())
	}
	after := game.Snapshot()
	if after.Piece != before.Piece || after.ID != before.ID {
		t.Errorf("wanted resume to keep the game, got %+v", after.Piece)
	}

	game.Action(Pause)
	game.Action(Pause)
	if game.State() != Play || game.Paused() {
		t.Errorf("wanted pause to resume from the paused menu, got %v paused=%t", game.State(), game.Paused())
	}

	// the accumulated 300ms survived the pause.
	game.Tick(700 * time.Millisecond)
	if got := game.Snapshot().Piece.Row; got != before.Piece.Row+1 {
		t.Errorf("wanted the piece on row %d, got %d", before.Piece.Row+1, got)
	}
}

func TestGravity(t *testing.T) {
	game := NewGame(&Options{Seed: 9})
	game.Tick(5 * time.Second)
	if game.Snapshot().Piece.Row != 0 {
		t.Error("wanted no gravity in the menu")
	}

	game.Select(1)
	game.Tick(999 * time.Millisecond)
	if got := game.Snapshot().Piece.Row; got != 0 {
		t.Errorf("wanted row 0 before the interval, got %d", got)
	}
	game.Tick(time.Millisecond)
	if got := game.Snapshot().Piece.Row; got != 1 {
		t.Errorf("wanted row 1 after the interval, got %d", got)
	}
	game.Tick(500 * time.Millisecond)
	if got := game.Snapshot().Piece.Row; got != 1 {
		t.Errorf("wanted the accumulator reset after a drop, got row %d", got)
	}

	t.Run("levels past the speed table use its last entry", func(t *testing.T) {
		tetris := NewTestTetris(T)
		tetris.Stats.Level = 50
		game := NewTestGame(tetris)
		game.Tick(25 * time.Millisecond)
		if tetris.Piece.Row != 1 {
			t.Errorf("wanted row 1, got %d", tetris.Piece.Row)
		}
	})
}

func TestDropInterval(t *testing.T) {
	tests := []struct {
		level int
		want  time.Duration
	}{
		{-1, time.Second},
		{0, time.Second},
		{1, 900 * time.Millisecond},
		{9, 100 * time.Millisecond},
		{12, 25 * time.Millisecond},
		{13, 25 * time.Millisecond},
		{1000, 25 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := DropInterval(tt.level); got != tt.want {
			t.Errorf("level %d: wanted %v, got %v", tt.level, tt.want, got)
		}
	}
	for level := 1; level < 20; level++ {
		if DropInterval(level) > DropInterval(level-1) {
			t.Errorf("wanted level %d to be at least as fast as level %d", level, level-1)
		}
	}
}

func TestSoftAndHardDropLock(t *testing.T) {
	t.Run("hard drop locks in the same update", func(t *testing.T) {
		tetris := NewTestTetris(J)
		game := NewTestGame(tetris)
		game.Action(DropDown)
		for _, p := range []Point{{3, 20}, {3, 21}, {4, 21}, {5, 21}} {
			if tetris.Grid.Color(p.Col, p.Row) != Blue {
				t.Errorf("wanted J locked at %v", p)
			}
		}
		if tetris.Piece.Row != spawnRow {
			t.Errorf("wanted a new piece at the spawn row, got %d", tetris.Piece.Row)
		}
	})

	t.Run("soft drop on the floor locks the piece", func(t *testing.T) {
		tetris := NewTestTetris(J)
		game := NewTestGame(tetris)
		tetris.drop()
		game.Action(MoveDown)
		if tetris.Grid.Color(3, 21) != Blue {
			t.Error("wanted J locked on the floor")
		}
	})
}

func TestGameOver(t *testing.T) {
	// .	0 1 2 3 4 5 6 7 8 9
	// 0	. . . . O O . . . .
	// 1	. . . C O O . . . .
	// 2	. C C C C C C C C C
	// ..	. C C C C C C C C C
	// 21	. C C C C C C C C C
	tetris := NewTestTetris(O)
	for row := 2; row < Rows; row++ {
		for col := 1; col < Cols; col++ {
			tetris.Grid.SetColor(col, row, Red)
		}
	}
	tetris.Grid.SetColor(3, 1, Red)
	tetris.Stats.Score = 500
	game := NewTestGame(tetris)

	game.Tick(time.Second)
	if game.State() != Done {
		t.Fatalf("wanted done state, got %v", game.State())
	}
	if game.HighScore() != 500 {
		t.Errorf("wanted high score 500, got %d", game.HighScore())
	}
	for _, p := range []Point{{4, 0}, {5, 0}, {4, 1}, {5, 1}} {
		if tetris.Grid.Color(p.Col, p.Row) != Yellow {
			t.Errorf("wanted the locked O at %v", p)
		}
	}

	before := game.Snapshot()
	game.Action(MoveLeft)
	game.Tick(time.Minute)
	if got := game.Snapshot(); got.Piece != before.Piece || got.State != Done {
		t.Errorf("wanted the finished game untouched, got %+v in %v", got.Piece, got.State)
	}
	if game.MenuOptions() != nil {
		t.Errorf("wanted no menu while done, got %v", game.MenuOptions())
	}

	game.Action(Pause)
	if game.State() != Menu || game.Paused() {
		t.Fatalf("wanted the new game menu, got %v paused=%t", game.State(), game.Paused())
	}
	game.Select(1)
	got := game.Snapshot()
	if got.State != Play || got.Stats != (Stats{}) || got.ID == "test" {
		t.Errorf("wanted a fresh game, got %v %+v %q", got.State, got.Stats, got.ID)
	}
	for _, c := range got.Cells {
		if c != Empty {
			t.Fatal("wanted an empty grid after a new game")
		}
	}
	if got.HighScore != 500 {
		t.Errorf("wanted the high score to survive a new game, got %d", got.HighScore)
	}

	game.SetHighScore(100)
	if game.HighScore() != 500 {
		t.Errorf("wanted SetHighScore to never lower the high score, got %d", game.HighScore())
	}
}

func TestSpawnCollisionEndsGameAfterLineClear(t *testing.T) {
	// the locked I fills row 1, so the next piece overlaps it at spawn.
	// The line is still cleared and scored before the game ends.
	//
	// .	0 1 2 3 4 5 6 7 8 9
	// 0	. . . . . . . . . .
	// 1	C C C O O O O C C C
	// 2	. C C C C C C C C C
	tetris := NewTestTetris(I)
	for _, col := range []int{0, 1, 2, 7, 8, 9} {
		tetris.Grid.SetColor(col, 1, Red)
	}
	for col := 1; col < Cols; col++ {
		tetris.Grid.SetColor(col, 2, Red)
	}
	game := NewTestGame(tetris)

	game.Action(MoveDown)
	if game.State() != Done {
		t.Fatalf("wanted the spawn collision to end the game, got %v", game.State())
	}
	if tetris.Stats.LinesCleared != 1 || tetris.Stats.Score != 40 {
		t.Errorf("wanted 1 line and 40 points, got %+v", tetris.Stats)
	}
	if game.HighScore() != 40 {
		t.Errorf("wanted the high score to take the final score 40, got %d", game.HighScore())
	}
	for col := range Cols {
		if tetris.Grid.Color(col, 1) != Empty {
			t.Errorf("wanted row 1 empty after the clear, got %v at col %d", tetris.Grid.Color(col, 1), col)
		}
	}
}

func TestToggleGhost(t *testing.T) {
	game := NewGame(nil)
	if !game.Snapshot().ShowGhost {
		t.Error("wanted the ghost shown by default")
	}
	game.Action(ToggleGhost)
	if game.Snapshot().ShowGhost {
		t.Error("wanted the ghost hidden after toggling")
	}
	if NewGame(&Options{NoGhost: true}).Snapshot().ShowGhost {
		t.Error("wanted NoGhost to hide the ghost")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	tetris := NewTestTetris(L)
	game := NewTestGame(tetris)
	s := game.Snapshot()
	s.Cells[0] = Red
	s.Piece.Col = 9
	if tetris.Grid.Color(0, 0) != Empty || tetris.Piece.Col != spawnCol {
		t.Error("wanted the snapshot not to share memory with the game")
	}
	if s.Next != tetris.Next() {
		t.Errorf("wanted next %v, got %v", tetris.Next(), s.Next)
	}
	if s.Shadow.Row != 20 {
		t.Errorf("wanted the shadow on row 20, got %d", s.Shadow.Row)
	}
	if s.Color(-1, 0) != Empty || s.Color(0, Rows) != Empty {
		t.Error("wanted out of bounds colors to be empty")
	}
}
