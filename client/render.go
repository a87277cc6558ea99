package client

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"blockdrop/tetris"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	resetPos  = "\033[H" // Reset cursor position to 0,0
	eraseLine = "\033[K" // Clear from the cursor to the end of the line

	visibleRows = tetris.Rows - tetris.HiddenRows
	emptyCell   = "  "
	ghostCell   = "[]"
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Color]string{
	tetris.Cyan:    Cyan,
	tetris.Blue:    Blue,
	tetris.Orange:  Orange,
	tetris.Yellow:  Yellow,
	tetris.Green:   Green,
	tetris.Red:     Red,
	tetris.Magenta: Magenta,
}

type templateData struct {
	Snapshot *tetris.Snapshot
	Status   string
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
}

func newRender(w io.Writer, l *slog.Logger) (*render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &render{writer: w, logger: l, template: tmp}, nil
}

func (r *render) draw(s *tetris.Snapshot, status string) {
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, &templateData{Snapshot: s, Status: status}); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"board": board,
		"panel": panel,
		"eol":   func() string { return eraseLine },
	}
	// the console is raw so new lines don't return the carriage,
	// every new line in the layout gets an explicit one.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func block(c tetris.Color) string {
	code, ok := colorMap[c]
	if !ok {
		return emptyCell
	}
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", code)
}

// board renders the visible rows of the playfield, the hidden rows on top
// are left out.
func board(s *tetris.Snapshot) [visibleRows][tetris.Cols]string {
	rendered := [visibleRows][tetris.Cols]string{}
	for y := range visibleRows {
		for x := range tetris.Cols {
			rendered[y][x] = block(s.Color(x, y+tetris.HiddenRows))
		}
	}
	// no game has started yet.
	if s.ID == "" {
		return rendered
	}

	set := func(p tetris.Point, cell string) {
		y := p.Row - tetris.HiddenRows
		if y < 0 || y >= visibleRows || p.Col < 0 || p.Col >= tetris.Cols {
			return
		}
		rendered[y][p.Col] = cell
	}
	if s.ShowGhost && s.State == tetris.Play {
		for _, p := range s.Shadow.Blocks() {
			set(p, ghostCell)
		}
	}
	// the piece is live while playing or behind the pause menu.
	if s.State == tetris.Play || (s.State == tetris.Menu && s.Paused) {
		for _, p := range s.Piece.Blocks() {
			set(p, block(s.Piece.Kind.Color()))
		}
	}
	return rendered
}

// nextPiece renders the first two rows of the next kind's bounding box,
// which hold every spawn orientation.
func nextPiece(k tetris.Kind) []string {
	rows := [2][tetris.BoxSize]string{}
	for y := range rows {
		for x := range rows[y] {
			rows[y][x] = emptyCell
		}
	}
	for _, c := range k.Cells(0) {
		if y := c / tetris.BoxSize; y < len(rows) {
			rows[y][c%tetris.BoxSize] = block(k.Color())
		}
	}
	return []string{strings.Join(rows[0][:], ""), strings.Join(rows[1][:], "")}
}

// panel renders the text next to the board, one entry per visible row.
func panel(td *templateData) []string {
	s := td.Snapshot
	lines := []string{"\033[1mBlock Drop\033[0m", ""}
	if s.ID != "" {
		lines = append(lines, "Next:")
		lines = append(lines, nextPiece(s.Next)...)
		lines = append(lines, "")
	}
	lines = append(lines,
		fmt.Sprintf("Score: %d", s.Stats.Score),
		fmt.Sprintf("Lines: %d", s.Stats.LinesCleared),
		fmt.Sprintf("Level: %d", s.Stats.Level),
		fmt.Sprintf("High:  %d", s.HighScore),
		"",
	)

	switch s.State {
	case tetris.Menu:
		if s.Paused {
			lines = append(lines, "Paused", "")
		}
		for i, o := range s.Menu {
			lines = append(lines, fmt.Sprintf("%d) %s", i+1, o))
		}
	case tetris.Play:
		lines = append(lines,
			"move  a/d, arrows",
			"rotate  e/q, up",
			"down  s   drop  space",
			"ghost g   pause p",
		)
	case tetris.Done:
		lines = append(lines, "Game Over", "p) back to menu")
	}
	if td.Status != "" {
		lines = append(lines, "", td.Status)
	}

	out := make([]string, visibleRows)
	copy(out, lines)
	return out
}
