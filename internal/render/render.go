package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/VertexToEdge/ana-cnu.github.io/internal/domain"
)

//go:embed templates/board.html
var templatesFS embed.FS

// TimeLayout формат времени в списке последних решений.
const TimeLayout = "2006. 1. 2. 15:04:05"

var boardTemplate = template.Must(
	template.New("board.html").
		Funcs(template.FuncMap{"entry": Entry}).
		ParseFS(templatesFS, "templates/board.html"),
)

// Renderer рисует HTML-страницу доски в заданном часовом поясе.
type Renderer struct {
	loc *time.Location
}

// New создаёт рендерер. nil означает UTC.
func New(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{loc: loc}
}

type pageData struct {
	Board     domain.Board
	Remaining string
	Recent    []string
}

// Page записывает страницу доски в w.
func (r *Renderer) Page(w io.Writer, board domain.Board) error {
	data := pageData{
		Board:     board,
		Remaining: Remaining(board.RateLimitRemaining),
		Recent:    RecentLines(board.Recent, r.loc),
	}
	if err := boardTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render board page: %w", err)
	}
	return nil
}

// Entry строка вида "name: N 문제".
func Entry(e domain.SolveCount) string {
	return fmt.Sprintf("%s: %d 문제", e.Author, e.Solved)
}

// Lines переводит список в строки для логов и CLI.
func Lines(entries []domain.SolveCount) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, Entry(e))
	}
	return lines
}

// RecentLines строки "name: время" в локальном поясе доски.
func RecentLines(recent []domain.RecentSolve, loc *time.Location) []string {
	if loc == nil {
		loc = time.UTC
	}
	lines := make([]string, 0, len(recent))
	for _, r := range recent {
		lines = append(lines, fmt.Sprintf("%s: %s", r.Author, r.SolvedAt.In(loc).Format(TimeLayout)))
	}
	return lines
}

// Remaining остаток лимита GitHub; отрицательное значение означает, что заголовка не было.
func Remaining(n int) string {
	if n < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}
