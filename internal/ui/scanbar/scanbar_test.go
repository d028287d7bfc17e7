package scanbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/sorenlind/preservationist/internal/library"
)

func TestUpdate_Progress(t *testing.T) {
	m := New()

	updated, _ := m.Update(Msg(library.ScanProgress{
		Phase:   "classifying",
		Current: 3,
		Total:   10,
	}))
	m = updated.(Model)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Classifying albums") {
		t.Errorf("view = %q", view)
	}
	if !strings.Contains(view, "3/10") {
		t.Errorf("view missing counter: %q", view)
	}
}

func TestUpdate_Done(t *testing.T) {
	m := New()
	_, cmd := m.Update(DoneMsg{})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
}

func TestView_NoTotalHidesBar(t *testing.T) {
	view := ansi.Strip(New().View())
	if !strings.Contains(view, "Discovering albums...") {
		t.Errorf("view = %q", view)
	}
	if strings.Contains(view, "/") {
		t.Errorf("view shows a counter before discovery finished: %q", view)
	}
}
