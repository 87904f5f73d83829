package widgets

import (
	"errors"
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/deskdash/internal/config"
	"github.com/hy4ri/deskdash/internal/storage"
	"github.com/hy4ri/deskdash/internal/tui/styles"
)

func testStyles() *styles.Styles {
	return styles.New(config.ThemeConfig{})
}

type fakeSaver struct {
	err   error
	calls int
	saved []storage.Module
}

func (f *fakeSaver) SaveModules(mods []storage.Module) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.saved = mods
	return nil
}

func typeRunes(g *GradeTrackerState, s string) {
	g.Form.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestModuleAggregates(t *testing.T) {
	tests := []struct {
		name                    string
		grades                  []storage.Grade
		overall, mean, weighted float64
	}{
		{
			name: "fully weighted",
			grades: []storage.Grade{
				{Name: "exam", Percentage: 80, Weight: 50},
				{Name: "coursework", Percentage: 60, Weight: 50},
			},
			overall: 70, mean: 70, weighted: 70,
		},
		{
			name: "partially weighted",
			grades: []storage.Grade{
				{Name: "exam", Percentage: 80, Weight: 30},
				{Name: "coursework", Percentage: 60, Weight: 20},
			},
			overall: 36, mean: 70, weighted: 72,
		},
		{
			name: "no grades", grades: nil,
			overall: 0, mean: 0, weighted: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overall, mean, weighted := ModuleAggregates(storage.Module{Name: "m", Grades: tt.grades})
			if !almostEqual(overall, tt.overall) {
				t.Errorf("overall = %v, want %v", overall, tt.overall)
			}
			if !almostEqual(mean, tt.mean) {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if !almostEqual(weighted, tt.weighted) {
				t.Errorf("weighted = %v, want %v", weighted, tt.weighted)
			}
		})
	}
}

func TestSubmitFormAppendsAndPersists(t *testing.T) {
	g := NewGradeTrackerState(testStyles())
	g.Modules = []storage.Module{{Name: "Maths"}}
	saver := &fakeSaver{}

	typeRunes(g, "Exam")
	g.Form.MoveCursor(1)
	typeRunes(g, "80")
	g.Form.MoveCursor(1)
	typeRunes(g, "50")

	if err := g.SubmitForm(saver); err != nil {
		t.Fatalf("SubmitForm: %v", err)
	}
	if saver.calls != 1 {
		t.Fatalf("saver calls = %d, want 1", saver.calls)
	}
	if len(g.Modules[0].Grades) != 1 {
		t.Fatalf("grades = %d, want 1", len(g.Modules[0].Grades))
	}
	gr := g.Modules[0].Grades[0]
	if gr.Name != "Exam" || gr.Percentage != 80 || gr.Weight != 50 {
		t.Fatalf("unexpected grade: %+v", gr)
	}
	if got := g.Form.Fields()[0].DisplayValue(); got != "" {
		t.Fatalf("form not reset, name = %q", got)
	}
}

func TestSubmitFormFailClosed(t *testing.T) {
	g := NewGradeTrackerState(testStyles())
	g.Modules = []storage.Module{{Name: "Maths", Grades: []storage.Grade{{Name: "old", Percentage: 50, Weight: 50}}}}
	saver := &fakeSaver{err: errors.New("disk full")}

	typeRunes(g, "Exam")

	if err := g.SubmitForm(saver); err == nil {
		t.Fatal("expected error")
	}
	if len(g.Modules[0].Grades) != 1 || g.Modules[0].Grades[0].Name != "old" {
		t.Fatalf("in-memory state changed on failed persist: %+v", g.Modules[0].Grades)
	}
}

func TestSubmitFormEmptyTitleIsNoOp(t *testing.T) {
	g := NewGradeTrackerState(testStyles())
	g.Modules = []storage.Module{{Name: "Maths"}}
	saver := &fakeSaver{}

	if err := g.SubmitForm(saver); err != nil {
		t.Fatalf("SubmitForm: %v", err)
	}
	if saver.calls != 0 {
		t.Fatalf("saver called %d times for empty title, want 0", saver.calls)
	}
	if len(g.Modules[0].Grades) != 0 {
		t.Fatalf("grades appended: %+v", g.Modules[0].Grades)
	}
}

func TestSubmitFormNoModulesIsNoOp(t *testing.T) {
	g := NewGradeTrackerState(testStyles())
	saver := &fakeSaver{}

	typeRunes(g, "Exam")

	if err := g.SubmitForm(saver); err != nil {
		t.Fatalf("SubmitForm: %v", err)
	}
	if saver.calls != 0 {
		t.Fatalf("saver called %d times with no modules, want 0", saver.calls)
	}
}

func TestToggleFormClosingRollsBack(t *testing.T) {
	g := NewGradeTrackerState(testStyles())

	g.ToggleForm()
	if !g.ShowForm {
		t.Fatal("form not shown")
	}
	typeRunes(g, "abandoned")

	g.ToggleForm()
	if g.ShowForm {
		t.Fatal("form still shown")
	}
	if got := g.Form.Fields()[0].DisplayValue(); got != "" {
		t.Fatalf("abandoned input kept: %q", got)
	}
}

func TestIncrementSelectedClamps(t *testing.T) {
	g := NewGradeTrackerState(testStyles())

	g.IncrementSelected(1)
	if g.Selected != 0 {
		t.Fatalf("cursor moved on empty list: %d", g.Selected)
	}

	g.Modules = []storage.Module{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	g.IncrementSelected(10)
	if g.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", g.Selected)
	}
	g.IncrementSelected(-10)
	if g.Selected != 0 {
		t.Fatalf("Selected = %d, want 0", g.Selected)
	}
}
