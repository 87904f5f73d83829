package widgets

import (
	"fmt"
	"math"

	"github.com/hy4ri/deskdash/internal/storage"
	"github.com/hy4ri/deskdash/internal/tui/bounds"
	"github.com/hy4ri/deskdash/internal/tui/form"
	"github.com/hy4ri/deskdash/internal/tui/styles"
	"github.com/hy4ri/deskdash/internal/tui/surface"
)

// ModuleSaver persists the grade-module document.
type ModuleSaver interface {
	SaveModules([]storage.Module) error
}

// GradeTrackerState holds the module list, the module cursor and the
// add-grade form.
type GradeTrackerState struct {
	Modules  []storage.Module
	Selected int

	Form     *form.State
	ShowForm bool
}

// NewGradeTrackerState builds the tracker with an empty add-grade form.
func NewGradeTrackerState(st *styles.Styles) *GradeTrackerState {
	f := form.NewState()
	f.AddField(form.NewTextField("", true, form.NewFieldStyle("Name", st.Main, st.Accent)))
	f.AddField(form.NewFloatField(0, 100, true, form.NewFieldStyle("Percentage", st.Main, st.Accent)))
	f.AddField(form.NewFloatField(0, 100, true, form.NewFieldStyle("Weight", st.Main, st.Accent)))
	return &GradeTrackerState{Form: f}
}

// IncrementSelected moves the module cursor, clamped to the list.
func (g *GradeTrackerState) IncrementSelected(amount int) {
	if len(g.Modules) == 0 {
		return
	}
	g.Selected = bounds.Increment(g.Selected, 0, len(g.Modules)-1, amount)
}

// SelectedModule returns the module under the cursor, or nil when empty.
func (g *GradeTrackerState) SelectedModule() *storage.Module {
	if len(g.Modules) == 0 {
		return nil
	}
	return &g.Modules[g.Selected]
}

// ToggleForm opens or closes the add-grade form. Closing always rolls the
// fields back to their defaults.
func (g *GradeTrackerState) ToggleForm() {
	g.ShowForm = !g.ShowForm
	if !g.ShowForm {
		g.Form.Reset()
	}
}

// SubmitForm appends the entered grade to the selected module. The new list
// is persisted before the in-memory state changes: on a storage error the
// tracker keeps showing exactly what is on disk. A missing required name or
// an empty module list makes submission a silent no-op with no write.
func (g *GradeTrackerState) SubmitForm(store ModuleSaver) error {
	mod := g.SelectedModule()
	if mod == nil {
		return nil
	}

	fields := g.Form.Fields()
	name := fields[0].(*form.TextField).Value()
	if name == "" {
		return nil
	}
	grade := storage.Grade{
		Name:       name,
		Percentage: fields[1].(*form.FloatField).Value(),
		Weight:     fields[2].(*form.FloatField).Value(),
	}

	candidate := make([]storage.Module, len(g.Modules))
	copy(candidate, g.Modules)
	candidate[g.Selected].Grades = append([]storage.Grade{}, mod.Grades...)
	candidate[g.Selected].Grades = append(candidate[g.Selected].Grades, grade)

	if err := store.SaveModules(candidate); err != nil {
		return err
	}
	g.Modules = candidate
	g.Form.Reset()
	return nil
}

// ModuleAggregates computes the three summary figures for a module:
// overall is the weighted sum of percentages, mean the plain average, and
// weighted the overall scaled to the weight entered so far.
func ModuleAggregates(m storage.Module) (overall, mean, weighted float64) {
	if len(m.Grades) == 0 {
		return 0, 0, 0
	}
	var pctSum, weightSum float64
	for _, gr := range m.Grades {
		overall += gr.Percentage * gr.Weight / 100
		pctSum += gr.Percentage
		weightSum += gr.Weight
	}
	mean = pctSum / float64(len(m.Grades))
	if weightSum > 0 {
		weighted = overall / (weightSum / 100)
	}
	return overall, mean, weighted
}

// RenderGradeTracker stacks one panel per module, the selected one expanded
// with its grade bars and summary line. With the form open, the form takes
// the right third.
func RenderGradeTracker(s *surface.Surface, area surface.Rect, st *styles.Styles, state *GradeTrackerState) {
	main := area
	if state.ShowForm {
		formArea := surface.Rect{X: area.X + area.Width*2/3, Y: area.Y, Width: area.Width / 3, Height: area.Height}
		main = surface.Rect{X: area.X, Y: area.Y, Width: area.Width - formArea.Width, Height: area.Height}
		state.Form.Render(s, formArea.Inset(1))
	}

	if len(state.Modules) == 0 {
		surface.DrawBorders(s, main, surface.SideAll, surface.BorderPlain, st.Main)
		s.SetString(main.X+2, main.Y+1, "No modules", st.Accent)
		return
	}

	const collapsedHeight = 3
	expandedHeight := main.Height - collapsedHeight*(len(state.Modules)-1)
	if expandedHeight < collapsedHeight {
		expandedHeight = collapsedHeight
	}

	y := main.Y
	for i, mod := range state.Modules {
		h := collapsedHeight
		if i == state.Selected {
			h = expandedHeight
		}
		panel := surface.Rect{X: main.X, Y: y, Width: main.Width, Height: h}
		if panel.Bottom() > main.Bottom() {
			break
		}
		renderModulePanel(s, panel, st, mod, i == state.Selected)
		y += h
	}
}

func renderModulePanel(s *surface.Surface, panel surface.Rect, st *styles.Styles, mod storage.Module, selected bool) {
	titleStyle := st.TitleDeactivated
	borderStyle := st.Accent
	if selected {
		titleStyle = st.Title
		borderStyle = st.Main
	}
	surface.DrawBorders(s, panel, surface.SideAll, surface.BorderPlain, borderStyle)
	s.SetString(panel.X+2, panel.Y, " "+mod.Name+" ", titleStyle)

	if !selected {
		return
	}

	overall, mean, weighted := ModuleAggregates(mod)
	summary := fmt.Sprintf("Overall %.1f%%  Mean %.1f%%  Weighted %.1f%%", overall, mean, weighted)
	inner := panel.Inset(1)
	s.SetString(inner.X+1, inner.Y, summary, st.Main)

	renderGradeBars(s, surface.Rect{X: inner.X, Y: inner.Y + 2, Width: inner.Width, Height: inner.Height - 2}, st, mod.Grades)
}

// renderGradeBars lays the grade bars out in two columns, filling the left
// column top to bottom before wrapping.
func renderGradeBars(s *surface.Surface, area surface.Rect, st *styles.Styles, grades []storage.Grade) {
	const barHeight = 3
	perColumn := area.Height / barHeight
	if perColumn == 0 {
		return
	}
	barWidth := area.Width / 2

	for i, gr := range grades {
		col := i / perColumn
		row := i % perColumn
		if col > 1 {
			break
		}
		bar := surface.Rect{
			X:      area.X + col*barWidth,
			Y:      area.Y + row*barHeight,
			Width:  barWidth,
			Height: barHeight,
		}
		renderGradeBar(s, bar, st, gr)
	}
}

func renderGradeBar(s *surface.Surface, bar surface.Rect, st *styles.Styles, gr storage.Grade) {
	surface.DrawBorders(s, bar, surface.SideAll, surface.BorderPlain, st.Accent)
	label := fmt.Sprintf(" %s (%.0f%%, weight %.0f) ", gr.Name, gr.Percentage, gr.Weight)
	s.SetString(bar.X+1, bar.Y, clip(label, bar.Width-2), st.Main)

	innerWidth := bar.Width - 2
	fill := innerWidth - int(math.Round(float64(innerWidth)*(100-gr.Percentage)/100))
	for x := 0; x < fill; x++ {
		s.Set(bar.X+1+x, bar.Y+1, ' ', st.InvertedMain)
	}
}
