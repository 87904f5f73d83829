package widgets

import (
	"fmt"
	"math"
	"time"

	"github.com/hy4ri/deskdash/internal/storage"
	"github.com/hy4ri/deskdash/internal/tui/bounds"
	"github.com/hy4ri/deskdash/internal/tui/form"
	"github.com/hy4ri/deskdash/internal/tui/styles"
	"github.com/hy4ri/deskdash/internal/tui/surface"
)

// TransactionStore is the slice of the store the money tracker needs.
type TransactionStore interface {
	QueryTransactions(keyword string, min, max float64, limit, offset int) ([]storage.Transaction, error)
	CountListLines(keyword string, min, max float64) (int, error)
	AddTransaction(t storage.Transaction) error
}

// MoneyTrackerState holds the filtered, paginated transaction list plus the
// search and add forms.
type MoneyTrackerState struct {
	SearchForm *form.State
	AddForm    *form.State
	// At most one of these is set; neither set means the list has focus.
	SearchSelected bool
	AddSelected    bool

	Transactions        []storage.Transaction
	SelectedTransaction int

	CurrentPage int
	NumOfPages  int
	// TotalLines is the full line count of the current filter, kept so the
	// page count can be recomputed once rendering has measured capacity.
	TotalLines int
	// MaxTransactions is the list capacity in rendered lines. It is
	// discovered at render time, so it is zero until the first frame.
	MaxTransactions int
	// PageOffsets[p-1] is the query offset for page p. Offsets are
	// discovered lazily: rendering page p records the offset of page p+1,
	// so pages can only be visited in order the first time through.
	PageOffsets []int

	FilterKeyword string
	FilterMin     float64
	FilterMax     float64

	styles *styles.Styles
}

// NewMoneyTrackerState builds the tracker with empty forms and an
// unfiltered view.
func NewMoneyTrackerState(st *styles.Styles) *MoneyTrackerState {
	search := form.NewState()
	search.AddField(form.NewTextField("", false, form.NewFieldStyle("Keyword", st.Main, st.Accent)))
	search.AddField(form.NewFloatField(0, math.MaxFloat64, false, form.NewFieldStyle("Min Amount", st.Main, st.Accent)))
	search.AddField(form.NewFloatField(0, math.MaxFloat64, false, form.NewFieldStyle("Max Amount", st.Main, st.Accent)))

	add := form.NewState()
	add.AddField(form.NewTextField("", true, form.NewFieldStyle("Title", st.Main, st.Accent)))
	add.AddField(form.NewFloatField(0, math.MaxFloat64, true, form.NewFieldStyle("Amount", st.Main, st.Accent)))
	add.AddField(form.NewTextField("", false, form.NewFieldStyle("Details", st.Main, st.Accent)))
	add.AddField(form.NewDateField(time.Now(), false, form.NewFieldStyle("Date", st.Main, st.Accent)))

	m := &MoneyTrackerState{
		SearchForm:  search,
		AddForm:     add,
		CurrentPage: 1,
		NumOfPages:  1,
		PageOffsets: []int{0},
		FilterMax:   math.MaxFloat64,
		styles:      st,
	}
	m.SelectList()
	return m
}

// ActiveForm returns the focused form, or nil when the list has focus.
func (m *MoneyTrackerState) ActiveForm() *form.State {
	switch {
	case m.SearchSelected:
		return m.SearchForm
	case m.AddSelected:
		return m.AddForm
	}
	return nil
}

// SelectSearchForm gives the search form focus.
func (m *MoneyTrackerState) SelectSearchForm() {
	m.SearchSelected, m.AddSelected = true, false
	m.SearchForm.SetActiveStyle(m.styles.InvertedMain)
	m.AddForm.SetActiveStyle(m.styles.Accent)
}

// SelectAddForm gives the add form focus.
func (m *MoneyTrackerState) SelectAddForm() {
	m.SearchSelected, m.AddSelected = false, true
	m.AddForm.SetActiveStyle(m.styles.InvertedMain)
	m.SearchForm.SetActiveStyle(m.styles.Accent)
}

// SelectList returns focus to the transaction list.
func (m *MoneyTrackerState) SelectList() {
	m.SearchSelected, m.AddSelected = false, false
	m.SearchForm.SetActiveStyle(m.styles.Accent)
	m.AddForm.SetActiveStyle(m.styles.Accent)
}

// IncrementSelected moves the transaction cursor within the current page.
func (m *MoneyTrackerState) IncrementSelected(amount int) {
	if len(m.Transactions) == 0 {
		return
	}
	m.SelectedTransaction = bounds.Increment(m.SelectedTransaction, 0, len(m.Transactions)-1, amount)
}

// SelectedTransactionRecord returns the transaction under the cursor, or
// nil when the page is empty.
func (m *MoneyTrackerState) SelectedTransactionRecord() *storage.Transaction {
	if len(m.Transactions) == 0 || m.SelectedTransaction >= len(m.Transactions) {
		return nil
	}
	return &m.Transactions[m.SelectedTransaction]
}

// SearchParams reads the search form's current values.
func (m *MoneyTrackerState) SearchParams() (keyword string, min, max float64) {
	fields := m.SearchForm.Fields()
	keyword = fields[0].(*form.TextField).Value()
	min = fields[1].(*form.FloatField).Value()
	max = fields[2].(*form.FloatField).Value()
	if max == 0 {
		max = math.MaxFloat64
	}
	return keyword, min, max
}

// AddParams builds a transaction from the add form. ok is false when the
// required title is empty; nothing should be written in that case.
func (m *MoneyTrackerState) AddParams() (t storage.Transaction, ok bool) {
	fields := m.AddForm.Fields()
	t.Title = fields[0].(*form.TextField).Value()
	if t.Title == "" {
		return t, false
	}
	t.Amount = fields[1].(*form.FloatField).Value()
	t.Details = fields[2].(*form.TextField).Value()
	t.Date = fields[3].(*form.DateField).Value()
	return t, true
}

// PageCapacity returns the list capacity in lines, defaulting before the
// first frame has measured it.
func (m *MoneyTrackerState) PageCapacity() int {
	if m.MaxTransactions <= 0 {
		return 1
	}
	return m.MaxTransactions
}

// ApplySearch installs a fresh query result: filters, page count, page one
// of transactions. The pagination table restarts because the filter
// changed.
func (m *MoneyTrackerState) ApplySearch(keyword string, min, max float64, lines int, trans []storage.Transaction) {
	m.FilterKeyword = keyword
	m.FilterMin = min
	m.FilterMax = max
	m.TotalLines = lines
	m.recomputePages()
	m.Transactions = trans
	m.CurrentPage = 1
	m.PageOffsets = []int{0}
	m.SelectedTransaction = 0
	m.SearchForm.Reset()
	m.SelectList()
}

// ApplyAdd installs the refreshed page-one result after a successful
// insert and rolls the add form back.
func (m *MoneyTrackerState) ApplyAdd(lines int, trans []storage.Transaction) {
	m.TotalLines = lines
	m.recomputePages()
	m.Transactions = trans
	m.CurrentPage = 1
	m.PageOffsets = []int{0}
	m.SelectedTransaction = 0
	m.AddForm.Reset()
	m.SelectList()
}

func (m *MoneyTrackerState) recomputePages() {
	m.NumOfPages = (m.TotalLines + m.PageCapacity() - 1) / m.PageCapacity()
	if m.NumOfPages < 1 {
		m.NumOfPages = 1
	}
}

// CanNextPage reports whether a further page exists and its offset has been
// discovered by rendering the current one.
func (m *MoneyTrackerState) CanNextPage() bool {
	return m.CurrentPage < m.NumOfPages && len(m.PageOffsets) > m.CurrentPage
}

// CanPrevPage reports whether there is a previous page.
func (m *MoneyTrackerState) CanPrevPage() bool {
	return m.CurrentPage > 1
}

// AdvancePage moves the page cursor by delta and returns the query offset
// for the new page. Callers check CanNextPage/CanPrevPage first.
func (m *MoneyTrackerState) AdvancePage(delta int) int {
	m.CurrentPage += delta
	m.SelectedTransaction = 0
	return m.PageOffsets[m.CurrentPage-1]
}

// SetPageTransactions installs the fetched rows for the page selected by
// AdvancePage.
func (m *MoneyTrackerState) SetPageTransactions(trans []storage.Transaction) {
	m.Transactions = trans
}

// RenderMoneyTracker draws the forms on the left third and the transaction
// list on the right. Rendering measures the list capacity and extends the
// page-offset table when the page overflows.
func RenderMoneyTracker(s *surface.Surface, area surface.Rect, st *styles.Styles, state *MoneyTrackerState) {
	formsArea := surface.Rect{X: area.X, Y: area.Y, Width: area.Width / 3, Height: area.Height}
	listArea := surface.Rect{X: formsArea.Right(), Y: area.Y, Width: area.Width - formsArea.Width, Height: area.Height}

	searchArea := surface.Rect{X: formsArea.X, Y: formsArea.Y, Width: formsArea.Width, Height: formsArea.Height / 2}
	addArea := surface.Rect{X: formsArea.X, Y: searchArea.Bottom(), Width: formsArea.Width, Height: formsArea.Height - searchArea.Height}

	renderTitledForm(s, searchArea, st, " Search ", state.SearchForm, state.SearchSelected)
	renderTitledForm(s, addArea, st, " Add ", state.AddForm, state.AddSelected)
	renderTransactionList(s, listArea, st, state)
}

func renderTitledForm(s *surface.Surface, area surface.Rect, st *styles.Styles, title string, f *form.State, focused bool) {
	borderStyle := st.Accent
	titleStyle := st.TitleDeactivated
	if focused {
		borderStyle = st.Main
		titleStyle = st.Title
	}
	surface.DrawBorders(s, area, surface.SideAll, surface.BorderPlain, borderStyle)
	s.SetString(area.X+2, area.Y, title, titleStyle)
	f.Render(s, area.Inset(1))
}

func renderTransactionList(s *surface.Surface, area surface.Rect, st *styles.Styles, state *MoneyTrackerState) {
	surface.DrawBorders(s, area, surface.SideAll, surface.BorderPlain, st.Main)
	s.SetString(area.X+2, area.Y, " Transactions ", st.Title)

	inner := area.Inset(1)
	if state.MaxTransactions != inner.Height {
		state.MaxTransactions = inner.Height
		if state.TotalLines > 0 {
			state.recomputePages()
		}
	}

	selected := state.SelectedTransactionRecord()

	y := inner.Y
	var lastDay string
	for i, t := range state.Transactions {
		day := t.Date.Format("2006-01-02")

		linesNeeded := 1
		if day != lastDay {
			linesNeeded = 2
		}
		if y+linesNeeded > inner.Bottom() {
			// page full: the remaining rows start the next page
			if len(state.PageOffsets) == state.CurrentPage {
				state.PageOffsets = append(state.PageOffsets, state.PageOffsets[state.CurrentPage-1]+i)
			}
			break
		}

		if day != lastDay {
			renderDayHeading(s, inner, st, y, t, selected)
			lastDay = day
			y++
		}

		style := st.Main
		if i == state.SelectedTransaction {
			style = st.InvertedMain
		}
		row := fmt.Sprintf("£%-10.2f %s", t.Amount, t.Title)
		s.SetString(inner.X+1, y, clip(row, inner.Width-2), style)
		y++
	}

	footer := fmt.Sprintf(" %d/%d ", state.CurrentPage, state.NumOfPages)
	s.SetString(area.X+(area.Width-len(footer))/2, area.Bottom()-1, footer, st.Title)
}

// renderDayHeading draws a date heading rule. The day holding the selected
// transaction gets the heavy rule in the main color.
func renderDayHeading(s *surface.Surface, inner surface.Rect, st *styles.Styles, y int, t storage.Transaction, selected *storage.Transaction) {
	heavy := selected != nil && sameDay(selected.Date, t.Date)

	fill := '-'
	style := st.Accent
	if heavy {
		fill = '━'
		style = st.Main
	}
	for x := inner.Left(); x < inner.Right(); x++ {
		s.Set(x, y, fill, style)
	}
	s.SetString(inner.X+1, y, " "+t.Date.Format("Mon 02 Jan 2006")+" ", style)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
