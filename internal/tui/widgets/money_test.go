package widgets

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/deskdash/internal/storage"
	"github.com/hy4ri/deskdash/internal/tui/surface"
)

func txn(title string, amount float64, date time.Time) storage.Transaction {
	return storage.Transaction{Title: title, Amount: amount, Date: date}
}

func typeInto(f interface{ HandleKey(tea.KeyMsg) }, s string) {
	f.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestApplySearchComputesPageCount(t *testing.T) {
	m := NewMoneyTrackerState(testStyles())
	m.MaxTransactions = 10

	m.ApplySearch("coffee", 0, math.MaxFloat64, 28, nil)

	if m.NumOfPages != 3 {
		t.Fatalf("NumOfPages = %d, want 3", m.NumOfPages)
	}
	if m.CurrentPage != 1 {
		t.Fatalf("CurrentPage = %d, want 1", m.CurrentPage)
	}
	if len(m.PageOffsets) != 1 || m.PageOffsets[0] != 0 {
		t.Fatalf("PageOffsets = %v, want [0]", m.PageOffsets)
	}
	if m.FilterKeyword != "coffee" {
		t.Fatalf("FilterKeyword = %q", m.FilterKeyword)
	}
	if m.SearchSelected || m.AddSelected {
		t.Fatal("focus not returned to the list")
	}
}

func TestApplySearchBeforeFirstFrame(t *testing.T) {
	m := NewMoneyTrackerState(testStyles())

	// capacity unknown until the first render
	m.ApplySearch("", 0, math.MaxFloat64, 0, nil)

	if m.NumOfPages != 1 {
		t.Fatalf("NumOfPages = %d, want 1", m.NumOfPages)
	}
}

func TestRenderMeasuresCapacityAndDiscoversNextOffset(t *testing.T) {
	m := NewMoneyTrackerState(testStyles())
	day := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	// one heading plus three rows fill a 4-line list exactly; the fourth
	// transaction starts page two
	m.Transactions = []storage.Transaction{
		txn("a", 1, day),
		txn("b", 2, day),
		txn("c", 3, day),
		txn("d", 4, day),
	}
	m.NumOfPages = 2

	s := surface.New(60, 6)
	RenderMoneyTracker(s, s.Bounds(), testStyles(), m)

	if m.MaxTransactions != 4 {
		t.Fatalf("MaxTransactions = %d, want 4", m.MaxTransactions)
	}
	if len(m.PageOffsets) != 2 || m.PageOffsets[1] != 3 {
		t.Fatalf("PageOffsets = %v, want [0 3]", m.PageOffsets)
	}
}

func TestNextPageRequiresDiscoveredOffset(t *testing.T) {
	m := NewMoneyTrackerState(testStyles())
	m.NumOfPages = 3

	if m.CanNextPage() {
		t.Fatal("CanNextPage before the offset is discovered")
	}

	m.PageOffsets = append(m.PageOffsets, 7)
	if !m.CanNextPage() {
		t.Fatal("CanNextPage false with a discovered offset")
	}

	m.SelectedTransaction = 4
	if got := m.AdvancePage(1); got != 7 {
		t.Fatalf("AdvancePage offset = %d, want 7", got)
	}
	if m.CurrentPage != 2 {
		t.Fatalf("CurrentPage = %d, want 2", m.CurrentPage)
	}
	if m.SelectedTransaction != 0 {
		t.Fatalf("SelectedTransaction = %d, want 0", m.SelectedTransaction)
	}

	if !m.CanPrevPage() {
		t.Fatal("CanPrevPage false on page 2")
	}
	if got := m.AdvancePage(-1); got != 0 {
		t.Fatalf("AdvancePage back offset = %d, want 0", got)
	}
}

func TestDayHeadingsGroupTransactions(t *testing.T) {
	m := NewMoneyTrackerState(testStyles())
	day1 := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, time.June, 9, 9, 0, 0, 0, time.UTC)
	m.Transactions = []storage.Transaction{
		txn("coffee", 3.5, day1),
		txn("lunch", 9, day1),
		txn("book", 12, day2),
	}

	s := surface.New(80, 12)
	RenderMoneyTracker(s, s.Bounds(), testStyles(), m)
	out := s.PlainString()

	if !strings.Contains(out, "Mon 10 Jun 2024") {
		t.Fatalf("missing first day heading:\n%s", out)
	}
	if !strings.Contains(out, "Sun 09 Jun 2024") {
		t.Fatalf("missing second day heading:\n%s", out)
	}
	if !strings.Contains(out, "coffee") || !strings.Contains(out, "lunch") || !strings.Contains(out, "book") {
		t.Fatalf("missing transaction rows:\n%s", out)
	}
}

func TestAddParamsRequiresTitle(t *testing.T) {
	m := NewMoneyTrackerState(testStyles())

	if _, ok := m.AddParams(); ok {
		t.Fatal("AddParams accepted an empty title")
	}

	m.SelectAddForm()
	typeInto(m.AddForm.Fields()[0], "groceries")
	m.AddForm.MoveCursor(1)
	typeInto(m.AddForm.Fields()[1], "42.50")

	tr, ok := m.AddParams()
	if !ok {
		t.Fatal("AddParams rejected a filled form")
	}
	if tr.Title != "groceries" || tr.Amount != 42.5 {
		t.Fatalf("unexpected transaction: %+v", tr)
	}
}

func TestSearchParamsZeroMaxIsUnbounded(t *testing.T) {
	m := NewMoneyTrackerState(testStyles())

	_, _, max := m.SearchParams()
	if max != math.MaxFloat64 {
		t.Fatalf("max = %v, want unbounded", max)
	}
}

func TestIncrementSelectedTransactionClamps(t *testing.T) {
	m := NewMoneyTrackerState(testStyles())

	m.IncrementSelected(1)
	if m.SelectedTransaction != 0 {
		t.Fatalf("cursor moved on empty list: %d", m.SelectedTransaction)
	}

	day := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	m.Transactions = []storage.Transaction{txn("a", 1, day), txn("b", 2, day)}
	m.IncrementSelected(5)
	if m.SelectedTransaction != 1 {
		t.Fatalf("SelectedTransaction = %d, want 1", m.SelectedTransaction)
	}
}
