package tui

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/deskdash/internal/storage"
	"github.com/hy4ri/deskdash/internal/tui/form"
)

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		if a.waiting || a.loading {
			return a, cmd
		}
		return a, nil

	case dataLoadedMsg:
		a.loading = false
		a.grades.Modules = msg.modules
		a.todos = msg.todos
		a.money.ApplySearch("", 0, math.MaxFloat64, msg.listLines, msg.transactions)
		a.calendar.SetEvents(msg.events)
		a.brightness = msg.brightness
		a.volume = msg.volume
		notifyUpcoming(msg.events, time.Now())
		return a, nil

	case tasksDoneMsg:
		for _, apply := range msg.applies {
			if apply != nil {
				apply(a)
			}
		}
		a.waiting = false
		return a, nil
	}

	return a, nil
}

// handleKeyMsg routes one keystroke. While queued tasks drain every key is
// dropped, so task results always land on the state the task saw.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if a.waiting {
		return a, nil
	}

	a.clock.Refresh()

	if !a.captureInput() {
		switch key {
		case a.keymap.Quit.Key:
			return a, tea.Quit
		case a.keymap.Dashboard.Key:
			a.screen = ScreenDashboard
			return a, nil
		case a.keymap.Calendar.Key:
			a.screen = ScreenCalendar
			return a, nil
		case a.keymap.Grades.Key:
			a.screen = ScreenGrade
			return a, nil
		case a.keymap.Money.Key:
			a.screen = ScreenMoney
			return a, nil
		}
	}

	var tasks []task
	switch a.screen {
	case ScreenDashboard:
		tasks = a.handleDashboardKey(msg)
	case ScreenCalendar:
		tasks = a.handleCalendarKey(key)
	case ScreenGrade:
		tasks = a.handleGradeKey(msg)
	case ScreenMoney:
		tasks = a.handleMoneyKey(msg)
	}

	if len(tasks) > 0 {
		a.waiting = true
		return a, tea.Batch(a.spinner.Tick, a.runTasks(tasks))
	}
	return a, nil
}

// captureInput reports whether a form currently swallows plain characters,
// disabling the global screen-switch keys.
func (a *App) captureInput() bool {
	if a.screen == ScreenDashboard && a.showTodoForm {
		return true
	}
	if a.screen == ScreenGrade && a.grades.ShowForm {
		return true
	}
	if a.screen == ScreenMoney && a.money.ActiveForm() != nil {
		return true
	}
	return false
}

func (a *App) handleDashboardKey(msg tea.KeyMsg) []task {
	key := msg.String()

	if a.showTodoForm {
		switch key {
		case a.keymap.Back.Key:
			a.showTodoForm = false
			a.todoForm.Reset()
		case a.keymap.Select.Key:
			if f, ok := a.todoForm.SelectedField().(*form.TextField); ok && f.Value() != "" {
				return []task{a.addTodoTask(f.Value())}
			}
		default:
			a.todoForm.HandleKey(msg)
		}
		return nil
	}

	switch key {
	case a.keymap.AddEntry.Key:
		a.showTodoForm = true
	case a.keymap.Left.Key:
		a.adjustBrightness(-10)
	case a.keymap.Right.Key:
		a.adjustBrightness(10)
	case a.keymap.Down.Key:
		a.adjustVolume(-10)
	case a.keymap.Up.Key:
		a.adjustVolume(10)
	}
	return nil
}

// addTodoTask persists the typed todo and reloads the list. On failure the
// form stays open with its value intact.
func (a *App) addTodoTask(description string) task {
	return func() func(*App) {
		if err := a.store.AddTodo(description); err != nil {
			log.Printf("add todo: %v", err)
			return nil
		}
		todos, err := a.store.Todos()
		if err != nil {
			log.Printf("load todos: %v", err)
		}
		return func(app *App) {
			if todos != nil {
				app.todos = todos
			}
			app.showTodoForm = false
			app.todoForm.Reset()
		}
	}
}

func (a *App) adjustBrightness(delta int) {
	a.brightness = clampPercent(a.brightness + delta)
	a.probes.SetBrightness(a.brightness)
}

func (a *App) adjustVolume(delta int) {
	a.volume = clampPercent(a.volume + delta)
	a.probes.SetVolume(a.volume)
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func (a *App) handleCalendarKey(key string) []task {
	cal := a.calendar
	switch key {
	case a.keymap.Up.Key:
		cal.IncrementMonth(1)
		return []task{a.fetchEventsTask()}
	case a.keymap.Down.Key:
		cal.IncrementMonth(-1)
		return []task{a.fetchEventsTask()}
	case a.keymap.Left.Key:
		if cal.ShowPopup {
			cal.IncrementSelectedEvent(-1)
		} else {
			cal.IncrementSelectedDay(-1)
		}
	case a.keymap.Right.Key:
		if cal.ShowPopup {
			cal.IncrementSelectedEvent(1)
		} else {
			cal.IncrementSelectedDay(1)
		}
	case a.keymap.Select.Key:
		if cal.ShowPopup || len(cal.SelectedDayEvents()) > 0 {
			cal.PopupToggle()
		}
	case a.keymap.Back.Key:
		if cal.ShowPopup {
			cal.PopupToggle()
		}
	case a.keymap.Yank.Key:
		if events := cal.SelectedDayEvents(); cal.ShowPopup && cal.SelectedEvent < len(events) {
			ev := events[cal.SelectedEvent]
			text := fmt.Sprintf("%s %s - %s", ev.Title, ev.Start.Format("15:04"), ev.End.Format("15:04"))
			if err := clipboard.WriteAll(text); err != nil {
				log.Printf("clipboard: %v", err)
			}
		}
	}
	return nil
}

// fetchEventsTask snapshots the displayed month and fetches its events in
// the background.
func (a *App) fetchEventsTask() task {
	year, month, days := a.calendar.Year, int(a.calendar.Month), a.calendar.NumOfDays
	return func() func(*App) {
		events := a.probes.CalendarEvents(year, month, days)
		return func(app *App) {
			app.calendar.SetEvents(events)
			notifyUpcoming(events, time.Now())
		}
	}
}

func (a *App) handleGradeKey(msg tea.KeyMsg) []task {
	g := a.grades
	key := msg.String()

	if g.ShowForm {
		switch key {
		case a.keymap.Back.Key:
			g.ToggleForm()
		case "down", "tab":
			g.Form.MoveCursor(1)
		case "up", "shift+tab":
			g.Form.MoveCursor(-1)
		case a.keymap.Select.Key:
			return []task{a.submitGradeTask()}
		default:
			g.Form.HandleKey(msg)
		}
		return nil
	}

	switch key {
	case a.keymap.AddEntry.Key:
		g.ToggleForm()
	case a.keymap.Up.Key:
		g.IncrementSelected(-1)
	case a.keymap.Down.Key:
		g.IncrementSelected(1)
	}
	return nil
}

func (a *App) submitGradeTask() task {
	return func() func(*App) {
		err := a.grades.SubmitForm(a.store)
		return func(app *App) {
			if err != nil {
				log.Printf("save grade: %v", err)
				return
			}
			if app.grades.ShowForm {
				app.grades.ToggleForm()
			}
		}
	}
}

func (a *App) handleMoneyKey(msg tea.KeyMsg) []task {
	m := a.money
	key := msg.String()

	if f := m.ActiveForm(); f != nil {
		switch key {
		case a.keymap.Back.Key:
			m.SelectList()
		case "down", "tab":
			f.MoveCursor(1)
		case "up", "shift+tab":
			f.MoveCursor(-1)
		case a.keymap.Select.Key:
			if m.SearchSelected {
				return []task{a.searchTransactionsTask()}
			}
			if t, ok := m.AddParams(); ok {
				return []task{a.addTransactionTask(t)}
			}
		default:
			f.HandleKey(msg)
		}
		return nil
	}

	switch key {
	case a.keymap.Search.Key:
		m.SelectSearchForm()
	case a.keymap.AddEntry.Key:
		m.SelectAddForm()
	case a.keymap.Up.Key:
		m.IncrementSelected(-1)
	case a.keymap.Down.Key:
		m.IncrementSelected(1)
	case a.keymap.Right.Key:
		if m.CanNextPage() {
			return []task{a.fetchPageTask(m.AdvancePage(1))}
		}
	case a.keymap.Left.Key:
		if m.CanPrevPage() {
			return []task{a.fetchPageTask(m.AdvancePage(-1))}
		}
	case a.keymap.Yank.Key:
		if t := m.SelectedTransactionRecord(); t != nil {
			text := fmt.Sprintf("%s £%.2f %s", t.Title, t.Amount, t.Date.Format("2006-01-02"))
			if err := clipboard.WriteAll(text); err != nil {
				log.Printf("clipboard: %v", err)
			}
		}
	}
	return nil
}

// searchTransactionsTask snapshots the search form and re-runs the query
// from page one.
func (a *App) searchTransactionsTask() task {
	keyword, min, max := a.money.SearchParams()
	capacity := a.money.PageCapacity()
	return func() func(*App) {
		lines, err := a.store.CountListLines(keyword, min, max)
		if err != nil {
			log.Printf("count transactions: %v", err)
			return nil
		}
		trans, err := a.store.QueryTransactions(keyword, min, max, capacity, 0)
		if err != nil {
			log.Printf("query transactions: %v", err)
			return nil
		}
		return func(app *App) {
			app.money.ApplySearch(keyword, min, max, lines, trans)
		}
	}
}

// addTransactionTask inserts the transaction and, only if the insert
// succeeded, refreshes page one under the current filter.
func (a *App) addTransactionTask(t storage.Transaction) task {
	keyword, min, max := a.money.FilterKeyword, a.money.FilterMin, a.money.FilterMax
	capacity := a.money.PageCapacity()
	return func() func(*App) {
		if err := a.store.AddTransaction(t); err != nil {
			log.Printf("add transaction: %v", err)
			return nil
		}
		lines, err := a.store.CountListLines(keyword, min, max)
		if err != nil {
			log.Printf("count transactions: %v", err)
			return nil
		}
		trans, err := a.store.QueryTransactions(keyword, min, max, capacity, 0)
		if err != nil {
			log.Printf("query transactions: %v", err)
			return nil
		}
		return func(app *App) {
			app.money.ApplyAdd(lines, trans)
		}
	}
}

// fetchPageTask loads the page whose offset was discovered by rendering.
func (a *App) fetchPageTask(offset int) task {
	keyword, min, max := a.money.FilterKeyword, a.money.FilterMin, a.money.FilterMax
	capacity := a.money.PageCapacity()
	return func() func(*App) {
		trans, err := a.store.QueryTransactions(keyword, min, max, capacity, offset)
		if err != nil {
			log.Printf("query transactions: %v", err)
			return nil
		}
		return func(app *App) {
			app.money.SetPageTransactions(trans)
		}
	}
}
