// Package tui provides the terminal dashboard user interface.
package tui

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/hy4ri/deskdash/internal/config"
	"github.com/hy4ri/deskdash/internal/probe"
	"github.com/hy4ri/deskdash/internal/storage"
	"github.com/hy4ri/deskdash/internal/tui/form"
	"github.com/hy4ri/deskdash/internal/tui/styles"
	"github.com/hy4ri/deskdash/internal/tui/surface"
	"github.com/hy4ri/deskdash/internal/tui/widgets"
)

// Screen represents the current screen.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenCalendar
	ScreenGrade
	ScreenMoney
)

// task is one queued unit of background work. The returned function applies
// the result to the model; it runs back on the update goroutine, so only the
// blocking half executes concurrently.
type task func() func(*App)

type tasksDoneMsg struct {
	applies []func(*App)
}

type dataLoadedMsg struct {
	modules      []storage.Module
	todos        []storage.Todo
	transactions []storage.Transaction
	listLines    int
	events       map[int][]probe.Event
	brightness   int
	volume       int
}

// App is the main Bubble Tea model for the application.
type App struct {
	// Dependencies
	store  *storage.Store
	probes *probe.Runner
	config *config.Config
	styles *styles.Styles

	// View state
	screen  Screen
	width   int
	height  int
	loading bool

	// Wait overlay state: while queued tasks drain, keys are dropped and
	// the previous frame is shown under a spinner popup.
	waiting   bool
	lastFrame *surface.Surface

	// Widget state
	clock        widgets.ClockState
	calendar     *widgets.CalendarState
	grades       *widgets.GradeTrackerState
	money        *widgets.MoneyTrackerState
	todos        []storage.Todo
	todoForm     *form.State
	showTodoForm bool
	brightness   int
	volume       int

	// Components
	spinner spinner.Model
	keymap  Keymap
}

// NewApp creates a new App instance.
func NewApp(store *storage.Store, probes *probe.Runner, cfg *config.Config, initialScreen string) *App {
	st := styles.New(cfg.Theme)

	// The spinner stays unstyled: its View() is written rune-by-rune into
	// the surface grid, which styles cells itself and cannot hold escape
	// sequences.
	s := spinner.New()
	s.Spinner = spinner.Dot

	todoForm := form.NewState()
	todoForm.AddField(form.NewTextField("", true, form.NewFieldStyle("Todo", st.Main, st.Accent)))

	app := &App{
		store:    store,
		probes:   probes,
		config:   cfg,
		styles:   st,
		screen:   ScreenDashboard,
		loading:  true,
		clock:    widgets.NewClockState(),
		calendar: widgets.NewCalendarState(time.Now()),
		grades:   widgets.NewGradeTrackerState(st),
		money:    widgets.NewMoneyTrackerState(st),
		todoForm: todoForm,
		spinner:  s,
		keymap:   DefaultKeymap(),
	}

	switch initialScreen {
	case "calendar":
		app.screen = ScreenCalendar
	case "grades":
		app.screen = ScreenGrade
	case "money":
		app.screen = ScreenMoney
	}

	return app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.loadInitialData(),
	)
}

// loadInitialData gathers everything the first frame needs: persisted
// modules and todos, this month's events and the current probe readings.
func (a *App) loadInitialData() tea.Cmd {
	year, month, days := a.calendar.Year, int(a.calendar.Month), a.calendar.NumOfDays
	return func() tea.Msg {
		msg := dataLoadedMsg{
			events:     a.probes.CalendarEvents(year, month, days),
			brightness: a.probes.Brightness(),
			volume:     a.probes.Volume(),
		}
		var err error
		if msg.modules, err = a.store.Modules(); err != nil {
			log.Printf("load modules: %v", err)
		}
		if msg.todos, err = a.store.Todos(); err != nil {
			log.Printf("load todos: %v", err)
		}
		if msg.transactions, err = a.store.Transactions(); err != nil {
			log.Printf("load transactions: %v", err)
		}
		if msg.listLines, err = a.store.CountListLines("", 0, math.MaxFloat64); err != nil {
			log.Printf("count transactions: %v", err)
		}
		return msg
	}
}

// runTasks drains the queued tasks in order off the update goroutine and
// brings their state changes back as one message.
func (a *App) runTasks(tasks []task) tea.Cmd {
	return func() tea.Msg {
		applies := make([]func(*App), 0, len(tasks))
		for _, t := range tasks {
			applies = append(applies, t())
		}
		return tasksDoneMsg{applies: applies}
	}
}

// notifyUpcoming sends a desktop notification for every event starting
// within the next hour.
func notifyUpcoming(events map[int][]probe.Event, now time.Time) {
	for _, evs := range events {
		for _, ev := range evs {
			until := ev.Start.Sub(now)
			if until <= 0 || until > time.Hour {
				continue
			}
			body := fmt.Sprintf("%s at %s", ev.Title, ev.Start.Format("15:04"))
			if err := beeep.Notify("Upcoming event", body, ""); err != nil {
				log.Printf("notify: %v", err)
			}
		}
	}
}
