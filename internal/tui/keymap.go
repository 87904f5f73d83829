package tui

// Key represents a key binding.
type Key struct {
	Key  string
	Help string
}

// Keymap contains all key bindings for the application.
type Keymap struct {
	// Navigation
	Up    Key
	Down  Key
	Left  Key
	Right Key

	// Actions
	Select Key
	Back   Key
	Quit   Key
	Yank   Key

	// Screens
	Dashboard Key
	Calendar  Key
	Grades    Key
	Money     Key

	// Forms
	AddEntry Key
	Search   Key
}

// DefaultKeymap returns the default key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		Up:    Key{Key: "up", Help: "up"},
		Down:  Key{Key: "down", Help: "down"},
		Left:  Key{Key: "left", Help: "left"},
		Right: Key{Key: "right", Help: "right"},

		Select: Key{Key: "enter", Help: "select"},
		Back:   Key{Key: "esc", Help: "back"},
		Quit:   Key{Key: "q", Help: "quit"},
		Yank:   Key{Key: "y", Help: "copy"},

		Dashboard: Key{Key: "d", Help: "dashboard"},
		Calendar:  Key{Key: "c", Help: "calendar"},
		Grades:    Key{Key: "g", Help: "grades"},
		Money:     Key{Key: "m", Help: "money"},

		AddEntry: Key{Key: "i", Help: "add"},
		Search:   Key{Key: "s", Help: "search"},
	}
}

// HelpItems returns the hint-bar entries for the current screen.
func (k Keymap) HelpItems(screen Screen) []Key {
	common := []Key{k.Dashboard, k.Calendar, k.Grades, k.Money, k.Quit}
	switch screen {
	case ScreenCalendar:
		return append([]Key{k.Select, k.Yank}, common...)
	case ScreenGrade:
		return append([]Key{k.AddEntry, k.Select}, common...)
	case ScreenMoney:
		return append([]Key{k.AddEntry, k.Search, k.Yank}, common...)
	}
	return append([]Key{k.AddEntry}, common...)
}
