package form

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TextField is a free-form string field. Printable characters append at the
// end; backspace removes the last character. There is no length bound.
type TextField struct {
	value    string
	initial  string
	required bool
	style    FieldStyle
}

func NewTextField(value string, required bool, style FieldStyle) *TextField {
	return &TextField{value: value, initial: value, required: required, style: style}
}

func (f *TextField) Value() string        { return f.value }
func (f *TextField) DisplayValue() string { return f.value }
func (f *TextField) Required() bool       { return f.required }
func (f *TextField) Reset()               { f.value = f.initial }
func (f *TextField) Style() *FieldStyle   { return &f.style }

func (f *TextField) HandleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		if len(f.value) > 0 {
			f.value = f.value[:len(f.value)-1]
		}
	case tea.KeyRunes, tea.KeySpace:
		f.value += string(msg.Runes)
	}
}

// IntField is a non-negative integer field. Digits shift the value left
// (value*10 + digit); backspace shifts right (value/10).
type IntField struct {
	value    int
	initial  int
	required bool
	style    FieldStyle
}

func NewIntField(value int, required bool, style FieldStyle) *IntField {
	return &IntField{value: value, initial: value, required: required, style: style}
}

func (f *IntField) Value() int           { return f.value }
func (f *IntField) DisplayValue() string { return strconv.Itoa(f.value) }
func (f *IntField) Required() bool       { return f.required }
func (f *IntField) Reset()               { f.value = f.initial }
func (f *IntField) Style() *FieldStyle   { return &f.style }

func (f *IntField) HandleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		f.value /= 10
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' {
				f.value = f.value*10 + int(r-'0')
			}
		}
	}
}

// FloatField keeps a display string distinct from the parsed value. A digit
// or decimal point is appended to the display, re-parsed, and committed only
// when it parses and does not exceed max; otherwise the keystroke is dropped
// and display and value stay unchanged.
type FloatField struct {
	value    float64
	display  string
	initial  float64
	max      float64
	required bool
	style    FieldStyle
}

func NewFloatField(value, max float64, required bool, style FieldStyle) *FloatField {
	f := &FloatField{initial: value, max: max, required: required, style: style}
	f.setInitial()
	return f
}

func (f *FloatField) setInitial() {
	f.value = f.initial
	if f.initial == 0 {
		f.display = ""
	} else {
		f.display = strconv.FormatFloat(f.initial, 'f', -1, 64)
	}
}

func (f *FloatField) Value() float64 { return f.value }
func (f *FloatField) DisplayValue() string {
	return f.display
}
func (f *FloatField) Required() bool     { return f.required }
func (f *FloatField) Reset()             { f.setInitial() }
func (f *FloatField) Style() *FieldStyle { return &f.style }

func (f *FloatField) HandleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		if len(f.display) == 0 {
			return
		}
		f.display = f.display[:len(f.display)-1]
		// an empty display resolves to zero
		if f.display == "" {
			f.value = 0
			return
		}
		if v, err := strconv.ParseFloat(f.display, 64); err == nil {
			f.value = v
		} else {
			f.value = 0
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r < '0' || r > '9') && r != '.' {
				continue
			}
			candidate := f.display + string(r)
			v, err := strconv.ParseFloat(candidate, 64)
			if err != nil {
				// allow a trailing decimal point while typing
				if r == '.' && !strings.Contains(f.display, ".") {
					f.display = candidate
				}
				continue
			}
			if v > f.max {
				continue
			}
			f.display = candidate
			f.value = v
		}
	}
}

// daysPerMonth is the fixed validation table used while the date is still
// partially entered; leap days are settled once the full date is composed.
var daysPerMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DateField builds a date from three 2-character sub-strings: day, month and
// year suffix, filled in that order. A digit that would produce an invalid
// day/month combination is rejected at the keystroke, rolling the sub-string
// back. Backspace empties year, then month, then day.
type DateField struct {
	day, month, year string
	initial          time.Time
	required         bool
	style            FieldStyle
}

func NewDateField(initial time.Time, required bool, style FieldStyle) *DateField {
	return &DateField{initial: initial, required: required, style: style}
}

// Value composes the entered date, or the initial date while incomplete.
// Years are interpreted in the 2000s.
func (f *DateField) Value() time.Time {
	if len(f.day) != 2 || len(f.month) != 2 || len(f.year) != 2 {
		return f.initial
	}
	day, _ := strconv.Atoi(f.day)
	month, _ := strconv.Atoi(f.month)
	year, _ := strconv.Atoi(f.year)
	return time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func (f *DateField) DisplayValue() string {
	pad := func(s string) string {
		for len(s) < 2 {
			s += "_"
		}
		return s
	}
	return fmt.Sprintf("%s / %s / %s", pad(f.day), pad(f.month), pad(f.year))
}

func (f *DateField) Required() bool     { return f.required }
func (f *DateField) Style() *FieldStyle { return &f.style }

func (f *DateField) Reset() {
	f.day, f.month, f.year = "", "", ""
}

func (f *DateField) HandleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		switch {
		case f.year != "":
			f.year = ""
		case f.month != "":
			f.month = ""
		default:
			f.day = ""
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				continue
			}
			f.pushDigit(r)
		}
	}
}

func (f *DateField) pushDigit(r rune) {
	switch {
	case len(f.day) < 2:
		f.day += string(r)
		if len(f.day) == 2 && !f.dayPlausible() {
			f.day = f.day[:1]
		}
	case len(f.month) < 2:
		f.month += string(r)
		if len(f.month) == 2 && !f.monthValid() {
			f.month = f.month[:1]
		}
	case len(f.year) < 2:
		f.year += string(r)
		if !f.composedValid() {
			f.year = f.year[:len(f.year)-1]
		}
	}
}

func (f *DateField) dayPlausible() bool {
	day, _ := strconv.Atoi(f.day)
	return day >= 1 && day <= 31
}

func (f *DateField) monthValid() bool {
	day, _ := strconv.Atoi(f.day)
	month, _ := strconv.Atoi(f.month)
	if month < 1 || month > 12 {
		return false
	}
	return day <= daysPerMonth[month]
}

// composedValid checks the full calendar date once all three parts are
// entered; partial years are always acceptable.
func (f *DateField) composedValid() bool {
	if len(f.year) < 2 {
		return true
	}
	day, _ := strconv.Atoi(f.day)
	month, _ := strconv.Atoi(f.month)
	year, _ := strconv.Atoi(f.year)
	d := time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Day() == day && int(d.Month()) == month
}

// SelectField holds an index into an external option list. Direct key input
// is reserved and currently ignored.
type SelectField struct {
	value   int
	initial int
	style   FieldStyle
}

func NewSelectField(value int, style FieldStyle) *SelectField {
	return &SelectField{value: value, initial: value, style: style}
}

func (f *SelectField) Value() int           { return f.value }
func (f *SelectField) DisplayValue() string { return strconv.Itoa(f.value) }
func (f *SelectField) Required() bool       { return false }
func (f *SelectField) Reset()               { f.value = f.initial }
func (f *SelectField) Style() *FieldStyle   { return &f.style }
func (f *SelectField) HandleKey(tea.KeyMsg) {}

// RadioField holds a single choice index. Direct key input is reserved and
// currently ignored.
type RadioField struct {
	value   int
	initial int
	style   FieldStyle
}

func NewRadioField(value int, style FieldStyle) *RadioField {
	return &RadioField{value: value, initial: value, style: style}
}

func (f *RadioField) Value() int           { return f.value }
func (f *RadioField) DisplayValue() string { return strconv.Itoa(f.value) }
func (f *RadioField) Required() bool       { return false }
func (f *RadioField) Reset()               { f.value = f.initial }
func (f *RadioField) Style() *FieldStyle   { return &f.style }
func (f *RadioField) HandleKey(tea.KeyMsg) {}

// CheckboxField holds a boolean. Direct key input is reserved and currently
// ignored.
type CheckboxField struct {
	value   bool
	initial bool
	style   FieldStyle
}

func NewCheckboxField(value bool, style FieldStyle) *CheckboxField {
	return &CheckboxField{value: value, initial: value, style: style}
}

func (f *CheckboxField) Value() bool          { return f.value }
func (f *CheckboxField) DisplayValue() string { return strconv.FormatBool(f.value) }
func (f *CheckboxField) Required() bool       { return false }
func (f *CheckboxField) Reset()               { f.value = f.initial }
func (f *CheckboxField) Style() *FieldStyle   { return &f.style }
func (f *CheckboxField) HandleKey(tea.KeyMsg) {}
