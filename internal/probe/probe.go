// Package probe wraps the external system collaborators: brightness and
// volume shell commands and the calendar-event script. Failures never reach
// the UI; they degrade to zero values or empty collections.
package probe

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/hy4ri/deskdash/internal/config"
)

// Event is one calendar event as reported by the external event source.
type Event struct {
	Start       time.Time
	End         time.Time
	Title       string
	Description string
}

// Runner executes the configured shell one-liners.
type Runner struct {
	cmds config.CommandsConfig
}

// New returns a Runner over the configured command strings.
func New(cmds config.CommandsConfig) *Runner {
	return &Runner{cmds: cmds}
}

// run executes command via `sh -c` and returns its stdout. Any failure
// yields an empty string.
func (r *Runner) run(command string) string {
	out, err := exec.Command("sh", "-c", command).Output()
	if err != nil {
		log.Printf("cmd %q failed: %v", command, err)
		return ""
	}
	log.Printf("cmd %q -> %q", command, out)
	return string(out)
}

// Brightness reads the current display brightness percentage, 0 on failure.
func (r *Runner) Brightness() int {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.run(r.cmds.GetBrightness)), 64)
	if err != nil {
		return 0
	}
	return int(math.Ceil(v))
}

// SetBrightness sets the display brightness percentage.
func (r *Runner) SetBrightness(v int) {
	r.run(fmt.Sprintf(r.cmds.SetBrightness, v))
}

// Volume reads the current audio volume percentage, 0 on failure.
func (r *Runner) Volume() int {
	v, err := strconv.Atoi(strings.TrimSpace(r.run(r.cmds.GetVolume)))
	if err != nil {
		return 0
	}
	return v
}

// SetVolume sets the audio volume percentage.
func (r *Runner) SetVolume(v int) {
	r.run(fmt.Sprintf(r.cmds.SetVolume, v))
}

type eventJSON struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CalendarEvents invokes the external event script for (year, month) and
// returns the month's events keyed by day of month, in the order the source
// supplies them. Malformed output yields an empty map.
func (r *Runner) CalendarEvents(year, month, numOfDays int) map[int][]Event {
	out := r.run(fmt.Sprintf(r.cmds.GetEvents, year, month, numOfDays))
	return ParseEvents([]byte(out))
}

// ParseEvents decodes the event source's JSON into a day-keyed mapping.
func ParseEvents(data []byte) map[int][]Event {
	var raw []eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return map[int][]Event{}
	}

	byDay := make(map[int][]Event)
	for _, e := range raw {
		start, err := parseEventTime(e.Start)
		if err != nil {
			continue
		}
		end, err := parseEventTime(e.End)
		if err != nil {
			end = start
		}
		byDay[start.Day()] = append(byDay[start.Day()], Event{
			Start:       start,
			End:         end,
			Title:       e.Title,
			Description: e.Description,
		})
	}
	return byDay
}

// parseEventTime accepts the timestamped and the all-day date forms the
// event source emits.
func parseEventTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
