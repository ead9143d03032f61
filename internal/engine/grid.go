package engine

import (
	"fmt"
	"strconv"
	"strings"

	appErrors "github.com/PMithila/Group-PPA/pkg/errors"
)

// Config describes the weekly grid: which days are scheduled and how each
// day is cut into slots.
type Config struct {
	Days        []int
	Start       string
	End         string
	SlotMinutes int
}

// DefaultConfig returns the stock grid: Monday-Friday, 07:30-13:30,
// 30-minute slots.
func DefaultConfig() Config {
	return Config{
		Days:        []int{0, 1, 2, 3, 4},
		Start:       "07:30",
		End:         "13:30",
		SlotMinutes: 30,
	}
}

// Slot is one discrete interval of a day. The same index means the same
// time of day on every scheduled day.
type Slot struct {
	Index    int
	StartMin int
	EndMin   int
}

// Start returns the slot start as zero-padded HH:MM.
func (s Slot) Start() string { return FormatClock(s.StartMin) }

// End returns the slot end as zero-padded HH:MM.
func (s Slot) End() string { return FormatClock(s.EndMin) }

// Grid is the ordered slot sequence derived from a Config. Immutable once
// built.
type Grid struct {
	cfg   Config
	slots []Slot
}

// BuildGrid validates the config and derives the slot sequence. A trailing
// interval shorter than SlotMinutes is dropped.
func BuildGrid(cfg Config) (*Grid, error) {
	if cfg.SlotMinutes <= 0 {
		return nil, appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("slot_minutes must be positive, got %d", cfg.SlotMinutes))
	}
	start, err := ParseClock(cfg.Start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConfig.Code, appErrors.ErrConfig.Status, "invalid start time")
	}
	end, err := ParseClock(cfg.End)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConfig.Code, appErrors.ErrConfig.Status, "invalid end time")
	}
	if start >= end {
		return nil, appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("start %s must precede end %s", cfg.Start, cfg.End))
	}

	var slots []Slot
	for t := start; t+cfg.SlotMinutes <= end; t += cfg.SlotMinutes {
		slots = append(slots, Slot{Index: len(slots), StartMin: t, EndMin: t + cfg.SlotMinutes})
	}

	return &Grid{cfg: cfg, slots: slots}, nil
}

// Days returns the scheduled days in the order the config listed them.
func (g *Grid) Days() []int { return g.cfg.Days }

// NumSlots returns the number of slots per day.
func (g *Grid) NumSlots() int { return len(g.slots) }

// Slots returns the ordered slot sequence.
func (g *Grid) Slots() []Slot { return g.slots }

// Slot returns the slot at index i.
func (g *Grid) Slot(i int) Slot { return g.slots[i] }

// SlotMinutes returns the configured slot duration.
func (g *Grid) SlotMinutes() int { return g.cfg.SlotMinutes }

// ParseClock converts "HH:MM" into minutes from midnight.
func ParseClock(raw string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", raw, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", raw, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock value out of range: %q", raw)
	}
	return hours*60 + minutes, nil
}

// FormatClock renders minutes from midnight as zero-padded HH:MM.
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
