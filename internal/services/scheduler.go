package services

import (
	"sort"
	"sync"
)

// SlotCalendar owns the open appointment slots per calendar date. It is a
// plain guarded structure handed to the booking engine by reference, so
// tests can run against isolated instances.
//
// A time appears at most once per date while open; Reserve removes it
// exactly once. There is no path that reinstates a removed slot.
type SlotCalendar struct {
	mu    sync.Mutex
	slots map[string][]string // "YYYY-MM-DD" -> sorted "HH:MM" values
}

// NewSlotCalendar creates a calendar seeded with the launch schedule
func NewSlotCalendar() *SlotCalendar {
	return NewSlotCalendarWith(map[string][]string{
		"2025-07-01": {"09:00", "10:00", "14:00"},
		"2025-07-02": {"11:00", "15:00"},
	})
}

// NewSlotCalendarWith creates a calendar with the given open slots
func NewSlotCalendarWith(seed map[string][]string) *SlotCalendar {
	c := &SlotCalendar{slots: make(map[string][]string)}
	for date, times := range seed {
		c.AddSlots(date, times...)
	}
	return c
}

// AddSlots opens slots for a date, keeping the per-date list sorted by
// time-of-day so "next available" is always the earliest in the day.
func (c *SlotCalendar) AddSlots(date string, times ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing := c.slots[date]
	for _, t := range times {
		if containsTime(existing, t) {
			continue
		}
		existing = append(existing, t)
	}
	sort.Strings(existing)
	c.slots[date] = existing
}

// IsAvailable reports whether the slot is still open
func (c *SlotCalendar) IsAvailable(date, timeOfDay string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return containsTime(c.slots[date], timeOfDay)
}

// Reserve atomically checks and removes a slot. Returns false when the slot
// is already taken or the date/time is unknown, leaving the calendar
// untouched in that case.
func (c *SlotCalendar) Reserve(date, timeOfDay string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	times := c.slots[date]
	for i, t := range times {
		if t == timeOfDay {
			c.slots[date] = append(times[:i], times[i+1:]...)
			return true
		}
	}
	return false
}

// NextAvailable returns the earliest remaining slot for a date
func (c *SlotCalendar) NextAvailable(date string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	times := c.slots[date]
	if len(times) == 0 {
		return "", false
	}
	return times[0], true
}

// Remaining returns how many slots are still open for a date
func (c *SlotCalendar) Remaining(date string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots[date])
}

// Dates returns all dates with at least one open slot, sorted
func (c *SlotCalendar) Dates() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var dates []string
	for date, times := range c.slots {
		if len(times) > 0 {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates
}

func containsTime(times []string, t string) bool {
	for _, existing := range times {
		if existing == t {
			return true
		}
	}
	return false
}
