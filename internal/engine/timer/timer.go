// Package timer provides interval and one-shot timers driven by the frame
// clock, so callbacks run on the render thread between frames instead of on
// a runtime timer goroutine.
package timer

import "time"

// ID identifies a scheduled timer. The zero ID is never issued.
type ID uint64

type entry struct {
	due      time.Duration
	interval time.Duration // zero for one-shot
	seq      uint64        // tie-break: earlier registration fires first
	fn       func()
}

// Scheduler holds pending timers against a virtual clock advanced by Advance.
type Scheduler struct {
	now    time.Duration
	nextID ID
	seq    uint64
	timers map[ID]*entry
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{timers: make(map[ID]*entry)}
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once, d after the current clock.
func (s *Scheduler) After(d time.Duration, fn func()) ID {
	return s.add(d, 0, fn)
}

// Every schedules fn to run every d. Intervals below one millisecond are
// raised to one millisecond.
func (s *Scheduler) Every(d time.Duration, fn func()) ID {
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(d, interval time.Duration, fn func()) ID {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.seq++
	s.timers[s.nextID] = &entry{due: s.now + d, interval: interval, seq: s.seq, fn: fn}
	return s.nextID
}

// Cancel removes a pending timer. It reports whether the timer was pending.
func (s *Scheduler) Cancel(id ID) bool {
	if _, ok := s.timers[id]; !ok {
		return false
	}
	delete(s.timers, id)
	return true
}

// Pending reports whether id is still scheduled.
func (s *Scheduler) Pending(id ID) bool {
	_, ok := s.timers[id]
	return ok
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	return len(s.timers)
}

// Advance moves the clock forward by dt and runs every timer that comes due,
// in due order. An interval timer that is late by several periods fires once
// per missed period. Callbacks may schedule or cancel timers.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	for {
		id, e := s.earliest(target)
		if e == nil {
			break
		}
		s.now = e.due
		if e.interval > 0 {
			e.due += e.interval
		} else {
			delete(s.timers, id)
		}
		e.fn()
	}
	s.now = target
}

func (s *Scheduler) earliest(limit time.Duration) (ID, *entry) {
	var (
		bestID ID
		best   *entry
	)
	for id, e := range s.timers {
		if e.due > limit {
			continue
		}
		if best == nil || e.due < best.due || (e.due == best.due && e.seq < best.seq) {
			bestID, best = id, e
		}
	}
	return bestID, best
}

// Stop cancels every pending timer.
func (s *Scheduler) Stop() {
	clear(s.timers)
}
