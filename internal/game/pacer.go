package game

import "time"

// Pacer decides when a frontend should tick. It follows the game's tick
// rate and can hold ticking for a while, as after a lost round.
type Pacer struct {
	interval  time.Duration
	next      time.Time
	holdUntil time.Time
}

// NewPacer starts a pacer whose first tick is due one interval after now
func NewPacer(now time.Time, ticksPerSecond int) *Pacer {
	p := &Pacer{}
	p.SetRate(ticksPerSecond)
	p.next = now.Add(p.interval)
	return p
}

// SetRate changes the tick rate, effective from the next scheduled tick
func (p *Pacer) SetRate(ticksPerSecond int) {
	if ticksPerSecond < 1 {
		ticksPerSecond = 1
	}
	p.interval = time.Second / time.Duration(ticksPerSecond)
}

// Interval is the current time between ticks
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Hold suspends ticking for d starting at now
func (p *Pacer) Hold(now time.Time, d time.Duration) {
	p.holdUntil = now.Add(d)
	if p.next.Before(p.holdUntil) {
		p.next = p.holdUntil
	}
}

// Held reports whether a hold is in effect at now
func (p *Pacer) Held(now time.Time) bool {
	return now.Before(p.holdUntil)
}

// Due reports whether a tick should run at now and, if so, schedules the
// next one. A frontend that fell behind gets one tick, not a burst.
func (p *Pacer) Due(now time.Time) bool {
	if now.Before(p.next) {
		return false
	}
	p.next = p.next.Add(p.interval)
	if !p.next.After(now) {
		p.next = now.Add(p.interval)
	}
	return true
}

// Until is the time left before the next tick is due, never negative
func (p *Pacer) Until(now time.Time) time.Duration {
	return max(p.next.Sub(now), 0)
}

// Observe feeds a tick outcome back: the rate follows the level and a lost
// round starts a hold of pause.
func (p *Pacer) Observe(now time.Time, o Outcome, pause time.Duration) {
	p.SetRate(o.TickRate)
	if o.Event == EventGameOver {
		p.Hold(now, pause)
	}
}
