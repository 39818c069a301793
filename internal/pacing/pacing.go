/*
 * Copyright (C) 2023 by Jason Figge
 */

// Package pacing keeps presenters at a steady frame rate and measures the rate
// they actually achieve.
package pacing

import "time"

// Pacer blocks until the next frame slot.
type Pacer struct {
	interval time.Duration
	next     time.Time
	now      func() time.Time
	sleep    func(time.Duration)
}

func NewPacer(fps int) *Pacer {
	return newPacer(fps, time.Now, time.Sleep)
}

func newPacer(fps int, now func() time.Time, sleep func(time.Duration)) *Pacer {
	if fps <= 0 {
		fps = 60
	}
	return &Pacer{interval: time.Second / time.Duration(fps), now: now, sleep: sleep}
}

func (p *Pacer) Interval() time.Duration { return p.interval }

// Wait sleeps out the remainder of the current frame. A frame that overran
// its slot starts the schedule again instead of trying to catch up.
func (p *Pacer) Wait() {
	now := p.now()
	if p.next.IsZero() {
		p.next = now
	}
	p.next = p.next.Add(p.interval)
	if d := p.next.Sub(now); d > 0 {
		p.sleep(d)
		return
	}
	p.next = now
}

// FrameRate counts frames and reports frames per second over one-second windows.
type FrameRate struct {
	now    func() time.Time
	start  time.Time
	frames int
	rate   float64
}

func NewFrameRate() *FrameRate {
	return &FrameRate{now: time.Now}
}

// Tick records one presented frame.
func (f *FrameRate) Tick() {
	now := f.now()
	if f.start.IsZero() {
		f.start = now
	}
	f.frames++
	if elapsed := now.Sub(f.start); elapsed >= time.Second {
		f.rate = float64(f.frames) / elapsed.Seconds()
		f.frames = 0
		f.start = now
	}
}

func (f *FrameRate) Rate() float64 { return f.rate }
