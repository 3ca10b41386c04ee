package anim

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// DefaultDuration is the length of a mode change animation.
	DefaultDuration = 1600 * time.Millisecond
	// DefaultFPS is the frame rate used for Bubble Tea ticks.
	DefaultFPS = 60
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// FrameMsg asks an Animator to advance. ID and Tag identify the animator
// and the transition generation the frame was scheduled for.
type FrameMsg struct {
	ID   int
	Tag  int
	Time time.Time
}

// Animator owns a scalar value and at most one in-flight transition.
// Retarget replaces the in-flight transition; the last call wins.
type Animator struct {
	id       int
	tag      int
	value    float64
	active   *Transition
	duration time.Duration
	ease     Curve
	fps      int
}

// NewAnimator creates an animator resting at initial.
func NewAnimator(initial float64, duration time.Duration, ease Curve, fps int) *Animator {
	if duration < 0 {
		duration = 0
	}
	if ease == nil {
		ease = EaseInOut
	}
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Animator{
		id:       nextID(),
		value:    initial,
		duration: duration,
		ease:     ease,
		fps:      fps,
	}
}

// Value is the most recently sampled value.
func (a *Animator) Value() float64 {
	return a.value
}

// Active reports whether a transition is in flight.
func (a *Animator) Active() bool {
	return a.active != nil
}

// Target is where the animator is heading, or its value when idle.
func (a *Animator) Target() float64 {
	if a.active != nil {
		return a.active.To
	}
	return a.value
}

// ID identifies the animator in frame messages.
func (a *Animator) ID() int {
	return a.id
}

// Tag is the generation of the current transition.
func (a *Animator) Tag() int {
	return a.tag
}

// Retarget starts a transition from the current value toward target. It
// reports false when there is nothing to do.
func (a *Animator) Retarget(target float64, now time.Time) bool {
	if a.active != nil {
		a.value = a.active.At(now)
	} else if a.value == target {
		return false
	}
	a.tag++
	if a.duration == 0 {
		a.value = target
		a.active = nil
		return true
	}
	a.active = &Transition{
		From:     a.value,
		To:       target,
		Start:    now,
		Duration: a.duration,
		Ease:     a.ease,
	}
	return true
}

// Step samples the in-flight transition at now and reports whether it is
// still running afterwards.
func (a *Animator) Step(now time.Time) bool {
	if a.active == nil {
		return false
	}
	a.value = a.active.At(now)
	if a.active.Done(now) {
		a.value = a.active.To
		a.active = nil
		return false
	}
	return true
}

// Frame schedules the next frame for the current generation.
func (a *Animator) Frame() tea.Cmd {
	if a.active == nil {
		return nil
	}
	id, tag := a.id, a.tag
	interval := time.Second / time.Duration(a.fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Tag: tag, Time: t}
	})
}

// Update advances on a matching FrameMsg and returns the next frame. Frames
// from other animators or older generations are dropped.
func (a *Animator) Update(msg tea.Msg) (bool, tea.Cmd) {
	frame, ok := msg.(FrameMsg)
	if !ok || frame.ID != a.id || frame.Tag != a.tag {
		return false, nil
	}
	if a.Step(frame.Time) {
		return true, a.Frame()
	}
	return true, nil
}
