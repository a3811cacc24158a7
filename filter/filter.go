// Package filter evaluates program-name allow/deny policies.
//
// Two independent policies exist: the global one deciding whether any
// retrieval is attempted for a program, and the clipboard one deciding
// whether the clipboard fallback specifically may run. A program name
// matches a list when it contains any entry as a case-insensitive
// substring.
package filter

import (
	"strings"
	"sync/atomic"
)

// Mode selects how a Spec treats its list.
type Mode int

const (
	// Disabled means the policy passes every program.
	Disabled Mode = iota
	// IncludeList passes only programs matching the list. An empty list
	// matches nothing, so the policy fails closed.
	IncludeList
	// ExcludeList passes programs not matching the list. An empty list
	// matches nothing, so the policy passes open.
	ExcludeList
)

// Spec is one allow/deny policy. Entries are stored lowercased.
type Spec struct {
	Mode    Mode
	Entries []string
}

// NewSpec lowercases the entries up front so matching never allocates.
func NewSpec(mode Mode, entries []string) Spec {
	s := Spec{Mode: mode}
	for _, e := range entries {
		if e == "" {
			continue
		}
		s.Entries = append(s.Entries, strings.ToLower(e))
	}
	return s
}

// Matches reports whether programName contains any list entry as a
// case-insensitive substring.
func (s Spec) Matches(programName string) bool {
	if len(s.Entries) == 0 {
		return false
	}
	name := strings.ToLower(programName)
	for _, e := range s.Entries {
		if strings.Contains(name, e) {
			return true
		}
	}
	return false
}

// Allows applies the policy to a program name.
func (s Spec) Allows(programName string) bool {
	switch s.Mode {
	case IncludeList:
		return s.Matches(programName)
	case ExcludeList:
		return !s.Matches(programName)
	}
	return true
}

// exceptionList is a plain set of lowercased substrings, not a mode.
type exceptionList []string

func (l exceptionList) contains(programName string) bool {
	if len(l) == 0 {
		return false
	}
	name := strings.ToLower(programName)
	for _, e := range l {
		if strings.Contains(name, e) {
			return true
		}
	}
	return false
}

// Engine holds the current policies and per-app exception lists. Writers
// replace whole values; readers load snapshots, so a concurrent
// configuration call never exposes a partially-updated list.
type Engine struct {
	global    atomic.Pointer[Spec]
	clipboard atomic.Pointer[Spec]

	// apps whose self-drawn cursor defeats the cursor-shape precondition
	// of the clipboard fallback (e.g. Adobe Acrobat)
	skipCursorDetect atomic.Pointer[exceptionList]
	// apps that rewrite the clipboard several times after one copy and
	// need the extra post-copy read delay
	delayRead atomic.Pointer[exceptionList]
}

func NewEngine() *Engine {
	e := &Engine{}
	e.SetGlobal(Spec{})
	e.SetClipboard(Spec{})
	e.SetSkipCursorDetect(nil)
	e.SetDelayRead(nil)
	return e
}

func (e *Engine) SetGlobal(s Spec)    { e.global.Store(&s) }
func (e *Engine) SetClipboard(s Spec) { e.clipboard.Store(&s) }

func (e *Engine) SetSkipCursorDetect(entries []string) {
	l := exceptionList(NewSpec(Disabled, entries).Entries)
	e.skipCursorDetect.Store(&l)
}

func (e *Engine) SetDelayRead(entries []string) {
	l := exceptionList(NewSpec(Disabled, entries).Entries)
	e.delayRead.Store(&l)
}

// GlobalMode reports the mode of the current global policy.
func (e *Engine) GlobalMode() Mode { return e.global.Load().Mode }

// GlobalAllows applies the global detection policy.
func (e *Engine) GlobalAllows(programName string) bool {
	return e.global.Load().Allows(programName)
}

// ClipboardAllows applies the clipboard-fallback policy.
func (e *Engine) ClipboardAllows(programName string) bool {
	return e.clipboard.Load().Allows(programName)
}

// SkipsCursorDetect reports whether the app bypasses the cursor-shape
// precondition of the clipboard fallback.
func (e *Engine) SkipsCursorDetect(programName string) bool {
	return e.skipCursorDetect.Load().contains(programName)
}

// WantsDelayRead reports whether the app gets the extra post-copy delay.
func (e *Engine) WantsDelayRead(programName string) bool {
	return e.delayRead.Load().contains(programName)
}
