// Package notify delivers the short success and failure messages the
// stores emit after every backend call.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Notifier receives one message per completed store operation.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Kind tells a success notification from a failure.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "success"
}

// Terminal writes styled notification lines to w.
type Terminal struct {
	mu      sync.Mutex
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
}

// NewTerminal builds a Terminal whose color support is detected on w, so
// plain buffers and pipes get unstyled text.
func NewTerminal(w io.Writer) *Terminal {
	r := lipgloss.NewRenderer(w)
	return &Terminal{
		w:       w,
		success: r.NewStyle().Foreground(lipgloss.Color("114")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

func (t *Terminal) Success(msg string) {
	t.write(t.success.Render("✓"), msg)
}

func (t *Terminal) Error(msg string) {
	t.write(t.failure.Render("✗"), msg)
}

func (t *Terminal) write(mark, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%s %s\n", mark, msg)
}

// Notification is one recorded message.
type Notification struct {
	Kind    Kind
	Message string
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Success(msg string) { r.add(KindSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(KindError, msg) }

func (r *Recorder) add(k Kind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Kind: k, Message: msg})
}

// All returns a copy of the recorded notifications in arrival order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Success(string) {}
func (discard) Error(string)   {}
