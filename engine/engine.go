// Package engine is the single coordinator tying the pieces together:
// the input monitor feeds the gesture classifier, classified triggers go
// through the worker to the retriever, and results come back out on the
// bridge channels.
package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"selection-hook/accessibility"
	"selection-hook/bridge"
	"selection-hook/clipboard"
	"selection-hook/filter"
	"selection-hook/gesture"
	"selection-hook/messages"
	"selection-hook/monitor"
	"selection-hook/retriever"
	"selection-hook/worker"
)

// ErrNotRunning means the engine was asked for work between Start and
// Stop boundaries where none is possible.
var ErrNotRunning = errors.New("engine: not running")

// ErrBusy means an explicit request found a retrieval already queued or
// in flight.
var ErrBusy = errors.New("engine: retrieval already in progress")

// Options is the startup configuration. The zero value is a sensible
// default: active detection, raw input forwarding on, mouse-move
// forwarding and the clipboard fallback off.
type Options struct {
	// PassiveMode suppresses gesture-based triggering; selections are
	// then only retrieved via RequestCurrentSelection.
	PassiveMode bool
	// ForwardMouseMove forwards mouse-move events on the bridge. Off by
	// default; moves dominate event volume.
	ForwardMouseMove bool
	// ClipboardFallback enables the last-resort copy strategy.
	ClipboardFallback bool
	// DoubleClickTime overrides the double-click interval; zero keeps
	// the default.
	DoubleClickTime time.Duration
}

// Engine owns the component lifecycle. All methods are safe for
// concurrent use.
type Engine struct {
	mu      sync.Mutex
	running bool

	opts    Options
	bridge  *bridge.Bridge
	filters *filter.Engine

	provider   accessibility.Provider
	backend    clipboard.Backend
	classifier *gesture.Classifier
	retriever  *retriever.Retriever
	monitor    *monitor.Monitor
	pool       *worker.Pool

	ctx    context.Context
	cancel context.CancelFunc
}

func New() *Engine {
	return &Engine{
		bridge:  bridge.New(),
		filters: filter.NewEngine(),
	}
}

// Bridge exposes the delivery channels. Valid before Start; channels
// stay quiet until the engine runs.
func (e *Engine) Bridge() *bridge.Bridge { return e.bridge }

// Filters exposes the program filtering policies for configuration.
func (e *Engine) Filters() *filter.Engine { return e.filters }

// Trusted reports whether the platform grants the access detection
// needs. Windows needs nothing beyond a normal desktop session.
func (e *Engine) Trusted() bool { return accessibility.Trusted() }

// Start installs the input hook and spins up the retrieval worker.
func (e *Engine) Start(opts Options) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return errors.New("engine: already running")
	}

	if err := clipboard.Init(); err != nil {
		return err
	}

	e.opts = opts
	e.backend = clipboard.NewSystemBackend()
	e.provider = accessibility.New()
	e.classifier = gesture.NewClassifier(gesture.SystemPlatform(e.backend.Sequence))
	e.classifier.SetPassive(opts.PassiveMode)
	if opts.DoubleClickTime > 0 {
		e.classifier.SetDoubleClickTime(opts.DoubleClickTime)
	}

	mediator := clipboard.NewMediator(e.backend)
	e.retriever = retriever.New(e.provider, mediator, e.filters, retriever.SystemPlatform())
	e.retriever.SetClipboardFallback(opts.ClipboardFallback)

	e.ctx, e.cancel = context.WithCancel(context.Background())

	pool, err := worker.New(e.provider.Bind, e.provider.Unbind, e.retriever.Retrieve)
	if err != nil {
		e.cancel()
		return err
	}
	e.pool = pool

	e.monitor = monitor.New()
	if err := e.monitor.Start(e); err != nil {
		e.pool.Close()
		e.cancel()
		return err
	}

	e.running = true
	e.bridge.PublishAux(messages.StatusEvent{State: "running"})
	log.Printf("Selection engine started (passive=%v clipboard=%v)", opts.PassiveMode, opts.ClipboardFallback)
	return nil
}

// Stop uninstalls the hook and tears the worker down. An in-flight
// retrieval is cancelled, not awaited.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false

	e.cancel()
	e.monitor.Stop()
	e.bridge.PublishAux(messages.StatusEvent{State: "stopped"})
	// Close the bridge before the pool: a worker callback blocked on the
	// selection slot is only released by the bridge closing, and the
	// pool's Close waits for that callback to return.
	e.bridge.Close()
	e.pool.Close()
	log.Printf("Selection engine stopped")
}

// SetPassive toggles gesture-based triggering at runtime.
func (e *Engine) SetPassive(passive bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.PassiveMode = passive
	if e.classifier != nil {
		e.classifier.SetPassive(passive)
	}
}

// SetClipboardFallback toggles the copy strategy at runtime.
func (e *Engine) SetClipboardFallback(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.ClipboardFallback = enabled
	if e.retriever != nil {
		e.retriever.SetClipboardFallback(enabled)
	}
}

// SetForwardMouseMove toggles mouse-move forwarding at runtime.
func (e *Engine) SetForwardMouseMove(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.ForwardMouseMove = enabled
}

// RequestCurrentSelection retrieves whatever is selected right now,
// bypassing gesture detection. It fails with ErrBusy rather than queue
// behind a gesture-triggered attempt.
func (e *Engine) RequestCurrentSelection(ctx context.Context) (messages.SelectionResult, error) {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return messages.SelectionResult{}, ErrNotRunning
	}
	pool, backend := e.pool, e.backend
	e.mu.Unlock()

	trig := gesture.Trigger{Kind: gesture.KindExplicit, SeqAtDown: backend.Sequence()}
	type outcome struct {
		res messages.SelectionResult
		err error
	}
	reply := make(chan outcome, 1)
	if !pool.Submit(ctx, trig, func(res messages.SelectionResult, err error) {
		reply <- outcome{res: res, err: err}
	}) {
		return messages.SelectionResult{}, ErrBusy
	}
	select {
	case out := <-reply:
		if out.err != nil {
			if errors.Is(out.err, retriever.ErrConcurrentRequest) {
				return messages.SelectionResult{}, ErrBusy
			}
			return messages.SelectionResult{}, out.err
		}
		return out.res, nil
	case <-ctx.Done():
		return messages.SelectionResult{}, ctx.Err()
	}
}

// ReadClipboard returns the clipboard's current text.
func (e *Engine) ReadClipboard() (string, bool) { return clipboard.Read() }

// WriteClipboard replaces the clipboard's text content.
func (e *Engine) WriteClipboard(text string) error { return clipboard.Write(text) }

// HandleMouse implements monitor.Handler. Runs on the monitor's drain
// goroutine.
func (e *Engine) HandleMouse(ev messages.MouseEvent, when time.Time) {
	switch ev.Action {
	case "mouse-down":
		if ev.Button == messages.ButtonLeft {
			e.classifier.OnMouseDown(ev.Pos, when)
		}
	case "mouse-up":
		if ev.Button == messages.ButtonLeft {
			if trig, ok := e.classifier.OnMouseUp(ev.Pos, when); ok {
				e.submit(trig)
			}
		}
	case "mouse-move":
		e.mu.Lock()
		forward := e.opts.ForwardMouseMove
		e.mu.Unlock()
		if !forward {
			return
		}
	}
	e.bridge.PublishMouse(ev)
}

// HandleKey implements monitor.Handler.
func (e *Engine) HandleKey(ev messages.KeyboardEvent, when time.Time) {
	e.classifier.OnKey(ev.Rawcode, ev.Action == "key-down")
	e.bridge.PublishKey(ev)
}

// submit queues a gesture-triggered retrieval; bursts beyond the queue
// slot are shed.
func (e *Engine) submit(trig gesture.Trigger) {
	submitted := e.pool.Submit(e.ctx, trig, func(res messages.SelectionResult, err error) {
		if err != nil {
			if !errors.Is(err, retriever.ErrConcurrentRequest) {
				e.bridge.PublishAux(messages.ErrorEvent{Err: err})
			}
			return
		}
		if res.Text == "" {
			return
		}
		e.bridge.PublishSelection(messages.SelectionEvent{Result: res})
	})
	if !submitted {
		log.Printf("Retrieval busy, dropped %s trigger", trig.Kind)
	}
}
