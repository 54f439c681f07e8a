// Package lifecycle runs registered handlers when the process is asked to stop.
package lifecycle

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler receives the OS signal that triggered shutdown.
type Handler func(os.Signal)

// HandlerID identifies a registered handler.
type HandlerID int64

type registry struct {
	startOnce  sync.Once
	signalChan chan os.Signal

	mu       sync.RWMutex
	nextID   HandlerID
	handlers map[HandlerID]Handler
	order    []HandlerID
}

var (
	defaultSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

	global = newRegistry()

	channelFactory = newSignalChan
	notifyFunc     = signal.Notify
	stopFunc       = signal.Stop
	exitFunc       = os.Exit
)

func newRegistry() *registry {
	return &registry{handlers: make(map[HandlerID]Handler)}
}

// Register adds a handler that runs when SIGINT or SIGTERM arrives.
// Handlers run in reverse registration order, then the process exits with
// the conventional 128+signal code.
func Register(handler Handler) HandlerID {
	return global.register(handler)
}

// Unregister removes a previously registered handler.
func Unregister(id HandlerID) {
	global.unregister(id)
}

func (r *registry) register(handler Handler) HandlerID {
	if handler == nil {
		return 0
	}

	r.startOnce.Do(r.listen)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.handlers[id] = handler
	r.order = append(r.order, id)
	return id
}

func (r *registry) unregister(id HandlerID) {
	if id == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.handlers, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *registry) listen() {
	r.signalChan = channelFactory()
	notifyFunc(r.signalChan, defaultSignals...)

	go func(ch chan os.Signal) {
		sig := <-ch
		r.run(sig)
		exitFunc(exitCode(sig))
	}(r.signalChan)
}

func (r *registry) run(sig os.Signal) {
	r.mu.RLock()
	pending := make([]Handler, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		if handler := r.handlers[r.order[i]]; handler != nil {
			pending = append(pending, handler)
		}
	}
	r.mu.RUnlock()

	for _, handler := range pending {
		callHandler(handler, sig)
	}
}

func (r *registry) stop() {
	if r.signalChan != nil {
		stopFunc(r.signalChan)
	}
}

func callHandler(handler Handler, sig os.Signal) {
	defer func() {
		// a failing handler must not stop the others
		_ = recover()
	}()
	handler(sig)
}

func exitCode(sig os.Signal) int {
	switch sig {
	case os.Interrupt:
		return 130
	case syscall.SIGTERM:
		return 143
	default:
		return 1
	}
}

// reset clears global state (tests only).
func reset() {
	global.stop()
	global = newRegistry()
	restoreFactories()
}

func newSignalChan() chan os.Signal {
	return make(chan os.Signal, 1)
}

func restoreFactories() {
	channelFactory = newSignalChan
	notifyFunc = signal.Notify
	stopFunc = signal.Stop
	exitFunc = os.Exit
}
