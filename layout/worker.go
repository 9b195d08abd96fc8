package layout

import (
	"log/slog"
	"sync"
)

// TextWorker regenerates the text layout off the frame loop.
// Requests are coalesced: only the most recent pending name is built.
type TextWorker struct {
	set      *Set
	requests chan string
	quit     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewTextWorker starts a worker for set.
func NewTextWorker(set *Set) *TextWorker {
	w := &TextWorker{
		set:      set,
		requests: make(chan string, 1),
		quit:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *TextWorker) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.quit:
			return
		case name := <-w.requests:
			if w.set.SetName(name) {
				slog.Debug("text layout regenerated", "name", name, "generation", w.set.TextGenerations())
			}
		}
	}
}

// Request queues a rebuild for name without blocking. A pending request
// that has not started yet is replaced.
func (w *TextWorker) Request(name string) {
	for {
		select {
		case w.requests <- name:
			return
		default:
		}
		select {
		case <-w.requests:
		default:
		}
	}
}

// Close stops the worker and waits for an in-flight rebuild to finish.
func (w *TextWorker) Close() {
	w.once.Do(func() { close(w.quit) })
	w.wg.Wait()
}
