package cleanup

import (
	"log"
	"time"
)

// SessionStore is the part of the session manager the worker needs
type SessionStore interface {
	CleanupIdleSessions(maxIdle time.Duration) int
}

type Worker struct {
	Sessions SessionStore
	MaxIdle  time.Duration
	Interval time.Duration
	stop     chan struct{}
}

func NewWorker(sessions SessionStore, maxIdle time.Duration) *Worker {
	return &Worker{
		Sessions: sessions,
		MaxIdle:  maxIdle,
		Interval: 5 * time.Minute,
		stop:     make(chan struct{}),
	}
}

// Start initiates the background ticker
func (w *Worker) Start() {
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.RunCleanup()
			case <-w.stop:
				return
			}
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

// Stop ends the background ticker. It must be called at most once.
func (w *Worker) Stop() {
	close(w.stop)
}

// RunCleanup executes the actual cleanup logic
func (w *Worker) RunCleanup() int {
	removed := w.Sessions.CleanupIdleSessions(w.MaxIdle)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d idle game sessions", removed)
	}
	return removed
}
