// worker/worker.go
package worker

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Schedule sets how many lines each flow prints and how long it sleeps
// after each one.
type Schedule struct {
	WorkerSteps    int
	WorkerInterval time.Duration
	MainSteps      int
	MainInterval   time.Duration
}

// DefaultSchedule: worker 1..9 every 100ms, main 1..4 every 150ms.
func DefaultSchedule() Schedule {
	return Schedule{
		WorkerSteps:    9,
		WorkerInterval: 100 * time.Millisecond,
		MainSteps:      4,
		MainInterval:   150 * time.Millisecond,
	}
}

// Interleave spawns one worker printing "Thread: i" while the calling
// goroutine prints "Main: i", then waits for the worker to finish.
// Cancelling ctx stops both flows; the worker is always joined before
// Interleave returns.
func Interleave(ctx context.Context, w io.Writer, s Schedule, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	out := &lockedWriter{w: w}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return count(gctx, out, "Thread", s.WorkerSteps, s.WorkerInterval)
	})
	log.Debug("worker spawned", zap.Int("steps", s.WorkerSteps), zap.Duration("interval", s.WorkerInterval))

	mainErr := count(gctx, out, "Main", s.MainSteps, s.MainInterval)
	workerErr := g.Wait()
	log.Debug("worker joined", zap.Error(workerErr))

	if mainErr != nil {
		return mainErr
	}
	return workerErr
}

func count(ctx context.Context, w io.Writer, label string, steps int, interval time.Duration) error {
	for i := 1; i <= steps; i++ {
		if _, err := fmt.Fprintf(w, "%s: %d\n", label, i); err != nil {
			return err
		}
		if err := sleep(ctx, interval); err != nil {
			return err
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// lockedWriter serialises writes so lines from both flows never interleave
// mid-line.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
