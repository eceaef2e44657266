package game

import (
	"sync"
	"time"
)

// Scheduler runs fn every d until the returned stop function is called.
// stop must not block, and may be called more than once.
type Scheduler interface {
	Every(d time.Duration, fn func()) (stop func())
}

// TickerScheduler runs callbacks from a time.Ticker goroutine.
type TickerScheduler struct{}

func (TickerScheduler) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// stopwatch counts whole seconds while running. At most one periodic task
// is live at a time; ticks belonging to an earlier run are discarded, so a
// stopped stopwatch is never advanced by a late callback.
//
// onTick must not halt or reset the stopwatch.
type stopwatch struct {
	scheduler Scheduler
	onTick    func(elapsed int)

	// emitting is held from the generation check until onTick returns, so no
	// tick is published once halt or reset has returned
	emitting sync.Mutex

	mu         sync.Mutex
	elapsed    int
	generation uint64
	stop       func()
}

func (watch *stopwatch) start() {
	watch.mu.Lock()
	defer watch.mu.Unlock()

	if watch.stop != nil {
		return
	}

	watch.generation++
	generation := watch.generation
	watch.stop = watch.scheduler.Every(time.Second, func() {
		watch.tick(generation)
	})
}

func (watch *stopwatch) tick(generation uint64) {
	watch.emitting.Lock()
	defer watch.emitting.Unlock()

	watch.mu.Lock()
	if generation != watch.generation || watch.stop == nil {
		watch.mu.Unlock()
		return
	}
	watch.elapsed++
	elapsed := watch.elapsed
	watch.mu.Unlock()

	watch.onTick(elapsed)
}

// halt cancels the running task, if any, and freezes the elapsed time. It
// waits for a tick already being published.
func (watch *stopwatch) halt() {
	watch.emitting.Lock()
	defer watch.emitting.Unlock()

	watch.mu.Lock()
	defer watch.mu.Unlock()
	watch.cancel()
}

func (watch *stopwatch) reset() {
	watch.emitting.Lock()
	defer watch.emitting.Unlock()

	watch.mu.Lock()
	defer watch.mu.Unlock()
	watch.cancel()
	watch.elapsed = 0
}

// cancel must be called with mu held.
func (watch *stopwatch) cancel() {
	if watch.stop != nil {
		watch.stop()
		watch.stop = nil
	}
	watch.generation++
}

func (watch *stopwatch) seconds() int {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.elapsed
}

func (watch *stopwatch) running() bool {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.stop != nil
}
