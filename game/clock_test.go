package game

import (
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

// manualScheduler runs periodic tasks only when told to.
type manualScheduler struct {
	tasks []*manualTask
}

type manualTask struct {
	every   time.Duration
	fn      func()
	stopped bool
}

func (scheduler *manualScheduler) Every(d time.Duration, fn func()) func() {
	task := &manualTask{every: d, fn: fn}
	scheduler.tasks = append(scheduler.tasks, task)
	return func() { task.stopped = true }
}

// fire runs every live task once.
func (scheduler *manualScheduler) fire() {
	for _, task := range scheduler.tasks {
		if !task.stopped {
			task.fn()
		}
	}
}

// fireAll runs stopped tasks too, like a ticker callback racing its stop.
func (scheduler *manualScheduler) fireAll() {
	for _, task := range scheduler.tasks {
		task.fn()
	}
}

func (scheduler *manualScheduler) live() int {
	live := 0
	for _, task := range scheduler.tasks {
		if !task.stopped {
			live++
		}
	}
	return live
}

func newTestStopwatch() (*stopwatch, *manualScheduler, *[]int) {
	scheduler := &manualScheduler{}
	var ticks []int
	watch := &stopwatch{
		scheduler: scheduler,
		onTick:    func(elapsed int) { ticks = append(ticks, elapsed) },
	}
	return watch, scheduler, &ticks
}

func TestStopwatchCountsSeconds(t *testing.T) {
	watch, scheduler, ticks := newTestStopwatch()

	watch.start()
	watch.start()
	if scheduler.live() != 1 {
		t.Fatalf("%d live tasks after two starts, want 1", scheduler.live())
	}
	if every := scheduler.tasks[0].every; every != time.Second {
		t.Fatalf("task runs every %v, want 1s", every)
	}

	scheduler.fire()
	scheduler.fire()
	scheduler.fire()

	if watch.seconds() != 3 || !watch.running() {
		t.Fatalf("seconds() = %d, running() = %v", watch.seconds(), watch.running())
	}
	if !reflect.DeepEqual(*ticks, []int{1, 2, 3}) {
		t.Fatalf("ticks = %v, want [1 2 3]", *ticks)
	}
}

func TestStopwatchHaltDropsLateTicks(t *testing.T) {
	watch, scheduler, ticks := newTestStopwatch()

	watch.start()
	scheduler.fire()
	watch.halt()
	watch.halt()

	scheduler.fireAll()
	if watch.seconds() != 1 || watch.running() {
		t.Fatalf("halted stopwatch advanced to %d", watch.seconds())
	}

	// Only the new run's task may count
	watch.start()
	scheduler.fireAll()
	if watch.seconds() != 2 {
		t.Fatalf("seconds() = %d, want 2", watch.seconds())
	}
	if !reflect.DeepEqual(*ticks, []int{1, 2}) {
		t.Fatalf("ticks = %v, want [1 2]", *ticks)
	}
}

func TestStopwatchReset(t *testing.T) {
	watch, scheduler, _ := newTestStopwatch()

	watch.start()
	scheduler.fire()
	scheduler.fire()
	watch.reset()

	if watch.seconds() != 0 || watch.running() || scheduler.live() != 0 {
		t.Fatalf("reset left seconds() = %d, running() = %v", watch.seconds(), watch.running())
	}
	scheduler.fireAll()
	if watch.seconds() != 0 {
		t.Fatalf("stale tick after reset counted: %d", watch.seconds())
	}
}

func TestStopwatchHaltWaitsForTickInFlight(t *testing.T) {
	scheduler := &manualScheduler{}
	entered := make(chan struct{})
	release := make(chan struct{})
	var ticks []int

	watch := &stopwatch{
		scheduler: scheduler,
		onTick: func(elapsed int) {
			ticks = append(ticks, elapsed)
			if elapsed == 1 {
				close(entered)
				<-release
			}
		},
	}
	watch.start()
	fn := scheduler.tasks[0].fn

	go fn()
	<-entered

	reset := make(chan struct{})
	go func() {
		watch.reset()
		close(reset)
	}()

	select {
	case <-reset:
		t.Fatal("reset returned while a tick was still being published")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-reset

	// The late callback from the old run publishes nothing
	fn()
	if watch.seconds() != 0 || !reflect.DeepEqual(ticks, []int{1}) {
		t.Fatalf("seconds() = %d, ticks = %v after reset", watch.seconds(), ticks)
	}
}

func TestTickerScheduler(t *testing.T) {
	var calls int32
	stop := TickerScheduler{}.Every(time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
	})

	deadline := time.Now().Add(5 * time.Second)
	for atomic.LoadInt32(&calls) < 3 {
		if time.Now().After(deadline) {
			t.Fatal("ticker never fired")
		}
		time.Sleep(time.Millisecond)
	}

	stop()
	stop()
	stopped := atomic.LoadInt32(&calls)
	time.Sleep(20 * time.Millisecond)

	// A callback already under way when stop was called may still finish
	if after := atomic.LoadInt32(&calls); after > stopped+1 {
		t.Fatalf("ticker kept firing after stop: %d calls, then %d", stopped, after)
	}
}
