package vecsim

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

const timeoutMsg = "Test timed out waiting for the pool"

func TestPool(t *testing.T) {
	Convey("Given a running pool", t, func() {
		pool := NewPool(context.Background(), 4, nil)
		Reset(pool.Close)

		So(pool.Size(), ShouldEqual, 4)

		Convey("Run should execute every job before returning", func() {
			var count int64
			fns := make([]func(), 100)
			for i := range fns {
				fns[i] = func() { atomic.AddInt64(&count, 1) }
			}

			So(pool.Run(fns...), ShouldBeNil)
			So(atomic.LoadInt64(&count), ShouldEqual, 100)
		})

		Convey("Jobs of one batch should write disjoint memory", func() {
			out := make([]int, 64)
			fns := make([]func(), len(out))
			for i := range fns {
				i := i
				fns[i] = func() { out[i] = i * i }
			}

			So(pool.Run(fns...), ShouldBeNil)
			for i, v := range out {
				So(v, ShouldEqual, i*i)
			}
		})

		Convey("Batches from several goroutines should not mix", func() {
			const callers = 8
			counts := make([]int64, callers)

			var wg sync.WaitGroup
			for c := 0; c < callers; c++ {
				wg.Add(1)
				go func(c int) {
					defer wg.Done()
					for round := 0; round < 20; round++ {
						var batch int64
						fns := make([]func(), 16)
						for i := range fns {
							fns[i] = func() { atomic.AddInt64(&batch, 1) }
						}
						if pool.Run(fns...) == nil && atomic.LoadInt64(&batch) == 16 {
							counts[c]++
						}
					}
				}(c)
			}
			wg.Wait()

			for _, n := range counts {
				So(n, ShouldEqual, 20)
			}
		})

		Convey("An empty batch should return immediately", func() {
			So(pool.Run(), ShouldBeNil)
		})

		Convey("Run after Close should fail", func() {
			pool.Close()
			pool.Close()
			So(pool.Run(func() {}), ShouldEqual, ErrPoolClosed)
		})
	})

	Convey("Given a pool bound to a context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		pool := NewPool(ctx, 2, nil)

		Convey("Cancelling the context should close it", func() {
			cancel()

			deadline := time.After(2 * time.Second)
			for {
				if err := pool.Run(func() {}); err == ErrPoolClosed {
					break
				}
				select {
				case <-deadline:
					t.Fatal(timeoutMsg)
				case <-time.After(5 * time.Millisecond):
				}
			}
		})
	})

	Convey("Given a nil pool", t, func() {
		var pool *Pool
		So(pool.Close, ShouldNotPanic)
	})
}
