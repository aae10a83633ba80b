package vecsim

// Worker executes pool jobs until the pool's job channel is closed.
type Worker struct {
	pool *Pool
}

func (w *Worker) run() {
	for j := range w.pool.jobs {
		w.process(j)
	}
}

func (w *Worker) process(j job) {
	defer j.done.Done()
	j.fn()
}
