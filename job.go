package vecsim

import "sync"

// job is one function of a batch submitted through Pool.Run.
type job struct {
	fn   func()
	done *sync.WaitGroup
}

// spanJobs turns planned spans into pool functions applying op.
func spanJobs(spans []span, op *operator) []func() {
	fns := make([]func(), len(spans))
	for i := range spans {
		s := spans[i]
		fns[i] = func() {
			s.transform(op)
		}
	}
	return fns
}
