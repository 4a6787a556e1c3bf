package semaphore

type Semaphore struct {
	ch chan struct{}
}

func New(max int) *Semaphore {
	sema := &Semaphore{
		ch: make(chan struct{}, max),
	}
	for i := 0; i < max; i++ {
		sema.ch <- struct{}{}
	}

	return sema
}

// TryAcquire takes a slot without blocking and reports whether it got one.
func (sema *Semaphore) TryAcquire() bool {
	select {
	case <-sema.ch:
		return true
	default:
		return false
	}
}

func (sema *Semaphore) Release() {
	sema.ch <- struct{}{}
}
