package spinlock

import (
	"runtime"
	"sync/atomic"
)

// Mutex is a spin lock for very short critical sections.
// The zero value is an unlocked mutex. Not reentrant.
type Mutex uint32

const maxBackoff = 32

// Lock spins with exponential backoff until the lock is acquired.
func (m *Mutex) Lock() {
	if atomic.CompareAndSwapUint32((*uint32)(m), 0, 1) {
		return
	}
	backoff := 1
	for {
		for i := 0; i < backoff; i++ {
			runtime.Gosched()
		}
		if atomic.CompareAndSwapUint32((*uint32)(m), 0, 1) {
			return
		}
		if backoff < maxBackoff {
			backoff <<= 1
		}
	}
}

// TryLock acquires the lock without spinning, reporting success.
func (m *Mutex) TryLock() bool {
	return atomic.CompareAndSwapUint32((*uint32)(m), 0, 1)
}

func (m *Mutex) Unlock() {
	atomic.StoreUint32((*uint32)(m), 0)
}
