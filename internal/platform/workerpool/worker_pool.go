// internal/platform/workerpool/worker_pool.go
package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// Bound es el límite global de operaciones de red simultáneas. Una sola
// instancia se comparte entre todas las URLs y snapshots de un lote.
//
// Cada operación lógica adquiere exactamente un permiso con Do y no debe
// volver a llamar a Do mientras lo tiene: con el límite agotado eso bloquea
// para siempre.
type Bound struct {
	sem  *semaphore.Weighted
	size int64

	inFlight atomic.Int64
	peak     atomic.Int64
	total    atomic.Int64

	mu       sync.Mutex
	waitTime time.Duration
}

// BoundStats es una foto del uso del límite.
type BoundStats struct {
	Size      int
	InFlight  int
	Peak      int
	Completed int
	WaitTime  time.Duration
}

// NewBound crea un límite de n permisos. n < 1 se trata como 1.
func NewBound(n int) *Bound {
	if n < 1 {
		n = 1
	}
	return &Bound{sem: semaphore.NewWeighted(int64(n)), size: int64(n)}
}

// Do ejecuta fn con un permiso. Si ctx se cancela mientras espera, fn no se
// ejecuta y se devuelve ctx.Err().
func (b *Bound) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	start := time.Now()
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	b.mu.Lock()
	b.waitTime += time.Since(start)
	b.mu.Unlock()

	n := b.inFlight.Add(1)
	for {
		p := b.peak.Load()
		if n <= p || b.peak.CompareAndSwap(p, n) {
			break
		}
	}
	defer func() {
		b.inFlight.Add(-1)
		b.total.Add(1)
		b.sem.Release(1)
	}()

	return fn(ctx)
}

// Size es el número de permisos.
func (b *Bound) Size() int { return int(b.size) }

// Stats retorna estadísticas del límite.
func (b *Bound) Stats() BoundStats {
	b.mu.Lock()
	wait := b.waitTime
	b.mu.Unlock()
	return BoundStats{
		Size:      int(b.size),
		InFlight:  int(b.inFlight.Load()),
		Peak:      int(b.peak.Load()),
		Completed: int(b.total.Load()),
		WaitTime:  wait,
	}
}
