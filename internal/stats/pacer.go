package stats

import (
	"context"
	"sync"
	"time"
)

// Pacer spaces repeated sends at a fixed rate using a leaky bucket: each
// call to Next reserves the following slot, and callers that fall behind
// run immediately without building up a burst.
type Pacer struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

// NewPacer returns a Pacer allowing perSecond sends per second. A
// non-positive rate means no pacing.
func NewPacer(perSecond float64) *Pacer {
	p := &Pacer{}
	if perSecond > 0 {
		p.interval = time.Duration(float64(time.Second) / perSecond)
	}
	return p
}

// Next reserves a slot and returns when it starts. The result may be in the
// past, meaning the caller is behind schedule.
func (p *Pacer) Next() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	if p.interval == 0 {
		return now
	}
	if p.next.Before(now) {
		p.next = now
	}
	slot := p.next
	p.next = slot.Add(p.interval)
	return slot
}

// Wait blocks until the next slot or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	wait := time.Until(p.Next())
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Interval returns the spacing between slots, zero when unpaced.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}
