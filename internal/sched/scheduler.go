// Package sched provides a single-threaded, virtual-time timeline on which
// periodic cadences and one-shot effects are stepped in a fixed order.
//
// Nothing in this package starts goroutines or reads the wall clock. Callers
// advance time explicitly, which makes every run reproducible.
package sched

import (
	"container/heap"
	"time"
)

// Priority orders entries that fall due at the same instant. Lower runs first.
type Priority int

// entry is a scheduled callback.
type entry struct {
	at     time.Duration
	prio   Priority
	seq    uint64
	period time.Duration // zero for one-shot entries
	fn     func()
	name   string
}

type queue []*entry

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	if q[i].prio != q[j].prio {
		return q[i].prio < q[j].prio
	}
	return q[i].seq < q[j].seq
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(*entry)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// Scheduler is a virtual clock plus a priority queue of due callbacks.
// It is not safe for concurrent use; exactly one owner drives it.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	q       queue
	stopped bool
}

// New returns a scheduler positioned at virtual time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After runs fn once, delay after the current virtual time.
func (s *Scheduler) After(delay time.Duration, prio Priority, fn func()) {
	s.push(&entry{at: s.now + max(delay, 0), prio: prio, fn: fn})
}

// Every runs fn every period, the first time at now+first.
// A non-positive period is ignored.
func (s *Scheduler) Every(name string, first, period time.Duration, prio Priority, fn func()) {
	if period <= 0 {
		return
	}
	s.push(&entry{at: s.now + max(first, 0), prio: prio, period: period, fn: fn, name: name})
}

func (s *Scheduler) push(e *entry) {
	if s.stopped {
		return
	}
	s.seq++
	e.seq = s.seq
	heap.Push(&s.q, e)
}

// Advance moves virtual time forward by dt, running every entry that falls
// due in (now, now+dt] in time and priority order. Periodic entries are
// re-armed after they run. A callback that stops the scheduler halts the
// advance immediately. It returns the number of callbacks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if s.stopped || dt < 0 {
		return 0
	}
	target := s.now + dt
	fired := 0
	for len(s.q) > 0 && !s.stopped {
		next := s.q[0]
		if next.at > target {
			break
		}
		heap.Pop(&s.q)
		s.now = next.at
		next.fn()
		fired++
		if next.period > 0 && !s.stopped {
			next.at += next.period
			s.push(next)
		}
	}
	if !s.stopped {
		s.now = target
	}
	return fired
}

// Stop drops every pending entry. Later calls to After, Every and Advance
// are no-ops. Stop is idempotent.
func (s *Scheduler) Stop() {
	s.stopped = true
	s.q = nil
}

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool {
	return s.stopped
}

// Pending returns the number of queued entries.
func (s *Scheduler) Pending() int {
	return len(s.q)
}

// Cadences returns the names of the registered periodic entries.
func (s *Scheduler) Cadences() []string {
	var names []string
	for _, e := range s.q {
		if e.period > 0 {
			names = append(names, e.name)
		}
	}
	return names
}
