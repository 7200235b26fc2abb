package contest

import (
	"container/heap"
	"time"
)

// deadline is one scheduled contest close.
type deadline struct {
	at      time.Time
	guildID string
	seq     uint64
}

type deadlineHeap []deadline

func (h deadlineHeap) Len() int { return len(h) }

func (h deadlineHeap) Less(i, j int) bool {
	if !h[i].at.Equal(h[j].at) {
		return h[i].at.Before(h[j].at)
	}
	return h[i].seq < h[j].seq
}

func (h deadlineHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *deadlineHeap) Push(x any) { *h = append(*h, x.(deadline)) }

func (h *deadlineHeap) Pop() any {
	old := *h
	n := len(old)
	d := old[n-1]
	*h = old[:n-1]
	return d
}

// Schedule orders contest deadlines across guilds, earliest first. Instead
// of removing an entry in place when a contest stops or restarts, the
// guild's sequence number is bumped and stale heap entries are discarded
// when popped.
type Schedule struct {
	heap deadlineHeap
	seqs map[string]uint64
	next uint64
}

func NewSchedule() *Schedule {
	return &Schedule{seqs: make(map[string]uint64)}
}

// Set replaces the guild's pending deadline.
func (s *Schedule) Set(guildID string, at time.Time) {
	s.next++
	s.seqs[guildID] = s.next
	heap.Push(&s.heap, deadline{at: at, guildID: guildID, seq: s.next})
}

// Clear invalidates the guild's pending deadline, if any.
func (s *Schedule) Clear(guildID string) {
	s.next++
	s.seqs[guildID] = s.next
}

// PopDue removes and returns the guilds whose deadline has passed, in
// ascending deadline order. Stale entries are dropped silently.
func (s *Schedule) PopDue(now time.Time) []string {
	var due []string
	for len(s.heap) > 0 {
		top := s.heap[0]
		if top.at.After(now) {
			break
		}
		heap.Pop(&s.heap)
		if s.seqs[top.guildID] == top.seq {
			due = append(due, top.guildID)
		}
	}
	return due
}

// NextAt reports the earliest live deadline.
func (s *Schedule) NextAt() (time.Time, bool) {
	for len(s.heap) > 0 {
		top := s.heap[0]
		if s.seqs[top.guildID] == top.seq {
			return top.at, true
		}
		heap.Pop(&s.heap)
	}
	return time.Time{}, false
}
