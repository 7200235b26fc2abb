package contest

import "time"

// Entry is one qualifying submission, keyed by the message that carried it.
// Withdrawn entries are flagged, never deleted.
type Entry struct {
	MessageID string
	Removed   bool
}

// Contest is a single contest run. A zero StartTime means no contest is
// running. A nonpositive DurationDays means the contest has no automatic
// end and must be stopped manually.
type Contest struct {
	StartTime    time.Time
	DurationDays int
	PromptIndex  int
	Entries      map[string]*Entry
}

func newContest(start time.Time, durationDays, promptIndex int) *Contest {
	return &Contest{
		StartTime:    start,
		DurationDays: durationDays,
		PromptIndex:  promptIndex,
		Entries:      make(map[string]*Entry),
	}
}

func (c *Contest) Running() bool {
	return c != nil && !c.StartTime.IsZero()
}

// EndAt returns the scheduled close time. Open-ended contests have none.
func (c *Contest) EndAt() (time.Time, bool) {
	if !c.Running() || c.DurationDays <= 0 {
		return time.Time{}, false
	}
	return c.StartTime.Add(time.Duration(c.DurationDays) * 24 * time.Hour), true
}

// AddEntry records a submission once. Duplicate deliveries are no-ops.
func (c *Contest) AddEntry(messageID string) {
	if c.Entries == nil {
		c.Entries = make(map[string]*Entry)
	}
	if _, ok := c.Entries[messageID]; ok {
		return
	}
	c.Entries[messageID] = &Entry{MessageID: messageID}
}

func (c *Contest) Entry(messageID string) (*Entry, bool) {
	e, ok := c.Entries[messageID]
	return e, ok
}

// EntryCount reports how many entries are still standing.
func (c *Contest) EntryCount() int {
	n := 0
	for _, e := range c.Entries {
		if !e.Removed {
			n++
		}
	}
	return n
}
