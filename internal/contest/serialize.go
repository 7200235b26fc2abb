package contest

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

const snapshotVersion = 1

type promptsSnapshot struct {
	List   []string `json:"list"`
	Cursor int      `json:"cursor"`
}

type entrySnapshot struct {
	MessageID string `json:"message_id"`
	Removed   bool   `json:"removed"`
}

type contestSnapshot struct {
	StartTime    time.Time       `json:"start_time"`
	DurationDays int             `json:"duration_days"`
	PromptIndex  int             `json:"prompt_index"`
	Entries      []entrySnapshot `json:"entries"`
}

type snapshot struct {
	Version     int              `json:"version"`
	GuildID     string           `json:"guild_id"`
	ChannelID   string           `json:"channel_id"`
	AutoRestart *bool            `json:"auto_restart"`
	Prompts     *promptsSnapshot `json:"prompts"`
	Previous    *contestSnapshot `json:"previous_contest"`
	Current     *contestSnapshot `json:"current_contest"`
}

func contestToSnapshot(c *Contest) *contestSnapshot {
	if c == nil {
		return nil
	}

	entries := make([]entrySnapshot, 0, len(c.Entries))
	for _, e := range c.Entries {
		entries = append(entries, entrySnapshot{MessageID: e.MessageID, Removed: e.Removed})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].MessageID < entries[j].MessageID })

	return &contestSnapshot{
		StartTime:    c.StartTime,
		DurationDays: c.DurationDays,
		PromptIndex:  c.PromptIndex,
		Entries:      entries,
	}
}

func contestFromSnapshot(cs *contestSnapshot) *Contest {
	if cs == nil {
		return nil
	}

	c := &Contest{
		StartTime:    cs.StartTime,
		DurationDays: cs.DurationDays,
		PromptIndex:  cs.PromptIndex,
		Entries:      make(map[string]*Entry, len(cs.Entries)),
	}
	for _, es := range cs.Entries {
		if es.MessageID == "" {
			continue
		}
		c.Entries[es.MessageID] = &Entry{MessageID: es.MessageID, Removed: es.Removed}
	}
	return c
}

// Snapshot serializes the tracking state into the versioned persisted form.
func (t *Tracking) Snapshot() ([]byte, error) {
	autoRestart := t.AutoRestart
	s := snapshot{
		Version:     snapshotVersion,
		GuildID:     t.GuildID,
		ChannelID:   t.ChannelID,
		AutoRestart: &autoRestart,
		Prompts: &promptsSnapshot{
			List:   t.Prompts.List(),
			Cursor: t.Prompts.cursor,
		},
		Previous: contestToSnapshot(t.Previous),
		Current:  contestToSnapshot(t.Current),
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("error serializing tracking for %s: %w", t.GuildID, err)
	}
	return data, nil
}

// TrackingFromSnapshot rebuilds tracking state from its persisted form.
// Missing fields get defaults: absent prompts mean an empty pool, an
// out-of-range cursor is rewound, absent auto_restart means enabled.
func TrackingFromSnapshot(data []byte) (*Tracking, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error parsing tracking snapshot: %w", err)
	}
	if s.Version > snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	if s.GuildID == "" {
		return nil, fmt.Errorf("tracking snapshot has no guild id")
	}

	t := NewTracking(s.GuildID)
	t.ChannelID = s.ChannelID
	if s.AutoRestart != nil {
		t.AutoRestart = *s.AutoRestart
	}

	if s.Prompts != nil {
		for _, phrase := range s.Prompts.List {
			t.Prompts.Add(phrase)
		}
		if s.Prompts.Cursor >= 0 && s.Prompts.Cursor < t.Prompts.Len() {
			t.Prompts.cursor = s.Prompts.Cursor
		}
	}

	t.Previous = contestFromSnapshot(s.Previous)
	t.Current = contestFromSnapshot(s.Current)

	return t, nil
}
