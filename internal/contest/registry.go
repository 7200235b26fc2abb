package contest

import (
	"fmt"
	"sort"
)

// Store persists guild snapshots. Save is write-through: the registry
// calls it after every mutation and its error reaches the caller.
type Store interface {
	SaveSnapshot(guildID string, snapshot []byte) error
	LoadSnapshots() (map[string][]byte, error)
}

// Registry holds every guild's tracking state in memory. It is mutated by
// event handlers and by the scheduler tick on one goroutine; the deadline
// schedule it owns drives all guild transitions.
type Registry struct {
	store     Store
	trackings map[string]*Tracking
	schedule  *Schedule
}

func NewRegistry(store Store) *Registry {
	return &Registry{
		store:     store,
		trackings: make(map[string]*Tracking),
		schedule:  NewSchedule(),
	}
}

// Hydrate loads every persisted guild snapshot and rebuilds the deadline
// schedule for contests that were running when the process stopped.
func (r *Registry) Hydrate() error {
	snapshots, err := r.store.LoadSnapshots()
	if err != nil {
		return fmt.Errorf("error loading snapshots: %w", err)
	}

	for guildID, data := range snapshots {
		t, err := TrackingFromSnapshot(data)
		if err != nil {
			return fmt.Errorf("error hydrating %s: %w", guildID, err)
		}
		r.trackings[t.GuildID] = t

		if end, ok := t.ContestEnd(); ok {
			r.schedule.Set(t.GuildID, end)
		}
	}

	return nil
}

func (r *Registry) Get(guildID string) (*Tracking, bool) {
	t, ok := r.trackings[guildID]
	return t, ok
}

func (r *Registry) GetOrCreate(guildID string) *Tracking {
	if t, ok := r.trackings[guildID]; ok {
		return t
	}

	t := NewTracking(guildID)
	r.trackings[guildID] = t
	return t
}

// Save writes the guild's snapshot through to the store.
func (r *Registry) Save(guildID string) error {
	t, ok := r.trackings[guildID]
	if !ok {
		return fmt.Errorf("no tracking for guild %s", guildID)
	}

	data, err := t.Snapshot()
	if err != nil {
		return err
	}

	if err := r.store.SaveSnapshot(guildID, data); err != nil {
		return fmt.Errorf("error saving snapshot for %s: %w", guildID, err)
	}
	return nil
}

func (r *Registry) Schedule() *Schedule {
	return r.schedule
}

// GuildIDs returns the tracked guilds in stable order.
func (r *Registry) GuildIDs() []string {
	ids := make([]string, 0, len(r.trackings))
	for id := range r.trackings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
