package contest

import "time"

// Tracking holds one guild's contest series: its prompt pool, the running
// contest and the last archived one. A guild runs at most one contest at a
// time and monitors a single channel.
type Tracking struct {
	GuildID     string
	ChannelID   string
	AutoRestart bool
	Prompts     *Prompts
	Current     *Contest
	Previous    *Contest
}

func NewTracking(guildID string) *Tracking {
	return &Tracking{
		GuildID:     guildID,
		AutoRestart: true,
		Prompts:     NewPrompts(),
	}
}

// StartContest opens a new contest, taking the next prompt from the pool.
// A contest that is still running gets archived first.
func (t *Tracking) StartContest(now time.Time, durationDays int) {
	if t.Current.Running() {
		t.Previous = t.Current
	}

	promptIndex, ok := t.Prompts.NextIndex()
	if !ok {
		promptIndex = -1
	}
	t.Current = newContest(now, durationDays, promptIndex)
}

// StopContest archives the running contest. Returns false when there is
// nothing to stop.
func (t *Tracking) StopContest() bool {
	if !t.Current.Running() {
		return false
	}

	t.Previous = t.Current
	t.Current = nil
	return true
}

// CurrentPrompt resolves the prompt text of the running contest without
// rotating the pool. Without a running contest it falls back to the pool's
// cursor position.
func (t *Tracking) CurrentPrompt() (string, bool) {
	if t.Current.Running() {
		return t.Prompts.At(t.Current.PromptIndex)
	}
	return t.Prompts.Current()
}

// ContestEnd forwards the running contest's scheduled close time.
func (t *Tracking) ContestEnd() (time.Time, bool) {
	if !t.Current.Running() {
		return time.Time{}, false
	}
	return t.Current.EndAt()
}

// SetChannelID rebinds the monitored channel.
func (t *Tracking) SetChannelID(channelID string) {
	t.ChannelID = channelID
}
