package contest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingStartContest(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	t.Run("takes the next prompt from the pool", func(t *testing.T) {
		tr := NewTracking("g1")
		tr.Prompts.Add("cat")
		tr.Prompts.Add("dog")

		tr.StartContest(now, 7)

		require.True(t, tr.Current.Running())
		assert.Equal(t, now, tr.Current.StartTime)
		assert.Equal(t, 0, tr.Current.PromptIndex)

		prompt, ok := tr.CurrentPrompt()
		require.True(t, ok)
		assert.Equal(t, "cat", prompt)
	})

	t.Run("starting again archives the running contest", func(t *testing.T) {
		tr := NewTracking("g1")
		tr.Prompts.Add("cat")
		tr.Prompts.Add("dog")

		tr.StartContest(now, 7)
		tr.Current.AddEntry("m1")
		first := tr.Current

		tr.StartContest(now.Add(time.Hour), 7)

		assert.Same(t, first, tr.Previous)
		assert.Len(t, tr.Previous.Entries, 1)
		assert.Equal(t, 1, tr.Current.PromptIndex)
		assert.Empty(t, tr.Current.Entries)
	})

	t.Run("empty pool pins no prompt", func(t *testing.T) {
		tr := NewTracking("g1")
		tr.StartContest(now, 7)

		require.True(t, tr.Current.Running())
		assert.Equal(t, -1, tr.Current.PromptIndex)

		_, ok := tr.CurrentPrompt()
		assert.False(t, ok)
	})
}

func TestTrackingStopContest(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	t.Run("archives the running contest", func(t *testing.T) {
		tr := NewTracking("g1")
		tr.Prompts.Add("cat")
		tr.StartContest(now, 7)
		running := tr.Current

		require.True(t, tr.StopContest())

		assert.Nil(t, tr.Current)
		assert.Same(t, running, tr.Previous)
	})

	t.Run("nothing to stop", func(t *testing.T) {
		tr := NewTracking("g1")
		assert.False(t, tr.StopContest())
		assert.Nil(t, tr.Previous)
	})

	t.Run("stopping twice does not clobber the archive", func(t *testing.T) {
		tr := NewTracking("g1")
		tr.Prompts.Add("cat")
		tr.StartContest(now, 7)
		running := tr.Current

		require.True(t, tr.StopContest())
		require.False(t, tr.StopContest())

		assert.Same(t, running, tr.Previous)
	})
}

func TestTrackingContestEnd(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	t.Run("forwards the deadline", func(t *testing.T) {
		tr := NewTracking("g1")
		tr.StartContest(now, 3)

		end, ok := tr.ContestEnd()
		require.True(t, ok)
		assert.Equal(t, now.Add(3*24*time.Hour), end)
	})

	t.Run("no contest", func(t *testing.T) {
		tr := NewTracking("g1")
		_, ok := tr.ContestEnd()
		assert.False(t, ok)
	})
}

func TestTrackingCurrentPrompt(t *testing.T) {
	t.Run("read-only during a contest", func(t *testing.T) {
		tr := NewTracking("g1")
		tr.Prompts.Add("cat")
		tr.Prompts.Add("dog")
		tr.StartContest(time.Now(), 7)

		for i := 0; i < 3; i++ {
			prompt, ok := tr.CurrentPrompt()
			require.True(t, ok)
			assert.Equal(t, "cat", prompt)
		}
	})

	t.Run("falls back to the pool cursor without a contest", func(t *testing.T) {
		tr := NewTracking("g1")
		tr.Prompts.Add("cat")

		prompt, ok := tr.CurrentPrompt()
		require.True(t, ok)
		assert.Equal(t, "cat", prompt)
	})
}

func TestTrackingSetChannelID(t *testing.T) {
	tr := NewTracking("g1")
	tr.SetChannelID("c1")
	assert.Equal(t, "c1", tr.ChannelID)
	tr.SetChannelID("c2")
	assert.Equal(t, "c2", tr.ChannelID)
}
