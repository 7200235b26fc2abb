package app

import (
	"context"
	"log"
	"time"
)

// RunScheduler drives contest transitions off a periodic tick until the
// context is canceled.
func (a *App) RunScheduler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Print("Scheduler stopped")
			return
		case <-ticker.C:
			a.tick()
		}
	}
}

// tick closes every contest whose deadline has passed and, when the guild
// keeps auto-restart on, immediately opens the next one with the next
// prompt. Failures are isolated per guild.
func (a *App) tick() {
	now := a.now()
	for _, guildID := range a.schedule.PopDue(now) {
		tracking, ok := a.registry.Get(guildID)
		if !ok {
			continue
		}

		if !a.transport.ResolveChannel(tracking.ChannelID) {
			// The deadline stays due, so the transition retries next tick.
			if end, ok := tracking.ContestEnd(); ok {
				a.schedule.Set(guildID, end)
			}
			log.Printf("Channel %s for guild %s is unavailable, skipping", tracking.ChannelID, guildID)
			continue
		}

		if !tracking.Current.Running() {
			continue
		}
		intervalDays := tracking.Current.DurationDays

		stopped, err := a.endContest(tracking)
		if err != nil {
			log.Print(err)
			continue
		}
		if !stopped || !tracking.AutoRestart {
			continue
		}

		if err := a.startContest(tracking, intervalDays); err != nil {
			log.Printf("Error restarting contest for guild %s: %v", guildID, err)
		}
	}
}
