package app

import (
	"fmt"
	"log"
	"time"

	"github.com/antlu/contest-assistant/internal/contest"
	"github.com/antlu/contest-assistant/internal/gateway"
)

const (
	ackEmoji      = "👍"
	withdrawEmoji = "👎"
)

// HandleMessageCreate records a qualifying submission as a contest entry
// and acknowledges it.
func (a *App) HandleMessageCreate(event gateway.MessageEvent) {
	if event.AuthorID == a.botUserID {
		return
	}
	if !a.messageQualifies(event.GuildID, event.ChannelID, event.HasAttachment) {
		return
	}

	tracking, _ := a.registry.Get(event.GuildID)
	if !tracking.Current.Running() {
		return
	}

	tracking.Current.AddEntry(event.MessageID)

	if err := a.transport.AddReaction(event.ChannelID, event.MessageID, ackEmoji); err != nil {
		log.Printf("Error acknowledging entry %s: %v", event.MessageID, err)
	}
	if err := a.registry.Save(event.GuildID); err != nil {
		log.Print(err)
	}
}

// HandleReactionAdd flags an entry as withdrawn on a 👎 reaction. Reactions
// from the bot itself, on non-entries, or with other emojis are ignored.
// Re-delivered reactions are no-ops.
func (a *App) HandleReactionAdd(event gateway.ReactionEvent) {
	if event.ReactorID == a.botUserID {
		return
	}
	if event.Emoji != withdrawEmoji {
		return
	}

	message, err := a.transport.FetchMessage(event.ChannelID, event.MessageID)
	if err != nil {
		log.Printf("Error fetching message %s: %v", event.MessageID, err)
		return
	}
	if !a.messageQualifies(message.GuildID, message.ChannelID, len(message.Attachments) > 0) {
		return
	}

	tracking, _ := a.registry.Get(message.GuildID)
	if !tracking.Current.Running() {
		return
	}

	entry, ok := tracking.Current.Entry(message.ID)
	if !ok || entry.Removed {
		return
	}

	entry.Removed = true

	if err := a.transport.RemoveOwnReaction(event.ChannelID, event.MessageID, ackEmoji); err != nil {
		log.Printf("Error removing ack from %s: %v", event.MessageID, err)
	}
	if err := a.registry.Save(message.GuildID); err != nil {
		log.Print(err)
	}
}

// messageQualifies checks for a user message with an attachment in the
// guild's monitored channel.
func (a *App) messageQualifies(guildID, channelID string, hasAttachment bool) bool {
	if !hasAttachment || guildID == "" {
		return false
	}

	tracking, ok := a.registry.Get(guildID)
	return ok && tracking.ChannelID == channelID
}

// StartContest binds the contest series to a channel and opens a contest
// running for the given number of days.
func (a *App) StartContest(guildID, channelID string, intervalDays int) error {
	tracking := a.registry.GetOrCreate(guildID)
	tracking.SetChannelID(channelID)
	return a.startContest(tracking, intervalDays)
}

func (a *App) startContest(tracking *contest.Tracking, intervalDays int) error {
	if !a.transport.ResolveChannel(tracking.ChannelID) {
		return fmt.Errorf("channel %s is unavailable", tracking.ChannelID)
	}

	tracking.StartContest(a.now(), intervalDays)

	prompt, ok := tracking.CurrentPrompt()
	a.sayPrompt(tracking.ChannelID, prompt, ok)

	if end, ok := tracking.ContestEnd(); ok {
		a.schedule.Set(tracking.GuildID, end)
		a.say(tracking.ChannelID, fmt.Sprintf("Contest ends at %s", end.Format(time.RFC1123)))
	} else {
		a.schedule.Clear(tracking.GuildID)
	}

	return a.registry.Save(tracking.GuildID)
}

// StopContest ends the guild's contest manually. The series does not
// restart until the next start command. Returns false when no contest was
// running.
func (a *App) StopContest(guildID string) (bool, error) {
	tracking, ok := a.registry.Get(guildID)
	if !ok {
		return false, nil
	}
	return a.endContest(tracking)
}

func (a *App) endContest(tracking *contest.Tracking) (bool, error) {
	if !tracking.StopContest() {
		a.say(tracking.ChannelID, "I couldn't find a contest to end")
		return false, nil
	}

	a.schedule.Clear(tracking.GuildID)

	if err := a.registry.Save(tracking.GuildID); err != nil {
		return true, err
	}

	a.say(tracking.ChannelID, "Drawing Contest has ended :(")
	return true, nil
}

// GetPrompt resolves the guild's current prompt without rotating past it.
func (a *App) GetPrompt(guildID string) (string, bool, error) {
	tracking := a.registry.GetOrCreate(guildID)
	prompt, ok := tracking.CurrentPrompt()
	return prompt, ok, a.registry.Save(guildID)
}

// AddPrompt adds a drawing subject to the guild's pool.
func (a *App) AddPrompt(guildID, phrase string) (bool, error) {
	tracking := a.registry.GetOrCreate(guildID)
	if !tracking.Prompts.Add(phrase) {
		return false, nil
	}
	return true, a.registry.Save(guildID)
}

// RemovePrompt removes a drawing subject from the guild's pool.
func (a *App) RemovePrompt(guildID, phrase string) (bool, error) {
	tracking := a.registry.GetOrCreate(guildID)
	if !tracking.Prompts.Remove(phrase) {
		return false, nil
	}
	return true, a.registry.Save(guildID)
}

// ShufflePrompts randomizes the guild's prompt order.
func (a *App) ShufflePrompts(guildID string) error {
	tracking := a.registry.GetOrCreate(guildID)
	tracking.Prompts.Shuffle()
	return a.registry.Save(guildID)
}

// SetAutoRestart switches whether a closed contest immediately reopens
// with the next prompt.
func (a *App) SetAutoRestart(guildID string, on bool) error {
	tracking := a.registry.GetOrCreate(guildID)
	tracking.AutoRestart = on
	return a.registry.Save(guildID)
}

func (a *App) sayPrompt(channelID, prompt string, ok bool) {
	if !ok {
		a.say(channelID, "I'm all out of drawing prompts!")
		return
	}
	a.say(channelID, fmt.Sprintf("Draw: **%s**!", prompt))
}

func (a *App) say(channelID, text string) {
	if err := a.transport.SendMessage(channelID, text); err != nil {
		log.Printf("Error sending message to %s: %v", channelID, err)
	}
}
