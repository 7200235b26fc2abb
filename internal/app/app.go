package app

import (
	"time"

	"github.com/antlu/contest-assistant/internal/contest"
	"github.com/antlu/contest-assistant/internal/gateway"
)

// Transport is the chat platform surface the contest core talks to.
// Implemented by gateway.Client.
type Transport interface {
	SendMessage(channelID, text string) error
	FetchMessage(channelID, messageID string) (*gateway.Message, error)
	ResolveChannel(channelID string) bool
	AddReaction(channelID, messageID, emoji string) error
	RemoveOwnReaction(channelID, messageID, emoji string) error
}

// App wires the contest registry to the transport and drives the
// per-guild contest lifecycle.
type App struct {
	registry  *contest.Registry
	schedule  *contest.Schedule
	transport Transport
	botUserID string
	now       func() time.Time
}

func New(registry *contest.Registry, transport Transport, botUserID string) *App {
	return &App{
		registry:  registry,
		schedule:  registry.Schedule(),
		transport: transport,
		botUserID: botUserID,
		now:       time.Now,
	}
}
