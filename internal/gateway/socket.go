package gateway

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/lxzan/gws"
)

// MessageEvent is an inbound message seen in a monitored guild.
type MessageEvent struct {
	GuildID       string
	ChannelID     string
	MessageID     string
	AuthorID      string
	HasAttachment bool
}

// ReactionEvent is an inbound reaction on a message.
type ReactionEvent struct {
	GuildID   string
	ChannelID string
	MessageID string
	Emoji     string
	ReactorID string
}

// EventHandler receives the gateway's inbound events.
type EventHandler interface {
	HandleMessageCreate(MessageEvent)
	HandleReactionAdd(ReactionEvent)
}

type incomingEvent struct {
	Type    string `json:"type"`
	Payload struct {
		Session struct {
			ID           string    `json:"id"`
			ReconnectURL string    `json:"reconnect_url"`
			ConnectedAt  time.Time `json:"connected_at"`
		} `json:"session"`
		Message struct {
			ID          string       `json:"id"`
			GuildID     string       `json:"guild_id"`
			ChannelID   string       `json:"channel_id"`
			AuthorID    string       `json:"author_id"`
			Attachments []Attachment `json:"attachments"`
		} `json:"message"`
		Reaction struct {
			MessageID string `json:"message_id"`
			GuildID   string `json:"guild_id"`
			ChannelID string `json:"channel_id"`
			Emoji     string `json:"emoji"`
			UserID    string `json:"user_id"`
		} `json:"reaction"`
	} `json:"payload"`
}

type ReconnParams struct {
	ReconnectURL string
	closeOldConn func()
}

type handler struct {
	events       EventHandler
	addr         string
	token        string
	closeOldConn func()
}

func (h handler) OnOpen(conn *gws.Conn) {
	log.Print("WebSocket connection opened")
}

func (h handler) OnClose(conn *gws.Conn, err error) {
	log.Printf("WebSocket connection closed: %v", err)
}

func (h handler) OnPing(conn *gws.Conn, payload []byte) {
	conn.WritePong(payload)
}

func (h handler) OnPong(conn *gws.Conn, payload []byte) {
}

func (h handler) OnMessage(conn *gws.Conn, message *gws.Message) {
	event := incomingEvent{}
	json.Unmarshal(message.Data.Bytes(), &event)

	switch event.Type {
	case "hello":
		if h.closeOldConn != nil {
			h.closeOldConn()
			h.closeOldConn = nil
		}
	case "keepalive":
		// log.Print("Keepalive event")
	case "message_create":
		msg := event.Payload.Message
		h.events.HandleMessageCreate(MessageEvent{
			GuildID:       msg.GuildID,
			ChannelID:     msg.ChannelID,
			MessageID:     msg.ID,
			AuthorID:      msg.AuthorID,
			HasAttachment: len(msg.Attachments) > 0,
		})
	case "reaction_add":
		reaction := event.Payload.Reaction
		h.events.HandleReactionAdd(ReactionEvent{
			GuildID:   reaction.GuildID,
			ChannelID: reaction.ChannelID,
			MessageID: reaction.MessageID,
			Emoji:     reaction.Emoji,
			ReactorID: reaction.UserID,
		})
	case "reconnect":
		StartSocket(
			h.addr,
			h.token,
			h.events,
			ReconnParams{event.Payload.Session.ReconnectURL, func() {
				conn.WriteClose(1000, []byte("Old connection"))
			}},
		)
	default:
		log.Printf("Unknown event type: %s", event.Type)
	}

	message.Close()
}

// StartSocket connects to the gateway's event stream and dispatches
// inbound events to the handler in a background goroutine.
func StartSocket(addr, token string, events EventHandler, params ReconnParams) error {
	serverAddr := addr
	if params.ReconnectURL != "" {
		serverAddr = params.ReconnectURL
	}

	conn, _, err := gws.NewClient(
		&handler{events: events, addr: addr, token: token, closeOldConn: params.closeOldConn},
		&gws.ClientOption{
			Addr:          serverAddr,
			RequestHeader: http.Header{"Authorization": []string{fmt.Sprintf("Bearer %s", token)}},
		},
	)
	if err != nil {
		return fmt.Errorf("error connecting to gateway: %w", err)
	}

	go conn.ReadLoop()
	return nil
}
