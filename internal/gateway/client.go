package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client calls the chat gateway's REST API on behalf of the bot.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Channel struct {
	ID      string `json:"id"`
	GuildID string `json:"guild_id"`
	Name    string `json:"name"`
}

type Attachment struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Message struct {
	ID          string       `json:"id"`
	ChannelID   string       `json:"channel_id"`
	GuildID     string       `json:"guild_id"`
	AuthorID    string       `json:"author_id"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments"`
}

func (c *Client) do(method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("gateway returned %s for %s %s", resp.Status, method, path)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Identity returns the bot's own user, used to ignore its reactions.
func (c *Client) Identity() (*User, error) {
	var user User
	if err := c.do(http.MethodGet, "/users/@me", nil, &user); err != nil {
		return nil, fmt.Errorf("error getting bot identity: %w", err)
	}
	return &user, nil
}

func (c *Client) SendMessage(channelID, text string) error {
	payload := struct {
		Content string `json:"content"`
	}{Content: text}
	return c.do(http.MethodPost, fmt.Sprintf("/channels/%s/messages", channelID), payload, nil)
}

func (c *Client) FetchMessage(channelID, messageID string) (*Message, error) {
	var msg Message
	err := c.do(http.MethodGet, fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID), nil, &msg)
	if err != nil {
		return nil, fmt.Errorf("error fetching message %s: %w", messageID, err)
	}
	return &msg, nil
}

// ResolveChannel reports whether the channel exists and is reachable.
func (c *Client) ResolveChannel(channelID string) bool {
	var channel Channel
	err := c.do(http.MethodGet, fmt.Sprintf("/channels/%s", channelID), nil, &channel)
	return err == nil
}

func (c *Client) AddReaction(channelID, messageID, emoji string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s/reactions/%s/@me", channelID, messageID, url.PathEscape(emoji))
	return c.do(http.MethodPut, path, nil, nil)
}

func (c *Client) RemoveOwnReaction(channelID, messageID, emoji string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s/reactions/%s/@me", channelID, messageID, url.PathEscape(emoji))
	return c.do(http.MethodDelete, path, nil, nil)
}
