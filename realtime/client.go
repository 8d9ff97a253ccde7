package realtime

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client messages.
const (
	ActionJoinIssue  = "join_issue"
	ActionLeaveIssue = "leave_issue"
)

type clientMessage struct {
	Action  string `json:"action"`
	IssueID string `json:"issueId"`
}

// Client is one websocket connection.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// Attach registers an upgraded connection and starts its pumps. It returns ErrStopped when the hub
// is no longer running.
func (h *Hub) Attach(conn *websocket.Conn) (*Client, error) {
	c := newClient(h, conn)
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return nil, ErrStopped
	}
	go c.writePump()
	go c.readPump()
	return c, nil
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[realtime] error reading from %s: %v", c.ID, err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("[realtime] bad message from %s: %v", c.ID, err)
			continue
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg clientMessage) {
	if msg.IssueID == "" {
		return
	}
	switch msg.Action {
	case ActionJoinIssue:
		c.hub.join(c, IssueChannel(msg.IssueID))
	case ActionLeaveIssue:
		c.hub.leaveChannel(c, IssueChannel(msg.IssueID))
	default:
		log.Printf("[realtime] unknown action %q from %s", msg.Action, c.ID)
	}
}

// writePump writes queued frames, one websocket message each, and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case f, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, f); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
