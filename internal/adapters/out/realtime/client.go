package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"courierhub/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

// Inbound frame names.
const (
	frameJoinCompany  = "joinCompany"
	frameLeaveCompany = "leaveCompany"
)

// frame is a message sent by a viewer.
type frame struct {
	Event     string `json:"event"`
	CompanyID string `json:"companyId"`
}

// JoinPolicy decides whether a connection may subscribe to a company.
type JoinPolicy func(companyID kernel.UUID) bool

// Client is one websocket connection.
type Client struct {
	id      ConnID
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	canJoin JoinPolicy

	closeOnce sync.Once
}

func newClient(id ConnID, hub *Hub, conn *websocket.Conn, canJoin JoinPolicy) *Client {
	return &Client{
		id:      id,
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		canJoin: canJoin,
	}
}

// ID returns the connection id.
func (c *Client) ID() ConnID {
	return c.id
}

// enqueue hands a message to the writer without blocking. It reports false
// when the client cannot keep up.
func (c *Client) enqueue(message []byte) bool {
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("connection closed", zap.String("conn_id", string(c.id)), zap.Error(err))
			}
			return
		}
		c.handle(data)
	}
}

func (c *Client) handle(data []byte) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		c.hub.log.Debug("malformed frame ignored", zap.String("conn_id", string(c.id)))
		return
	}

	companyID, err := kernel.UUIDFromString(f.CompanyID)
	if err != nil {
		return
	}

	switch f.Event {
	case frameJoinCompany:
		if c.canJoin != nil && !c.canJoin(companyID) {
			c.hub.log.Warn("join refused", zap.String("conn_id", string(c.id)), zap.String("company_id", f.CompanyID))
			return
		}
		c.hub.registry.Join(c.id, RoomName(companyID))
	case frameLeaveCompany:
		c.hub.registry.Leave(c.id, RoomName(companyID))
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
