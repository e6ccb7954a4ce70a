package remote

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/plus3/welltris/engine"
	"go.uber.org/zap"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 512
	sendBufSize       = 16
	maxMessagesPerSec = 60
)

// Message types of the controller protocol.
const (
	MsgAction = "action"
	MsgAck    = "ack"
	MsgError  = "error"
)

// Envelope is a JSON text frame in either direction.
type Envelope struct {
	T string `json:"t"`
	D string `json:"d,omitempty"`
}

type outbound struct {
	binary bool
	data   []byte
}

type client struct {
	server *Server
	conn   *websocket.Conn
	remote string
	send   chan outbound

	done      chan struct{}
	closeOnce sync.Once

	msgCount   int
	msgResetAt time.Time
}

func newClient(s *Server, conn *websocket.Conn, remote string) *client {
	return &client{
		server: s,
		conn:   conn,
		remote: remote,
		send:   make(chan outbound, sendBufSize),
		done:   make(chan struct{}),
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *client) queue(m outbound) {
	select {
	case <-c.done:
	case c.send <- m:
	default:
	}
}

func (c *client) reply(t, d string) {
	data, err := json.Marshal(Envelope{T: t, D: d})
	if err != nil {
		return
	}
	c.queue(outbound{data: data})
}

func (c *client) readPump() {
	defer func() {
		c.server.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.server.logger.Debug("controller read failed", zap.String("remote", c.remote), zap.Error(err))
			}
			return
		}

		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			c.server.logger.Warn("controller rate limit exceeded", zap.String("remote", c.remote))
			return
		}

		c.handle(message)
	}
}

func (c *client) handle(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.reply(MsgError, "malformed message")
		return
	}
	if env.T != MsgAction {
		c.reply(MsgError, "unknown message type "+env.T)
		return
	}

	a, err := engine.ParseAction(env.D)
	if err != nil {
		c.reply(MsgError, err.Error())
		return
	}
	if !c.server.enqueue(a) {
		c.reply(MsgError, "busy")
		return
	}
	c.reply(MsgAck, env.D)
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case m := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			kind := websocket.TextMessage
			if m.binary {
				kind = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(kind, m.data); err != nil {
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
