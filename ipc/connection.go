package ipc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection is the client's link to the game server. One connection plays
// one team.
type Connection struct {
	conn     frameConn
	handlers map[string]Handler
	Team     string
}

// Dial opens a websocket to the game server.
func Dial(ctx context.Context, url string) (*Connection, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	ws.SetReadLimit(maxFrameSize)
	return NewConnection(ws, nil), nil
}

func NewConnection(conn frameConn, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		conn:     conn,
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

// Close ends the connection; a blocked ReadLoop returns.
func (c *Connection) Close() error { return c.conn.Close() }

// ReadLoop blocks until the connection closes or errors. It owns the conn lifetime
// so callers don't need to track cleanup.
func (c *Connection) ReadLoop() {
	defer c.conn.Close()

	for {
		env, err := ReadEnvelope(c.conn)
		if err != nil {
			slog.Info("connection read ended", "team", c.Team, "error", err)
			return
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "error", err)
			continue
		}

		if resp != nil {
			if err := WriteEnvelope(c.conn, *resp); err != nil {
				slog.Error("failed to send response", "type", resp.Type, "error", err)
				return
			}
			slog.Debug("sent response", "type", resp.Type, "team", c.Team)
		}
	}
}
