// Package transport streams co-signed channel.Action messages between the
// two parties of a heads-up channel over a WebSocket connection.
package transport

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/channelpoker/internal/channel"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// wireAction is the JSON envelope for one channel.Action over the wire.
type wireAction struct {
	ChannelID string `json:"channel_id"`
	HandID    string `json:"hand_id"`
	Seq       uint32 `json:"seq"`
	Kind      uint8  `json:"kind"`
	AmountHi  uint64 `json:"amount_hi"`
	AmountLo  uint64 `json:"amount_lo"`
	PrevHash  string `json:"prev_hash"`
}

// Peer wraps one end of a channel's WebSocket link: it pumps Action
// messages out in the order Send is called and delivers received Actions
// on Inbox, the same readPump/writePump shape any long-lived duplex
// WebSocket connection in this codebase uses.
type Peer struct {
	conn   *websocket.Conn
	logger *log.Logger
	send   chan channel.Action
	Inbox  chan channel.Action

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPeer wraps an already-established WebSocket connection.
func NewPeer(conn *websocket.Conn, logger *log.Logger) *Peer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Peer{
		conn:   conn,
		logger: logger.WithPrefix("transport"),
		send:   make(chan channel.Action, 64),
		Inbox:  make(chan channel.Action, 64),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the read and write pumps. It returns immediately; the
// caller drains Inbox and calls Send/Close as the channel progresses.
func (p *Peer) Start() {
	go p.writePump()
	go p.readPump()
}

// Close tears down the connection and both pumps.
func (p *Peer) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.cancel()
		close(p.send)
		err = p.conn.Close()
	})
	return err
}

// Send enqueues an action for delivery to the peer. It returns
// ErrPeerClosed if the connection has already been torn down.
func (p *Peer) Send(a channel.Action) error {
	select {
	case <-p.ctx.Done():
		return ErrPeerClosed
	default:
	}
	select {
	case p.send <- a:
		return nil
	case <-p.ctx.Done():
		return ErrPeerClosed
	}
}

// ErrPeerClosed is returned by Send once Close has been called.
var ErrPeerClosed = fmt.Errorf("transport: peer connection closed")

func (p *Peer) readPump() {
	defer func() {
		_ = p.Close()
		close(p.Inbox)
	}()

	p.conn.SetReadLimit(maxMessageSize)
	_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var w wireAction
		if err := p.conn.ReadJSON(&w); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				p.logger.Error("peer connection error", "error", err)
			}
			return
		}

		a, err := decodeWireAction(w)
		if err != nil {
			p.logger.Error("malformed action from peer", "error", err)
			return
		}

		select {
		case p.Inbox <- a:
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Peer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = p.conn.Close()
	}()

	for {
		select {
		case a, ok := <-p.send:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := p.conn.WriteJSON(encodeWireAction(a)); err != nil {
				p.logger.Error("failed to write action", "error", err)
				return
			}

		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

func encodeWireAction(a channel.Action) wireAction {
	return wireAction{
		ChannelID: fmt.Sprintf("%x", a.ChannelID),
		HandID:    fmt.Sprintf("%x", a.HandID),
		Seq:       a.Seq,
		Kind:      uint8(a.Kind),
		AmountHi:  a.Amount.Hi,
		AmountLo:  a.Amount.Lo,
		PrevHash:  fmt.Sprintf("%x", a.PrevHash),
	}
}

func decodeWireAction(w wireAction) (channel.Action, error) {
	var a channel.Action
	if err := decodeHex32(w.ChannelID, &a.ChannelID); err != nil {
		return channel.Action{}, fmt.Errorf("decode channel_id: %w", err)
	}
	if err := decodeHex32(w.HandID, &a.HandID); err != nil {
		return channel.Action{}, fmt.Errorf("decode hand_id: %w", err)
	}
	if err := decodeHash32(w.PrevHash, &a.PrevHash); err != nil {
		return channel.Action{}, fmt.Errorf("decode prev_hash: %w", err)
	}
	a.Seq = w.Seq
	a.Kind = channel.ActionKind(w.Kind)
	a.Amount = channel.Amount{Hi: w.AmountHi, Lo: w.AmountLo}
	return a, nil
}

func decodeHex32(s string, dst *channel.ID) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(b) != len(dst) {
		return fmt.Errorf("expected %d bytes, got %d", len(dst), len(b))
	}
	copy(dst[:], b)
	return nil
}

func decodeHash32(s string, dst *channel.Hash) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(b) != len(dst) {
		return fmt.Errorf("expected %d bytes, got %d", len(dst), len(b))
	}
	copy(dst[:], b)
	return nil
}

// Marshal/Unmarshal expose the wire encoding directly for callers (such as
// tests) that want the exact bytes without a live connection.
func Marshal(a channel.Action) ([]byte, error) {
	return json.Marshal(encodeWireAction(a))
}

func Unmarshal(data []byte) (channel.Action, error) {
	var w wireAction
	if err := json.Unmarshal(data, &w); err != nil {
		return channel.Action{}, err
	}
	return decodeWireAction(w)
}
