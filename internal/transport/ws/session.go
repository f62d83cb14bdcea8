package ws

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/forPelevin/ytshorts/internal/logging"
	"github.com/forPelevin/ytshorts/internal/types"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 64 << 10
)

// session is one client connection. Frames from concurrent jobs are
// serialised through mu.
type session struct {
	conn   *websocket.Conn
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

func newSession(conn *websocket.Conn, logger *slog.Logger) *session {
	return &session{
		conn:   conn,
		logger: logger.With(logging.String(logging.FieldRemote, conn.RemoteAddr().String())),
	}
}

func (s *session) send(f Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return websocket.ErrCloseSent
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(f)
}

func (s *session) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return websocket.ErrCloseSent
	}
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	_ = s.conn.Close()
}

// sink forwards job events to the client. Delivery failures are logged and
// dropped; the job keeps running after the client goes away.
func (s *session) sink(e types.Event) {
	if err := s.send(frameFor(e)); err != nil {
		s.logger.Debug("event not delivered",
			logging.String(logging.FieldJobID, e.JobID),
			logging.String("event", string(e.Kind)),
			logging.Error(err),
		)
	}
}

func (s *session) keepalive(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.ping(); err != nil {
				return
			}
		}
	}
}

// serve reads frames until the client disconnects. start launches a job for
// every valid process-video request.
func (s *session) serve(start func(types.Request)) {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				s.logger.Warn("websocket read failed", logging.Error(err))
			}
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))

		if err := s.handle(raw, start); err != nil {
			s.logger.Warn("frame rejected", logging.Error(err))
			_ = s.send(errorFrame(err))
		}
	}
}

func (s *session) handle(raw []byte, start func(types.Request)) error {
	f, err := decodeFrame(raw)
	if err != nil {
		return err
	}
	switch f.Event {
	case EventProcessVideo:
		req, err := decodeRequest(f.Data)
		if err != nil {
			return err
		}
		start(req)
		return nil
	default:
		return fmt.Errorf("unknown event %q", f.Event)
	}
}
