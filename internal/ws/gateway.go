// Package ws exposes the conversation exchange over a persistent
// WebSocket connection: one audio_chunk frame in, one ai_response frame
// out, running the same transcribe-then-reply pipeline as the multipart
// endpoint.
package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/englishbuddy/server/domain"
	"github.com/englishbuddy/server/internal/codec"
	"github.com/englishbuddy/server/usecase"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	defaultPongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	defaultPingPeriod = (defaultPongWait * 9) / 10

	// Maximum message size allowed from peer. Recordings arrive base64
	// encoded, so this bounds clip length.
	maxMessageSize = 2 * 1024 * 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Gateway handles live conversation connections. Frames on one
// connection are processed strictly in order; each exchange is
// completed before the next frame is read.
type Gateway struct {
	exchange *usecase.ExchangeService
	logger   *zap.Logger

	pongWait   time.Duration
	pingPeriod time.Duration
}

// NewGateway creates a new conversation gateway
func NewGateway(exchange *usecase.ExchangeService, logger *zap.Logger) *Gateway {
	return &Gateway{
		exchange:   exchange,
		logger:     logger,
		pongWait:   defaultPongWait,
		pingPeriod: defaultPingPeriod,
	}
}

// peer serializes writes to one connection; the keepalive pinger and
// the serving loop both write.
type peer struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	logger *zap.Logger
}

// Handle upgrades the request and serves the connection until the peer
// disconnects.
func (g *Gateway) Handle(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		g.logger.Error("Failed to upgrade connection", zap.Error(err))
		return err
	}

	connID := uuid.NewString()
	g.logger.Info("Conversation connection opened", zap.String("connID", connID))

	// Serve in the handler goroutine: the request context must stay
	// alive for the lifetime of the connection.
	g.serve(c, conn, connID)
	return nil
}

func (g *Gateway) serve(c echo.Context, conn *websocket.Conn, connID string) {
	p := &peer{conn: conn, logger: g.logger}
	done := make(chan struct{})
	defer func() {
		close(done)
		conn.Close()
		g.logger.Info("Conversation connection closed", zap.String("connID", connID))
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(g.pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(g.pongWait))
		return nil
	})

	// An idle peer sends no frames, so the read deadline only survives
	// if protocol pings keep drawing pongs out of it.
	go g.keepAlive(p, done)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.Warn("Unexpected connection close", zap.String("connID", connID), zap.Error(err))
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(g.pongWait))

		var base BaseMessage
		if err := json.Unmarshal(payload, &base); err != nil {
			p.writeError("", "invalid_message", "Message is not valid JSON")
			continue
		}

		switch base.Type {
		case MessageTypePing:
			p.writeJSON(BaseMessage{Type: MessageTypePong, MessageID: base.MessageID})

		case MessageTypeAudioChunk:
			var msg AudioChunkMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				p.writeError(base.MessageID, "invalid_message", "Malformed audio chunk")
				continue
			}
			g.handleAudioChunk(c, p, connID, msg)

		default:
			p.writeError(base.MessageID, "unsupported_type", "Unsupported message type: "+string(base.Type))
		}
	}
}

// keepAlive pings the peer on a fixed period until the connection is
// torn down. Pongs refresh the read deadline in the serving loop.
func (g *Gateway) keepAlive(p *peer, done <-chan struct{}) {
	ticker := time.NewTicker(g.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.ping(); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// handleAudioChunk runs one speech-to-speech exchange for a recording.
func (g *Gateway) handleAudioChunk(c echo.Context, p *peer, connID string, msg AudioChunkMessage) {
	if msg.AudioData == "" {
		p.writeError(msg.MessageID, "missing_audio", "Audio data is required")
		return
	}

	audioData, err := codec.DecodeBase64Audio(codec.StripDataURLPrefix(msg.AudioData))
	if err != nil {
		p.writeError(msg.MessageID, "decode_failed", err.Error())
		return
	}

	started := time.Now()
	transcription, result, err := g.exchange.SpeechToSpeech(c.Request().Context(), audioData, msg.Encoding)
	if err != nil {
		code := "exchange_failed"
		var shapeErr *domain.ShapeError
		if errors.As(err, &shapeErr) {
			code = "invalid_provider_response"
		}
		g.logger.Error("Conversation exchange failed",
			zap.String("connID", connID),
			zap.Error(err))
		p.writeError(msg.MessageID, code, err.Error())
		return
	}

	g.logger.Info("Conversation exchange completed",
		zap.String("connID", connID),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("transcriptLength", len(transcription)))

	p.writeJSON(AIResponseMessage{
		BaseMessage:   BaseMessage{Type: MessageTypeAIResponse, MessageID: msg.MessageID},
		Transcription: transcription,
		Text:          result.Text,
		AudioData:     result.AudioBase64,
	})
}

func (p *peer) writeJSON(message interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := p.conn.WriteJSON(message); err != nil {
		p.logger.Warn("Failed to write message", zap.Error(err))
	}
}

func (p *peer) writeError(messageID, code, message string) {
	p.writeJSON(ErrorMessage{
		BaseMessage: BaseMessage{Type: MessageTypeError, MessageID: messageID},
		Code:        code,
		Message:     message,
	})
}

func (p *peer) ping() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteMessage(websocket.PingMessage, nil)
}
