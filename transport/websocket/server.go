package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Caden-Dane/Gomoku/internal/pkg"
	"github.com/Caden-Dane/Gomoku/internal/usecase"
)

type gameManager interface {
	CreateRoom(identity, name string) (*usecase.CreateRoomResult, error)
	JoinRoom(identity, code, name string) (*usecase.JoinRoomResult, error)
	PlaceStone(identity, code string, row, col int) (*usecase.MoveResult, error)
	ResetRound(identity, code string) (*usecase.ResetResult, error)
	Disconnect(identity string) *usecase.DisconnectResult
}

// Server upgrades connections, assigns each one an ephemeral identity and
// routes decoded messages to the game manager by action.
type Server struct {
	logger   *slog.Logger
	game     gameManager
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client

	handlers map[string]func(c *client, payload json.RawMessage) error
}

func New(logger *slog.Logger) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
		clients:  make(map[string]*client),
		handlers: make(map[string]func(*client, json.RawMessage) error),
	}

	server.handlers[actionCreateRoom] = server.handleCreateRoom
	server.handlers[actionJoinRoom] = server.handleJoinRoom
	server.handlers[actionPlaceStone] = server.handlePlaceStone
	server.handlers[actionResetRound] = server.handleResetRound

	return server
}

// SetGameManager attaches the dispatcher. The server routes inbound frames
// to it and serves as its broadcast sink, so the two are wired to each
// other before Start.
func (that *Server) SetGameManager(game gameManager) {
	that.game = game
}

// Start - starts the WebSocket server and blocks until ctx is canceled or
// the listener fails.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		return nil
	}
}

// serveWS upgrades one connection and announces its assigned identity.
func (that *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		id:   pkg.GenerateSessionID(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	that.mu.Lock()
	that.clients[c.id] = c
	that.mu.Unlock()

	log.Info("connection established", "identity", c.id)

	go that.writePump(c)

	that.sendTo(c.id, actionIdentity, identityPayload{ID: c.id})

	go that.readPump(c)
}

// dispatch decodes one inbound frame and runs the matching handler.
// Malformed or unknown messages are answered with an error and dropped;
// they never reach the game manager.
func (that *Server) dispatch(c *client, raw []byte) {
	log := that.logger.With("method", "dispatch", "identity", c.id)

	var message Message
	if err := json.Unmarshal(raw, &message); err != nil {
		log.Warn("failed to unmarshal message", "error", err)
		that.sendTo(c.id, actionError, ackPayload{Error: "malformed message"})
		return
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action", "action", message.Action)
		that.sendTo(c.id, actionError, ackPayload{Error: "unknown action: " + message.Action})
		return
	}

	if err := handler(c, message.Payload); err != nil {
		log.Error("failed to process message", "action", message.Action, "error", err)
	}
}

// disconnect runs the cleanup path for one client. It is safe to call for
// an identity that never joined a room.
func (that *Server) disconnect(c *client) {
	that.mu.Lock()
	delete(that.clients, c.id)
	that.mu.Unlock()

	c.close()

	result := that.game.Disconnect(c.id)
	if result.Departed == "" {
		return
	}

	that.logger.Info("player disconnected", "identity", c.id)
}

// sendTo queues one message for one identity. Delivery is fire-and-forget;
// a peer whose queue is full is dropped rather than awaited.
func (that *Server) sendTo(identity, action string, payload any) {
	that.mu.RLock()
	c, ok := that.clients[identity]
	that.mu.RUnlock()

	if !ok {
		return
	}

	raw, err := json.Marshal(Message{Action: action, Payload: mustMarshal(payload)})
	if err != nil {
		that.logger.Error("failed to marshal message", "action", action, "error", err)
		return
	}

	if !c.enqueue(raw) {
		that.logger.Warn("send queue unavailable, dropping message", "identity", identity, "action", action)
	}
}

// broadcast sends one message to each recipient exactly once, in the order
// the dispatcher produced it for that recipient.
func (that *Server) broadcast(recipients []string, action string, payload any) {
	for _, identity := range recipients {
		that.sendTo(identity, action, payload)
	}
}

func mustMarshal(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}
