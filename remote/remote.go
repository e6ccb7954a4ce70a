// Package remote lets a second device drive the game over a websocket. A
// controller pairs by scanning the QR code served at /pair.png, sends action
// names and receives msgpack snapshots of the session.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/plus3/welltris/engine"
	"github.com/skip2/go-qrcode"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

const (
	actionBuffer = 64
	qrSize       = 256
)

// Server accepts controller connections. Actions are queued until the game
// loop calls Drain; snapshots are pushed with Broadcast.
type Server struct {
	logger    *zap.Logger
	token     string
	publicURL string
	upgrader  websocket.Upgrader
	actions   chan engine.Action

	mu      sync.Mutex
	clients map[*client]struct{}
}

// New creates a server with a fresh pairing token. publicURL is the base
// address controllers should dial, such as "http://192.168.1.20:28090"; when
// empty it is derived from each pairing request.
func New(publicURL string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		logger:    logger,
		token:     uuid.NewString(),
		publicURL: strings.TrimRight(publicURL, "/"),
		actions:   make(chan engine.Action, actionBuffer),
		clients:   make(map[*client]struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     sameOrigin,
	}
	return s
}

func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

func (s *Server) Token() string { return s.token }

// Clients returns the number of connected controllers.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Handler returns the HTTP routes: /ws, /pair and /pair.png.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/pair", s.servePair)
	mux.HandleFunc("/pair.png", s.servePairQR)
	return mux
}

// ListenAndServe serves Handler on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("remote controller listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("remote: %w", err)
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("remote: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("remote: %w", err)
	}
	return nil
}

// Drain passes every queued action to fn without blocking and returns how
// many were delivered.
func (s *Server) Drain(fn func(engine.Action)) int {
	n := 0
	for {
		select {
		case a := <-s.actions:
			fn(a)
			n++
		default:
			return n
		}
	}
}

// Broadcast sends state to every controller. Slow controllers miss frames.
func (s *Server) Broadcast(state engine.State) error {
	data, err := msgpack.Marshal(&state)
	if err != nil {
		return fmt.Errorf("remote: encode state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.queue(outbound{binary: true, data: data})
	}
	return nil
}

// Close disconnects every controller.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.close()
		delete(s.clients, c)
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("token") != s.token {
		http.Error(w, "invalid pairing token", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := newClient(s, conn, remoteIP(r))
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	s.logger.Info("controller connected", zap.String("remote", c.remote))

	go c.writePump()
	go c.readPump()
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()
	c.close()
	if ok {
		s.logger.Info("controller disconnected", zap.String("remote", c.remote))
	}
}

// enqueue hands an action to the game loop, dropping it when the loop has
// fallen behind.
func (s *Server) enqueue(a engine.Action) bool {
	select {
	case s.actions <- a:
		return true
	default:
		s.logger.Warn("controller action dropped", zap.Stringer("action", a))
		return false
	}
}

// Pairing is the body of /pair.
type Pairing struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// ControllerURL returns the websocket address a controller should dial. host
// is used when no public URL was configured.
func (s *Server) ControllerURL(host string) string {
	base := s.publicURL
	if base == "" {
		base = "http://" + host
	}
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/ws?token=" + url.QueryEscape(s.token)
}

func (s *Server) servePair(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	err := json.NewEncoder(w).Encode(Pairing{Token: s.token, URL: s.ControllerURL(r.Host)})
	if err != nil {
		s.logger.Warn("failed to write pairing", zap.Error(err))
	}
}

func (s *Server) servePairQR(w http.ResponseWriter, r *http.Request) {
	png, err := qrcode.Encode(s.ControllerURL(r.Host), qrcode.Medium, qrSize)
	if err != nil {
		s.logger.Error("failed to render pairing code", zap.Error(err))
		http.Error(w, "failed to render pairing code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
