// Package web serves the typing test to a browser over HTTP and WebSocket.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/verte-zerg/typesprint/internal/logger"
	"github.com/verte-zerg/typesprint/internal/metrics"
	"github.com/verte-zerg/typesprint/internal/session"
)

const (
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	maxMessageSize  = 64 * 1024
)

//go:embed static
var staticFiles embed.FS

// Server hosts one independent typing session per WebSocket connection.
type Server struct {
	picker   session.Picker
	log      *slog.Logger
	recorder *metrics.Recorder
	gatherer prometheus.Gatherer
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithMetrics records session metrics into reg and exposes them on /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.recorder = metrics.New(reg)
		s.gatherer = reg
	}
}

// New returns a Server drawing sentences from picker. picker must be safe
// for concurrent use.
func New(picker session.Picker, opts ...Option) *Server {
	s := &Server{
		picker: picker,
		log:    logger.Discard(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		conns: map[*websocket.Conn]struct{}{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /", http.FileServer(http.FS(static)))
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /healthz", handleHealth)
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and closes open connections.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv.RegisterOnShutdown(s.closeConns)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("ok\n")); err != nil {
		// Best-effort health response.
		_ = err
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)
	s.track(conn)
	defer s.untrack(conn)

	log := s.log.With("conn", uuid.NewString())
	log.Debug("connection opened", "remote", r.RemoteAddr)
	if s.recorder != nil {
		s.recorder.ConnectionOpened()
		defer s.recorder.ConnectionClosed()
	}

	if err := s.serveConn(conn, log); err != nil {
		log.Warn("connection closed with error", "error", err)
		return
	}
	log.Debug("connection closed")
}

// serveConn runs one page context: a single controller driven by the
// connection's read loop.
func (s *Server) serveConn(conn *websocket.Conn, log *slog.Logger) error {
	presenter := &queuePresenter{}
	var opts []session.Option
	if s.recorder != nil {
		opts = append(opts, session.WithObserver(s.recorder))
	}
	ctrl := session.NewController(s.picker, presenter, opts...)
	ctrl.Reset()
	if err := writeAll(conn, presenter.drain()); err != nil {
		return err
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return err
			}
			return nil
		}
		s.dispatch(ctrl, presenter, data, log)
		if err := writeAll(conn, presenter.drain()); err != nil {
			return err
		}
	}
}

func (s *Server) dispatch(ctrl *session.Controller, presenter *queuePresenter, data []byte, log *slog.Logger) {
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		presenter.fail("malformed message")
		return
	}
	switch msg.Type {
	case TypeStart:
		ctrl.Start()
		log.Debug("session started", "sentence", ctrl.Session().Target)
	case TypeInput:
		var in InputData
		if err := json.Unmarshal(msg.Data, &in); err != nil {
			presenter.fail("malformed input")
			return
		}
		if ctrl.Input(in.Value) {
			res := ctrl.Session().Result
			log.Info("session completed", "wpm", res.WPM, "accuracy", res.Accuracy, "elapsed", res.Elapsed)
		}
	default:
		presenter.fail(fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func writeAll(conn *websocket.Conn, msgs []Message) error {
	for _, msg := range msgs {
		if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return err
		}
		if err := conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("failed to write %s: %w", msg.Type, err)
		}
	}
	return nil
}

func (s *Server) track(conn *websocket.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	if err := conn.Close(); err != nil {
		// Best-effort close; the peer may already be gone.
		_ = err
	}
}

func (s *Server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
			// Best-effort close frame.
			_ = err
		}
		if err := conn.Close(); err != nil {
			_ = err
		}
	}
}
