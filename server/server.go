// Package server bridges a browser shell to studios over websockets.
//
// Each websocket connection to /ws gets its own studio. The shell sends
// pointer events, resizes and commands as JSON messages; every message is
// answered with a Reply carrying the undo/redo availability of both
// surfaces and, when pixels changed, a PNG frame of the changed surface.
package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/studio"
)

// DefaultReadLimit bounds one incoming message. Pastes and style
// references arrive as data URLs, so it is generous.
const DefaultReadLimit = 32 << 20

// StudioFunc creates the studio of a new connection.
type StudioFunc func() *studio.Studio

// Option configures a Server.
type Option func(*Server)

// WithGenerateTimeout bounds each generate and edit request. Zero means no
// bound beyond the connection's lifetime.
func WithGenerateTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// WithReadLimit sets the maximum size of one incoming message.
func WithReadLimit(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.readLimit = n
		}
	}
}

// WithCheckOrigin sets the origin policy of websocket upgrades. The
// default accepts same-origin requests only.
func WithCheckOrigin(f func(r *http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = f
	}
}

// AllowOrigins returns an origin policy accepting same-origin requests,
// requests without an Origin header, and the listed origins. "*" accepts
// every origin.
func AllowOrigins(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimSuffix(o, "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowed["*"] || allowed[origin] {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

// Server serves the health endpoint and the websocket bridge.
type Server struct {
	router    *gin.Engine
	upgrader  websocket.Upgrader
	newStudio StudioFunc
	timeout   time.Duration
	readLimit int64

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// New creates a server whose connections get studios from newStudio.
func New(newStudio StudioFunc, opts ...Option) *Server {
	s := &Server{
		newStudio: newStudio,
		readLimit: DefaultReadLimit,
		conns:     make(map[*websocket.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.initRouter()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) initRouter() {
	s.router = gin.New()
	s.router.Use(gin.Recovery(), requestLogger())

	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/ws", s.handleWebSocket)
}

// requestLogger logs each request through the package logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		sketch.Logger().Debug("server: request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	s.mu.Lock()
	n := len(s.conns)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "connections": n})
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		sketch.Logger().Warn("server: websocket upgrade failed", "err", err)
		return
	}
	s.track(conn, true)
	defer func() {
		s.track(conn, false)
		conn.Close()
	}()

	conn.SetReadLimit(s.readLimit)
	s.serve(c.Request.Context(), conn)
}

// serve runs the message loop of one connection until it closes.
func (s *Server) serve(ctx context.Context, conn *websocket.Conn) {
	ss := newSession(s.newStudio(), s.timeout)
	log := sketch.Logger().With("remote", conn.RemoteAddr().String())
	log.Info("server: session started")
	defer log.Info("server: session ended")

	if err := conn.WriteJSON(ss.hello()); err != nil {
		return
	}
	for {
		var m Message
		if err := conn.ReadJSON(&m); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("server: read failed", "err", err)
			}
			return
		}
		if err := conn.WriteJSON(ss.handle(ctx, m)); err != nil {
			log.Debug("server: write failed", "err", err)
			return
		}
	}
}

func (s *Server) track(conn *websocket.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.conns[conn] = struct{}{}
	} else {
		delete(s.conns, conn)
	}
}

// closeConns closes every open websocket. Shutdown does not reach them,
// since their HTTP connections have been hijacked.
func (s *Server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
	}
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		sketch.Logger().Info("server: listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.closeConns()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
