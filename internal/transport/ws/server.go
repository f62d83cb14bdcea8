package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/forPelevin/ytshorts/internal/logging"
	"github.com/forPelevin/ytshorts/internal/types"
)

// ClipService runs clip requests and reports the ones in flight.
type ClipService interface {
	Process(ctx context.Context, req types.Request, sink types.Sink) error
	Active() []types.JobSummary
}

type Options struct {
	// BaseContext is the lifetime of every job started through the server.
	// Cancelling it aborts running jobs; a client disconnect does not.
	BaseContext context.Context

	OutputDir string
	// OutputURL is the path prefix final clips are served under.
	OutputURL      string
	AllowedOrigins []string
	Logger         *slog.Logger
}

type Server struct {
	svc      ClipService
	opts     Options
	logger   *slog.Logger
	upgrader websocket.Upgrader

	// mu orders job admission against Wait once BaseContext is cancelled.
	mu   sync.Mutex
	jobs sync.WaitGroup
}

var errShuttingDown = errors.New("server shutting down")

func New(svc ClipService, opts Options) *Server {
	if opts.BaseContext == nil {
		opts.BaseContext = context.Background()
	}
	if opts.OutputURL == "" {
		opts.OutputURL = "/output/"
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	s := &Server{
		svc:    svc,
		opts:   opts,
		logger: logging.Component(opts.Logger, "ws"),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns the routed HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", s.serveWS).Methods(http.MethodGet)
	r.HandleFunc("/api/jobs", s.listJobs).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
	prefix := s.opts.OutputURL
	r.PathPrefix(prefix).Handler(http.StripPrefix(prefix, noDirListing(http.FileServer(http.Dir(s.opts.OutputDir)))))

	c := cors.New(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	})
	return c.Handler(r)
}

// Wait blocks until every job started through the server has finished.
// Call it after cancelling BaseContext.
func (s *Server) Wait() {
	s.mu.Lock()
	s.mu.Unlock()
	s.jobs.Wait()
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", logging.Error(err))
		return
	}
	sess := newSession(conn, s.logger)
	sess.logger.Info("client connected")

	ctx, cancel := context.WithCancel(s.opts.BaseContext)
	defer cancel()
	go sess.keepalive(ctx)

	sess.serve(func(req types.Request) {
		s.start(sess, req)
	})

	sess.close()
	sess.logger.Info("client disconnected")
}

func (s *Server) start(sess *session, req types.Request) {
	base := s.opts.BaseContext
	s.mu.Lock()
	if base.Err() != nil {
		s.mu.Unlock()
		sess.sink(types.Event{Kind: types.EventError, Message: errShuttingDown.Error()})
		return
	}
	s.jobs.Add(1)
	s.mu.Unlock()
	go func() {
		defer s.jobs.Done()
		if err := s.svc.Process(base, req, sess.sink); err != nil && !errors.Is(err, types.ErrBusy) {
			sess.logger.Debug("clip finished with error", logging.Error(err))
		}
	}()
}

func (s *Server) listJobs(w http.ResponseWriter, _ *http.Request) {
	jobs := s.svc.Active()
	if jobs == nil {
		jobs = []types.JobSummary{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(jobs)
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	for _, allowed := range s.opts.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return strings.EqualFold(u.Host, r.Host)
}

func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
