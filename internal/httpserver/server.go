// Package httpserver exposes the session log and the leaderboard over HTTP
package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/focuslog/focuslog/internal/engine"
	"github.com/focuslog/focuslog/internal/models"
	"github.com/focuslog/focuslog/internal/session"
	"github.com/focuslog/focuslog/stats"
	"github.com/focuslog/focuslog/store"
)

const (
	// UserIDHeader carries the ID of the acting user.
	UserIDHeader = "X-User-ID"
	// UserNameHeader optionally carries the display name of the acting user.
	UserNameHeader = "X-User-Name"

	userKey = "user"
)

// Server provides the HTTP API.
type Server struct {
	startTime time.Time
	stats     *stats.Service
	sessions  session.Writer
	clock     engine.Clock
	logger    *slog.Logger
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	addr      string
}

// NewServer creates a new HTTP API server backed by db.
func NewServer(addr string, db store.DB, svc *stats.Service, logger *slog.Logger) *Server {
	if addr == "" {
		addr = "127.0.0.1:1111"
	}

	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		addr:     addr,
		stats:    svc,
		sessions: db,
		clock:    engine.SystemClock,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Router builds the route table.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api")

	api.GET("/health", s.handleHealth)
	api.GET("/leaderboard", s.handleLeaderboard)
	api.GET("/users/:id/activity", s.handleActivity)
	api.GET("/users/:id/sessions", s.handleRecent)

	authed := api.Group("/sessions", requireUser)
	authed.POST("", s.handleCreate)
	authed.PATCH("/:id", s.handleUpdate)
	authed.DELETE("/:id", s.handleDelete)

	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Router(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = s.clock.Now()

	s.logger.Info("http server started", slog.String("addr", listener.Addr().String()))

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server stopped", slog.Any("error", err))
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()

	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		s.logger.Debug(
			"http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// requireUser rejects requests without an acting user.
func requireUser(c *gin.Context) {
	id := c.GetHeader(UserIDHeader)
	if id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + UserIDHeader + " header"})
		return
	}

	c.Set(userKey, session.Owner{ID: id, Name: c.GetHeader(UserNameHeader)})
	c.Next()
}

func actingUser(c *gin.Context) session.Owner {
	owner, _ := c.MustGet(userKey).(session.Owner)
	return owner
}

// writeError maps domain errors to status codes.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, stats.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, stats.ErrEmptyTitle):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.Any("error", err))
		c.JSON(status, gin.H{"error": "internal error"})

		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

// redact hides private notes from everyone but the owner.
func redact(sessions []*models.Session, viewer string) {
	for _, sess := range sessions {
		if sess.UserID != viewer {
			sess.PrivateNotes = ""
		}
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": s.clock.Now().Sub(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	entries, err := s.stats.Leaderboard()
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

func (s *Server) handleActivity(c *gin.Context) {
	year := s.clock.Now().Year()

	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1970 || y > 9999 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a four digit number"})
			return
		}

		year = y
	}

	days, err := s.stats.Activity(c.Param("id"), year)
	if err != nil {
		s.writeError(c, err)
		return
	}

	viewer := c.GetHeader(UserIDHeader)
	for i := range days {
		redact(days[i].Sessions, viewer)
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "days": days})
}

func (s *Server) handleRecent(c *gin.Context) {
	days := stats.DefaultRecentDays

	if v := c.Query("days"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive number"})
			return
		}

		days = d
	}

	sessions, err := s.stats.Recent(c.Param("id"), days)
	if err != nil {
		s.writeError(c, err)
		return
	}

	redact(sessions, c.GetHeader(UserIDHeader))

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

type createRequest struct {
	EndTime         *time.Time `json:"end_time"`
	Mode            string     `json:"mode"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	PrivateNotes    string     `json:"private_notes"`
	Tasks           []string   `json:"tasks"`
	DurationSeconds int        `json:"duration_seconds" binding:"required"`
}

func (s *Server) handleCreate(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body or missing duration_seconds"})
		return
	}

	mode := engine.Focus
	if req.Mode != "" {
		m, err := engine.ParseMode(req.Mode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		mode = m
	}

	end := s.clock.Now()
	if req.EndTime != nil {
		end = *req.EndTime
	}

	sess, err := session.Build(actingUser(c), session.Draft{
		Title:        req.Title,
		Description:  req.Description,
		PrivateNotes: req.PrivateNotes,
		Tasks:        req.Tasks,
	}, mode, req.DurationSeconds, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.sessions.SaveSession(sess); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sess)
}

func (s *Server) handleUpdate(c *gin.Context) {
	var patch models.SessionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	sess, err := s.stats.UpdateSession(actingUser(c).ID, c.Param("id"), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, sess)
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.stats.DeleteSession(actingUser(c).ID, c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
