package service

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"quiz-service/internal/app"
)

var errDatabaseConnection = errors.New("Database connection failed")

var connectFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "quiz",
	Subsystem: "db",
	Name:      "connect_failures_total",
	Help:      "Requests that could not acquire a database connection.",
})

// Connector hands out a dedicated connection per request. *sqlx.DB satisfies it.
type Connector interface {
	Connx(ctx context.Context) (*sqlx.Conn, error)
}

type Service struct {
	logger *zap.Logger
	db     Connector
}

func New(logger *zap.Logger, db Connector) *Service {
	return &Service{
		logger: logger,
		db:     db,
	}
}

func (s *Service) Register(r gin.IRouter) {
	r.GET("/", s.Home)
	r.GET("/get_answer", s.GetAnswer)
	r.GET("/get_question", s.GetQuestion)
	r.POST("/insert_score", s.InsertScore)
	r.GET("/get_version", s.GetVersion)
	r.GET("/get_score", s.GetScore)
}

func (s *Service) Home(c *gin.Context) {
	c.String(http.StatusOK, "Hello, World!")
}

// connect acquires the request's connection. On failure the response has
// already been written and ok is false; otherwise the caller must Close conn.
func (s *Service) connect(c *gin.Context) (conn *sqlx.Conn, ok bool) {
	conn, err := s.db.Connx(c.Request.Context())
	if err != nil {
		connectFailures.Inc()
		s.fail(c, http.StatusInternalServerError, errDatabaseConnection, zap.NamedError("cause", err))
		return nil, false
	}
	return conn, true
}

func (s *Service) fail(c *gin.Context, status int, err error, fields ...zap.Field) {
	app.WriteError(c, s.logger, status, err, fields...)
}

func (s *Service) release(conn *sqlx.Conn) {
	if err := conn.Close(); err != nil {
		s.logger.Warn("could not release database connection", zap.Error(err))
	}
}
