package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"quiz-service/internal/service/models"
	"quiz-service/internal/service/repository"
)

// Clients match on this text, so it stays as first published.
var errVersionNotFound = errors.New("No data found for the given question_id")

func (s *Service) GetVersion(c *gin.Context) {
	conn, ok := s.connect(c)
	if !ok {
		return
	}
	defer s.release(conn)

	row, err := repository.New(conn).FirstVersion(c.Request.Context())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if row == nil {
		s.fail(c, http.StatusNotFound, errVersionNotFound)
		return
	}

	result := models.Version{}
	if row.Version.Valid {
		result.Version = &row.Version.String
	}
	c.JSON(http.StatusOK, result)
}
