package service

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-service/internal/service/models"
	"quiz-service/internal/service/repository"
)

const messageInserted = "Data inserted successfully"

// InsertScore records one submission. The body is stored as sent; missing or
// mistyped fields surface as database errors.
func (s *Service) InsertScore(c *gin.Context) {
	var submission models.InformationGathering
	if err := c.ShouldBindJSON(&submission); err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	conn, ok := s.connect(c)
	if !ok {
		return
	}
	defer s.release(conn)

	if err := repository.New(conn).InsertScore(c.Request.Context(), submission); err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, models.Message{Message: messageInserted})
}

func (s *Service) GetScore(c *gin.Context) {
	username, hasUsername := c.GetQuery("username")

	conn, ok := s.connect(c)
	if !ok {
		return
	}
	defer s.release(conn)

	total, err := repository.New(conn).TotalScore(c.Request.Context(), sql.NullString{String: username, Valid: hasUsername})
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, models.ScoreTotal{TotalScore: total})
}
