package service

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"quiz-service/internal/service/models"
	"quiz-service/internal/service/repository"
)

const (
	messageTypeNotFound = "type yang anda masukan tidak ditemukan"
	messageAllAnswered  = "Anda sudah mengerjakan semua"
	messageNoQuestions  = "No data found for the given type"
)

var errTypeRequired = errors.New("type parameter is required")

// GetQuestion lists the questions of a type that usr has not answered yet.
// Unknown types and finished questionnaires are reported as 200 messages.
func (s *Service) GetQuestion(c *gin.Context) {
	username, hasUsername := c.GetQuery("usr")
	questionType := c.Query("type")
	if questionType == "" {
		s.fail(c, http.StatusBadRequest, errTypeRequired)
		return
	}

	conn, ok := s.connect(c)
	if !ok {
		return
	}
	defer s.release(conn)

	ctx := c.Request.Context()
	repo := repository.New(conn)
	user := sql.NullString{String: username, Valid: hasUsername}

	exists, err := repo.TypeExists(ctx, questionType)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if !exists {
		c.JSON(http.StatusOK, models.Message{Message: messageTypeNotFound})
		return
	}

	incomplete, err := repo.IncompleteCount(ctx, questionType, user)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if incomplete == 0 {
		c.JSON(http.StatusOK, models.Message{Message: messageAllAnswered})
		return
	}

	questions, err := repo.UnansweredQuestions(ctx, questionType, user)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if len(questions) == 0 {
		c.JSON(http.StatusOK, models.Message{Message: messageNoQuestions})
		return
	}
	c.JSON(http.StatusOK, questions)
}
