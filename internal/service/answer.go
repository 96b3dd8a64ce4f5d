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
	answerCorrect   = "TRUE"
	answerIncorrect = "FALSE"
)

var errQuestionIDRequired = errors.New("question_id parameter is required")

// GetAnswer checks ans against question id. A wrong answer is a normal
// outcome and answers 200 with score 0.
func (s *Service) GetAnswer(c *gin.Context) {
	questionID := c.Query("id")
	answer, hasAnswer := c.GetQuery("ans")
	if questionID == "" {
		s.fail(c, http.StatusBadRequest, errQuestionIDRequired)
		return
	}

	conn, ok := s.connect(c)
	if !ok {
		return
	}
	defer s.release(conn)

	row, err := repository.New(conn).FindAnswer(c.Request.Context(), questionID, sql.NullString{String: answer, Valid: hasAnswer})
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	if row == nil {
		zero := 0.0
		c.JSON(http.StatusOK, models.AnswerResult{Answer: answerIncorrect, Score: &zero})
		return
	}

	result := models.AnswerResult{Answer: answerCorrect}
	if row.Score.Valid {
		result.Score = &row.Score.Float64
	}
	c.JSON(http.StatusOK, result)
}
