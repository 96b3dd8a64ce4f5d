package models

import (
	"database/sql"
)

type QuestionAnswer struct {
	QuestionID int64           `db:"question_id"`
	Question   string          `db:"question"`
	Answer     string          `db:"answer"`
	Score      sql.NullFloat64 `db:"score"`
	Type       string          `db:"type"`
}

// InformationGathering is one answer submission. Fields stay untyped because
// the submitted JSON is bound to the insert without validation.
type InformationGathering struct {
	Username   any `json:"username" db:"username"`
	QuestionID any `json:"id_question" db:"question_id"`
	Score      any `json:"score" db:"score"`
}

type AppVersion struct {
	Version sql.NullString `db:"version"`
}

type Question struct {
	QuestionID int64  `json:"question_id" db:"question_id"`
	Question   string `json:"question" db:"question"`
}

type AnswerResult struct {
	Answer string   `json:"answer"`
	Score  *float64 `json:"score"`
}

type ScoreTotal struct {
	TotalScore float64 `json:"total_score"`
}

type Version struct {
	Version *string `json:"version"`
}

type Message struct {
	Message string `json:"message"`
}
