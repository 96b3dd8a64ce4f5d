package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"quiz-service/internal/service/models"
)

// Querier is satisfied by *sqlx.Conn and *sqlx.DB.
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type Repository struct {
	db Querier
}

func New(db Querier) *Repository {
	return &Repository{db: db}
}

const findAnswerSQL = `
select question_id, answer, score
from question_answers
where question_id = ? and answer = ?
limit 1
`

// FindAnswer returns nil when no question matches the answer. A NULL answer
// never matches.
func (r *Repository) FindAnswer(ctx context.Context, questionID string, answer sql.NullString) (*models.QuestionAnswer, error) {
	result := new(models.QuestionAnswer)
	err := r.db.GetContext(ctx, result, findAnswerSQL, questionID, answer)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not execute findAnswerSQL: %w", err)
	}
	return result, nil
}

const typeExistsSQL = `
select exists (
    select 1 from question_answers where type = ?
) as is_type_exists
`

func (r *Repository) TypeExists(ctx context.Context, questionType string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, typeExistsSQL, questionType); err != nil {
		return false, fmt.Errorf("could not execute typeExistsSQL: %w", err)
	}
	return exists, nil
}

// The equality branch compares questions of one type against every
// submission of the user regardless of type.
const incompleteCountSQL = `
select if(
    (select count(*) from question_answers qa where qa.type = ?) =
    (select count(*) from information_gathering ig where ig.username = ?),
    0,
    (select count(*)
     from question_answers qa
     where qa.type = ?
       and qa.question_id not in (
           select ig.question_id from information_gathering ig where ig.username = ?
       ))
) as incomplete_questions_count
`

func (r *Repository) IncompleteCount(ctx context.Context, questionType string, username sql.NullString) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, incompleteCountSQL, questionType, username, questionType, username)
	if err != nil {
		return 0, fmt.Errorf("could not execute incompleteCountSQL: %w", err)
	}
	return count, nil
}

const unansweredQuestionsSQL = `
select qa.question_id, qa.question
from question_answers qa
left join information_gathering ig
    on qa.question_id = ig.question_id and ig.username = ?
where ig.question_id is null and qa.type = ?
`

func (r *Repository) UnansweredQuestions(ctx context.Context, questionType string, username sql.NullString) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.SelectContext(ctx, &questions, unansweredQuestionsSQL, username, questionType)
	if err != nil {
		return nil, fmt.Errorf("could not execute unansweredQuestionsSQL: %w", err)
	}
	return questions, nil
}

const insertScoreSQL = `
insert into information_gathering (username, question_id, score)
values (:username, :question_id, :score)
`

func (r *Repository) InsertScore(ctx context.Context, submission models.InformationGathering) error {
	query, args, err := sqlx.Named(insertScoreSQL, submission)
	if err != nil {
		return fmt.Errorf("could not bind insertScoreSQL: %w", err)
	}
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("could not execute insertScoreSQL: %w", err)
	}
	return nil
}

const firstVersionSQL = `
select version
from app_version
limit 1
`

// FirstVersion returns nil when app_version is empty.
func (r *Repository) FirstVersion(ctx context.Context) (*models.AppVersion, error) {
	result := new(models.AppVersion)
	err := r.db.GetContext(ctx, result, firstVersionSQL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not execute firstVersionSQL: %w", err)
	}
	return result, nil
}

const totalScoreSQL = `
select coalesce(sum(coalesce(score, 0)), 0) as total_score
from information_gathering
where username = ?
`

func (r *Repository) TotalScore(ctx context.Context, username sql.NullString) (float64, error) {
	var total float64
	if err := r.db.GetContext(ctx, &total, totalScoreSQL, username); err != nil {
		return 0, fmt.Errorf("could not execute totalScoreSQL: %w", err)
	}
	return total, nil
}
