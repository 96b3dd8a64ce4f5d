package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-service/internal/service/models"
)

func newRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func query(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

func TestFindAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("match", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectQuery(query("from question_answers")).
			WithArgs("5", "blue").
			WillReturnRows(sqlmock.NewRows([]string{"question_id", "answer", "score"}).
				AddRow(int64(5), "blue", float64(10)))

		row, err := repo.FindAnswer(ctx, "5", sql.NullString{String: "blue", Valid: true})
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, int64(5), row.QuestionID)
		assert.Equal(t, "blue", row.Answer)
		assert.Equal(t, sql.NullFloat64{Float64: 10, Valid: true}, row.Score)
	})

	t.Run("no match", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectQuery(query("from question_answers")).
			WithArgs("5", "red").
			WillReturnRows(sqlmock.NewRows([]string{"question_id", "answer", "score"}))

		row, err := repo.FindAnswer(ctx, "5", sql.NullString{String: "red", Valid: true})
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("absent answer binds null", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectQuery(query("from question_answers")).
			WithArgs("5", nil).
			WillReturnRows(sqlmock.NewRows([]string{"question_id", "answer", "score"}))

		row, err := repo.FindAnswer(ctx, "5", sql.NullString{})
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectQuery(query("from question_answers")).
			WillReturnError(errors.New("table missing"))

		_, err := repo.FindAnswer(ctx, "5", sql.NullString{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "findAnswerSQL")
		assert.Contains(t, err.Error(), "table missing")
	})
}

func TestTypeExists(t *testing.T) {
	for name, tc := range map[string]struct {
		value    int64
		expected bool
	}{
		"exists":  {value: 1, expected: true},
		"missing": {value: 0, expected: false},
	} {
		t.Run(name, func(t *testing.T) {
			repo, mock := newRepository(t)
			mock.ExpectQuery(query("as is_type_exists")).
				WithArgs("math").
				WillReturnRows(sqlmock.NewRows([]string{"is_type_exists"}).AddRow(tc.value))

			exists, err := repo.TypeExists(context.Background(), "math")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, exists)
		})
	}
}

func TestIncompleteCount(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectQuery(query("as incomplete_questions_count")).
		WithArgs("math", "u1", "math", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"incomplete_questions_count"}).AddRow(int64(2)))

	count, err := repo.IncompleteCount(context.Background(), "math", sql.NullString{String: "u1", Valid: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUnansweredQuestions(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectQuery(query("left join information_gathering ig")).
		WithArgs("u1", "math").
		WillReturnRows(sqlmock.NewRows([]string{"question_id", "question"}).
			AddRow(int64(1), "1 + 1?").
			AddRow(int64(2), "2 * 3?"))

	questions, err := repo.UnansweredQuestions(context.Background(), "math", sql.NullString{String: "u1", Valid: true})
	require.NoError(t, err)
	assert.Equal(t, []models.Question{
		{QuestionID: 1, Question: "1 + 1?"},
		{QuestionID: 2, Question: "2 * 3?"},
	}, questions)
}

func TestInsertScore(t *testing.T) {
	t.Run("inserted", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectExec(query("insert into information_gathering (username, question_id, score)\nvalues (?, ?, ?)")).
			WithArgs("u1", float64(3), float64(5)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.InsertScore(context.Background(), models.InformationGathering{
			Username:   "u1",
			QuestionID: float64(3),
			Score:      float64(5),
		})
		require.NoError(t, err)
	})

	t.Run("missing fields bind null", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectExec(query("insert into information_gathering")).
			WithArgs(nil, nil, nil).
			WillReturnError(errors.New("Column 'username' cannot be null"))

		err := repo.InsertScore(context.Background(), models.InformationGathering{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be null")
	})
}

func TestFirstVersion(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectQuery(query("from app_version")).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("1.4.2"))

		version, err := repo.FirstVersion(context.Background())
		require.NoError(t, err)
		require.NotNil(t, version)
		assert.Equal(t, "1.4.2", version.Version.String)
	})

	t.Run("empty table", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectQuery(query("from app_version")).
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		version, err := repo.FirstVersion(context.Background())
		require.NoError(t, err)
		assert.Nil(t, version)
	})
}

func TestTotalScore(t *testing.T) {
	repo, mock := newRepository(t)
	mock.ExpectQuery(query("sum(coalesce(score, 0))")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"total_score"}).AddRow("15.50"))

	total, err := repo.TotalScore(context.Background(), sql.NullString{String: "u1", Valid: true})
	require.NoError(t, err)
	assert.Equal(t, 15.5, total)
}
