package exercise

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	exerciseModel "terminal-terrace/exercise-service/internal/model/exercise"
	userModel "terminal-terrace/exercise-service/internal/model/user"
	"terminal-terrace/exercise-service/internal/testutils"
	"terminal-terrace/exercise-service/pkg/response"
)

func ptr[T any](v T) *T { return &v }

// steppingClock 每次调用前进一秒
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func setupService(t *testing.T) (*ExerciseService, *gorm.DB) {
	t.Helper()
	db := testutils.SetupTestDB(t)
	svc := NewExerciseService(db)
	svc.now = steppingClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	return svc, db
}

func verbsSpec() CreateSpec {
	return CreateSpec{
		Title: "Verbs",
		Body: FillGapBody{Sentences: []FillGapItem{
			{Sentence: "I ___ happy.", CorrectAnswer: "am"},
		}},
	}
}

func quizSpec() CreateSpec {
	return CreateSpec{
		Title:       "Quiz",
		Description: ptr("colours"),
		Body: MultipleChoiceBody{Questions: []MultipleChoiceItem{
			{Question: "Sky?", Choices: []string{"blue", "green"}, CorrectIndex: 0},
			{Question: "Grass?", Choices: []string{"blue", "green", "red"}, CorrectIndex: 1},
		}},
	}
}

func assertCode(t *testing.T, want response.ResponseCode, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, response.CodeOf(err))
}

func TestExerciseService_CreateFillGap(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t)
	owner := testutils.CreateTestUser(db)

	view, err := svc.Create(ctx, owner, verbsSpec())
	require.NoError(t, err)

	assert.Equal(t, "Verbs", view.Title)
	assert.Nil(t, view.Description)
	assert.Equal(t, exerciseModel.KindFillGap, view.Type)
	require.Len(t, view.FillGapSentences, 1)
	assert.Equal(t, "I ___ happy.", view.FillGapSentences[0].Sentence)
	assert.Equal(t, "am", view.FillGapSentences[0].CorrectAnswer)
	assert.NotNil(t, view.MultipleChoiceQuestions)
	assert.Empty(t, view.MultipleChoiceQuestions)
	assert.Equal(t, view.CreatedAt, view.UpdatedAt)

	got, err := svc.Get(ctx, owner, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view, got)
}

func TestExerciseService_CreateMultipleChoice(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t)
	owner := testutils.CreateTestUser(db)

	spec := quizSpec()
	view, err := svc.Create(ctx, owner, spec)
	require.NoError(t, err)

	assert.Equal(t, exerciseModel.KindMultipleChoice, view.Type)
	assert.Equal(t, "colours", *view.Description)
	assert.Empty(t, view.FillGapSentences)

	input := spec.Body.(MultipleChoiceBody).Questions
	require.Len(t, view.MultipleChoiceQuestions, len(input))
	for i, q := range view.MultipleChoiceQuestions {
		assert.Equal(t, input[i].Question, q.Question)
		assert.Equal(t, input[i].Choices, q.Choices)
		assert.Equal(t, input[i].CorrectIndex, q.CorrectIndex)
	}

	got, err := svc.Get(ctx, owner, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.MultipleChoiceQuestions, got.MultipleChoiceQuestions)
}

func TestExerciseService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t)
	owner := testutils.CreateTestUser(db)

	tests := []struct {
		name string
		spec CreateSpec
	}{
		{"blank title", CreateSpec{Title: "   ", Body: verbsSpec().Body}},
		{"no body", CreateSpec{Title: "x"}},
		{"empty fill-gap list", CreateSpec{Title: "x", Body: FillGapBody{}}},
		{"blank answer", CreateSpec{Title: "x", Body: FillGapBody{Sentences: []FillGapItem{{Sentence: "a ___", CorrectAnswer: " "}}}}},
		{"single choice", CreateSpec{Title: "x", Body: MultipleChoiceBody{Questions: []MultipleChoiceItem{
			{Question: "q", Choices: []string{"only"}, CorrectIndex: 0},
		}}}},
		{"index out of range", CreateSpec{Title: "x", Body: MultipleChoiceBody{Questions: []MultipleChoiceItem{
			{Question: "q", Choices: []string{"a", "b"}, CorrectIndex: 2},
		}}}},
		{"negative index", CreateSpec{Title: "x", Body: MultipleChoiceBody{Questions: []MultipleChoiceItem{
			{Question: "q", Choices: []string{"a", "b"}, CorrectIndex: -1},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, owner, tt.spec)
			assertCode(t, response.InvalidParameter, err)
		})
	}

	var count int64
	require.NoError(t, db.Model(&exerciseModel.Exercise{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestExerciseService_CreateUnsupportedTypeRow(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t)
	owner := testutils.CreateTestUser(db)

	require.NoError(t, db.Where("name = ?", exerciseModel.KindFillGap).Delete(&exerciseModel.ExerciseType{}).Error)

	_, err := svc.Create(ctx, owner, verbsSpec())
	assertCode(t, response.InvalidParameter, err)
	assert.Equal(t, "unsupported exercise type", response.AsBusinessError(err).Msg)
}

func TestExerciseService_List(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t)
	owner := testutils.CreateTestUser(db)
	other := testutils.CreateTestUser(db)

	first, err := svc.Create(ctx, owner, verbsSpec())
	require.NoError(t, err)
	second, err := svc.Create(ctx, owner, quizSpec())
	require.NoError(t, err)
	_, err = svc.Create(ctx, other, verbsSpec())
	require.NoError(t, err)

	views, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, first.ID, views[0].ID)
	assert.Equal(t, second.ID, views[1].ID)
	assert.Len(t, views[0].FillGapSentences, 1)
	assert.Len(t, views[1].MultipleChoiceQuestions, 2)

	empty, err := svc.List(ctx, testutils.CreateTestUser(db))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestExerciseService_CrossOwnerIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t)
	alice := testutils.CreateTestUser(db)
	bob := testutils.CreateTestUser(db)

	view, err := svc.Create(ctx, alice, verbsSpec())
	require.NoError(t, err)

	operations := map[string]func(*userModel.User, uuid.UUID) error{
		"get": func(p *userModel.User, id uuid.UUID) error {
			_, err := svc.Get(ctx, p, id)
			return err
		},
		"update": func(p *userModel.User, id uuid.UUID) error {
			_, err := svc.Update(ctx, p, id, Patch{Title: ptr("stolen")})
			return err
		},
		"delete": func(p *userModel.User, id uuid.UUID) error {
			return svc.Delete(ctx, p, id)
		},
		"add sentences": func(p *userModel.User, id uuid.UUID) error {
			_, err := svc.AddSentences(ctx, p, id, FillGapBody{Sentences: []FillGapItem{{Sentence: "a ___", CorrectAnswer: "b"}}})
			return err
		},
	}

	for name, op := range operations {
		t.Run(name, func(t *testing.T) {
			foreign := op(bob, view.ID)
			missing := op(bob, uuid.New())

			assertCode(t, response.NotFound, foreign)
			assertCode(t, response.NotFound, missing)
			assert.Equal(t, missing.Error(), foreign.Error())
		})
	}

	got, err := svc.Get(ctx, alice, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view, got)
}

func TestExerciseService_UpdateDescriptionOnly(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t)
	owner := testutils.CreateTestUser(db)

	before, err := svc.Create(ctx, owner, verbsSpec())
	require.NoError(t, err)

	after, err := svc.Update(ctx, owner, before.ID, Patch{Description: ptr("new")})
	require.NoError(t, err)

	require.NotNil(t, after.Description)
	assert.Equal(t, "new", *after.Description)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))

	// 除 description 与 updated_at 外其余字段保持不变
	after.Description = before.Description
	after.UpdatedAt = before.UpdatedAt
	assert.Equal(t, before, after)
}

func TestExerciseService_UpdateTitle(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t)
	owner := testutils.CreateTestUser(db)

	before, err := svc.Create(ctx, owner, quizSpec())
	require.NoError(t, err)

	after, err := svc.Update(ctx, owner, before.ID, Patch{Title: ptr("  Colours quiz  ")})
	require.NoError(t, err)
	assert.Equal(t, "Colours quiz", after.Title)
	assert.Equal(t, before.Description, after.Description)

	t.Run("empty patch only bumps updated_at", func(t *testing.T) {
		again, err := svc.Update(ctx, owner, before.ID, Patch{})
		require.NoError(t, err)
		assert.Equal(t, after.Title, again.Title)
		assert.True(t, again.UpdatedAt.After(after.UpdatedAt))
	})

	t.Run("blank title rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, owner, before.ID, Patch{Title: ptr(" ")})
		assertCode(t, response.InvalidParameter, err)
	})
}

func TestExerciseService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t)
	owner := testutils.CreateTestUser(db)

	fillGap, err := svc.Create(ctx, owner, verbsSpec())
	require.NoError(t, err)
	quiz, err := svc.Create(ctx, owner, quizSpec())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, fillGap.ID))
	require.NoError(t, svc.Delete(ctx, owner, quiz.ID))

	var sentences, questions int64
	require.NoError(t, db.Model(&exerciseModel.FillGapSentence{}).Where("exercise_id = ?", fillGap.ID).Count(&sentences).Error)
	require.NoError(t, db.Model(&exerciseModel.MultipleChoiceQuestion{}).Where("exercise_id = ?", quiz.ID).Count(&questions).Error)
	assert.Zero(t, sentences)
	assert.Zero(t, questions)

	_, err = svc.Get(ctx, owner, fillGap.ID)
	assertCode(t, response.NotFound, err)

	err = svc.Delete(ctx, owner, fillGap.ID)
	assertCode(t, response.NotFound, err)
}

func TestExerciseService_DeletingOwnerCascades(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t)
	owner := testutils.CreateTestUser(db)

	view, err := svc.Create(ctx, owner, verbsSpec())
	require.NoError(t, err)

	require.NoError(t, db.Delete(&userModel.User{}, "id = ?", owner.ID).Error)

	var exercises, sentences int64
	require.NoError(t, db.Model(&exerciseModel.Exercise{}).Where("id = ?", view.ID).Count(&exercises).Error)
	require.NoError(t, db.Model(&exerciseModel.FillGapSentence{}).Where("exercise_id = ?", view.ID).Count(&sentences).Error)
	assert.Zero(t, exercises)
	assert.Zero(t, sentences)
}

func TestExerciseService_AddSentences(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t)
	owner := testutils.CreateTestUser(db)

	view, err := svc.Create(ctx, owner, verbsSpec())
	require.NoError(t, err)

	added, err := svc.AddSentences(ctx, owner, view.ID, FillGapBody{Sentences: []FillGapItem{
		{Sentence: "You ___ tired.", CorrectAnswer: "are"},
		{Sentence: "She ___ here.", CorrectAnswer: "is"},
	}})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, "You ___ tired.", added[0].(FillGapSentenceView).Sentence)
	assert.Equal(t, "She ___ here.", added[1].(FillGapSentenceView).Sentence)

	got, err := svc.Get(ctx, owner, view.ID)
	require.NoError(t, err)
	require.Len(t, got.FillGapSentences, 3)
	assert.Equal(t, []string{"am", "are", "is"}, []string{
		got.FillGapSentences[0].CorrectAnswer,
		got.FillGapSentences[1].CorrectAnswer,
		got.FillGapSentences[2].CorrectAnswer,
	})
	assert.Empty(t, got.MultipleChoiceQuestions)
}

func TestExerciseService_AddSentencesTypeMismatch(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t)
	owner := testutils.CreateTestUser(db)

	quiz, err := svc.Create(ctx, owner, quizSpec())
	require.NoError(t, err)

	_, err = svc.AddSentences(ctx, owner, quiz.ID, FillGapBody{Sentences: []FillGapItem{
		{Sentence: "I ___ happy.", CorrectAnswer: "am"},
	}})
	assertCode(t, response.InvalidParameter, err)
	assert.Equal(t, "sentence type does not match exercise type", response.AsBusinessError(err).Msg)

	got, err := svc.Get(ctx, owner, quiz.ID)
	require.NoError(t, err)
	assert.Empty(t, got.FillGapSentences)
	assert.Len(t, got.MultipleChoiceQuestions, 2)

	var sentences int64
	require.NoError(t, db.Model(&exerciseModel.FillGapSentence{}).Where("exercise_id = ?", quiz.ID).Count(&sentences).Error)
	assert.Zero(t, sentences)
}

func TestExerciseRepository_PositionIsUniquePerExercise(t *testing.T) {
	db := testutils.SetupTestDB(t)
	owner := testutils.CreateTestUser(db)
	verbs := testutils.CreateFillGapExercise(db, owner.ID, [2]string{"I ___ happy.", "am"})
	quiz := testutils.CreateMultipleChoiceExercise(db, owner.ID, "first")
	repo := NewExerciseRepository(db)

	err := repo.InsertSentences([]exerciseModel.FillGapSentence{
		{ExerciseID: verbs.ID, Position: 0, Sentence: "You ___ tired.", CorrectAnswer: "are"},
	})
	assert.Error(t, err)

	err = repo.InsertQuestions([]exerciseModel.MultipleChoiceQuestion{
		{ExerciseID: quiz.ID, Position: 0, Question: "again", Choices: []string{"x", "y"}},
	})
	assert.Error(t, err)

	// 不同练习可以使用相同 position
	other := testutils.CreateFillGapExercise(db, owner.ID)
	require.NoError(t, repo.InsertSentences([]exerciseModel.FillGapSentence{
		{ExerciseID: other.ID, Position: 0, Sentence: "We ___ ready.", CorrectAnswer: "are"},
	}))
}

func TestExerciseRepository_LockOwned(t *testing.T) {
	db := testutils.SetupTestDB(t)
	owner := testutils.CreateTestUser(db)
	stranger := testutils.CreateTestUser(db)
	quiz := testutils.CreateMultipleChoiceExercise(db, owner.ID, "first")
	repo := NewExerciseRepository(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		ex, err := repo.WithTx(tx).LockOwned(quiz.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, exerciseModel.KindMultipleChoice, ex.ExerciseType.Name)

		_, err = repo.WithTx(tx).LockOwned(quiz.ID, stranger.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		return nil
	})
	require.NoError(t, err)
}

// failInserts 让指定表上的 INSERT 全部失败
func failInserts(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == table {
			_ = tx.AddError(errors.New("simulated insert failure"))
		}
	})
	require.NoError(t, err)
}

func TestExerciseService_CreateRollsBack(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t)
	owner := testutils.CreateTestUser(db)

	failInserts(t, db, "fill_gap_sentences")

	_, err := svc.Create(ctx, owner, verbsSpec())
	assertCode(t, response.Internal, err)

	var exercises int64
	require.NoError(t, db.Model(&exerciseModel.Exercise{}).Where("owner_id = ?", owner.ID).Count(&exercises).Error)
	assert.Zero(t, exercises)
}

func TestExerciseService_AddSentencesRollsBack(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t)
	owner := testutils.CreateTestUser(db)
	quiz := testutils.CreateMultipleChoiceExercise(db, owner.ID, "first")

	failInserts(t, db, "multiple_choice_questions")

	_, err := svc.AddSentences(ctx, owner, quiz.ID, MultipleChoiceBody{Questions: []MultipleChoiceItem{
		{Question: "a", Choices: []string{"x", "y"}, CorrectIndex: 0},
		{Question: "b", Choices: []string{"x", "y"}, CorrectIndex: 1},
	}})
	assertCode(t, response.Internal, err)

	var questions int64
	require.NoError(t, db.Model(&exerciseModel.MultipleChoiceQuestion{}).Where("exercise_id = ?", quiz.ID).Count(&questions).Error)
	assert.Equal(t, int64(1), questions)
}

func TestInsertBodyPanicsOnUnknownVariant(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = insertBody(nil, uuid.New(), unknownBody{}, 0, time.Now())
	})
}

type unknownBody struct{ FillGapBody }

func (unknownBody) Kind() exerciseModel.Kind { return "unknown" }
