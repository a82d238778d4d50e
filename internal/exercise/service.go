package exercise

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	exerciseModel "terminal-terrace/exercise-service/internal/model/exercise"
	userModel "terminal-terrace/exercise-service/internal/model/user"
	"terminal-terrace/exercise-service/pkg/response"
)

// ExerciseService 练习聚合服务；所有操作都限定在 principal 名下
type ExerciseService struct {
	db   *gorm.DB
	repo *ExerciseRepository
	now  func() time.Time
}

func NewExerciseService(db *gorm.DB) *ExerciseService {
	return &ExerciseService{
		db:   db,
		repo: NewExerciseRepository(db),
		now: func() time.Time {
			// Postgres 只保存到微秒
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
}

// transaction 在单个事务中执行 fn，仓库绑定到该事务
func (s *ExerciseService) transaction(ctx context.Context, fn func(repo *ExerciseRepository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(s.repo.WithTx(tx))
	})
}

// loadForOwner 不属于 principal 的练习与不存在的练习返回同一个 NotFound
func loadForOwner(repo *ExerciseRepository, id uuid.UUID, principal *userModel.User, withChildren bool) (*exerciseModel.Exercise, error) {
	var (
		ex  *exerciseModel.Exercise
		err error
	)
	if withChildren {
		ex, err = repo.FindOwnedWithChildren(id, principal.ID)
	} else {
		ex, err = repo.FindOwned(id, principal.ID)
	}
	return ownedOrNotFound(ex, err)
}

func ownedOrNotFound(ex *exerciseModel.Exercise, err error) (*exerciseModel.Exercise, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound()
		}
		return nil, internalError("failed to load exercise", err)
	}
	return ex, nil
}

// List 返回 principal 的全部练习
func (s *ExerciseService) List(ctx context.Context, principal *userModel.User) ([]ExerciseView, error) {
	var views []ExerciseView
	err := s.transaction(ctx, func(repo *ExerciseRepository) error {
		exercises, err := repo.ListByOwner(principal.ID)
		if err != nil {
			return internalError("failed to list exercises", err)
		}
		views = make([]ExerciseView, 0, len(exercises))
		for i := range exercises {
			views = append(views, toView(&exercises[i]))
		}
		return nil
	})
	return views, err
}

// Get 返回单个练习
func (s *ExerciseService) Get(ctx context.Context, principal *userModel.User, id uuid.UUID) (ExerciseView, error) {
	var view ExerciseView
	err := s.transaction(ctx, func(repo *ExerciseRepository) error {
		ex, err := loadForOwner(repo, id, principal, true)
		if err != nil {
			return err
		}
		view = toView(ex)
		return nil
	})
	return view, err
}

// Create 在一个事务里写入练习及其子项，任何一步失败都整体回滚
func (s *ExerciseService) Create(ctx context.Context, principal *userModel.User, spec CreateSpec) (ExerciseView, error) {
	if err := spec.validate(); err != nil {
		return ExerciseView{}, err
	}

	var view ExerciseView
	err := s.transaction(ctx, func(repo *ExerciseRepository) error {
		exerciseType, err := repo.TypeByName(spec.Body.Kind())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validationError("unsupported exercise type")
			}
			return internalError("failed to resolve exercise type", err)
		}

		now := s.now()
		ex := &exerciseModel.Exercise{
			OwnerID:        principal.ID,
			ExerciseTypeID: exerciseType.ID,
			Title:          strings.TrimSpace(spec.Title),
			Description:    spec.Description,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repo.Create(ex); err != nil {
			return internalError("failed to create exercise", err)
		}

		if _, err := insertBody(repo, ex.ID, spec.Body, 0, now); err != nil {
			return internalError("failed to create exercise items", err)
		}

		created, err := loadForOwner(repo, ex.ID, principal, true)
		if err != nil {
			return err
		}
		view = toView(created)
		return nil
	})
	if err != nil {
		log.Printf("[CreateExercise] rolled back for user %s: %v", principal.ID, err)
		return ExerciseView{}, err
	}

	log.Printf("[CreateExercise] exercise %s (%s) created by %s", view.ID, view.Type, principal.ID)
	return view, nil
}

// Update 只修改 patch 中给出的字段，updated_at 总是刷新
func (s *ExerciseService) Update(ctx context.Context, principal *userModel.User, id uuid.UUID, patch Patch) (ExerciseView, error) {
	if err := patch.validate(); err != nil {
		return ExerciseView{}, err
	}

	var view ExerciseView
	err := s.transaction(ctx, func(repo *ExerciseRepository) error {
		if _, err := loadForOwner(repo, id, principal, false); err != nil {
			return err
		}

		fields := map[string]any{"updated_at": s.now()}
		if patch.Title != nil {
			fields["title"] = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			fields["description"] = *patch.Description
		}
		if err := repo.UpdateFields(id, fields); err != nil {
			return internalError("failed to update exercise", err)
		}

		updated, err := loadForOwner(repo, id, principal, true)
		if err != nil {
			return err
		}
		view = toView(updated)
		return nil
	})
	return view, err
}

// Delete 删除练习，子项由数据库级联删除
func (s *ExerciseService) Delete(ctx context.Context, principal *userModel.User, id uuid.UUID) error {
	err := s.transaction(ctx, func(repo *ExerciseRepository) error {
		affected, err := repo.DeleteOwned(id, principal.ID)
		if err != nil {
			return internalError("failed to delete exercise", err)
		}
		if affected == 0 {
			return notFound()
		}
		return nil
	})
	if err == nil {
		log.Printf("[DeleteExercise] exercise %s deleted by %s", id, principal.ID)
	}
	return err
}

// AddSentences 向已有练习追加子项；题型必须与练习一致，整批写入或整批回滚
func (s *ExerciseService) AddSentences(ctx context.Context, principal *userModel.User, id uuid.UUID, body Body) ([]SentenceView, error) {
	var created []SentenceView
	err := s.transaction(ctx, func(repo *ExerciseRepository) error {
		// 行锁保证并发追加读到的 position 起点不重叠
		ex, err := ownedOrNotFound(repo.LockOwned(id, principal.ID))
		if err != nil {
			return err
		}

		if body.Kind() != ex.ExerciseType.Name {
			return validationError("sentence type does not match exercise type")
		}
		if err := validateBody(body); err != nil {
			return err
		}

		start, err := repo.CountChildren(ex.ID, body.Kind())
		if err != nil {
			return internalError("failed to add sentences", err)
		}

		created, err = insertBody(repo, ex.ID, body, start, s.now())
		if err != nil {
			log.Printf("[AddSentences] rolling back batch of %d for exercise %s: %v", body.Len(), ex.ID, err)
			return internalError("failed to add sentences", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// insertBody 按题型写入子项，position 从 start 开始递增
func insertBody(repo *ExerciseRepository, exerciseID uuid.UUID, body Body, start int, now time.Time) ([]SentenceView, error) {
	views := make([]SentenceView, 0, body.Len())

	switch b := body.(type) {
	case FillGapBody:
		rows := make([]exerciseModel.FillGapSentence, len(b.Sentences))
		for i, item := range b.Sentences {
			rows[i] = exerciseModel.FillGapSentence{
				ID:            uuid.New(),
				ExerciseID:    exerciseID,
				Position:      start + i,
				Sentence:      item.Sentence,
				CorrectAnswer: item.CorrectAnswer,
				CreatedAt:     now,
			}
		}
		if err := repo.InsertSentences(rows); err != nil {
			return nil, err
		}
		for i := range rows {
			views = append(views, toFillGapView(&rows[i]))
		}
	case MultipleChoiceBody:
		rows := make([]exerciseModel.MultipleChoiceQuestion, len(b.Questions))
		for i, item := range b.Questions {
			rows[i] = exerciseModel.MultipleChoiceQuestion{
				ID:           uuid.New(),
				ExerciseID:   exerciseID,
				Position:     start + i,
				Question:     item.Question,
				Choices:      datatypes.NewJSONSlice(append([]string(nil), item.Choices...)),
				CorrectIndex: item.CorrectIndex,
				CreatedAt:    now,
			}
		}
		if err := repo.InsertQuestions(rows); err != nil {
			return nil, err
		}
		for i := range rows {
			views = append(views, toMultipleChoiceView(&rows[i]))
		}
	default:
		panic(fmt.Sprintf("exercise: unhandled body variant %T", body))
	}

	return views, nil
}

func toView(ex *exerciseModel.Exercise) ExerciseView {
	view := ExerciseView{
		ID:                      ex.ID,
		Title:                   ex.Title,
		Description:             ex.Description,
		Type:                    ex.ExerciseType.Name,
		FillGapSentences:        make([]FillGapSentenceView, 0, len(ex.FillGapSentences)),
		MultipleChoiceQuestions: make([]MultipleChoiceQuestionView, 0, len(ex.MultipleChoiceQuestions)),
		CreatedAt:               ex.CreatedAt.UTC(),
		UpdatedAt:               ex.UpdatedAt.UTC(),
	}
	for i := range ex.FillGapSentences {
		view.FillGapSentences = append(view.FillGapSentences, toFillGapView(&ex.FillGapSentences[i]))
	}
	for i := range ex.MultipleChoiceQuestions {
		view.MultipleChoiceQuestions = append(view.MultipleChoiceQuestions, toMultipleChoiceView(&ex.MultipleChoiceQuestions[i]))
	}
	return view
}

func toFillGapView(s *exerciseModel.FillGapSentence) FillGapSentenceView {
	return FillGapSentenceView{
		ID:            s.ID,
		Sentence:      s.Sentence,
		CorrectAnswer: s.CorrectAnswer,
		CreatedAt:     s.CreatedAt.UTC(),
	}
}

func toMultipleChoiceView(q *exerciseModel.MultipleChoiceQuestion) MultipleChoiceQuestionView {
	choices := []string(q.Choices)
	if choices == nil {
		choices = []string{}
	}
	return MultipleChoiceQuestionView{
		ID:           q.ID,
		Question:     q.Question,
		Choices:      choices,
		CorrectIndex: q.CorrectIndex,
		CreatedAt:    q.CreatedAt.UTC(),
	}
}

func notFound() *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.NotFound),
		response.WithErrorMessage("Exercise not found"),
	)
}

func internalError(msg string, err error) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.Internal),
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}
