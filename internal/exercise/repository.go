package exercise

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	exerciseModel "terminal-terrace/exercise-service/internal/model/exercise"
)

// ExerciseRepository 练习数据访问层；所有按 ID 的查询都带 owner 条件
type ExerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *ExerciseRepository) WithTx(tx *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{db: tx}
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *ExerciseRepository) withChildren() *gorm.DB {
	return r.db.
		Preload("ExerciseType").
		Preload("FillGapSentences", orderByPosition).
		Preload("MultipleChoiceQuestions", orderByPosition)
}

// TypeByName 查询题型行
func (r *ExerciseRepository) TypeByName(kind exerciseModel.Kind) (*exerciseModel.ExerciseType, error) {
	var t exerciseModel.ExerciseType
	if err := r.db.Where("name = ?", kind).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// FindOwned 查询属于 ownerID 的练习（含题型），不存在或不属于该用户时返回 gorm.ErrRecordNotFound
func (r *ExerciseRepository) FindOwned(id, ownerID uuid.UUID) (*exerciseModel.Exercise, error) {
	var ex exerciseModel.Exercise
	err := r.db.Preload("ExerciseType").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&ex).Error
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

// LockOwned 同 FindOwned，但对练习行加 FOR UPDATE 锁，串行化同一练习上的追加
func (r *ExerciseRepository) LockOwned(id, ownerID uuid.UUID) (*exerciseModel.Exercise, error) {
	var ex exerciseModel.Exercise
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&ex).Error
	if err != nil {
		return nil, err
	}
	if err := r.db.First(&ex.ExerciseType, "id = ?", ex.ExerciseTypeID).Error; err != nil {
		return nil, err
	}
	return &ex, nil
}

// FindOwnedWithChildren 同 FindOwned，并按 position 加载子项
func (r *ExerciseRepository) FindOwnedWithChildren(id, ownerID uuid.UUID) (*exerciseModel.Exercise, error) {
	var ex exerciseModel.Exercise
	err := r.withChildren().
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&ex).Error
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

// ListByOwner 按创建时间列出用户的全部练习
func (r *ExerciseRepository) ListByOwner(ownerID uuid.UUID) ([]exerciseModel.Exercise, error) {
	var exercises []exerciseModel.Exercise
	err := r.withChildren().
		Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&exercises).Error
	return exercises, err
}

// Create 只写练习本身，关联由调用方单独插入
func (r *ExerciseRepository) Create(ex *exerciseModel.Exercise) error {
	return r.db.Omit(clause.Associations).Create(ex).Error
}

func (r *ExerciseRepository) InsertSentences(sentences []exerciseModel.FillGapSentence) error {
	return r.db.Create(&sentences).Error
}

func (r *ExerciseRepository) InsertQuestions(questions []exerciseModel.MultipleChoiceQuestion) error {
	return r.db.Create(&questions).Error
}

// CountChildren 返回练习下某一类子项的数量，用作追加时的起始 position
func (r *ExerciseRepository) CountChildren(exerciseID uuid.UUID, kind exerciseModel.Kind) (int, error) {
	var count int64
	var model any
	switch kind {
	case exerciseModel.KindFillGap:
		model = &exerciseModel.FillGapSentence{}
	default:
		model = &exerciseModel.MultipleChoiceQuestion{}
	}
	err := r.db.Model(model).Where("exercise_id = ?", exerciseID).Count(&count).Error
	return int(count), err
}

// UpdateFields 更新指定列
func (r *ExerciseRepository) UpdateFields(id uuid.UUID, fields map[string]any) error {
	return r.db.Model(&exerciseModel.Exercise{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteOwned 删除练习，子项由外键级联删除；返回受影响行数
func (r *ExerciseRepository) DeleteOwned(id, ownerID uuid.UUID) (int64, error) {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&exerciseModel.Exercise{})
	return result.RowsAffected, result.Error
}
