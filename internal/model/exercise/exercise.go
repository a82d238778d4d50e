package exercise

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"terminal-terrace/exercise-service/internal/model/user"
)

// Kind is the discriminator of an exercise. Its value doubles as the name
// of the seeded exercise_types row and as the "type" tag on the wire.
type Kind string

const (
	KindFillGap        Kind = "fill-gap"
	KindMultipleChoice Kind = "multiple-choice"
)

// Kinds lists every supported discriminator, in seeding order.
func Kinds() []Kind {
	return []Kind{KindFillGap, KindMultipleChoice}
}

// ExerciseType 题型表，启动时写入固定的几行
type ExerciseType struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name Kind      `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
}

// Exercise 练习表
type Exercise struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	ExerciseTypeID uuid.UUID `gorm:"type:uuid;not null;index" json:"exercise_type_id"`
	Title          string    `gorm:"type:varchar(200);not null" json:"title"`
	Description    *string   `gorm:"type:text" json:"description"`
	// 时间戳由 service 显式赋值
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`

	// 删除用户时级联删除其练习
	Owner        user.User    `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	ExerciseType ExerciseType `gorm:"foreignKey:ExerciseTypeID;constraint:OnDelete:RESTRICT" json:"-"`

	// 删除练习时由数据库级联删除子项
	FillGapSentences        []FillGapSentence        `gorm:"foreignKey:ExerciseID;constraint:OnDelete:CASCADE" json:"-"`
	MultipleChoiceQuestions []MultipleChoiceQuestion `gorm:"foreignKey:ExerciseID;constraint:OnDelete:CASCADE" json:"-"`
}

// FillGapSentence 填空句
type FillGapSentence struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ExerciseID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_fill_gap_sentences_position,priority:1" json:"exercise_id"`
	Position      int       `gorm:"not null;default:0;uniqueIndex:idx_fill_gap_sentences_position,priority:2" json:"position"`
	Sentence      string    `gorm:"type:text;not null" json:"sentence"`
	CorrectAnswer string    `gorm:"type:varchar(255);not null" json:"correct_answer"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
}

// MultipleChoiceQuestion 选择题
type MultipleChoiceQuestion struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	ExerciseID   uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_multiple_choice_questions_position,priority:1" json:"exercise_id"`
	Position     int                         `gorm:"not null;default:0;uniqueIndex:idx_multiple_choice_questions_position,priority:2" json:"position"`
	Question     string                      `gorm:"type:text;not null" json:"question"`
	Choices      datatypes.JSONSlice[string] `gorm:"not null" json:"choices"`
	CorrectIndex int                         `gorm:"not null" json:"correct_index"`
	CreatedAt    time.Time                   `gorm:"not null;autoCreateTime:false" json:"created_at"`
}

func (ExerciseType) TableName() string {
	return "exercise_types"
}

func (Exercise) TableName() string {
	return "exercises"
}

func (FillGapSentence) TableName() string {
	return "fill_gap_sentences"
}

func (MultipleChoiceQuestion) TableName() string {
	return "multiple_choice_questions"
}

func (t *ExerciseType) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (e *Exercise) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (s *FillGapSentence) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (q *MultipleChoiceQuestion) BeforeCreate(*gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
