package exercise

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	exerciseModel "terminal-terrace/exercise-service/internal/model/exercise"
)

// Body is the sub-entity payload of an exercise: exactly one of
// FillGapBody or MultipleChoiceBody. The unexported method keeps the set
// closed to this package.
type Body interface {
	Kind() exerciseModel.Kind
	Len() int
	sealed()
}

// FillGapItem 填空句创建参数
type FillGapItem struct {
	Sentence      string `json:"sentence" example:"I ___ happy."`
	CorrectAnswer string `json:"correctAnswer" example:"am"`
}

// MultipleChoiceItem 选择题创建参数
type MultipleChoiceItem struct {
	Question     string   `json:"question" example:"Pick the verb"`
	Choices      []string `json:"choices" example:"run,blue,table"`
	CorrectIndex int      `json:"correctIndex" example:"0"`
}

type FillGapBody struct {
	Sentences []FillGapItem
}

type MultipleChoiceBody struct {
	Questions []MultipleChoiceItem
}

func (FillGapBody) Kind() exerciseModel.Kind        { return exerciseModel.KindFillGap }
func (MultipleChoiceBody) Kind() exerciseModel.Kind { return exerciseModel.KindMultipleChoice }

func (b FillGapBody) Len() int        { return len(b.Sentences) }
func (b MultipleChoiceBody) Len() int { return len(b.Questions) }

func (FillGapBody) sealed()        {}
func (MultipleChoiceBody) sealed() {}

// CreateSpec 创建练习的入参，Body 决定题型
type CreateSpec struct {
	Title       string
	Description *string
	Body        Body
}

// Patch 部分更新；nil 字段保持不变
type Patch struct {
	Title       *string
	Description *string
}

// CreateExerciseRequest POST /exercises 请求体
type CreateExerciseRequest struct {
	Title                   string               `json:"title" binding:"required,max=200" example:"Verbs"`
	Description             *string              `json:"description" binding:"omitempty,max=2000" example:"Present tense of to be"`
	Type                    string               `json:"type" binding:"required" example:"fill-gap" enums:"fill-gap,multiple-choice"`
	FillGapSentences        []FillGapItem        `json:"fillGapSentences"`
	MultipleChoiceQuestions []MultipleChoiceItem `json:"multipleChoiceQuestions"`
}

// UpdateExerciseRequest PUT/PATCH /exercises/:id 请求体
type UpdateExerciseRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200" example:"Irregular verbs"`
	Description *string `json:"description" binding:"omitempty,max=2000" example:"new"`
}

// AddSentencesRequest POST /exercises/:id/sentences 请求体，元素须同为一种题型
type AddSentencesRequest struct {
	Sentences []json.RawMessage `json:"sentences" binding:"required" swaggertype:"array,object"`
}

// FillGapSentenceView 填空句输出
type FillGapSentenceView struct {
	ID            uuid.UUID `json:"id"`
	Sentence      string    `json:"sentence"`
	CorrectAnswer string    `json:"correctAnswer"`
	CreatedAt     time.Time `json:"createdAt"`
}

// MultipleChoiceQuestionView 选择题输出
type MultipleChoiceQuestionView struct {
	ID           uuid.UUID `json:"id"`
	Question     string    `json:"question"`
	Choices      []string  `json:"choices"`
	CorrectIndex int       `json:"correctIndex"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SentenceView is either a FillGapSentenceView or a MultipleChoiceQuestionView.
type SentenceView interface {
	sentenceView()
}

func (FillGapSentenceView) sentenceView()        {}
func (MultipleChoiceQuestionView) sentenceView() {}

// ExerciseView 练习输出；与题型不符的子项列表为空数组而非 null
type ExerciseView struct {
	ID                      uuid.UUID                    `json:"id"`
	Title                   string                       `json:"title"`
	Description             *string                      `json:"description"`
	Type                    exerciseModel.Kind           `json:"type"`
	FillGapSentences        []FillGapSentenceView        `json:"fillGapSentences"`
	MultipleChoiceQuestions []MultipleChoiceQuestionView `json:"multipleChoiceQuestions"`
	CreatedAt               time.Time                    `json:"createdAt"`
	UpdatedAt               time.Time                    `json:"updatedAt"`
}
