package exercise

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	exerciseModel "terminal-terrace/exercise-service/internal/model/exercise"
	"terminal-terrace/exercise-service/pkg/response"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
	minChoices           = 2
)

// Spec 把请求体转换为带题型的创建参数；与 type 不符的列表必须为空
func (r CreateExerciseRequest) Spec() (CreateSpec, error) {
	spec := CreateSpec{
		Title:       r.Title,
		Description: r.Description,
	}

	switch exerciseModel.Kind(r.Type) {
	case exerciseModel.KindFillGap:
		if len(r.MultipleChoiceQuestions) > 0 {
			return CreateSpec{}, validationError("multipleChoiceQuestions must be empty for a fill-gap exercise")
		}
		spec.Body = FillGapBody{Sentences: r.FillGapSentences}
	case exerciseModel.KindMultipleChoice:
		if len(r.FillGapSentences) > 0 {
			return CreateSpec{}, validationError("fillGapSentences must be empty for a multiple-choice exercise")
		}
		spec.Body = MultipleChoiceBody{Questions: r.MultipleChoiceQuestions}
	default:
		return CreateSpec{}, validationError("unsupported exercise type")
	}

	return spec, nil
}

// ParseSentences 按字段判断每一项的题型，要求整批题型一致
func ParseSentences(items []json.RawMessage) (Body, error) {
	if len(items) == 0 {
		return nil, validationError("sentences must contain at least one item")
	}

	var kind exerciseModel.Kind
	for i, raw := range items {
		k, err := classify(raw)
		if err != nil {
			return nil, validationError(fmt.Sprintf("sentences[%d]: %s", i, err))
		}
		if i > 0 && k != kind {
			return nil, validationError("sentences must all be of the same type")
		}
		kind = k
	}

	switch kind {
	case exerciseModel.KindFillGap:
		body := FillGapBody{Sentences: make([]FillGapItem, len(items))}
		for i, raw := range items {
			if err := decodeStrict(raw, &body.Sentences[i]); err != nil {
				return nil, validationError(fmt.Sprintf("sentences[%d]: %s", i, err))
			}
		}
		return body, nil
	default:
		body := MultipleChoiceBody{Questions: make([]MultipleChoiceItem, len(items))}
		for i, raw := range items {
			if err := decodeStrict(raw, &body.Questions[i]); err != nil {
				return nil, validationError(fmt.Sprintf("sentences[%d]: %s", i, err))
			}
		}
		return body, nil
	}
}

// classify 由出现的键决定题型，两类键同时出现或都不出现均视为无法识别
func classify(raw json.RawMessage) (exerciseModel.Kind, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", fmt.Errorf("item must be an object")
	}

	_, hasSentence := fields["sentence"]
	_, hasAnswer := fields["correctAnswer"]
	_, hasQuestion := fields["question"]
	_, hasChoices := fields["choices"]
	_, hasIndex := fields["correctIndex"]

	fillGap := hasSentence || hasAnswer
	multipleChoice := hasQuestion || hasChoices || hasIndex

	switch {
	case fillGap && !multipleChoice:
		return exerciseModel.KindFillGap, nil
	case multipleChoice && !fillGap:
		return exerciseModel.KindMultipleChoice, nil
	default:
		return "", fmt.Errorf("cannot determine sentence type")
	}
}

func decodeStrict(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// validate 检查标题、描述以及子项内容
func (s CreateSpec) validate() error {
	if err := validateTitle(s.Title); err != nil {
		return err
	}
	if err := validateDescription(s.Description); err != nil {
		return err
	}
	if s.Body == nil {
		return validationError("unsupported exercise type")
	}
	return validateBody(s.Body)
}

func (p Patch) validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	return validateDescription(p.Description)
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return validationError("title must not be blank")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return validationError(fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLength {
		return validationError(fmt.Sprintf("description must be at most %d characters", maxDescriptionLength))
	}
	return nil
}

func validateBody(body Body) error {
	if body.Len() == 0 {
		return validationError(fmt.Sprintf("a %s exercise needs at least one item", body.Kind()))
	}

	switch b := body.(type) {
	case FillGapBody:
		for i, item := range b.Sentences {
			if strings.TrimSpace(item.Sentence) == "" {
				return validationError(fmt.Sprintf("item %d: sentence must not be blank", i))
			}
			if strings.TrimSpace(item.CorrectAnswer) == "" {
				return validationError(fmt.Sprintf("item %d: correctAnswer must not be blank", i))
			}
		}
	case MultipleChoiceBody:
		for i, item := range b.Questions {
			if strings.TrimSpace(item.Question) == "" {
				return validationError(fmt.Sprintf("item %d: question must not be blank", i))
			}
			if len(item.Choices) < minChoices {
				return validationError(fmt.Sprintf("item %d: at least %d choices are required", i, minChoices))
			}
			for _, choice := range item.Choices {
				if strings.TrimSpace(choice) == "" {
					return validationError(fmt.Sprintf("item %d: choices must not be blank", i))
				}
			}
			if item.CorrectIndex < 0 || item.CorrectIndex >= len(item.Choices) {
				return validationError(fmt.Sprintf("item %d: correctIndex must be between 0 and %d", i, len(item.Choices)-1))
			}
		}
	default:
		panic(fmt.Sprintf("exercise: unhandled body variant %T", body))
	}
	return nil
}

func validationError(msg string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidParameter),
		response.WithErrorMessage(msg),
	)
}
