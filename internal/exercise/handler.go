package exercise

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"terminal-terrace/exercise-service/internal/dto"
	"terminal-terrace/exercise-service/internal/middleware"
	userModel "terminal-terrace/exercise-service/internal/model/user"
	"terminal-terrace/exercise-service/pkg/response"
)

type ExerciseHandler struct {
	service *ExerciseService
}

func NewExerciseHandler(service *ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{service: service}
}

// principalAndID 取出当前用户和路径中的练习 ID；非法 ID 按不存在处理
func principalAndID(c *gin.Context) (*userModel.User, uuid.UUID, bool) {
	principal, ok := currentUser(c)
	if !ok {
		return nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		dto.ErrorResponse(c, notFound())
		return nil, uuid.Nil, false
	}
	return principal, id, true
}

func currentUser(c *gin.Context) (*userModel.User, bool) {
	principal, ok := middleware.CurrentUser(c)
	if !ok {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("Not authenticated"),
		))
	}
	return principal, ok
}

// ListExercises 列出当前用户的练习
// @Summary 练习列表
// @Tags 练习
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]ExerciseView}
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	principal, ok := currentUser(c)
	if !ok {
		return
	}

	views, err := h.service.List(c.Request.Context(), principal)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, views)
}

// GetExercise 获取单个练习
// @Summary 获取练习
// @Tags 练习
// @Produce json
// @Security BearerAuth
// @Param id path string true "练习ID"
// @Success 200 {object} response.Response{data=ExerciseView}
// @Failure 404 {object} response.Response
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	principal, id, ok := principalAndID(c)
	if !ok {
		return
	}

	view, err := h.service.Get(c.Request.Context(), principal, id)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, view)
}

// CreateExercise 创建练习
// @Summary 创建练习
// @Description type 为 fill-gap 时只能提供 fillGapSentences，为 multiple-choice 时只能提供 multipleChoiceQuestions
// @Tags 练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateExerciseRequest true "练习内容"
// @Success 201 {object} response.Response{data=ExerciseView}
// @Failure 400 {object} response.Response
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	principal, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	spec, err := req.Spec()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	view, err := h.service.Create(c.Request.Context(), principal, spec)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.CreatedResponse(c, view)
}

// UpdateExercise 部分更新练习标题或描述
// @Summary 更新练习
// @Description 未提供的字段保持不变；题型与子项不可修改
// @Tags 练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "练习ID"
// @Param body body UpdateExerciseRequest true "更新内容"
// @Success 200 {object} response.Response{data=ExerciseView}
// @Failure 404 {object} response.Response
// @Router /exercises/{id} [put]
// @Router /exercises/{id} [patch]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	principal, id, ok := principalAndID(c)
	if !ok {
		return
	}

	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	view, err := h.service.Update(c.Request.Context(), principal, id, Patch{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, view)
}

// DeleteExercise 删除练习及其全部子项
// @Summary 删除练习
// @Tags 练习
// @Security BearerAuth
// @Param id path string true "练习ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	principal, id, ok := principalAndID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), principal, id); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.NoContentResponse(c)
}

// AddSentences 向练习追加子项
// @Summary 追加句子/题目
// @Description sentences 中的元素必须与练习题型一致
// @Tags 练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "练习ID"
// @Param body body AddSentencesRequest true "子项列表"
// @Success 201 {object} response.Response{data=[]object}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /exercises/{id}/sentences [post]
func (h *ExerciseHandler) AddSentences(c *gin.Context) {
	principal, id, ok := principalAndID(c)
	if !ok {
		return
	}

	var req AddSentencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	body, err := ParseSentences(req.Sentences)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	views, err := h.service.AddSentences(c.Request.Context(), principal, id, body)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.CreatedResponse(c, views)
}
