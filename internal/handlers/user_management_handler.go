package handlers

import (
	"context"
	"net/http"

	"itijobs_backend/internal/auth"
	"itijobs_backend/internal/logger"
	"itijobs_backend/internal/services"
	"itijobs_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserManagementHandler struct {
	*BaseHandler
	service services.UserManagementService
}

func NewUserManagementHandler(base *BaseHandler, service services.UserManagementService) *UserManagementHandler {
	return &UserManagementHandler{
		BaseHandler: base,
		service:     service,
	}
}

// RegisterRoutes ожидает группу, уже закрытую AuthMiddleware.
// Роль проверяет сервис, поэтому RoleMiddleware здесь не нужен.
func (h *UserManagementHandler) RegisterRoutes(admin *gin.RouterGroup) {
	users := admin.Group("/users")
	{
		users.GET("", h.ListAllUsers)
		users.DELETE("/:id", h.DeleteUser)
	}

	employers := admin.Group("/employers")
	{
		employers.GET("/pending", h.ListUnapprovedEmployers)
		employers.POST("/:id/approve", h.ApproveEmployer)
		employers.PATCH("/:id/approve", h.ApproveEmployer)
		employers.POST("/:id/reject", h.RejectEmployer)
		employers.DELETE("/:id/reject", h.RejectEmployer)
	}
}

// ListAllUsers godoc
// @Summary  Все пользователи, новые первыми
// @Tags     admin
// @Produce  json
// @Success  200 {array} dto.UserResponse
// @Failure  401,403 {object} apperrors.ErrorResponse
// @Router   /admin/users [get]
func (h *UserManagementHandler) ListAllUsers(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}

	users, err := h.service.ListAllUsers(c.Request.Context(), h.GetDB(c), caller)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// ListUnapprovedEmployers godoc
// @Summary  Работодатели, ожидающие одобрения
// @Tags     admin
// @Produce  json
// @Success  200 {array} dto.PendingEmployerResponse
// @Router   /admin/employers/pending [get]
func (h *UserManagementHandler) ListUnapprovedEmployers(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}

	employers, err := h.service.ListUnapprovedEmployers(c.Request.Context(), h.GetDB(c), caller)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employers)
}

// ApproveEmployer godoc
// @Summary  Одобрить работодателя
// @Tags     admin
// @Param    id path string true "User ID"
// @Success  200 {object} dto.MessageResponse
// @Failure  400,403,404 {object} apperrors.ErrorResponse
// @Router   /admin/employers/{id}/approve [post]
func (h *UserManagementHandler) ApproveEmployer(c *gin.Context) {
	h.decide(c, h.service.ApproveEmployer)
}

// RejectEmployer godoc
// @Summary  Отклонить и удалить работодателя
// @Tags     admin
// @Param    id path string true "User ID"
// @Success  200 {object} dto.MessageResponse
// @Failure  400,403,404 {object} apperrors.ErrorResponse
// @Router   /admin/employers/{id}/reject [post]
func (h *UserManagementHandler) RejectEmployer(c *gin.Context) {
	h.decide(c, h.service.RejectEmployer)
}

// DeleteUser godoc
// @Summary  Удалить пользователя (последнего админа удалить нельзя)
// @Tags     admin
// @Param    id path string true "User ID"
// @Success  200 {object} dto.MessageResponse
// @Failure  400,403,404 {object} apperrors.ErrorResponse
// @Router   /admin/users/{id} [delete]
func (h *UserManagementHandler) DeleteUser(c *gin.Context) {
	h.decide(c, h.service.DeleteUser)
}

type userAction func(ctx context.Context, db *gorm.DB, caller auth.Caller, userID string) (*dto.MessageResponse, error)

// decide - общий путь для операций над одним пользователем по :id
func (h *UserManagementHandler) decide(c *gin.Context, action userAction) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}

	var param dto.UserIDParam
	if !h.BindAndValidate_URI(c, &param) {
		return
	}

	res, err := action(c.Request.Context(), h.GetDB(c), caller, param.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxDebug(c.Request.Context(), "Admin action completed", "path", c.FullPath(), "target_user_id", param.ID)
	c.JSON(http.StatusOK, res)
}
