package admin

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/storefront-api/internal/http/handlers/shared"
	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// SetStaffRequest 设置店员标记请求
type SetStaffRequest struct {
	IsStaff *bool `json:"is_staff" binding:"required"`
}

// UpdateUserStatusRequest 更新用户状态请求
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminUserView 后台用户输出
type AdminUserView struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	IsStaff     bool       `json:"is_staff"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toAdminUserView(user *models.User) AdminUserView {
	return AdminUserView{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IsStaff:     user.IsStaff,
		Status:      user.Status,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if raw := strings.TrimSpace(c.Query("is_staff")); raw != "" {
		isStaff, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.IsStaff = &isStaff
	}

	users, total, err := h.UserAuthService.ListUsers(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	items := make([]AdminUserView, 0, len(users))
	for i := range users {
		items = append(items, toAdminUserView(&users[i]))
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}

// SetUserStaff 设置或取消店员身份
func (h *Handler) SetUserStaff(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req SetStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.UserAuthService.SetStaff(c.Request.Context(), actorFrom(c), id, *req.IsStaff)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	logger.Infow("admin_user_staff_updated",
		"operator_user_id", currentUserID(c),
		"target_user_id", id,
		"is_staff", *req.IsStaff,
	)
	response.Success(c, toAdminUserView(user))
}

// UpdateUserStatus 启用或禁用用户
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.UserAuthService.UpdateStatus(c.Request.Context(), actorFrom(c), id, strings.TrimSpace(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	logger.Infow("admin_user_status_updated",
		"operator_user_id", currentUserID(c),
		"target_user_id", id,
		"status", user.Status,
	)
	response.Success(c, toAdminUserView(user))
}
