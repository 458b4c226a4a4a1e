package controller

import (
	"strconv"

	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/service"
	"exam_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
	AuthService *service.AuthService
}

func NewUserController(userService *service.UserService, authService *service.AuthService) *UserController {
	return &UserController{
		UserService: userService,
		AuthService: authService,
	}
}

// CreateUserRequest defines model for admin user creation
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=student admin"`
}

// CreateUser godoc
// @Summary Create a user with an explicit role
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateUserRequest true "user payload"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/admin/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.UserRole(req.Role),
	}

	if err := c.AuthService.Register(user); err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// ListUsers godoc
// @Summary List registered users
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	users, total, err := c.UserService.ListUsers(page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
