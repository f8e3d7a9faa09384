package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/postline/backend/internal/models"
	"github.com/postline/backend/internal/repositories"
	"gorm.io/gorm"
)

// GroupHandler handles HTTP requests related to groups
type GroupHandler struct {
	groupRepository repositories.GroupRepository
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupRepo repositories.GroupRepository) *GroupHandler {
	return &GroupHandler{groupRepository: groupRepo}
}

// RegisterGroupRoutes registers group-related routes
func (h *GroupHandler) RegisterGroupRoutes(public, protected *echo.Group) {
	public.GET("/groups", h.GetGroups)
	public.GET("/groups/:slug", h.GetGroup)
	protected.POST("/groups", h.CreateGroup)
}

// CreateGroup creates a new group
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.groupRepository.GetGroupBySlug(req.Slug); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Group with this slug already exists")
	}

	group := &models.Group{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
	}

	if err := h.groupRepository.CreateGroup(group); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"group": group}})
}

// GetGroup retrieves a group by slug
func (h *GroupHandler) GetGroup(c echo.Context) error {
	group, err := h.groupRepository.GetGroupBySlug(c.Param("slug"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"group": group}})
}

// GetGroups lists all groups
func (h *GroupHandler) GetGroups(c echo.Context) error {
	groups, err := h.groupRepository.GetGroups()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"groups": groups}})
}
