package handlers

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/postline/backend/internal/cache"
	"github.com/postline/backend/internal/repositories"
	"github.com/postline/backend/pkg/logger"
	"github.com/postline/backend/pkg/pagination"
	"gorm.io/gorm"
)

// FeedHandler serves the four paginated read views: the index feed, the
// group feed, the profile feed and the personalized following feed.
type FeedHandler struct {
	postRepository   repositories.PostRepository
	userRepository   repositories.UserRepository
	groupRepository  repositories.GroupRepository
	followRepository repositories.FollowRepository
	pageCache        *cache.PageCache
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	groupRepo repositories.GroupRepository,
	followRepo repositories.FollowRepository,
	pageCache *cache.PageCache,
) *FeedHandler {
	return &FeedHandler{
		postRepository:   postRepo,
		userRepository:   userRepo,
		groupRepository:  groupRepo,
		followRepository: followRepo,
		pageCache:        pageCache,
	}
}

// RegisterFeedRoutes registers feed-related routes. Reads are public,
// the following feed and cache administration require authentication.
func (h *FeedHandler) RegisterFeedRoutes(public, protected *echo.Group) {
	public.GET("/posts", h.GetIndexFeed)
	public.GET("/groups/:slug/posts", h.GetGroupFeed)
	public.GET("/users/:username/posts", h.GetProfileFeed)
	protected.GET("/feed/following", h.GetFollowingFeed)
	protected.POST("/admin/cache/clear", h.ClearCache)
}

type feedPayload struct {
	Success bool            `json:"success"`
	Data    echo.Map        `json:"data"`
	Meta    pagination.Meta `json:"meta"`
}

// GetIndexFeed returns all posts, newest first. The rendered page is
// cached whole for the configured TTL keyed by request URI, so reads
// within the TTL deliberately ignore newer writes.
func (h *FeedHandler) GetIndexFeed(c echo.Context) error {
	key := c.Request().RequestURI
	if data, ok := h.pageCache.Get(key); ok {
		return c.JSONBlob(http.StatusOK, data)
	}

	page := pagination.ParsePage(c.QueryParam("page"))

	posts, err := h.postRepository.GetAllPosts(pagination.Offset(page), pagination.PageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	total, err := h.postRepository.CountAllPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	payload := feedPayload{
		Success: true,
		Data:    echo.Map{"posts": posts},
		Meta:    pagination.NewMeta(page, total),
	}

	rendered, err := json.Marshal(payload)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.pageCache.Put(key, rendered)

	return c.JSONBlob(http.StatusOK, rendered)
}

// GetGroupFeed returns the posts filed under a group. An unknown slug is
// 404; a known group with no posts is an empty page.
func (h *FeedHandler) GetGroupFeed(c echo.Context) error {
	slug := c.Param("slug")

	group, err := h.groupRepository.GetGroupBySlug(slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pagination.ParsePage(c.QueryParam("page"))

	posts, err := h.postRepository.GetPostsByGroupID(group.ID, pagination.Offset(page), pagination.PageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	total, err := h.postRepository.CountPostsByGroupID(group.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, feedPayload{
		Success: true,
		Data:    echo.Map{"group": group, "posts": posts},
		Meta:    pagination.NewMeta(page, total),
	})
}

// GetProfileFeed returns an author's posts plus, for authenticated
// callers, whether they follow the author.
func (h *FeedHandler) GetProfileFeed(c echo.Context) error {
	username := c.Param("username")

	author, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pagination.ParsePage(c.QueryParam("page"))

	posts, err := h.postRepository.GetPostsByAuthorID(author.ID, pagination.Offset(page), pagination.PageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	total, err := h.postRepository.CountPostsByAuthorID(author.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	following := false
	if currentUserID := getUserIDFromContext(c); currentUserID > 0 {
		var followErr error
		following, followErr = h.followRepository.IsFollowing(currentUserID, author.ID)
		if followErr != nil {
			// The flag is cosmetic, the page still renders without it
			logger.L.Warn("Failed to resolve following state for " + username + ": " + followErr.Error())
		}
	}

	return c.JSON(http.StatusOK, feedPayload{
		Success: true,
		Data:    echo.Map{"author": author, "following": following, "posts": posts},
		Meta:    pagination.NewMeta(page, total),
	})
}

// GetFollowingFeed returns posts by every author the caller follows
func (h *FeedHandler) GetFollowingFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page := pagination.ParsePage(c.QueryParam("page"))

	posts, err := h.postRepository.GetFollowingPosts(currentUserID, pagination.Offset(page), pagination.PageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	total, err := h.postRepository.CountFollowingPosts(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, feedPayload{
		Success: true,
		Data:    echo.Map{"posts": posts},
		Meta:    pagination.NewMeta(page, total),
	})
}

// ClearCache drops the cached index feed pages immediately
func (h *FeedHandler) ClearCache(c echo.Context) error {
	h.pageCache.Clear()
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
