package handlers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/postline/backend/internal/models"
	"github.com/postline/backend/internal/repositories"
)

// maxImageSize caps uploads at 10 MiB
const maxImageSize = 10 << 20

// ImageHandler handles image blob uploads and retrieval. Blobs live in
// MongoDB; posts only store the returned reference.
type ImageHandler struct {
	imageRepository repositories.ImageRepository
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageRepo repositories.ImageRepository) *ImageHandler {
	return &ImageHandler{imageRepository: imageRepo}
}

// RegisterImageRoutes registers image-related routes
func (h *ImageHandler) RegisterImageRoutes(public, protected *echo.Group) {
	public.GET("/images/:ref", h.GetImage)
	protected.POST("/images", h.UploadImage)
}

// UploadImage accepts a multipart "image" file and returns its reference
func (h *ImageHandler) UploadImage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing image file")
	}
	if fileHeader.Size > maxImageSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Image exceeds the size limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	image := &models.Image{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		UploadedBy:  currentUserID,
	}

	ref, err := h.imageRepository.SaveImage(c.Request().Context(), image)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"ref": ref}})
}

// GetImage streams a stored blob back to the client
func (h *ImageHandler) GetImage(c echo.Context) error {
	image, err := h.imageRepository.GetImage(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Image not found")
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, contentType, image.Data)
}
