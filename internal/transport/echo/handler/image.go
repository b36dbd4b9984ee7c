package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"imagehub/internal/auth"
	"imagehub/internal/domain/image"
	"imagehub/internal/infra/cache"
	apperrors "imagehub/pkg/errors"
	"imagehub/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ImageHandler struct {
	images   ImageStore
	teams    TeamGetter
	objects  ObjectStore
	urlCache *cache.URLCache
	pageSize int
}

func NewImageHandler(images ImageStore, teams TeamGetter, objects ObjectStore, urlCache *cache.URLCache, pageSize int) *ImageHandler {
	return &ImageHandler{
		images:   images,
		teams:    teams,
		objects:  objects,
		urlCache: urlCache,
		pageSize: pageSize,
	}
}

type ImageResponse struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"team_id"`
	UserID      string    `json:"user_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UploadImage stores the multipart upload under the team's key prefix and
// records it. The content type comes from sniffing the payload, not from
// the client's header.
func (h *ImageHandler) UploadImage(c echo.Context) error {
	teamID, err := uuid.Parse(c.Param(paramTeamID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidTeamID)
	}

	principal, err := auth.GetPrincipal(c)
	if err != nil {
		return err
	}

	if _, err := h.teams.GetByID(c.Request().Context(), teamID); err != nil {
		return err
	}

	fileHeader, err := c.FormFile(formFieldFile)
	if err != nil {
		return apperrors.BadRequest(msgFileRequired)
	}
	if err := validator.FileName(fileHeader.Filename); err != nil {
		return apperrors.BadRequest(err.Error())
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperrors.InternalServer(msgReadUploadFail, err)
	}
	defer src.Close()

	contents, err := io.ReadAll(src)
	if err != nil {
		return apperrors.InternalServer(msgReadUploadFail, err)
	}

	contentType := http.DetectContentType(contents)
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.BadRequest(msgFileNotImage)
	}

	// The ID is chosen here because the object key embeds it, and the blob
	// must be in place before the row that references it.
	imageID := uuid.New()
	objectKey := fmt.Sprintf("%s/%s_%s", teamID, imageID, fileHeader.Filename)

	if err := h.objects.Upload(bytes.NewReader(contents), objectKey, contentType); err != nil {
		return err
	}

	img, err := h.images.Create(c.Request().Context(), image.CreateImageInput{
		ID:          imageID,
		TeamID:      teamID,
		UserID:      principal.UserID,
		Title:       c.FormValue(formFieldTitle),
		Description: c.FormValue(formFieldDescription),
		Filename:    fileHeader.Filename,
		ObjectKey:   objectKey,
		ContentType: contentType,
		SizeBytes:   int64(len(contents)),
	})
	if err != nil {
		if delErr := h.objects.Delete(objectKey, h.urlCache); delErr != nil {
			c.Logger().Errorf("orphaned blob %s after failed image insert: %v", objectKey, delErr)
		}
		return err
	}

	url, err := h.objects.PresignDownload(img.ObjectKey, img.ContentType, h.urlCache)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toImageResponse(img, url))
}

func (h *ImageHandler) ListTeamImages(c echo.Context) error {
	teamID, err := uuid.Parse(c.Param(paramTeamID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidTeamID)
	}

	limit, offset, err := parseLimitOffset(c, h.pageSize)
	if err != nil {
		return err
	}

	if _, err := h.teams.GetByID(c.Request().Context(), teamID); err != nil {
		return err
	}

	images, err := h.images.List(c.Request().Context(), image.ListImagesFilter{
		TeamID: teamID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toImageResponses(images))
}

func (h *ImageHandler) ListUserImages(c echo.Context) error {
	teamID, err := uuid.Parse(c.Param(paramTeamID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidTeamID)
	}
	userID, err := uuid.Parse(c.Param(paramUserID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidUserID)
	}

	limit, offset, err := parseLimitOffset(c, h.pageSize)
	if err != nil {
		return err
	}

	if _, err := h.teams.GetByID(c.Request().Context(), teamID); err != nil {
		return err
	}

	images, err := h.images.List(c.Request().Context(), image.ListImagesFilter{
		TeamID: teamID,
		UserID: &userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toImageResponses(images))
}

func (h *ImageHandler) GetImage(c echo.Context) error {
	imageID, err := uuid.Parse(c.Param(paramImageID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidImageID)
	}

	img, err := h.images.GetByID(c.Request().Context(), imageID)
	if err != nil {
		return err
	}

	url, err := h.objects.PresignDownload(img.ObjectKey, img.ContentType, h.urlCache)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toImageResponse(img, url))
}

type UpdateImageRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (h *ImageHandler) UpdateImage(c echo.Context) error {
	imageID, err := uuid.Parse(c.Param(paramImageID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidImageID)
	}

	var req UpdateImageRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	if err := h.images.Update(c.Request().Context(), imageID, image.UpdateImageInput{
		Title:       req.Title,
		Description: req.Description,
	}); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, msgImageUpdated)
}

// DeleteImage removes the row first; a stale blob is recoverable garbage,
// a row without a blob is a broken record.
func (h *ImageHandler) DeleteImage(c echo.Context) error {
	imageID, err := uuid.Parse(c.Param(paramImageID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidImageID)
	}

	img, err := h.images.GetByID(c.Request().Context(), imageID)
	if err != nil {
		return err
	}

	if err := h.images.Delete(c.Request().Context(), imageID); err != nil {
		return err
	}

	if err := h.objects.Delete(img.ObjectKey, h.urlCache); err != nil {
		c.Logger().Warnf("orphaned blob %s after deleting image %s: %v", img.ObjectKey, imageID, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func toImageResponse(img *image.Image, url string) ImageResponse {
	resp := ImageResponse{
		ID:          img.ID.String(),
		TeamID:      img.TeamID.String(),
		Title:       img.Title,
		Description: img.Description,
		Filename:    img.Filename,
		ContentType: img.ContentType,
		SizeBytes:   img.SizeBytes,
		URL:         url,
		CreatedAt:   img.CreatedAt,
		UpdatedAt:   img.UpdatedAt,
	}
	if img.UserID != uuid.Nil {
		resp.UserID = img.UserID.String()
	}
	return resp
}

func toImageResponses(images []*image.Image) []ImageResponse {
	out := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, toImageResponse(img, ""))
	}
	return out
}
