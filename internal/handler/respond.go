package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"clubhub/internal/apperrors"
	"clubhub/internal/media"
	"clubhub/internal/models"
)

func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(status, gin.H{"code": appErr.Code, "error": appErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"code":  apperrors.CodeInternalServer,
		"error": "internal server error",
	})
}

func groupParam(c *gin.Context) (models.Group, bool) {
	group, err := models.ParseGroup(c.Param("group"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeValidation, "error": err.Error()})
		return "", false
	}
	return group, true
}

func scopeParam(c *gin.Context) (models.Scope, bool) {
	group, ok := groupParam(c)
	if !ok {
		return models.Scope{}, false
	}

	event, err := models.ParseEventType(c.Param("event"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": apperrors.CodeValidation, "error": err.Error()})
		return models.Scope{}, false
	}

	return models.Scope{Group: group, Event: event}, true
}

// formImage reads a multipart file field into a media.Upload. The size
// check runs before the read so an oversized file never enters memory.
func formImage(file *multipart.FileHeader, maxSize int64) (media.Upload, error) {
	if file.Size > maxSize {
		return media.Upload{}, apperrors.New(apperrors.CodeValidation,
			fmt.Sprintf("image exceeds the %d byte limit", maxSize))
	}

	f, err := file.Open()
	if err != nil {
		return media.Upload{}, apperrors.Wrap(err, apperrors.CodeValidation, "failed to read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return media.Upload{}, apperrors.Wrap(err, apperrors.CodeValidation, "failed to read uploaded file")
	}

	return media.Upload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
