package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-storage-api/internal/application/ports"
	"file-storage-api/internal/application/services"
	"file-storage-api/internal/infrastructure/jwt"
	"file-storage-api/internal/interface/api/rest/dto/file"
	"file-storage-api/internal/interface/api/rest/middleware"
	"file-storage-api/internal/interface/api/rest/validator"
)

type FileController struct {
	fileService ports.FileService
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
	}

	authed := middleware.AuthMiddleware(jwtService)

	// Listing and download stay open; every mutation needs a bearer token.
	r.GET(RouteFiles, fc.GetFilesHandler)
	r.GET(RouteDownload, fc.DownloadHandler)
	r.POST(RouteUpload, authed, fc.UploadHandler)
	r.DELETE(RouteDelete, authed, fc.DeleteHandler)
	r.PATCH(RouteFileTags, authed, fc.AddTagHandler)
	r.PATCH(RouteFileTagsDelete, authed, fc.RemoveTagHandler)
	r.PATCH(RouteFileTagsEdit, authed, fc.EditTagHandler)

	return fc
}

func (fc *FileController) UploadHandler(c *gin.Context) {
	uuid, ok := requesterUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
		return
	}

	fh, err := c.FormFile("files")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file uploaded"})
		return
	}
	if fh.Size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "uploaded file is empty"})
		return
	}

	f, err := fc.fileService.Upload(c.Request.Context(), uuid, fh, splitTags(c.PostForm("tags")))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File too large"})
		case errors.Is(err, services.ErrUnsupportedType):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unsupported file type"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error uploading file"})
			fc.logger.Error("Upload() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, file.UploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		File:    file.ToResponseFile(*f),
	})
}

func (fc *FileController) GetFilesHandler(c *gin.Context) {
	files, err := fc.fileService.List(
		c.Request.Context(),
		c.Query("search"),
		splitTags(c.Query("tags")),
	)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"success": false, "message": "Error fetching files"},
		)
		fc.logger.Error("List() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFiles(files))
}

func (fc *FileController) DownloadHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid file ID"})
		return
	}

	rec, rc, err := fc.fileService.Download(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "File not found in database"})
		case errors.Is(err, services.ErrBlobMissing):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "File not found on server"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error downloading file"})
			fc.logger.Error("Download() error", zap.Error(err))
		}
		return
	}
	defer rc.Close()

	c.DataFromReader(
		http.StatusOK,
		int64(rec.SizeBytes),
		rec.MimeType,
		rc,
		map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", rec.OriginalName),
		},
	)
}

func (fc *FileController) DeleteHandler(c *gin.Context) {
	uuid, ok := requesterUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
		return
	}
	ok, id := validator.IsUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid file ID"})
		return
	}

	if err := fc.fileService.Delete(c.Request.Context(), uuid, id); err != nil {
		switch {
		case errors.Is(err, services.ErrFileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "File not found in database"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting file"})
			fc.logger.Error("Delete() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted successfully"})
}

func (fc *FileController) AddTagHandler(c *gin.Context) {
	uuid, ok := requesterUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
		return
	}
	ok, id := validator.IsUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid file ID"})
		return
	}

	var req file.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid json"})
		return
	}
	if msg := validator.ValidateTag(req.Tag); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	f, err := fc.fileService.AddTag(c.Request.Context(), uuid, id, req.Tag)
	if err != nil {
		fc.respondTagError(c, err, "AddTag()")
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFile(*f))
}

func (fc *FileController) RemoveTagHandler(c *gin.Context) {
	uuid, ok := requesterUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
		return
	}
	ok, id := validator.IsUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid file ID"})
		return
	}

	var req file.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid json"})
		return
	}
	if msg := validator.ValidateTag(req.Tag); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	f, err := fc.fileService.RemoveTag(c.Request.Context(), uuid, id, req.Tag)
	if err != nil {
		fc.respondTagError(c, err, "RemoveTag()")
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFile(*f))
}

func (fc *FileController) EditTagHandler(c *gin.Context) {
	uuid, ok := requesterUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
		return
	}
	ok, id := validator.IsUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid file ID"})
		return
	}

	var req file.EditTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid json"})
		return
	}
	if msg := validator.ValidateTag(req.OldTag); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "old " + msg})
		return
	}
	if msg := validator.ValidateTag(req.NewTag); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "new " + msg})
		return
	}

	f, err := fc.fileService.EditTag(c.Request.Context(), uuid, id, req.OldTag, req.NewTag)
	if err != nil {
		fc.respondTagError(c, err, "EditTag()")
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFile(*f))
}

func (fc *FileController) respondTagError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, services.ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "File not found in database"})
	case errors.Is(err, services.ErrTagNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tag not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating tags"})
		fc.logger.Error(op+" error", zap.Error(err))
	}
}

// splitTags turns the comma-separated form value into raw tags; the service
// normalizes them.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
