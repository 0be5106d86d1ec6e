package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/supanut9/store-it/internal/application/ports"
	domainFile "github.com/supanut9/store-it/internal/domain/file"
	"github.com/supanut9/store-it/internal/domain/storage"
	"github.com/supanut9/store-it/internal/domain/user"
	"github.com/supanut9/store-it/internal/interface/api/rest/dto/file"
	"github.com/supanut9/store-it/internal/interface/api/rest/middleware"
	"github.com/supanut9/store-it/internal/interface/api/rest/validator"
)

// 50MB
const maxSize = int64(50 << 20)

// Tagger issues ETags for responses rendered for a page path.
type Tagger interface {
	ETag(path, variant string) string
}

type FileController struct {
	fileService ports.FileService
	tagger      Tagger
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	tagger Tagger,
	logger *zap.Logger,
	session gin.HandlerFunc,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		tagger:      tagger,
		logger:      logger,
	}

	g := r.Group(RouteFiles, session)
	g.GET("", fc.GetFilesHandler)
	g.POST("", fc.UploadFileHandler)
	r.PATCH(RouteFileName, session, fc.RenameFileHandler)
	r.PUT(RouteFileUsers, session, fc.UpdateFileUsersHandler)
	r.DELETE(RouteFile, session, fc.DeleteFileHandler)

	return fc
}

func (fc *FileController) GetFilesHandler(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	params, err := validator.ValidateListParams(
		c.Query("types"),
		c.Query("searchText"),
		c.Query("sort"),
		c.Query("limit"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	etag := fc.tagger.ETag(c.DefaultQuery("path", "/"), u.ID+"|"+c.Request.URL.RawQuery)
	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Header("ETag", etag)
		c.Status(http.StatusNotModified)
		return
	}

	list, err := fc.fileService.GetFiles(c.Request.Context(), u, params)
	if err != nil {
		fc.writeError(c, "GetFiles", "failed to get files", err)
		return
	}

	c.Header("ETag", etag)
	c.Header("Cache-Control", "private, no-cache")
	c.JSON(http.StatusOK, file.ToResponseList(*list))
}

func (fc *FileController) UploadFileHandler(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize+(1<<20))
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size <= 0 || fh.Size > maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large or empty"})
		return
	}

	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer src.Close()

	doc, err := fc.fileService.UploadFile(c.Request.Context(), domainFile.UploadInput{
		FileName:  fh.Filename,
		Size:      fh.Size,
		Payload:   src,
		OwnerID:   u.ID,
		AccountID: u.AccountID,
		Path:      c.PostForm("path"),
	})
	if err != nil {
		fc.writeError(c, "UploadFile", "failed to upload file", err)
		return
	}

	c.JSON(http.StatusCreated, file.ToResponseFile(*doc))
}

func (fc *FileController) RenameFileHandler(c *gin.Context) {
	var req file.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateRename(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	doc, err := fc.fileService.RenameFile(c.Request.Context(), domainFile.RenameInput{
		FileID:    c.Param("file_id"),
		Name:      strings.TrimSpace(req.Name),
		Extension: strings.TrimSpace(req.Extension),
		Path:      req.Path,
	})
	if err != nil {
		fc.writeError(c, "RenameFile", "failed to rename file", err)
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFile(*doc))
}

func (fc *FileController) UpdateFileUsersHandler(c *gin.Context) {
	var req file.UpdateUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	emails, errs := validator.NormalizeEmails(req.Emails)
	if errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	doc, err := fc.fileService.UpdateFileUsers(c.Request.Context(), domainFile.UpdateUsersInput{
		FileID: c.Param("file_id"),
		Emails: emails,
		Path:   req.Path,
	})
	if err != nil {
		fc.writeError(c, "UpdateFileUsers", "failed to update file users", err)
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFile(*doc))
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	err := fc.fileService.DeleteFile(c.Request.Context(), domainFile.DeleteInput{
		FileID:       c.Param("file_id"),
		BucketFileID: c.Query("bucketFileId"),
		Path:         c.Query("path"),
	})
	if err != nil {
		fc.writeError(c, "DeleteFile", "failed to delete file", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (fc *FileController) writeError(c *gin.Context, op, msg string, err error) {
	switch {
	case errors.Is(err, domainFile.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": domainFile.ErrNotFound.Error()})
	case errors.Is(err, domainFile.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domainFile.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": domainFile.ErrAlreadyExists.Error()})
	case errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": user.ErrUserNotFound.Error()})
	case errors.Is(err, storage.ErrObjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": storage.ErrObjectNotFound.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
		fc.logger.Error(op+"() error", zap.Error(err))
	}
}
