package rest

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/supanut9/store-it/config"
	"github.com/supanut9/store-it/internal/application/ports"
	"github.com/supanut9/store-it/internal/domain/storage"
)

type StorageController struct {
	fileService ports.FileService
	cfg         config.Backend
	logger      *zap.Logger
}

func NewStorageController(
	r *gin.Engine,
	fileService ports.FileService,
	cfg config.Backend,
	logger *zap.Logger,
) *StorageController {
	sc := &StorageController{
		fileService: fileService,
		cfg:         cfg,
		logger:      logger,
	}

	r.GET(RouteFileView, sc.ViewFileHandler)

	return sc
}

// ViewFileHandler serves the public view URL stored on file documents.
func (sc *StorageController) ViewFileHandler(c *gin.Context) {
	if c.Query("project") != sc.cfg.ProjectID {
		c.JSON(http.StatusNotFound, gin.H{"error": storage.ErrObjectNotFound.Error()})
		return
	}

	body, obj, err := sc.fileService.OpenFile(c.Request.Context(), c.Param("bucket_id"), c.Param("file_id"))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": storage.ErrObjectNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
		sc.logger.Error("OpenFile() error", zap.Error(err))
		return
	}
	defer body.Close()

	contentType, disposition := viewHeaders(obj.MimeType)

	extra := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"Content-Security-Policy": "sandbox; default-src 'none'",
		"Cache-Control":           "private, max-age=3600",
	}
	if d := mime.FormatMediaType(disposition, map[string]string{"filename": obj.Name}); d != "" {
		extra["Content-Disposition"] = d
	}

	c.DataFromReader(http.StatusOK, obj.SizeOriginal, contentType, body, extra)
}

// scriptable types run in the browser when opened inline. Any "+xml"
// type is treated the same way.
var scriptable = map[string]struct{}{
	"text/html":                {},
	"text/xml":                 {},
	"text/xsl":                 {},
	"application/xml":          {},
	"text/javascript":          {},
	"text/ecmascript":          {},
	"application/javascript":   {},
	"application/x-javascript": {},
	"application/ecmascript":   {},
}

// viewHeaders picks the served content type and disposition for a stored
// MIME type. Unknown or unparsable types are served as binary.
func viewHeaders(mimeType string) (string, string) {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil || mediaType == "" {
		return "application/octet-stream", "attachment"
	}
	if _, ok := scriptable[mediaType]; ok || strings.HasSuffix(mediaType, "+xml") {
		return "application/octet-stream", "attachment"
	}
	return mimeType, "inline"
}
