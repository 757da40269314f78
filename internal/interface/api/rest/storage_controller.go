package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-storage-api/internal/application/ports"
	"clinic-storage-api/internal/domain/apperr"
	"clinic-storage-api/internal/domain/document"
	"clinic-storage-api/internal/interface/api/rest/dto/storage"
	"clinic-storage-api/internal/interface/api/rest/middleware"
	"clinic-storage-api/internal/interface/api/rest/validator"
)

type StorageController struct {
	storageService ports.StorageService
	logger         *zap.Logger
}

func NewStorageController(
	r *gin.Engine,
	storageService ports.StorageService,
	logger *zap.Logger,
	resolver ports.IdentityResolver,
) *StorageController {
	sc := &StorageController{
		storageService: storageService,
		logger:         logger,
	}

	auth := middleware.AuthMiddleware(resolver)
	r.POST(RouteSignUpload, auth, sc.SignUploadHandler)
	r.POST(RouteFinalizeUpload, auth, sc.FinalizeUploadHandler)
	r.GET(RouteSignDownload, auth, sc.SignDownloadHandler)

	return sc
}

// respondError translates a tagged service error into the response the
// client sees. Infrastructure failures get logged; the taxonomy decides the
// status.
func (sc *StorageController) respondError(c *gin.Context, op string, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		sc.logger.Error(op+" error", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": apperr.MessageOf(err)})
}

func (sc *StorageController) SignUploadHandler(c *gin.Context) {
	var req storage.SignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if req.Filename == "" || req.PatientID == "" {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "filename and patientId are required"},
		)
		return
	}
	ok, patientID := validator.IsUUID(req.PatientID)
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "patientId must be a valid UUID"},
		)
		return
	}

	userID := c.GetString(middleware.CtxUserID)

	grant, err := sc.storageService.AuthorizeUpload(c.Request.Context(), userID, req.Filename, req.ContentType, patientID)
	if err != nil {
		sc.respondError(c, "AuthorizeUpload()", err)
		return
	}

	c.JSON(http.StatusOK, storage.SignUploadResponse{
		UploadURL: grant.UploadURL,
		ObjectKey: grant.ObjectKey,
		DocID:     grant.DocID,
	})
}

func (sc *StorageController) FinalizeUploadHandler(c *gin.Context) {
	var req storage.FinalizeUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if req.DocID == "" {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "docId is required"},
		)
		return
	}
	ok, docID := validator.IsUUID(req.DocID)
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "docId must be a valid UUID"},
		)
		return
	}

	userID := c.GetString(middleware.CtxUserID)

	if err := sc.storageService.FinalizeUpload(c.Request.Context(), userID, docID, req.SizeBytes, req.SHA256); err != nil {
		sc.respondError(c, "FinalizeUpload()", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (sc *StorageController) SignDownloadHandler(c *gin.Context) {
	var docID *document.ID
	if raw := c.Query("docId"); raw != "" {
		ok, id := validator.IsUUID(raw)
		if !ok {
			c.JSON(
				http.StatusBadRequest,
				gin.H{"error": "docId must be a valid UUID"},
			)
			return
		}
		docID = &id
	}
	objectKey := c.Query("objectKey")

	userID := c.GetString(middleware.CtxUserID)

	url, err := sc.storageService.AuthorizeDownload(c.Request.Context(), userID, docID, objectKey)
	if err != nil {
		sc.respondError(c, "AuthorizeDownload()", err)
		return
	}

	c.JSON(http.StatusOK, storage.SignDownloadResponse{URL: url})
}
