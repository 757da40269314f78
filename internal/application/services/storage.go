package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"clinic-storage-api/internal/application/ports"
	"clinic-storage-api/internal/domain/apperr"
	"clinic-storage-api/internal/domain/document"
	"clinic-storage-api/internal/domain/patient"
	"clinic-storage-api/internal/domain/profile"
	"clinic-storage-api/internal/infrastructure/mq"
)

const defaultContentType = "application/octet-stream"

type StorageService struct {
	patientRepository  patient.Repository
	documentRepository document.Repository
	profileRepository  profile.Repository
	s3                 ports.S3Client
	mq                 ports.RabbitMQ
	mCounter           *prometheus.CounterVec
	adminRole          string
}

func NewStorageService(
	patientRepository patient.Repository,
	documentRepository document.Repository,
	profileRepository profile.Repository,
	s3 ports.S3Client,
	rabbit ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	adminRole string,
) ports.StorageService {
	return &StorageService{
		patientRepository:  patientRepository,
		documentRepository: documentRepository,
		profileRepository:  profileRepository,
		s3:                 s3,
		mq:                 rabbit,
		mCounter:           mCounter,
		adminRole:          adminRole,
	}
}

// isAdmin reports whether the user's profile carries the admin role. A
// missing row or a read error means non-privileged; ambiguity never
// escalates.
func (ss *StorageService) isAdmin(ctx context.Context, userID string) bool {
	role, err := ss.profileRepository.FetchRole(ctx, userID)
	if err != nil {
		return false
	}
	return role == ss.adminRole
}

func (ss *StorageService) AuthorizeUpload(
	ctx context.Context,
	userID, filename, contentType string,
	patientID patient.ID,
) (*ports.UploadGrant, error) {
	if filename == "" || patientID == uuid.Nil {
		return nil, apperr.New(apperr.Validation, "filename and patientId are required")
	}
	ct := contentType
	if ct == "" {
		ct = defaultContentType
	}

	p, err := ss.patientRepository.FetchPatientByID(ctx, patientID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to load patient", err)
	}
	if p == nil {
		return nil, apperr.New(apperr.NotFound, "Patient not found")
	}
	if p.CreatedBy != userID && !ss.isAdmin(ctx, userID) {
		return nil, apperr.New(apperr.Forbidden, "Forbidden")
	}

	objectKey := NewObjectKey(patientID, filename)

	uploadURL, err := ss.s3.PresignPut(ctx, objectKey, ct)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to presign upload", err)
	}

	// If this insert fails, the minted URL is simply never handed out and
	// expires on its own.
	doc, err := ss.documentRepository.CreateDocument(ctx, &document.Document{
		PatientID:        patientID,
		OwnerUserID:      userID,
		Bucket:           ss.s3.GetBucket(),
		ObjectKey:        objectKey,
		ContentType:      ct,
		OriginalFilename: filename,
		Status:           document.StatusPending,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to record document", err)
	}

	ss.mq.GetInputChan() <- mq.Event{
		Id:        uuid.New(),
		TS:        time.Now(),
		Action:    mq.ActionDocumentPending,
		UserID:    userID,
		DocID:     doc.ID,
		PatientID: patientID,
		ObjectKey: objectKey,
	}

	ss.mCounter.WithLabelValues("uploads_authorized_total").Inc()

	return &ports.UploadGrant{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		DocID:     doc.ID,
	}, nil
}

func (ss *StorageService) FinalizeUpload(
	ctx context.Context,
	userID string,
	docID document.ID,
	sizeBytes uint64,
	sha256 *string,
) error {
	if docID == uuid.Nil {
		return apperr.New(apperr.Validation, "docId is required")
	}

	privileged := ss.isAdmin(ctx, userID)

	affected, err := ss.documentRepository.MarkStored(ctx, docID, userID, privileged, sizeBytes, sha256)
	if err != nil {
		return apperr.Wrap(apperr.Upstream, "failed to finalize document", err)
	}
	// Zero rows means a bad id or a caller who is neither owner nor admin.
	// Reported as not-found so the response does not confirm the document
	// exists.
	if affected == 0 {
		return apperr.New(apperr.NotFound, "Document not found")
	}

	ss.mq.GetInputChan() <- mq.Event{
		Id:     uuid.New(),
		TS:     time.Now(),
		Action: mq.ActionDocumentStored,
		UserID: userID,
		DocID:  docID,
	}

	ss.mCounter.WithLabelValues("uploads_finalized_total").Inc()

	return nil
}

func (ss *StorageService) AuthorizeDownload(
	ctx context.Context,
	userID string,
	docID *document.ID,
	objectKey string,
) (string, error) {
	switch {
	case docID != nil:
		// docId wins when both selectors are supplied.
		return ss.downloadByDocID(ctx, userID, *docID)
	case objectKey != "":
		return ss.downloadByObjectKey(ctx, userID, objectKey)
	default:
		return "", apperr.New(apperr.Validation, "Provide docId or objectKey")
	}
}

func (ss *StorageService) downloadByDocID(ctx context.Context, userID string, docID document.ID) (string, error) {
	doc, err := ss.documentRepository.FetchDocumentByID(ctx, docID)
	if err != nil {
		return "", apperr.Wrap(apperr.Upstream, "failed to load document", err)
	}
	if doc == nil {
		return "", apperr.New(apperr.NotFound, "Document not found")
	}

	if doc.OwnerUserID != userID && !ss.isAdmin(ctx, userID) {
		return "", apperr.New(apperr.Forbidden, "Forbidden")
	}
	// A pending document is indistinguishable from a missing one: unfinished
	// uploads must not be retrievable, nor confirmed to exist.
	if doc.Status != document.StatusStored {
		return "", apperr.New(apperr.NotFound, "Document not found")
	}
	if doc.ObjectKey == "" {
		return "", apperr.New(apperr.Upstream, "document missing object key")
	}

	url, err := ss.s3.PresignGet(ctx, doc.Bucket, doc.ObjectKey)
	if err != nil {
		return "", apperr.Wrap(apperr.Upstream, "failed to presign download", err)
	}

	ss.mCounter.WithLabelValues("downloads_authorized_total").Inc()

	return url, nil
}

func (ss *StorageService) downloadByObjectKey(ctx context.Context, userID, objectKey string) (string, error) {
	p, err := ss.patientRepository.FetchPatientByProfileURL(ctx, objectKey)
	if err != nil {
		return "", apperr.Wrap(apperr.Upstream, "failed to load patient", err)
	}
	if p == nil {
		return "", apperr.New(apperr.NotFound, "Not found")
	}

	if p.CreatedBy != userID && !ss.isAdmin(ctx, userID) {
		return "", apperr.New(apperr.Forbidden, "Forbidden")
	}

	url, err := ss.s3.PresignGet(ctx, "", objectKey)
	if err != nil {
		return "", apperr.Wrap(apperr.Upstream, "failed to presign download", err)
	}

	ss.mCounter.WithLabelValues("downloads_authorized_total").Inc()

	return url, nil
}
