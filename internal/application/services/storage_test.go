package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-storage-api/internal/application/ports"
	"clinic-storage-api/internal/domain/apperr"
	"clinic-storage-api/internal/domain/document"
	"clinic-storage-api/internal/domain/patient"
	"clinic-storage-api/internal/infrastructure/mq"
)

type FakePatientRepo struct {
	FetchPatientByIDFunc         func(ctx context.Context, id patient.ID) (*patient.Patient, error)
	FetchPatientByProfileURLFunc func(ctx context.Context, key string) (*patient.Patient, error)
	FetchPatientsByOwnerFunc     func(ctx context.Context, ownerUserID string) (patient.Patients, error)
}

func (f *FakePatientRepo) FetchPatientByID(ctx context.Context, id patient.ID) (*patient.Patient, error) {
	if f.FetchPatientByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchPatientByIDFunc(ctx, id)
}
func (f *FakePatientRepo) FetchPatientByProfileURL(ctx context.Context, key string) (*patient.Patient, error) {
	if f.FetchPatientByProfileURLFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchPatientByProfileURLFunc(ctx, key)
}
func (f *FakePatientRepo) FetchPatientsByOwner(ctx context.Context, ownerUserID string) (patient.Patients, error) {
	if f.FetchPatientsByOwnerFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchPatientsByOwnerFunc(ctx, ownerUserID)
}

type FakeDocumentRepo struct {
	FetchDocumentByIDFunc func(ctx context.Context, id document.ID) (*document.Document, error)
	CreateDocumentFunc    func(ctx context.Context, req *document.Document) (*document.Document, error)
	MarkStoredFunc        func(ctx context.Context, id document.ID, ownerUserID string, privileged bool, sizeBytes uint64, sha256 *string) (int64, error)
}

func (f *FakeDocumentRepo) FetchDocumentByID(ctx context.Context, id document.ID) (*document.Document, error) {
	if f.FetchDocumentByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchDocumentByIDFunc(ctx, id)
}
func (f *FakeDocumentRepo) CreateDocument(ctx context.Context, req *document.Document) (*document.Document, error) {
	if f.CreateDocumentFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateDocumentFunc(ctx, req)
}
func (f *FakeDocumentRepo) MarkStored(ctx context.Context, id document.ID, ownerUserID string, privileged bool, sizeBytes uint64, sha256 *string) (int64, error) {
	if f.MarkStoredFunc == nil {
		return 0, errors.New("not used")
	}
	return f.MarkStoredFunc(ctx, id, ownerUserID, privileged, sizeBytes, sha256)
}

type FakeProfileRepo struct {
	FetchRoleFunc func(ctx context.Context, userID string) (string, error)
}

func (f *FakeProfileRepo) FetchRole(ctx context.Context, userID string) (string, error) {
	if f.FetchRoleFunc == nil {
		return "", nil
	}
	return f.FetchRoleFunc(ctx, userID)
}

type FakeS3 struct {
	PresignPutFunc func(ctx context.Context, key, contentType string) (string, error)
	PresignGetFunc func(ctx context.Context, bucket, key string) (string, error)
	Bucket         string
}

func (f *FakeS3) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	if f.PresignPutFunc == nil {
		return "https://s3.local/put/" + key, nil
	}
	return f.PresignPutFunc(ctx, key, contentType)
}
func (f *FakeS3) PresignGet(ctx context.Context, bucket, key string) (string, error) {
	if f.PresignGetFunc == nil {
		return "https://s3.local/get/" + key, nil
	}
	return f.PresignGetFunc(ctx, bucket, key)
}
func (f *FakeS3) GetBucket() string { return f.Bucket }

func newStorageServiceForTest(
	pRepo patient.Repository,
	dRepo document.Repository,
	roleByUser map[string]string,
	s3 ports.S3Client,
) (ports.StorageService, *FakeRabbit) {
	profRepo := &FakeProfileRepo{
		FetchRoleFunc: func(ctx context.Context, userID string) (string, error) {
			return roleByUser[userID], nil
		},
	}
	rb := NewFakeRabbit()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"})
	svc := NewStorageService(pRepo, dRepo, profRepo, s3, rb, counter, "admin")
	return svc, rb
}

func TestAuthorizeUpload_OwnershipGate(t *testing.T) {
	p1 := uuid.New()
	owner := "u1"
	stranger := "u2"

	pRepo := &FakePatientRepo{
		FetchPatientByIDFunc: func(ctx context.Context, id patient.ID) (*patient.Patient, error) {
			if id == p1 {
				return &patient.Patient{ID: p1, CreatedBy: owner}, nil
			}
			return nil, nil
		},
	}
	dRepo := &FakeDocumentRepo{
		CreateDocumentFunc: func(ctx context.Context, req *document.Document) (*document.Document, error) {
			out := *req
			out.ID = uuid.New()
			return &out, nil
		},
	}

	tests := []struct {
		name      string
		caller    string
		roles     map[string]string
		patientID patient.ID
		wantKind  apperr.Kind
	}{
		{"owner can upload", owner, nil, p1, apperr.Unknown},
		{"stranger forbidden", stranger, nil, p1, apperr.Forbidden},
		{"admin override", stranger, map[string]string{stranger: "admin"}, p1, apperr.Unknown},
		{"unknown patient", owner, nil, uuid.New(), apperr.NotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newStorageServiceForTest(pRepo, dRepo, tt.roles, &FakeS3{Bucket: "clinic-docs"})

			grant, err := svc.AuthorizeUpload(context.Background(), tt.caller, "scan.pdf", "application/pdf", tt.patientID)
			if tt.wantKind == apperr.Unknown {
				require.NoError(t, err)
				require.NotNil(t, grant)
				assert.True(t, strings.HasPrefix(grant.ObjectKey, "patient-docs/"+p1.String()+"/"))
				assert.True(t, strings.HasSuffix(grant.ObjectKey, "-scan.pdf"))
				assert.NotEqual(t, uuid.Nil, grant.DocID)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

func TestAuthorizeUpload_Validation(t *testing.T) {
	svc, _ := newStorageServiceForTest(&FakePatientRepo{}, &FakeDocumentRepo{}, nil, &FakeS3{})

	_, err := svc.AuthorizeUpload(context.Background(), "u1", "", "", uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.AuthorizeUpload(context.Background(), "u1", "scan.pdf", "", uuid.Nil)
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestAuthorizeUpload_DefaultsContentType(t *testing.T) {
	p1 := uuid.New()
	var gotContentType string

	pRepo := &FakePatientRepo{
		FetchPatientByIDFunc: func(ctx context.Context, id patient.ID) (*patient.Patient, error) {
			return &patient.Patient{ID: p1, CreatedBy: "u1"}, nil
		},
	}
	dRepo := &FakeDocumentRepo{
		CreateDocumentFunc: func(ctx context.Context, req *document.Document) (*document.Document, error) {
			gotContentType = req.ContentType
			out := *req
			out.ID = uuid.New()
			return &out, nil
		},
	}
	svc, _ := newStorageServiceForTest(pRepo, dRepo, nil, &FakeS3{Bucket: "clinic-docs"})

	_, err := svc.AuthorizeUpload(context.Background(), "u1", "scan.pdf", "", p1)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", gotContentType)
}

func TestAuthorizeUpload_DistinctKeysPerCall(t *testing.T) {
	p1 := uuid.New()

	pRepo := &FakePatientRepo{
		FetchPatientByIDFunc: func(ctx context.Context, id patient.ID) (*patient.Patient, error) {
			return &patient.Patient{ID: p1, CreatedBy: "u1"}, nil
		},
	}
	dRepo := &FakeDocumentRepo{
		CreateDocumentFunc: func(ctx context.Context, req *document.Document) (*document.Document, error) {
			out := *req
			out.ID = uuid.New()
			return &out, nil
		},
	}
	svc, _ := newStorageServiceForTest(pRepo, dRepo, nil, &FakeS3{Bucket: "clinic-docs"})

	first, err := svc.AuthorizeUpload(context.Background(), "u1", "scan.pdf", "", p1)
	require.NoError(t, err)
	second, err := svc.AuthorizeUpload(context.Background(), "u1", "scan.pdf", "", p1)
	require.NoError(t, err)

	assert.NotEqual(t, first.ObjectKey, second.ObjectKey)
	assert.NotEqual(t, first.DocID, second.DocID)
}

func TestAuthorizeUpload_InsertFailure(t *testing.T) {
	p1 := uuid.New()

	pRepo := &FakePatientRepo{
		FetchPatientByIDFunc: func(ctx context.Context, id patient.ID) (*patient.Patient, error) {
			return &patient.Patient{ID: p1, CreatedBy: "u1"}, nil
		},
	}
	dRepo := &FakeDocumentRepo{
		CreateDocumentFunc: func(ctx context.Context, req *document.Document) (*document.Document, error) {
			return nil, errors.New("db error")
		},
	}
	svc, _ := newStorageServiceForTest(pRepo, dRepo, nil, &FakeS3{Bucket: "clinic-docs"})

	_, err := svc.AuthorizeUpload(context.Background(), "u1", "scan.pdf", "", p1)
	require.Error(t, err)
	assert.Equal(t, apperr.Upstream, apperr.KindOf(err))
}

func TestFinalizeUpload_Scoping(t *testing.T) {
	d1 := uuid.New()
	owner := "u1"

	// the fake mirrors the conditional-update semantics of the real query
	dRepo := &FakeDocumentRepo{
		MarkStoredFunc: func(ctx context.Context, id document.ID, ownerUserID string, privileged bool, sizeBytes uint64, sha256 *string) (int64, error) {
			if id != d1 {
				return 0, nil
			}
			if privileged || ownerUserID == owner {
				return 1, nil
			}
			return 0, nil
		},
	}

	tests := []struct {
		name     string
		caller   string
		roles    map[string]string
		docID    document.ID
		wantKind apperr.Kind
	}{
		{"owner finalizes", owner, nil, d1, apperr.Unknown},
		{"stranger rejected", "u2", nil, d1, apperr.NotFound},
		{"admin finalizes", "u2", map[string]string{"u2": "admin"}, d1, apperr.Unknown},
		{"unknown doc", owner, nil, uuid.New(), apperr.NotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newStorageServiceForTest(&FakePatientRepo{}, dRepo, tt.roles, &FakeS3{})

			err := svc.FinalizeUpload(context.Background(), tt.caller, tt.docID, 4096, nil)
			if tt.wantKind == apperr.Unknown {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

func TestFinalizeUpload_Validation(t *testing.T) {
	svc, _ := newStorageServiceForTest(&FakePatientRepo{}, &FakeDocumentRepo{}, nil, &FakeS3{})

	err := svc.FinalizeUpload(context.Background(), "u1", uuid.Nil, 4096, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestAuthorizeDownload_ByDocID(t *testing.T) {
	d1 := uuid.New()
	pending := uuid.New()
	owner := "u1"

	dRepo := &FakeDocumentRepo{
		FetchDocumentByIDFunc: func(ctx context.Context, id document.ID) (*document.Document, error) {
			switch id {
			case d1:
				return &document.Document{ID: d1, OwnerUserID: owner, Status: document.StatusStored, Bucket: "clinic-docs", ObjectKey: "patient-docs/p/k-scan.pdf"}, nil
			case pending:
				return &document.Document{ID: pending, OwnerUserID: owner, Status: document.StatusPending, Bucket: "clinic-docs", ObjectKey: "patient-docs/p/k-new.pdf"}, nil
			}
			return nil, nil
		},
	}

	tests := []struct {
		name     string
		caller   string
		roles    map[string]string
		docID    document.ID
		wantKind apperr.Kind
		wantMsg  string
	}{
		{"owner downloads stored doc", owner, nil, d1, apperr.Unknown, ""},
		{"stranger forbidden", "u2", nil, d1, apperr.Forbidden, "Forbidden"},
		{"admin override", "u2", map[string]string{"u2": "admin"}, d1, apperr.Unknown, ""},
		{"pending reads as missing", owner, nil, pending, apperr.NotFound, "Document not found"},
		{"unknown doc", owner, nil, uuid.New(), apperr.NotFound, "Document not found"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newStorageServiceForTest(&FakePatientRepo{}, dRepo, tt.roles, &FakeS3{Bucket: "clinic-docs"})

			url, err := svc.AuthorizeDownload(context.Background(), tt.caller, &tt.docID, "")
			if tt.wantKind == apperr.Unknown {
				require.NoError(t, err)
				assert.NotEmpty(t, url)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			assert.Equal(t, tt.wantMsg, apperr.MessageOf(err))
		})
	}
}

// a pending document and a missing one must fail with the same error shape
func TestAuthorizeDownload_PendingMatchesMissing(t *testing.T) {
	pending := uuid.New()
	owner := "u1"

	dRepo := &FakeDocumentRepo{
		FetchDocumentByIDFunc: func(ctx context.Context, id document.ID) (*document.Document, error) {
			if id == pending {
				return &document.Document{ID: pending, OwnerUserID: owner, Status: document.StatusPending}, nil
			}
			return nil, nil
		},
	}
	svc, _ := newStorageServiceForTest(&FakePatientRepo{}, dRepo, nil, &FakeS3{})

	_, errPending := svc.AuthorizeDownload(context.Background(), owner, &pending, "")
	missing := uuid.New()
	_, errMissing := svc.AuthorizeDownload(context.Background(), owner, &missing, "")

	require.Error(t, errPending)
	require.Error(t, errMissing)
	assert.Equal(t, apperr.KindOf(errMissing), apperr.KindOf(errPending))
	assert.Equal(t, apperr.MessageOf(errMissing), apperr.MessageOf(errPending))
}

func TestAuthorizeDownload_ByObjectKey(t *testing.T) {
	avatarKey := "patient-docs/p1/avatar.png"
	owner := "u1"

	pRepo := &FakePatientRepo{
		FetchPatientByProfileURLFunc: func(ctx context.Context, key string) (*patient.Patient, error) {
			if key == avatarKey {
				url := avatarKey
				return &patient.Patient{ID: uuid.New(), CreatedBy: owner, ProfileURL: &url}, nil
			}
			return nil, nil
		},
	}

	tests := []struct {
		name     string
		caller   string
		roles    map[string]string
		key      string
		wantKind apperr.Kind
	}{
		{"owner downloads avatar", owner, nil, avatarKey, apperr.Unknown},
		{"stranger forbidden", "u2", nil, avatarKey, apperr.Forbidden},
		{"admin override", "u2", map[string]string{"u2": "admin"}, avatarKey, apperr.Unknown},
		{"unknown key", owner, nil, "patient-docs/p2/other.png", apperr.NotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newStorageServiceForTest(pRepo, &FakeDocumentRepo{}, tt.roles, &FakeS3{Bucket: "clinic-docs"})

			url, err := svc.AuthorizeDownload(context.Background(), tt.caller, nil, tt.key)
			if tt.wantKind == apperr.Unknown {
				require.NoError(t, err)
				assert.NotEmpty(t, url)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

func TestAuthorizeDownload_Selectors(t *testing.T) {
	d1 := uuid.New()
	owner := "u1"

	var fetchedByKey bool
	pRepo := &FakePatientRepo{
		FetchPatientByProfileURLFunc: func(ctx context.Context, key string) (*patient.Patient, error) {
			fetchedByKey = true
			return nil, nil
		},
	}
	dRepo := &FakeDocumentRepo{
		FetchDocumentByIDFunc: func(ctx context.Context, id document.ID) (*document.Document, error) {
			return &document.Document{ID: d1, OwnerUserID: owner, Status: document.StatusStored, ObjectKey: "k"}, nil
		},
	}
	svc, _ := newStorageServiceForTest(pRepo, dRepo, nil, &FakeS3{})

	// neither selector
	_, err := svc.AuthorizeDownload(context.Background(), owner, nil, "")
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	// both selectors: docId path wins, the key lookup never runs
	url, err := svc.AuthorizeDownload(context.Background(), owner, &d1, "some-key")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	assert.False(t, fetchedByKey)
}

func TestIsAdmin_NeverEscalatesOnError(t *testing.T) {
	p1 := uuid.New()

	pRepo := &FakePatientRepo{
		FetchPatientByIDFunc: func(ctx context.Context, id patient.ID) (*patient.Patient, error) {
			return &patient.Patient{ID: p1, CreatedBy: "owner"}, nil
		},
	}
	profRepo := &FakeProfileRepo{
		FetchRoleFunc: func(ctx context.Context, userID string) (string, error) {
			return "", errors.New("db error")
		},
	}
	rb := NewFakeRabbit()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters_escalate"}, []string{"result"})
	svc := NewStorageService(pRepo, &FakeDocumentRepo{}, profRepo, &FakeS3{}, rb, counter, "admin")

	_, err := svc.AuthorizeUpload(context.Background(), "someone-else", "scan.pdf", "", p1)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

// FakeRabbit satisfies ports.RabbitMQ with a buffered channel so services can
// publish without a broker.
type FakeRabbit struct {
	in chan mq.Event
}

func NewFakeRabbit() *FakeRabbit {
	return &FakeRabbit{in: make(chan mq.Event, 16)}
}

func (f *FakeRabbit) Connect(ctx context.Context, dsn string) error { return nil }
func (f *FakeRabbit) Init() error                                   { return nil }
func (f *FakeRabbit) PublisherWorker(ctx context.Context)           {}
func (f *FakeRabbit) GetInputChan() chan mq.Event                   { return f.in }
func (f *FakeRabbit) GetConn() *amqp091.Connection                  { return nil }
