package storage

type (
	SignUploadRequest struct {
		Filename    string `json:"filename"`
		ContentType string `json:"contentType"`
		PatientID   string `json:"patientId"`
	}
	FinalizeUploadRequest struct {
		DocID     string  `json:"docId"`
		SizeBytes uint64  `json:"sizeBytes"`
		SHA256    *string `json:"sha256"`
	}
)
