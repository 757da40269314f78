package services

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"clinic-storage-api/internal/domain/patient"
)

const patientDocsPrefix = "patient-docs"

// NewObjectKey builds the storage key for a patient document:
// patient-docs/{patientID}/{random-uuid}-{filename}. The per-call UUID makes
// collisions negligible even for repeated uploads of the same filename.
func NewObjectKey(patientID patient.ID, filename string) string {
	return fmt.Sprintf("%s/%s/%s-%s", patientDocsPrefix, patientID, uuid.New(), sanitizeFileName(filename))
}

// sanitizeFileName strips directory components, control bytes and leading
// dots so a caller-supplied name cannot steer the key out of the patient's
// namespace. Everything else is preserved verbatim.
func sanitizeFileName(original string) string {
	s := strings.ReplaceAll(original, "\\", "/")
	s = path.Base(s)
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	s = strings.TrimLeft(s, ".")

	if s == "" || s == "/" {
		return "file"
	}
	return s
}
