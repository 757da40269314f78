package document

import (
	domain "clinic-storage-api/internal/domain/document"
)

func fromDBModel(model *Document) *domain.Document {
	var d = &domain.Document{
		ID:          model.ID,
		PatientID:   model.PatientID,
		OwnerUserID: model.OwnerUserID,

		Bucket:           model.Bucket,
		ObjectKey:        model.ObjectKey,
		ContentType:      model.ContentType,
		OriginalFilename: model.OriginalFilename,
		Status:           model.Status,
		SizeBytes:        model.SizeBytes,
		SHA256:           model.SHA256,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return d
}
