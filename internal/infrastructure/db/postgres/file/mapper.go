package file

import (
	domain "github.com/supanut9/store-it/internal/domain/file"
	"github.com/supanut9/store-it/pkg/filetype"
)

func fromDBModel(model *File) *domain.Document {
	users := model.Users
	if users == nil {
		users = []string{}
	}

	return &domain.Document{
		ID:           model.ID,
		Type:         filetype.Type(model.Type),
		Name:         model.Name,
		URL:          model.URL,
		Extension:    model.Extension,
		Size:         model.Size,
		Owner:        model.Owner,
		AccountID:    model.AccountID,
		Users:        users,
		BucketFileID: model.BucketFileID,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func fromDBModels(models Files) domain.Documents {
	ds := make(domain.Documents, len(models))
	for idx, f := range models {
		ds[idx] = fromDBModel(f)
	}

	return ds
}
