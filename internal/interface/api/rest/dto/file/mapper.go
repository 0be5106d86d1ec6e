package file

import (
	"github.com/supanut9/store-it/internal/domain/file"
)

func ToResponseFile(d file.Document) File {
	users := d.Users
	if users == nil {
		users = []string{}
	}

	return File{
		ID:           d.ID,
		Type:         string(d.Type),
		Name:         d.Name,
		URL:          d.URL,
		Extension:    d.Extension,
		Size:         d.Size,
		Owner:        d.Owner,
		AccountID:    d.AccountID,
		Users:        users,
		BucketFileID: d.BucketFileID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func ToResponseList(l file.DocumentList) List {
	fs := make(Files, len(l.Documents))
	for idx, d := range l.Documents {
		fs[idx] = ToResponseFile(*d)
	}

	return List{Total: l.Total, Documents: fs}
}
