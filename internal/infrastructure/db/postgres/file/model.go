package file

import "time"

type (
	File struct {
		ID           string
		Type         string
		Name         string
		URL          string
		Extension    string
		Size         int64
		Owner        string
		AccountID    string
		Users        []string
		BucketFileID string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Files []*File
)
