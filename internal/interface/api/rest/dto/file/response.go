package file

import "time"

type (
	File struct {
		ID           string    `json:"$id"`
		Type         string    `json:"type"`
		Name         string    `json:"name"`
		URL          string    `json:"url"`
		Extension    string    `json:"extension"`
		Size         int64     `json:"size"`
		Owner        string    `json:"owner"`
		AccountID    string    `json:"accountId"`
		Users        []string  `json:"users"`
		BucketFileID string    `json:"bucketFileId"`
		CreatedAt    time.Time `json:"$createdAt"`
		UpdatedAt    time.Time `json:"$updatedAt"`
	}
	Files []File

	List struct {
		Total     int   `json:"total"`
		Documents Files `json:"documents"`
	}

	RenameRequest struct {
		Name      string `json:"name"`
		Extension string `json:"extension"`
		Path      string `json:"path"`
	}

	UpdateUsersRequest struct {
		Emails []string `json:"emails"`
		Path   string   `json:"path"`
	}
)
