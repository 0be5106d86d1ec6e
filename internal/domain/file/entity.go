package file

import (
	"errors"
	"io"
	"time"

	"github.com/supanut9/store-it/pkg/filetype"
)

var (
	ErrNotFound      = errors.New("file not found")
	ErrAlreadyExists = errors.New("file already exists")
	ErrInvalidQuery  = errors.New("invalid file query")
)

type (
	Document struct {
		ID           string
		Type         filetype.Type
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
	Documents []*Document

	DocumentList struct {
		Total     int
		Documents Documents
	}

	// Patch carries the fields of an update; nil fields are left unchanged.
	Patch struct {
		Name  *string
		Users *[]string
	}

	UploadInput struct {
		FileName  string
		Size      int64
		Payload   io.Reader
		OwnerID   string
		AccountID string
		Path      string
	}

	ListParams struct {
		Types      []filetype.Type
		SearchText string
		Sort       string
		Limit      int
	}

	RenameInput struct {
		FileID    string
		Name      string
		Extension string
		Path      string
	}

	UpdateUsersInput struct {
		FileID string
		Emails []string
		Path   string
	}

	DeleteInput struct {
		FileID       string
		BucketFileID string
		Path         string
	}
)
