package storage

import (
	"errors"
	"io"
)

var ErrObjectNotFound = errors.New("storage object not found")

type (
	// Object is what the object store reports about a stored payload.
	Object struct {
		ID           string
		BucketID     string
		Name         string
		SizeOriginal int64
		MimeType     string
	}

	InputFile struct {
		Name   string
		Size   int64
		Reader io.Reader
	}
)
