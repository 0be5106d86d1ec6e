package filetype

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type Type string

const (
	Document Type = "document"
	Image    Type = "image"
	Video    Type = "video"
	Audio    Type = "audio"
	Other    Type = "other"
)

var All = []Type{Document, Image, Video, Audio, Other}

var byExtension = map[string]Type{
	"pdf": Document, "doc": Document, "docx": Document, "txt": Document, "xls": Document,
	"xlsx": Document, "csv": Document, "rtf": Document, "ods": Document, "ppt": Document,
	"odp": Document, "md": Document, "html": Document, "htm": Document, "epub": Document,
	"pages": Document, "fig": Document, "psd": Document, "ai": Document, "indd": Document,
	"xd": Document, "sketch": Document, "afdesign": Document, "afphoto": Document,

	"jpg": Image, "jpeg": Image, "png": Image, "gif": Image, "bmp": Image, "svg": Image,
	"webp": Image,

	"mp4": Video, "avi": Video, "mov": Video, "mkv": Video, "webm": Video,

	"mp3": Audio, "wav": Audio, "ogg": Audio, "flac": Audio,
}

type Info struct {
	Type      Type
	Extension string
}

// Parse validates a category name coming from a request.
func Parse(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range All {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// FromName classifies a file by its extension. The returned extension is
// lower case and has no leading dot; it is empty when the name has none.
func FromName(name string) Info {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return Info{Type: Other}
	}
	if t, ok := byExtension[ext]; ok {
		return Info{Type: t, Extension: ext}
	}
	return Info{Type: Other, Extension: ext}
}

// FromMIME classifies by name first and falls back to the extension
// registered for mimeType when the name carries none.
func FromMIME(name, mimeType string) Info {
	info := FromName(name)
	if info.Extension != "" || mimeType == "" {
		return info
	}

	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return info
	}
	mt := mimetype.Lookup(mediaType)
	if mt == nil {
		return info
	}
	ext := strings.TrimPrefix(mt.Extension(), ".")
	if ext == "" {
		return info
	}
	return FromName("file." + ext)
}

// DetectMIME returns the content type of head, defaulting to
// application/octet-stream.
func DetectMIME(head []byte) string {
	return mimetype.Detect(head).String()
}
