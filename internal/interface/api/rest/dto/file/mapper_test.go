package file

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supanut9/store-it/internal/domain/file"
	"github.com/supanut9/store-it/pkg/filetype"
)

func TestToResponseList(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	l := ToResponseList(file.DocumentList{
		Total: 7,
		Documents: file.Documents{
			{ID: "f1", Type: filetype.Image, Name: "cat.png", Extension: "png", Size: 3, Owner: "u1", BucketFileID: "b1", CreatedAt: created},
		},
	})

	require.Len(t, l.Documents, 1)
	assert.Equal(t, 7, l.Total)
	assert.Equal(t, []string{}, l.Documents[0].Users)

	b, err := json.Marshal(l.Documents[0])
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "f1", raw["$id"])
	assert.Equal(t, "image", raw["type"])
	assert.Equal(t, "b1", raw["bucketFileId"])
	assert.Equal(t, []any{}, raw["users"])
	assert.Equal(t, "2024-05-01T10:00:00Z", raw["$createdAt"])
}
