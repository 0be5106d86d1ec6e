package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	domainFile "github.com/supanut9/store-it/internal/domain/file"
	"github.com/supanut9/store-it/internal/domain/storage"
	domainUser "github.com/supanut9/store-it/internal/domain/user"
	"github.com/supanut9/store-it/internal/interface/api/rest/middleware"
)

type FakeFileService struct {
	UploadFileFunc      func(ctx context.Context, in domainFile.UploadInput) (*domainFile.Document, error)
	GetFilesFunc        func(ctx context.Context, u *domainUser.User, params domainFile.ListParams) (*domainFile.DocumentList, error)
	RenameFileFunc      func(ctx context.Context, in domainFile.RenameInput) (*domainFile.Document, error)
	UpdateFileUsersFunc func(ctx context.Context, in domainFile.UpdateUsersInput) (*domainFile.Document, error)
	DeleteFileFunc      func(ctx context.Context, in domainFile.DeleteInput) error
	OpenFileFunc        func(ctx context.Context, bucketID, fileID string) (io.ReadCloser, *storage.Object, error)
}

func (f *FakeFileService) UploadFile(ctx context.Context, in domainFile.UploadInput) (*domainFile.Document, error) {
	if f.UploadFileFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UploadFileFunc(ctx, in)
}
func (f *FakeFileService) GetFiles(ctx context.Context, u *domainUser.User, params domainFile.ListParams) (*domainFile.DocumentList, error) {
	if f.GetFilesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.GetFilesFunc(ctx, u, params)
}
func (f *FakeFileService) RenameFile(ctx context.Context, in domainFile.RenameInput) (*domainFile.Document, error) {
	if f.RenameFileFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RenameFileFunc(ctx, in)
}
func (f *FakeFileService) UpdateFileUsers(ctx context.Context, in domainFile.UpdateUsersInput) (*domainFile.Document, error) {
	if f.UpdateFileUsersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateFileUsersFunc(ctx, in)
}
func (f *FakeFileService) DeleteFile(ctx context.Context, in domainFile.DeleteInput) error {
	if f.DeleteFileFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFileFunc(ctx, in)
}
func (f *FakeFileService) OpenFile(ctx context.Context, bucketID, fileID string) (io.ReadCloser, *storage.Object, error) {
	if f.OpenFileFunc == nil {
		return nil, nil, errors.New("not used")
	}
	return f.OpenFileFunc(ctx, bucketID, fileID)
}

type FakeUserService struct {
	CurrentUserFunc func(ctx context.Context, session string) (*domainUser.User, error)
	AvatarURLFunc   func(u *domainUser.User) string
}

func (f *FakeUserService) CurrentUser(ctx context.Context, session string) (*domainUser.User, error) {
	if f.CurrentUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CurrentUserFunc(ctx, session)
}
func (f *FakeUserService) AvatarURL(u *domainUser.User) string {
	if f.AvatarURLFunc == nil {
		return u.Avatar
	}
	return f.AvatarURLFunc(u)
}

type fakeTagger struct {
	gotPath    string
	gotVariant string
}

func (t *fakeTagger) ETag(path, variant string) string {
	t.gotPath, t.gotVariant = path, variant
	return `W/"test-etag"`
}

func testUser() *domainUser.User {
	return &domainUser.User{
		ID:        "u1",
		AccountID: "acc-1",
		Email:     "jane@example.com",
		FullName:  "Jane Doe",
	}
}

// withUser stands in for the session middleware.
func withUser(u *domainUser.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u != nil {
			c.Set(middleware.CtxCurrentUser, u)
		}
		c.Next()
	}
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func doMultipartReq(t *testing.T, r *gin.Engine, method, path string, fields map[string]string, fileField, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	if fileField != "" && fileName != "" && fileContent != nil {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, _ = fw.Write(fileContent)
	}

	require.NoError(t, w.Close())

	req, err := http.NewRequest(method, path, &b)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}
