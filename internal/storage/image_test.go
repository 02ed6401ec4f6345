package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sasamaylina/responsi-paw/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxSize int64) *LocalImageStore {
	t.Helper()
	store, err := NewLocalImageStore(config.UploadConfig{
		Dir:         t.TempDir(),
		MaxSize:     maxSize,
		AllowedExts: []string{"png", "jpg", "jpeg", "gif", "webp"},
	})
	require.NoError(t, err)
	return store
}

// newFileHeader 通过multipart请求构造上传文件头
func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := req.FormFile("image")
	require.NoError(t, err)
	return header
}

func TestSaveAndDeleteRoundTrip(t *testing.T) {
	store := newTestStore(t, 1024)

	name, err := store.Save(newFileHeader(t, "cover.PNG", []byte("fake image data")))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(name))
	assert.NotEqual(t, "cover.PNG", name)

	// 文件落盘
	data, err := os.ReadFile(filepath.Join(store.dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake image data"), data)

	require.NoError(t, store.Delete(name))
	_, err = os.Stat(filepath.Join(store.dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store := newTestStore(t, 1024)

	first, err := store.Save(newFileHeader(t, "a.jpg", []byte("1")))
	require.NoError(t, err)
	second, err := store.Save(newFileHeader(t, "a.jpg", []byte("2")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	store := newTestStore(t, 1024)

	_, err := store.Save(newFileHeader(t, "malware.exe", []byte("nope")))
	assert.ErrorIs(t, err, ErrExtNotAllowed)

	_, err = store.Save(newFileHeader(t, "noext", []byte("nope")))
	assert.ErrorIs(t, err, ErrExtNotAllowed)
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	store := newTestStore(t, 4)

	_, err := store.Save(newFileHeader(t, "big.png", []byte("too large")))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestDeleteMissingFileIsNoop(t *testing.T) {
	store := newTestStore(t, 1024)

	assert.NoError(t, store.Delete("does-not-exist.png"))
	assert.NoError(t, store.Delete(""))
}
