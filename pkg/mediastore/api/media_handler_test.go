package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epiframe/media-admin/pkg/mediastore"
	"github.com/epiframe/media-admin/pkg/mediastore/api"
	memorystorage "github.com/epiframe/media-admin/pkg/mediastore/storage/memory"
)

func setupTestHandler(t *testing.T) (http.Handler, mediastore.Service) {
	t.Helper()

	svc, err := mediastore.New(
		mediastore.WithBlobStore(memorystorage.New()),
		mediastore.WithSignedURLTTL(time.Hour),
	)
	require.NoError(t, err)

	return api.NewMediaHandler(svc).Routes(), svc
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName, fileContent string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = io.WriteString(part, fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestListMedia(t *testing.T) {
	handler, svc := setupTestHandler(t)

	t.Run("EmptyCatalog", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("WithRecords", func(t *testing.T) {
		require.NoError(t, svc.Upload(context.Background(), mediastore.UploadRequest{
			Key:  "splash/hello.jpg",
			Body: strings.NewReader("jpeg"),
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var records []mediastore.MediaRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "splash/hello.jpg", records[0].ID)
		assert.Equal(t, "splash", records[0].Folder)
		assert.NotEmpty(t, records[0].URL)
	})
}

func TestUploadMedia(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, svc := setupTestHandler(t)

		body, contentType := multipartBody(t, map[string]string{"path": "photos/cat.jpg"}, "file", "cat.jpg", "jpeg bytes")
		req := httptest.NewRequest(http.MethodPost, "/", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Media uploaded successfully.", rec.Body.String())

		records, err := svc.ListCatalog(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "photos/cat.jpg", records[0].ID)
	})

	t.Run("NoFilePart", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		body, contentType := multipartBody(t, map[string]string{"path": "photos/cat.jpg"}, "", "", "")
		req := httptest.NewRequest(http.MethodPost, "/", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "No file uploaded.")
	})

	t.Run("MissingPath", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		body, contentType := multipartBody(t, nil, "file", "cat.jpg", "jpeg bytes")
		req := httptest.NewRequest(http.MethodPost, "/", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("TraversalPath", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		body, contentType := multipartBody(t, map[string]string{"path": "../secrets/cat.jpg"}, "file", "cat.jpg", "jpeg bytes")
		req := httptest.NewRequest(http.MethodPost, "/", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateMetadata(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, svc := setupTestHandler(t)
		ctx := context.Background()

		require.NoError(t, svc.Upload(ctx, mediastore.UploadRequest{
			Key:  "photos/cat.jpg",
			Body: strings.NewReader("jpeg"),
		}))

		payload := `{"id": "photos/cat.jpg", "metadata": {"contents": "family, beach"}}`
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Metadata updated for photos/cat.jpg", rec.Body.String())

		records, err := svc.ListCatalog(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "family, beach", records[0].Metadata["contents"])
	})

	t.Run("MissingMetadata", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"id": "photos/cat.jpg"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid metadata format.")
	})

	t.Run("MalformedBody", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"metadata": "not-an-object"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingObject", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		payload := `{"id": "photos/absent.jpg", "metadata": {"contents": "a"}}`
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "does not exist")
	})
}

func TestDeleteMedia(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, svc := setupTestHandler(t)
		ctx := context.Background()

		require.NoError(t, svc.Upload(ctx, mediastore.UploadRequest{
			Key:  "videos/clip.mp4",
			Body: strings.NewReader("mp4"),
		}))

		req := httptest.NewRequest(http.MethodDelete, "/", strings.NewReader(`{"id": "videos/clip.mp4"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp api.DeleteMediaResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Message, "deleted successfully")

		records, err := svc.ListCatalog(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("MissingID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		req := httptest.NewRequest(http.MethodDelete, "/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp api.DeleteMediaResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Message, "required")
	})

	t.Run("MissingObject", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		req := httptest.NewRequest(http.MethodDelete, "/", strings.NewReader(`{"id": "videos/absent.mp4"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp api.DeleteMediaResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Message, "does not exist")
	})
}
