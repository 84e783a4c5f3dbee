package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	server "github.com/keepsake-app/keepsake/pkg/controller/http"
	"github.com/keepsake-app/keepsake/pkg/repository/memory"
	"github.com/keepsake-app/keepsake/pkg/service/media"
	"github.com/keepsake-app/keepsake/pkg/usecase"
)

func jpegBlob() []byte { return []byte("\xFF\xD8\xFF\xE0keepsake-test-jpeg") }
func pngBlob() []byte  { return []byte("\x89PNG\r\n\x1a\nkeepsake-test-png") }

func newTestServer(t *testing.T) (*server.Server, *media.Memory) {
	t.Helper()
	mediaStore := media.NewMemory()
	uc := usecase.New(memory.New(), mediaStore)
	return server.New(uc), mediaStore
}

// memoryForm builds a multipart body with the given text fields and an
// optional image part.
func memoryForm(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		gt.NoError(t, mw.WriteField(key, value))
	}
	if image != nil {
		part, err := mw.CreateFormFile("image", "photo.jpg")
		gt.NoError(t, err).Required()
		_, err = part.Write(image)
		gt.NoError(t, err)
	}
	gt.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doRequest(t *testing.T, srv *server.Server, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), v)).Required()
}

func createMemoryViaAPI(t *testing.T, srv *server.Server, title string) map[string]any {
	t.Helper()
	body, contentType := memoryForm(t, map[string]string{
		"title":       title,
		"date":        "2024-07-04",
		"description": "created in test",
	}, jpegBlob())
	rec := doRequest(t, srv, http.MethodPost, "/memories", body, contentType)
	gt.Number(t, rec.Code).Equal(http.StatusCreated)

	var resp map[string]any
	decodeBody(t, rec, &resp)
	return resp
}

func TestMemoryEndpoints(t *testing.T) {
	t.Run("create returns the persisted record", func(t *testing.T) {
		srv, mediaStore := newTestServer(t)

		body, contentType := memoryForm(t, map[string]string{
			"title":       "lighthouse trip",
			"date":        "2024-07-04",
			"description": "rain all day",
			"special":     "birthday",
		}, jpegBlob())
		rec := doRequest(t, srv, http.MethodPost, "/memories", body, contentType)
		gt.Number(t, rec.Code).Equal(http.StatusCreated)
		gt.Value(t, rec.Header().Get("Content-Type")).Equal("application/json")

		var resp map[string]any
		decodeBody(t, rec, &resp)
		gt.Value(t, resp["title"]).Equal("lighthouse trip")
		gt.Value(t, resp["special"]).Equal("birthday")
		gt.String(t, resp["id"].(string)).NotEqual("")

		publicID := resp["imagePublicId"].(string)
		gt.B(t, mediaStore.Live(publicID)).True()
		gt.Value(t, resp["imageUrl"]).Equal("https://media.test/" + publicID)
	})

	t.Run("create without image returns 400", func(t *testing.T) {
		srv, mediaStore := newTestServer(t)

		body, contentType := memoryForm(t, map[string]string{
			"title":       "no image",
			"date":        "2024-07-04",
			"description": "rejected",
		}, nil)
		rec := doRequest(t, srv, http.MethodPost, "/memories", body, contentType)
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
		gt.Value(t, strings.TrimSpace(rec.Body.String())).Equal(`{"error":"Image is required"}`)
		gt.Array(t, mediaStore.Calls()).Length(0)
	})

	t.Run("create with unsupported format returns 500", func(t *testing.T) {
		srv, _ := newTestServer(t)

		body, contentType := memoryForm(t, map[string]string{
			"title":       "plain text",
			"date":        "2024-07-04",
			"description": "rejected",
		}, []byte("definitely not an image"))
		rec := doRequest(t, srv, http.MethodPost, "/memories", body, contentType)
		gt.Number(t, rec.Code).Equal(http.StatusInternalServerError)
		gt.Value(t, strings.TrimSpace(rec.Body.String())).Equal(`{"error":"Server error"}`)
	})

	t.Run("list returns created records", func(t *testing.T) {
		srv, _ := newTestServer(t)
		createMemoryViaAPI(t, srv, "first")
		createMemoryViaAPI(t, srv, "second")

		rec := doRequest(t, srv, http.MethodGet, "/memories", nil, "")
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp []map[string]any
		decodeBody(t, rec, &resp)
		gt.Array(t, resp).Length(2)
	})

	t.Run("update replaces only supplied fields", func(t *testing.T) {
		srv, _ := newTestServer(t)
		created := createMemoryViaAPI(t, srv, "before update")
		id := created["id"].(string)

		body, contentType := memoryForm(t, map[string]string{
			"description": "after update",
		}, nil)
		rec := doRequest(t, srv, http.MethodPut, "/memories/"+id, body, contentType)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp map[string]any
		decodeBody(t, rec, &resp)
		gt.Value(t, resp["title"]).Equal("before update")
		gt.Value(t, resp["description"]).Equal("after update")
		gt.Value(t, resp["imagePublicId"]).Equal(created["imagePublicId"])
	})

	t.Run("update with new image swaps the blob", func(t *testing.T) {
		srv, mediaStore := newTestServer(t)
		created := createMemoryViaAPI(t, srv, "blob swap")
		id := created["id"].(string)
		oldPublicID := created["imagePublicId"].(string)

		body, contentType := memoryForm(t, nil, pngBlob())
		rec := doRequest(t, srv, http.MethodPut, "/memories/"+id, body, contentType)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp map[string]any
		decodeBody(t, rec, &resp)
		gt.Value(t, resp["imagePublicId"]).NotEqual(oldPublicID)
		gt.B(t, mediaStore.Live(oldPublicID)).False()
	})

	t.Run("update unknown id returns 404", func(t *testing.T) {
		srv, _ := newTestServer(t)

		body, contentType := memoryForm(t, map[string]string{"title": "ghost"}, nil)
		rec := doRequest(t, srv, http.MethodPut, "/memories/no-such-id", body, contentType)
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
		gt.Value(t, strings.TrimSpace(rec.Body.String())).Equal(`{"error":"Memory not found"}`)
	})

	t.Run("delete removes record and blob", func(t *testing.T) {
		srv, mediaStore := newTestServer(t)
		created := createMemoryViaAPI(t, srv, "short lived")
		id := created["id"].(string)
		publicID := created["imagePublicId"].(string)

		rec := doRequest(t, srv, http.MethodDelete, "/memories/"+id, nil, "")
		gt.Number(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, strings.TrimSpace(rec.Body.String())).Equal(`{"message":"Memory deleted successfully"}`)
		gt.B(t, mediaStore.Live(publicID)).False()

		rec = doRequest(t, srv, http.MethodGet, "/memories", nil, "")
		var resp []map[string]any
		decodeBody(t, rec, &resp)
		gt.Array(t, resp).Length(0)
	})

	t.Run("delete unknown id returns 404", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doRequest(t, srv, http.MethodDelete, "/memories/no-such-id", nil, "")
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
		gt.Value(t, strings.TrimSpace(rec.Body.String())).Equal(`{"error":"Memory not found"}`)
	})
}

func TestGroupEndpoints(t *testing.T) {
	createGroup := func(t *testing.T, srv *server.Server, body string) map[string]any {
		t.Helper()
		rec := doRequest(t, srv, http.MethodPost, "/groups", strings.NewReader(body), "application/json")
		gt.Number(t, rec.Code).Equal(http.StatusCreated)
		var resp map[string]any
		decodeBody(t, rec, &resp)
		return resp
	}

	t.Run("create keeps memoryIds order", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp := createGroup(t, srv, `{"name":"roadtrip","description":"coast","memoryIds":["a","b","a"]}`)
		gt.Value(t, resp["name"]).Equal("roadtrip")
		ids := resp["memoryIds"].([]any)
		gt.Array(t, ids).Equal([]any{"a", "b", "a"})
	})

	t.Run("create defaults memoryIds to empty list", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp := createGroup(t, srv, `{"name":"empty"}`)
		ids := resp["memoryIds"].([]any)
		gt.Array(t, ids).Length(0)
	})

	t.Run("update keeps omitted fields", func(t *testing.T) {
		srv, _ := newTestServer(t)
		created := createGroup(t, srv, `{"name":"before","description":"desc","memoryIds":["a"]}`)
		id := created["id"].(string)

		rec := doRequest(t, srv, http.MethodPut, "/groups/"+id,
			strings.NewReader(`{"name":"after"}`), "application/json")
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp map[string]any
		decodeBody(t, rec, &resp)
		gt.Value(t, resp["name"]).Equal("after")
		gt.Value(t, resp["description"]).Equal("desc")
		gt.Array(t, resp["memoryIds"].([]any)).Equal([]any{"a"})
	})

	t.Run("update with empty list clears members", func(t *testing.T) {
		srv, _ := newTestServer(t)
		created := createGroup(t, srv, `{"name":"clearing","memoryIds":["a","b"]}`)
		id := created["id"].(string)

		rec := doRequest(t, srv, http.MethodPut, "/groups/"+id,
			strings.NewReader(`{"memoryIds":[]}`), "application/json")
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp map[string]any
		decodeBody(t, rec, &resp)
		gt.Array(t, resp["memoryIds"].([]any)).Length(0)
	})

	t.Run("update unknown id returns 404", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doRequest(t, srv, http.MethodPut, "/groups/no-such-id",
			strings.NewReader(`{"name":"ghost"}`), "application/json")
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
		gt.Value(t, strings.TrimSpace(rec.Body.String())).Equal(`{"error":"Group not found"}`)
	})

	t.Run("delete returns message", func(t *testing.T) {
		srv, _ := newTestServer(t)
		created := createGroup(t, srv, `{"name":"doomed"}`)
		id := created["id"].(string)

		rec := doRequest(t, srv, http.MethodDelete, "/groups/"+id, nil, "")
		gt.Number(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, strings.TrimSpace(rec.Body.String())).Equal(`{"message":"Group deleted successfully"}`)
	})

	t.Run("delete unknown id returns 404", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doRequest(t, srv, http.MethodDelete, "/groups/no-such-id", nil, "")
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
		gt.Value(t, strings.TrimSpace(rec.Body.String())).Equal(`{"error":"Group not found"}`)
	})
}
