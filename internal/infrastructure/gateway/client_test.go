package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/johnquangdev/meetmate/errors"
)

func newTestClient(t *testing.T, h http.HandlerFunc, token string) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := New(Options{
		BaseURL: ts.URL + "/api/v1/",
		Token:   token,
		Timeout: 2 * time.Second,
		Logger:  zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return c
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := New(Options{BaseURL: "/api"})
	assert.Error(t, err)
}

func TestGet_AttachesHeadersAndQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/actions", r.URL.Path)
		assert.Equal(t, "m-1", r.URL.Query().Get("meeting_id"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(HeaderRequestID))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"items":[{"id":"a-1"}],"total":1}`)
	}, "tok")

	var out struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Total int `json:"total"`
	}
	err := c.Get(context.Background(), "/actions", url.Values{"meeting_id": {"m-1"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, "a-1", out.Items[0].ID)
}

func TestPost_SkipAuth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.co", body["email"])
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	}, "tok")

	var out map[string]string
	err := c.Post(context.Background(), "/marketing/join", map[string]string{"email": "a@b.co"}, &out, WithSkipAuth())
	require.NoError(t, err)
	assert.Equal(t, "ok", out["message"])
}

func TestDo_HTTPErrorCarriesDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Meeting not found"}`)
	}, "")

	err := c.Get(context.Background(), "/meetings/x", nil, &struct{}{})
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindHTTP, appErr.Kind)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	assert.Equal(t, "Meeting not found", appErr.Message)
	assert.JSONEq(t, `{"detail":"Meeting not found"}`, string(appErr.Data))
}

func TestDo_ErrorLogLevelFollowsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(ts.Close)
	c, err := New(Options{BaseURL: ts.URL, Logger: zap.New(core)})
	require.NoError(t, err)

	require.Error(t, c.Get(context.Background(), "/missing", nil, nil))
	require.Error(t, c.Get(context.Background(), "/busy", nil, nil))

	entries := logs.FilterMessage("gateway.response.error").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestDo_DecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>gateway</html>`)
	}, "")

	var out map[string]interface{}
	err := c.Get(context.Background(), "/meetings", nil, &out)
	assert.Equal(t, apperrors.KindDecode, apperrors.KindOf(err))
}

func TestDo_NoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}, "")

	var out map[string]interface{}
	require.NoError(t, c.Delete(context.Background(), "/knowledge/doc-1", &out))
	assert.Nil(t, out)
}

func TestDo_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()

	c, err := New(Options{BaseURL: base, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)

	err = c.Get(context.Background(), "/meetings", nil, nil)
	assert.True(t, apperrors.IsNetwork(err))
}

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(ts.Close)
	t.Cleanup(func() { close(release) })

	c, err := New(Options{BaseURL: ts.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	err = c.Get(context.Background(), "/slow", nil, nil)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorCode_REQUEST_TIMEOUT, appErr.Code)
}

func TestDo_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Get(ctx, "/meetings", nil, nil)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorCode_REQUEST_CANCELLED, appErr.Code)
}

func TestUpload_Multipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Runbook", r.FormValue("title"))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		content, _ := io.ReadAll(f)
		assert.Equal(t, "runbook.md", hdr.Filename)
		assert.Equal(t, "# steps", string(content))
		_, _ = io.WriteString(w, `{"id":"doc-9","title":"Runbook"}`)
	}, "tok")

	var doc struct {
		ID string `json:"id"`
	}
	err := c.Upload(context.Background(), "/knowledge/upload",
		map[string]string{"title": "Runbook"},
		File{Name: "runbook.md", Content: strings.NewReader("# steps")},
		&doc,
	)
	require.NoError(t, err)
	assert.Equal(t, "doc-9", doc.ID)
}

func TestExtractDetail(t *testing.T) {
	cases := map[string]string{
		`{"detail":"Invalid phase"}`: "Invalid phase",
		`{"detail":[{"loc":["body","title"],"msg":"field required"},{"msg":"bad"}]}`: "title: field required; bad",
		`{"message":"boom"}`: "boom",
		`{"error":"nope"}`:   "nope",
		`Bad Gateway`:        "Bad Gateway",
		`{"detail":{"a":1}}`: `{"a":1}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractDetail([]byte(in)), in)
	}
}
