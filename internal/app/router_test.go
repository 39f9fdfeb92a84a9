package app

import (
	"bytes"
	"classroom_backend/internal/config"
	"classroom_backend/pkg/database"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode, BasePath: "/api"},
		Database: config.DatabaseConfig{Path: ":memory:", LogLevel: "silent"},
		Storage:  config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func setup(t *testing.T) *App {
	t.Helper()
	cfg := testConfig(t)
	db, err := database.InitDB(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return New(cfg, db, nil)
}

func call(t *testing.T, a *App, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	a := setup(t)
	w := call(t, a, http.MethodGet, "/api/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["message"])
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth_DatabaseDown(t *testing.T) {
	a := setup(t)
	sqlDB, err := a.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := call(t, a, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", decode(t, w)["status"])
}

func TestUserData(t *testing.T) {
	a := setup(t)

	w := call(t, a, http.MethodGet, "/api/user/u1", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User data not found", decode(t, w)["error"])

	bundle := `{
		"posts": [{"id":"p1","content":"hello","comments":[{"id":"c1","replies":[]}]}],
		"groups": [{"id":"G1","name":"国語 A班","members":["u1","u2"],"subjectId":"s1"}],
		"notifications": [{"id":"n1","type":"assignment","isRead":false}],
		"chatHistories": {"u2":[{"id":"m1","senderId":"u2","content":"hi","isRead":false}]}
	}`
	w = call(t, a, http.MethodPost, "/api/user/u1/save", bundle)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["success"])

	w = call(t, a, http.MethodGet, "/api/user/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(bundle), &sent))
	for _, key := range []string{"posts", "groups", "notifications", "chatHistories"} {
		assert.JSONEq(t, string(sent[key]), string(got[key]), key)
	}
	assert.JSONEq(t, `"u1"`, string(got["userId"]))

	// 第二次保存整体覆盖
	w = call(t, a, http.MethodPost, "/api/user/u1/save", `{"posts":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = call(t, a, http.MethodGet, "/api/user/u1", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.JSONEq(t, `[]`, string(got["posts"]))
	assert.JSONEq(t, `[]`, string(got["groups"]))
	assert.JSONEq(t, `{}`, string(got["chatHistories"]))

	w = call(t, a, http.MethodPost, "/api/user/u1/save", "{broken")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessages(t *testing.T) {
	a := setup(t)

	tests := []struct {
		name string
		body interface{}
		code int
	}{
		{name: "direct", body: map[string]interface{}{"id": "dm1", "senderId": "u2", "receiverId": "u1", "content": "ノート見せて", "timestamp": "09:30"}, code: http.StatusOK},
		{name: "group", body: map[string]interface{}{"id": "g1", "senderId": "u3", "groupId": "G1", "content": "進んでる？", "timestamp": "10:00"}, code: http.StatusOK},
		{name: "second in group", body: map[string]interface{}{"id": "g2", "senderId": "u1", "groupId": "G1", "content": "半分", "timestamp": "10:05"}, code: http.StatusOK},
		{name: "missing content", body: map[string]interface{}{"senderId": "u1", "timestamp": "10:05"}, code: http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := call(t, a, http.MethodPost, "/api/messages", tc.body)
			require.Equal(t, tc.code, w.Code, w.Body.String())
			if tc.code == http.StatusOK {
				body := decode(t, w)
				assert.Equal(t, true, body["success"])
				assert.NotEmpty(t, body["messageId"])
			}
		})
	}

	t.Run("generated id", func(t *testing.T) {
		w := call(t, a, http.MethodPost, "/api/messages", map[string]interface{}{"senderId": "u5", "receiverId": "u6", "content": "x", "timestamp": "11:00"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["messageId"], 36)
	})

	t.Run("list group in order", func(t *testing.T) {
		w := call(t, a, http.MethodGet, "/api/messages/G1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 2)
		assert.Equal(t, "g1", list[0]["id"])
		assert.Equal(t, "g2", list[1]["id"])
	})

	t.Run("list by user matches sender and receiver", func(t *testing.T) {
		w := call(t, a, http.MethodGet, "/api/messages/u1", nil)
		var list []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 2)
	})

	t.Run("empty conversation", func(t *testing.T) {
		w := call(t, a, http.MethodGet, "/api/messages/nobody", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestMessageReactions(t *testing.T) {
	a := setup(t)
	w := call(t, a, http.MethodPost, "/api/messages", map[string]interface{}{"id": "m1", "senderId": "u2", "groupId": "G1", "content": "hi", "timestamp": "10:00"})
	require.Equal(t, http.StatusOK, w.Code)

	tests := []struct {
		name   string
		path   string
		userID string
		code   int
		active bool
		count  int
	}{
		{name: "add", path: "/api/messages/m1/reaction", userID: "u1", code: http.StatusOK, active: true, count: 1},
		{name: "remove", path: "/api/messages/m1/reaction", userID: "u1", code: http.StatusOK, active: false, count: 0},
		{name: "add again", path: "/api/messages/m1/reaction", userID: "u1", code: http.StatusOK, active: true, count: 1},
		{name: "second user", path: "/api/messages/m1/reaction", userID: "u3", code: http.StatusOK, active: true, count: 2},
		{name: "unknown message", path: "/api/messages/missing/reaction", userID: "u1", code: http.StatusNotFound, count: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := call(t, a, http.MethodPost, tc.path, map[string]string{"type": "heart", "userId": tc.userID})
			require.Equal(t, tc.code, w.Code, w.Body.String())
			if tc.code == http.StatusOK {
				body := decode(t, w)
				assert.Equal(t, tc.active, body["active"])
				assert.Equal(t, float64(tc.count), body["count"])
			}

			w = call(t, a, http.MethodGet, "/api/messages/G1", nil)
			var list []struct {
				Reactions []map[string]interface{} `json:"reactions"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
			require.Len(t, list, 1)
			assert.Len(t, list[0].Reactions, tc.count)
		})
	}

	w = call(t, a, http.MethodPost, "/api/messages/m1/reaction", map[string]string{"type": "heart"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkRead(t *testing.T) {
	a := setup(t)
	call(t, a, http.MethodPost, "/api/messages", map[string]interface{}{"id": "m1", "senderId": "u2", "receiverId": "u1", "content": "hi", "timestamp": "10:00"})
	call(t, a, http.MethodPost, "/api/notifications", map[string]interface{}{"id": "n1", "userId": "u1", "type": "message", "title": "新着メッセージ", "timestamp": "今"})

	tests := []struct {
		name string
		path string
	}{
		{name: "message", path: "/api/messages/m1/read"},
		{name: "unknown message", path: "/api/messages/missing/read"},
		{name: "notification", path: "/api/notifications/n1/read"},
		{name: "unknown notification", path: "/api/notifications/missing/read"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := call(t, a, http.MethodPatch, tc.path, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, true, decode(t, w)["success"])
		})
	}

	w := call(t, a, http.MethodGet, "/api/messages/u1", nil)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, true, list[0]["isRead"])
}

func TestCreatePost(t *testing.T) {
	a := setup(t)

	tests := []struct {
		name string
		body map[string]interface{}
		code int
	}{
		{name: "assignment", body: map[string]interface{}{"id": "p1", "authorId": "u7", "title": "Essay", "content": "800字", "timestamp": "2024/05/10", "subjectId": "s1", "isAssignment": true}, code: http.StatusOK},
		{name: "with status", body: map[string]interface{}{"authorId": "u7", "content": "連絡", "timestamp": "今", "simulationStatus": "late"}, code: http.StatusOK},
		{name: "invalid status", body: map[string]interface{}{"authorId": "u7", "content": "連絡", "timestamp": "今", "simulationStatus": "done"}, code: http.StatusBadRequest},
		{name: "missing author", body: map[string]interface{}{"content": "連絡", "timestamp": "今"}, code: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := call(t, a, http.MethodPost, "/api/posts", tc.body)
			require.Equal(t, tc.code, w.Code, w.Body.String())
			if tc.code == http.StatusOK {
				assert.NotEmpty(t, decode(t, w)["postId"])
			}
		})
	}
}

func TestCreateNotification(t *testing.T) {
	a := setup(t)

	tests := []struct {
		name string
		kind string
		code int
	}{
		{name: "assignment", kind: "assignment", code: http.StatusOK},
		{name: "deadline", kind: "deadline", code: http.StatusOK},
		{name: "unknown type", kind: "alert", code: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := call(t, a, http.MethodPost, "/api/notifications", map[string]interface{}{
				"userId": "u1", "type": tc.kind, "title": "課題", "timestamp": "今", "link": "subject-s1",
			})
			require.Equal(t, tc.code, w.Code, w.Body.String())
			if tc.code == http.StatusOK {
				assert.NotEmpty(t, decode(t, w)["notificationId"])
			}
		})
	}
}

func TestUpload(t *testing.T) {
	a := setup(t)

	upload := func(filename string, content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, req)
		return w
	}

	w := upload("report.pdf", []byte("%PDF-1.4\n%test document\n"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "report.pdf", body["name"])
	assert.Equal(t, "pdf", body["type"])
	assert.NotEmpty(t, body["id"])

	url, _ := body["url"].(string)
	require.Contains(t, url, "/uploads/attachments/")
	stored := filepath.Join(a.Config.Storage.LocalPath, "attachments", filepath.Base(url))
	_, err := os.Stat(stored)
	assert.NoError(t, err)

	get := httptest.NewRecorder()
	a.Router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusOK, get.Code)

	w = upload("notes.txt", []byte("板書のメモ"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "doc", decode(t, w)["type"])

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	missing := httptest.NewRecorder()
	a.Router.ServeHTTP(missing, req)
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestPreflight(t *testing.T) {
	a := setup(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/user/u1/save", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}
