package api

import (
	"Murmur/internal/api/config"
	"Murmur/internal/api/handler"
	"Murmur/internal/pkg/storage"
	"Murmur/internal/service"
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCols = config.CollectionsConfig{
	Entries:  "entries",
	Comments: "comments",
}

var testMod = config.ModerationConfig{
	EntryThreshold:   3,
	CommentThreshold: 2,
	RetentionDays:    7,
}

func newTestRouter(t *testing.T) (*gin.Engine, storage.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()

	entrySvc := service.NewEntryService(store, testCols)
	feedSvc := service.NewFeedService(store, testCols)
	commentSvc := service.NewCommentService(store, testCols)
	voteSvc := service.NewVoteService(store, testCols)
	modSvc := service.NewModerationService(store, testCols, testMod, nil)
	adminSvc := service.NewAdminService(store, testCols, config.AdminConfig{})

	group := &HandlersGroup{
		EntryHandler:   handler.NewEntryHandler(entrySvc, feedSvc),
		CommentHandler: handler.NewCommentHandler(commentSvc, feedSvc),
		VoteHandler:    handler.NewVoteHandler(voteSvc),
		ReportHandler:  handler.NewReportHandler(modSvc),
		AdminHandler:   handler.NewAdminHandler(adminSvc),
	}
	return SetupRouter(group), store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestPing(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", decodeBody(t, w)["message"])
}

func TestSubmitAndList(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/submit", gin.H{
		"content": "hello world",
		"tags":    "go,web",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["id"])

	w = doJSON(t, r, http.MethodGet, "/api/entries?limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decodeBody(t, w)["entries"].([]any)
	require.Len(t, entries, 1)
	first := entries[0].(map[string]any)
	assert.Equal(t, "hello world", first["content"])
}

func TestSubmitValidationStatus(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/submit", gin.H{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/api/submit", gin.H{"content": strings.Repeat("a", 2001)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVoteEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/submit", gin.H{"content": "votable"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/vote", gin.H{"entry_id": id, "vote": 1})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["upvotes"])
	assert.Equal(t, float64(0), body["downvotes"])

	// 非法方向被参数校验拦下
	w = doJSON(t, r, http.MethodPost, "/api/vote", gin.H{"entry_id": id, "vote": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 不存在的目标
	w = doJSON(t, r, http.MethodPost, "/api/vote", gin.H{"entry_id": "missing", "vote": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/submit", gin.H{"content": "reportable"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)

	var body map[string]any
	for i := int64(0); i < testMod.EntryThreshold; i++ {
		w = doJSON(t, r, http.MethodPost, "/api/report", gin.H{"entry_id": id, "reason": "spam"})
		require.Equal(t, http.StatusOK, w.Code)
		body = decodeBody(t, w)
	}
	assert.Equal(t, true, body["archived"])

	// 归档后条目从默认列表消失
	w = doJSON(t, r, http.MethodGet, "/api/entries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["entries"])

	// 归档后投票返回 410
	w = doJSON(t, r, http.MethodPost, "/api/vote", gin.H{"entry_id": id, "vote": 1})
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestCommentEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/submit", gin.H{"content": "parent"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/comments", gin.H{"entry_id": id, "content": "first"})
	require.Equal(t, http.StatusCreated, w.Code)
	commentID := decodeBody(t, w)["id"].(string)
	require.NotEmpty(t, commentID)

	w = doJSON(t, r, http.MethodGet, "/api/comments/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	comments := decodeBody(t, w)["comments"].([]any)
	assert.Len(t, comments, 1)

	w = doJSON(t, r, http.MethodPost, "/api/comment-vote", gin.H{"comment_id": commentID, "vote": -1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["downvotes"])

	// 评论举报达到阈值后标记 deleted
	var body map[string]any
	for i := int64(0); i < testMod.CommentThreshold; i++ {
		w = doJSON(t, r, http.MethodPost, "/api/comment-report", gin.H{"comment_id": commentID, "entry_id": id})
		require.Equal(t, http.StatusOK, w.Code)
		body = decodeBody(t, w)
	}
	assert.Equal(t, true, body["deleted"])

	w = doJSON(t, r, http.MethodGet, "/api/comments/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["comments"])
}

func TestCommentOnMissingEntryStatus(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/comments", gin.H{"entry_id": "missing", "content": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/admin/data", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 未配置口令时登录直接拒绝
	w = doJSON(t, r, http.MethodPost, "/api/admin/login", gin.H{"passkey": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestViewEndpoint(t *testing.T) {
	r, store := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/submit", gin.H{"content": "viewed"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/entries/"+id+"/view", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rec, err := store.Get(t.Context(), testCols.Entries, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.Views)
}
