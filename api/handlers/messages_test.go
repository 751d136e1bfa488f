package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mockchat/api/routes"
	"mockchat/db"
	"mockchat/models"
	"mockchat/services"
)

// setupRouter wires the full HTTP surface against an in-memory sqlite store.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(&models.Account{}, &models.Message{}))
	require.NoError(t, db.EnsureReservedAccounts(database))

	r := gin.New()
	routes.PublicApi(r, database)
	return r, database
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateMessageEndpoint(t *testing.T) {
	r, database := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/v1/messages", map[string]string{
		"user": "A",
		"text": "hello",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID           int64  `json:"id"`
		User         string `json:"user"`
		UserName     string `json:"user_name"`
		Text         string `json:"text"`
		ResponseText string `json:"response_text"`
		ResponseID   int64  `json:"response_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "A", resp.User)
	assert.Equal(t, "hello", resp.Text)
	assert.NotZero(t, resp.ID)
	assert.NotZero(t, resp.ResponseID)
	assert.NotEqual(t, resp.ID, resp.ResponseID)

	valid := false
	for _, tpl := range services.ReplyTemplates {
		if resp.ResponseText == fmt.Sprintf(tpl, resp.UserName) {
			valid = true
			break
		}
	}
	assert.True(t, valid, "response_text %q is not a template", resp.ResponseText)

	var count int64
	require.NoError(t, database.Model(&models.Message{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCreateMessageEndpointValidation(t *testing.T) {
	r, database := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/v1/messages", map[string]string{"user": "", "text": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/api/v1/messages", map[string]string{"user": "A", "text": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var detail map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Contains(t, detail, "detail")

	var count int64
	require.NoError(t, database.Model(&models.Message{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestListMessagesEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	for i := 0; i < 3; i++ {
		w := doJSON(t, r, "POST", "/api/v1/messages", map[string]string{
			"user": "A",
			"text": fmt.Sprintf("msg %d", i),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := doJSON(t, r, "POST", "/api/v1/messages", map[string]string{"user": "B", "text": "outro"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "GET", "/api/v1/messages?user=A&direction=sent", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Messages []models.Message `json:"messages"`
		Total    int64            `json:"total"`
		Page     int              `json:"page"`
		PageSize int              `json:"page_size"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, services.DefaultPageSize, resp.PageSize)
	require.Len(t, resp.Messages, 3)
	for _, m := range resp.Messages {
		assert.Equal(t, "A", m.User)
		assert.Equal(t, models.DirectionSent, m.Direction)
	}

	// Search with pagination params.
	w = doJSON(t, r, "GET", "/api/v1/messages?search=outro&page=1&page_size=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.Total)
	assert.Equal(t, 10, resp.PageSize)
}

func TestMarkViewedEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, "POST", "/api/v1/messages", map[string]string{"user": "A", "text": "hi"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/api/v1/messages/mark_viewed?user=A", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp["changed"])

	// Second call changes nothing.
	w = doJSON(t, r, "POST", "/api/v1/messages/mark_viewed?user=A", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 0, resp["changed"])

	// User accepted in the body as fallback.
	w = doJSON(t, r, "POST", "/api/v1/messages/mark_viewed", map[string]string{"user": "A"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Missing user entirely.
	w = doJSON(t, r, "POST", "/api/v1/messages/mark_viewed", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteHistoryEndpoint(t *testing.T) {
	r, database := setupRouter(t)

	doJSON(t, r, "POST", "/api/v1/messages", map[string]string{"user": "A", "text": "bye"})
	doJSON(t, r, "POST", "/api/v1/messages", map[string]string{"user": "B", "text": "stay"})

	w := doJSON(t, r, "POST", "/api/v1/messages/delete_history", map[string]string{"user": "A"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp["deleted_count"])

	var remaining int64
	require.NoError(t, database.Model(&models.Message{}).Count(&remaining).Error)
	assert.EqualValues(t, 2, remaining)

	w = doJSON(t, r, "POST", "/api/v1/messages/delete_history", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
