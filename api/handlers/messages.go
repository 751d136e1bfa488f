package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mockchat/api/middleware"
	"mockchat/models"
	"mockchat/services"
)

const serviceName = "mockchat"

type MessageHandler struct {
	Messages *services.MessageService
}

type CreateMessageRequest struct {
	User     string `json:"user"`
	Text     string `json:"text"`
	UserName string `json:"user_name"`
}

type CreateMessageResponse struct {
	ID           int64     `json:"id"`
	User         string    `json:"user"`
	UserName     string    `json:"user_name"`
	Text         string    `json:"text"`
	ResponseText string    `json:"response_text"`
	CreatedAt    time.Time `json:"created_at"`
	ResponseID   int64     `json:"response_id"`
}

type ListMessagesResponse struct {
	Messages []models.Message `json:"messages"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type DeleteHistoryRequest struct {
	User string `json:"user"`
}

// List - GET /api/v1/messages?user=&direction=&search=&page=&page_size=
func (h *MessageHandler) List(c *gin.Context) {
	filter := services.MessageFilter{
		User:      c.Query("user"),
		Direction: c.Query("direction"),
		Search:    c.Query("search"),
		Page:      1,
		PageSize:  services.DefaultPageSize,
	}
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filter.Page = p
		}
	}
	if sizeStr := c.Query("page_size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 {
			filter.PageSize = s
		}
	}

	start := time.Now()
	messages, total, err := h.Messages.List(c.Request.Context(), filter)
	middleware.RecordMessageOperation("list", statusLabel(err), serviceName, time.Since(start), err)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if messages == nil {
		messages = []models.Message{}
	}
	c.JSON(http.StatusOK, ListMessagesResponse{
		Messages: messages,
		Total:    total,
		Page:     filter.Page,
		PageSize: normalizedPageSize(filter.PageSize),
	})
}

// Create - POST /api/v1/messages
func (h *MessageHandler) Create(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	start := time.Now()
	result, err := h.Messages.Create(c.Request.Context(), req.User, req.Text, req.UserName)
	middleware.RecordMessageOperation("create", statusLabel(err), serviceName, time.Since(start), err)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateMessageResponse{
		ID:           result.Message.ID,
		User:         result.Message.User,
		UserName:     result.Message.UserName,
		Text:         result.Message.Text,
		ResponseText: result.ResponseText,
		CreatedAt:    result.Message.CreatedAt,
		ResponseID:   result.ResponseID,
	})
}

// MarkViewed - POST /api/v1/messages/mark_viewed?user=
// The user is read from the query string, with the body as fallback.
func (h *MessageHandler) MarkViewed(c *gin.Context) {
	user := c.Query("user")
	if user == "" {
		var body struct {
			User string `json:"user"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			user = body.User
		}
	}

	start := time.Now()
	changed, err := h.Messages.MarkViewed(c.Request.Context(), user)
	middleware.RecordMessageOperation("mark_viewed", statusLabel(err), serviceName, time.Since(start), err)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

// DeleteHistory - POST /api/v1/messages/delete_history
func (h *MessageHandler) DeleteHistory(c *gin.Context) {
	var req DeleteHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	start := time.Now()
	deleted, err := h.Messages.DeleteHistory(c.Request.Context(), req.User)
	middleware.RecordMessageOperation("delete_history", statusLabel(err), serviceName, time.Since(start), err)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted_count": deleted})
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func normalizedPageSize(size int) int {
	if size < 1 {
		return services.DefaultPageSize
	}
	if size > services.MaxPageSize {
		return services.MaxPageSize
	}
	return size
}
