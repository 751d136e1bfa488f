package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"mockchat/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MessageFilter narrows a List call. Zero values mean "no filter"; an invalid
// Direction value is ignored rather than rejected, matching the lenient
// query-param behaviour of the API.
type MessageFilter struct {
	User      string
	Direction string
	Search    string
	Page      int
	PageSize  int
}

// CreateResult carries the persisted sent row plus the generated reply. The
// reply text is persisted only on the received row; ResponseText here is an
// echo for the API response.
type CreateResult struct {
	Message      models.Message
	ResponseText string
	ResponseID   int64
}

type MessageService struct {
	db      *gorm.DB
	replies ReplySource
}

func NewMessageService(db *gorm.DB, replies ReplySource) *MessageService {
	return &MessageService{db: db, replies: replies}
}

// List returns one page of the log, ascending by creation time. The id
// tiebreak keeps sent/received pairs in insert order when they share a
// timestamp.
func (s *MessageService) List(ctx context.Context, filter MessageFilter) ([]models.Message, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Message{})

	if filter.User != "" {
		q = q.Where(`"user" = ?`, filter.User)
	}
	if d := models.Direction(filter.Direction); d.IsValid() {
		q = q.Where("direction = ?", d)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(text) LIKE ? OR LOWER(response_text) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, internal("failed to count messages", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	var messages []models.Message
	err := q.Order("created_at ASC, id ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&messages).Error
	if err != nil {
		return nil, 0, internal("failed to list messages", err)
	}
	return messages, total, nil
}

// Create persists the user message and its generated reply as one
// transaction; either both rows become visible or neither does.
//
// Display name resolution: the account's current name wins, then the
// user_name supplied with the request, then the "User {id}" fallback. Blank
// text is rejected; this service never stores system-only rows on its own.
func (s *MessageService) Create(ctx context.Context, user, text, userName string) (*CreateResult, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, validationf("field 'user' must be a non-empty string")
	}
	if strings.TrimSpace(text) == "" {
		return nil, validationf("field 'text' must be a non-empty string")
	}

	displayName, err := s.resolveDisplayName(ctx, user, userName)
	if err != nil {
		return nil, err
	}

	sent := models.Message{
		User:      user,
		UserName:  displayName,
		Text:      text,
		Direction: models.DirectionSent,
		Viewed:    false,
	}
	received := models.Message{
		User:      user,
		UserName:  displayName,
		Text:      s.replies.Pick(displayName),
		Direction: models.DirectionReceived,
		Viewed:    false,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sent).Error; err != nil {
			return err
		}
		return tx.Create(&received).Error
	})
	if err != nil {
		return nil, internal("failed to store message pair", err)
	}

	return &CreateResult{
		Message:      sent,
		ResponseText: received.Text,
		ResponseID:   received.ID,
	}, nil
}

func (s *MessageService) resolveDisplayName(ctx context.Context, user, userName string) (string, error) {
	var acct models.Account
	err := s.db.WithContext(ctx).Where("identifier = ?", user).First(&acct).Error
	if err == nil {
		return acct.DisplayName(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", internal("failed to look up account", err)
	}
	// Unknown identifiers are allowed; fall back to what the caller sent.
	if userName != "" {
		return userName, nil
	}
	return "User " + user, nil
}

// MarkViewed flags every unviewed row of the user, both directions, and
// returns how many rows changed. Calling it again right away returns 0.
func (s *MessageService) MarkViewed(ctx context.Context, user string) (int64, error) {
	if strings.TrimSpace(user) == "" {
		return 0, validationf("param 'user' is required")
	}
	res := s.db.WithContext(ctx).Model(&models.Message{}).
		Where(`"user" = ? AND viewed = ?`, user, false).
		Update("viewed", true)
	if res.Error != nil {
		return 0, internal("failed to mark messages viewed", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteHistory removes every row of the user and returns the count. Other
// users' rows are never touched.
func (s *MessageService) DeleteHistory(ctx context.Context, user string) (int64, error) {
	if strings.TrimSpace(user) == "" {
		return 0, validationf("field 'user' is required")
	}
	res := s.db.WithContext(ctx).Where(`"user" = ?`, user).Delete(&models.Message{})
	if res.Error != nil {
		return 0, internal("failed to delete history", res.Error)
	}
	return res.RowsAffected, nil
}
