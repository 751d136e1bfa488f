package models

import (
	"time"
)

type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// IsValid reports whether d is one of the two known directions.
func (d Direction) IsValid() bool {
	return d == DirectionSent || d == DirectionReceived
}

// Message represents one row of the chat log. direction=sent is user to
// system, direction=received is the generated system reply. User is the
// account identifier string, kept without a foreign key to stay tolerant of
// legacy rows.
type Message struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	// "user" is reserved in postgres; raw where clauses must quote it.
	User         string    `gorm:"column:user;size:48;index" json:"user"`
	UserName     string    `gorm:"size:150" json:"user_name"`
	Text         string    `gorm:"type:text" json:"text"`
	ResponseText string    `gorm:"type:text" json:"response_text"`
	Direction    Direction `gorm:"size:16" json:"direction"`
	Viewed       bool      `gorm:"default:false" json:"viewed"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName returns the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
