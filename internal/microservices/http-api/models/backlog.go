package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// BacklogStatus is the closed set of states a backlog entry can be in.
type BacklogStatus string

const (
	StatusPlaying   BacklogStatus = "playing"
	StatusCompleted BacklogStatus = "completed"
	StatusDropped   BacklogStatus = "dropped"
	StatusOnHold    BacklogStatus = "on_hold"
	StatusPlanning  BacklogStatus = "planning"
)

var backlogStatuses = []BacklogStatus{
	StatusPlaying,
	StatusCompleted,
	StatusDropped,
	StatusOnHold,
	StatusPlanning,
}

// BacklogStatuses lists every accepted status in display order.
func BacklogStatuses() []BacklogStatus {
	out := make([]BacklogStatus, len(backlogStatuses))
	copy(out, backlogStatuses)
	return out
}

func (s BacklogStatus) Valid() bool {
	for _, known := range backlogStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseBacklogStatus accepts the canonical value plus the hyphenated
// "on-hold" spelling.
func ParseBacklogStatus(raw string) (BacklogStatus, error) {
	s := BacklogStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_"))
	if !s.Valid() {
		return "", fmt.Errorf("invalid backlog status %q", raw)
	}
	return s, nil
}

func (s *BacklogStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("backlog status must be a string: %w", err)
	}
	parsed, err := ParseBacklogStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type BacklogItem struct {
	ID        int64         `gorm:"primaryKey;autoIncrement" json:"backlog_id"`
	UserID    string        `gorm:"type:uuid;not null;index" json:"user_id"`
	GameID    int64         `gorm:"not null;index" json:"game_id"`
	Status    BacklogStatus `gorm:"type:varchar(20);not null" json:"status"`
	AddedDate time.Time     `gorm:"autoCreateTime" json:"added_date"`
	Rating    *float64      `json:"rating,omitempty"`
}

func (BacklogItem) TableName() string {
	return "backlog_items"
}
