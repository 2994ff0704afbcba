package entity

import (
	"time"
)

// Activity type constants. The notification feed filters on these values.
const (
	ActivityQuizAnswer      = "Quiz Answer"
	ActivityQuizCompleted   = "Quiz Completed"
	ActivityPasswordChanged = "Password Changed"
	ActivityAccountDeleted  = "Account Deleted"
)

// ActivityLog is one append-only activity entry for a user. The play flow
// writes entries best-effort and never reads them back for its own logic.
type ActivityLog struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	UserID          uint   `gorm:"not null;index" json:"user_id"`
	ActivityType    string `gorm:"size:50;not null" json:"activity_type"`
	ActivityDetails string `gorm:"type:text;not null" json:"activity_details"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName defines the table name for GORM.
func (ActivityLog) TableName() string {
	return "activity_logs"
}
