package service

import (
	"fmt"
	"log"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
	"github.com/yourusername/quizverse-api/internal/domain/repository"
)

// activityFeedLimit caps how many rows each feed section carries.
const activityFeedLimit = 50

// FeedNotification is one entry of the notification section: either another
// player finishing one of the user's quizzes, or a security event on the
// user's own account.
type FeedNotification struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification kinds.
const (
	NotificationQuizPlayed = "quiz_played"
	NotificationSecurity   = "security"
)

// ActivityFeed is the full activity view for one user.
type ActivityFeed struct {
	Completions   []repository.CompletionRow `json:"completions"`
	Notifications []FeedNotification         `json:"notifications"`
}

// ActivityService assembles the per-user activity feed and records entries.
type ActivityService struct {
	activityRepo   repository.ActivityRepository
	completionRepo repository.CompletionRepository
	db             *gorm.DB
}

// NewActivityService creates a new activity service.
func NewActivityService(
	activityRepo repository.ActivityRepository,
	completionRepo repository.CompletionRepository,
	db *gorm.DB,
) *ActivityService {
	return &ActivityService{
		activityRepo:   activityRepo,
		completionRepo: completionRepo,
		db:             db,
	}
}

// Log appends one activity entry. Failures are logged, never propagated; the
// feed is informational and must not fail the operation that produced it.
func (s *ActivityService) Log(userID uint, activityType, details string) {
	entry := &entity.ActivityLog{
		UserID:          userID,
		ActivityType:    activityType,
		ActivityDetails: details,
	}
	if err := s.activityRepo.Create(entry); err != nil {
		log.Printf("[ActivityService] Failed to log %q for user #%d: %v", activityType, userID, err)
	}
}

// Feed returns the user's completions plus their notifications: quizzes of
// theirs played by others, merged with security events from the activity log.
func (s *ActivityService) Feed(userID uint) (*ActivityFeed, error) {
	completions, err := s.completionRepo.ListByUser(userID, activityFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	played, err := s.completionRepo.ListForOwner(userID, activityFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner notifications: %w", err)
	}

	securityTypes := []string{entity.ActivityPasswordChanged, entity.ActivityAccountDeleted}
	security, err := s.activityRepo.ListByUserAndTypes(userID, securityTypes, activityFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load security events: %w", err)
	}

	notifications := make([]FeedNotification, 0, len(played)+len(security))
	for _, row := range played {
		notifications = append(notifications, FeedNotification{
			Kind: NotificationQuizPlayed,
			Message: fmt.Sprintf("%s completed your quiz %q with score %d/%d",
				row.Username, row.QuizTitle, row.Score, row.TotalQuestions),
			CreatedAt: row.CompletedAt,
		})
	}
	for _, entry := range security {
		notifications = append(notifications, FeedNotification{
			Kind:      NotificationSecurity,
			Message:   entry.ActivityDetails,
			CreatedAt: entry.CreatedAt,
		})
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	return &ActivityFeed{
		Completions:   completions,
		Notifications: notifications,
	}, nil
}

// Clear wipes the user's activity log and completion history in one
// transaction.
func (s *ActivityService) Clear(userID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&entity.ActivityLog{}).Error; err != nil {
			return fmt.Errorf("failed to clear activity log: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&entity.QuizCompletion{}).Error; err != nil {
			return fmt.Errorf("failed to clear completions: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("[ActivityService] Cleared activity history for user #%d", userID)
	return nil
}
