package postgres

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
)

// UserAnswerRepo implements repository.UserAnswerRepository.
type UserAnswerRepo struct {
	db *gorm.DB
}

// NewUserAnswerRepo creates a new audit-row repository.
func NewUserAnswerRepo(db *gorm.DB) *UserAnswerRepo {
	return &UserAnswerRepo{db: db}
}

// Upsert writes the audit row for (user, quiz, question). Re-answering the
// same question overwrites the previous row; last write wins.
func (r *UserAnswerRepo) Upsert(answer *entity.UserAnswer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "quiz_id"},
			{Name: "question_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"answer_id", "answer_text", "is_correct", "updated_at"}),
	}).Create(answer).Error
}

// GetByUserAndQuiz returns the user's audit rows for one quiz in question id
// order, matching the play sequence.
func (r *UserAnswerRepo) GetByUserAndQuiz(userID, quizID uint) ([]entity.UserAnswer, error) {
	var answers []entity.UserAnswer
	err := r.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("question_id").
		Find(&answers).Error
	return answers, err
}
