package service

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
	"github.com/yourusername/quizverse-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizverse-api/internal/pkg/errors"
)

// joinCodeCacheTTL bounds how long a join-code lookup may be served from
// Redis before going back to Postgres.
const joinCodeCacheTTL = 10 * time.Minute

// QuizPlayedNotification is pushed to a quiz owner when another user finishes
// their quiz.
type QuizPlayedNotification struct {
	QuizID         uint   `json:"quiz_id"`
	QuizTitle      string `json:"quiz_title"`
	Username       string `json:"username"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
}

// Notifier delivers best-effort events to connected users.
type Notifier interface {
	NotifyQuizPlayed(ownerID uint, n QuizPlayedNotification)
}

// SubmitResult is the verdict returned for one answer submission.
type SubmitResult struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	NextQuestion  int    `json:"next_question"`
}

// AnswerReview is one per-question outcome record for the results view.
type AnswerReview struct {
	QuestionID    uint   `json:"question_id"`
	QuestionText  string `json:"question_text"`
	GivenAnswer   string `json:"given_answer"`
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// PlayService drives one quiz play-through: access resolution by id or join
// code, question sequencing, answer grading and completion recording. The
// acting user id is always passed explicitly; the service keeps no ambient
// session state.
type PlayService struct {
	quizRepo       repository.QuizRepository
	questionRepo   repository.QuestionRepository
	answerRepo     repository.UserAnswerRepository
	completionRepo repository.CompletionRepository
	activityRepo   repository.ActivityRepository
	userRepo       repository.UserRepository
	cacheRepo      repository.CacheRepository
	notifier       Notifier
}

// NewPlayService creates a new play service. cacheRepo and notifier may be nil;
// both are best-effort collaborators.
func NewPlayService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.UserAnswerRepository,
	completionRepo repository.CompletionRepository,
	activityRepo repository.ActivityRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	notifier Notifier,
) *PlayService {
	return &PlayService{
		quizRepo:       quizRepo,
		questionRepo:   questionRepo,
		answerRepo:     answerRepo,
		completionRepo: completionRepo,
		activityRepo:   activityRepo,
		userRepo:       userRepo,
		cacheRepo:      cacheRepo,
		notifier:       notifier,
	}
}

// ResolveQuizByID returns the quiz when the acting user may play it: the
// owner always can, others only when the quiz is public. Private quizzes are
// reported as not found to non-owners so their existence does not leak.
func (s *PlayService) ResolveQuizByID(userID, quizID uint) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsAccessibleBy(userID) {
		return nil, apperrors.ErrNotFound
	}
	return quiz, nil
}

// ResolveQuizByCode maps a 4-digit join code to its public quiz. Codes only
// resolve for public quizzes.
func (s *PlayService) ResolveQuizByCode(userID uint, code string) (*entity.Quiz, error) {
	code = strings.TrimSpace(code)
	if !isValidJoinCode(code) {
		return nil, fmt.Errorf("%w: join code must be exactly %d digits", apperrors.ErrValidation, entity.JoinCodeLength)
	}

	// Redis fast path; verified against the loaded quiz before use.
	if s.cacheRepo != nil {
		if cached, err := s.cacheRepo.Get(joinCodeCacheKey(code)); err == nil {
			if quizID, err := strconv.ParseUint(cached, 10, 32); err == nil {
				quiz, err := s.quizRepo.GetByID(uint(quizID))
				if err == nil && quiz.IsPublic && quiz.CodeValue() == code {
					return quiz, nil
				}
			}
		}
	}

	quiz, err := s.quizRepo.GetByJoinCode(code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidCode, code)
		}
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.Set(joinCodeCacheKey(code), strconv.FormatUint(uint64(quiz.ID), 10), joinCodeCacheTTL); err != nil {
			log.Printf("[PlayService] Failed to cache join code %s: %v", code, err)
		}
	}
	return quiz, nil
}

// StartPlay resolves access and loads the ordered question list for one
// play-through. A quiz with zero questions is unplayable.
func (s *PlayService) StartPlay(userID, quizID uint) (*entity.Quiz, []entity.Question, error) {
	quiz, err := s.ResolveQuizByID(userID, quizID)
	if err != nil {
		return nil, nil, err
	}

	questions, err := s.questionRepo.GetByQuizID(quizID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load questions for quiz #%d: %w", quizID, err)
	}
	if len(questions) == 0 {
		return nil, nil, fmt.Errorf("%w: quiz #%d", apperrors.ErrQuizEmpty, quizID)
	}
	return quiz, questions, nil
}

// SubmitAnswer grades one answer submission. The submitted question id must
// sit at the submitted index of the quiz's ordered question list; skipping or
// replaying out of sequence is rejected. The graded verdict is persisted as
// the audit row for (user, quiz, question); audit and activity failures are
// best-effort and never block the play-through.
func (s *PlayService) SubmitAnswer(userID, quizID, questionID uint, questionIndex int, answer string) (*SubmitResult, error) {
	answer = strings.TrimSpace(answer)
	if questionID == 0 || questionIndex < 0 || answer == "" {
		return nil, fmt.Errorf("%w: question id, question index and answer are required", apperrors.ErrValidation)
	}

	if _, err := s.ResolveQuizByID(userID, quizID); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.GetByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for quiz #%d: %w", quizID, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: quiz #%d", apperrors.ErrQuizEmpty, quizID)
	}
	if questionIndex >= len(questions) || questions[questionIndex].ID != questionID {
		return nil, fmt.Errorf("%w: question #%d at index %d of quiz #%d",
			apperrors.ErrQuestionMismatch, questionID, questionIndex, quizID)
	}
	question := &questions[questionIndex]

	outcome, err := GradeAnswer(question, answer)
	if err != nil {
		return nil, err
	}

	audit := &entity.UserAnswer{
		UserID:     userID,
		QuizID:     quizID,
		QuestionID: questionID,
		AnswerID:   outcome.ChosenOptionID,
		AnswerText: answer,
		IsCorrect:  outcome.IsCorrect,
	}
	if err := s.answerRepo.Upsert(audit); err != nil {
		// The play-through continues; the completion recompute will simply be
		// missing this row if it never lands.
		log.Printf("[PlayService] Failed to save answer for user #%d, question #%d: %v", userID, questionID, err)
	}

	s.logActivity(userID, entity.ActivityQuizAnswer,
		fmt.Sprintf("Answered question %d in quiz ID %d: %s", questionIndex+1, quizID, verdictWord(outcome.IsCorrect)))

	return &SubmitResult{
		IsCorrect:     outcome.IsCorrect,
		CorrectAnswer: outcome.CorrectAnswer,
		NextQuestion:  questionIndex + 1,
	}, nil
}

// CompleteQuiz records a finished play-through. The score and total are
// recomputed from the persisted audit rows; the client-reported aggregate is
// only compared and logged when it disagrees, never stored.
func (s *PlayService) CompleteQuiz(userID, quizID uint, reportedScore, reportedTotal int) (*entity.QuizCompletion, error) {
	if reportedScore < 0 || reportedTotal <= 0 {
		return nil, fmt.Errorf("%w: score must be >= 0 and total questions > 0", apperrors.ErrValidation)
	}

	quiz, err := s.ResolveQuizByID(userID, quizID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.GetByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for quiz #%d: %w", quizID, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: quiz #%d", apperrors.ErrQuizEmpty, quizID)
	}

	score, total, err := s.recomputeScore(userID, quizID, questions)
	if err != nil {
		return nil, err
	}
	if reportedScore != score || reportedTotal != total {
		log.Printf("[PlayService] Client-reported aggregate %d/%d disagrees with recomputed %d/%d (user #%d, quiz #%d); keeping recomputed values",
			reportedScore, reportedTotal, score, total, userID, quizID)
	}

	completion := &entity.QuizCompletion{
		UserID:         userID,
		QuizID:         quizID,
		Score:          score,
		TotalQuestions: total,
	}
	if err := s.completionRepo.Create(completion); err != nil {
		return nil, fmt.Errorf("failed to save quiz completion: %w", err)
	}

	s.logActivity(userID, entity.ActivityQuizCompleted,
		fmt.Sprintf("Completed quiz %q (ID: %d) with score %d/%d", quiz.Title, quizID, score, total))

	s.notifyOwner(userID, quiz, score, total)

	return completion, nil
}

// Results assembles the per-question outcome records of the user's latest
// play-through from the audit rows.
func (s *PlayService) Results(userID, quizID uint) ([]AnswerReview, int, int, error) {
	_, questions, err := s.StartPlay(userID, quizID)
	if err != nil {
		return nil, 0, 0, err
	}

	answers, err := s.answerRepo.GetByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to load answers for quiz #%d: %w", quizID, err)
	}
	byQuestion := make(map[uint]*entity.UserAnswer, len(answers))
	for i := range answers {
		byQuestion[answers[i].QuestionID] = &answers[i]
	}

	reviews := make([]AnswerReview, 0, len(questions))
	score := 0
	for i := range questions {
		q := &questions[i]
		review := AnswerReview{
			QuestionID:    q.ID,
			QuestionText:  q.Text,
			CorrectAnswer: q.CorrectAnswerLabel(),
		}
		if a, ok := byQuestion[q.ID]; ok {
			review.GivenAnswer = displayedAnswer(q, a)
			review.IsCorrect = a.IsCorrect
			if a.IsCorrect {
				score++
			}
		}
		reviews = append(reviews, review)
	}
	return reviews, score, len(questions), nil
}

// recomputeScore counts correct audit rows belonging to the quiz's current
// question set. Rows for questions removed since the answers were given do
// not count.
func (s *PlayService) recomputeScore(userID, quizID uint, questions []entity.Question) (int, int, error) {
	answers, err := s.answerRepo.GetByUserAndQuiz(userID, quizID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load answers for quiz #%d: %w", quizID, err)
	}

	known := make(map[uint]bool, len(questions))
	for i := range questions {
		known[questions[i].ID] = true
	}

	score := 0
	for i := range answers {
		if answers[i].IsCorrect && known[answers[i].QuestionID] {
			score++
		}
	}
	return score, len(questions), nil
}

// logActivity appends an activity entry, best-effort.
func (s *PlayService) logActivity(userID uint, activityType, details string) {
	if s.activityRepo == nil {
		return
	}
	err := s.activityRepo.Create(&entity.ActivityLog{
		UserID:          userID,
		ActivityType:    activityType,
		ActivityDetails: details,
	})
	if err != nil {
		log.Printf("[PlayService] Failed to log activity %q for user #%d: %v", activityType, userID, err)
	}
}

// notifyOwner pushes a quiz_played event to the quiz owner, best-effort.
// Owners are not notified about their own play-throughs.
func (s *PlayService) notifyOwner(playerID uint, quiz *entity.Quiz, score, total int) {
	if s.notifier == nil || quiz.UserID == playerID {
		return
	}

	username := "Unknown"
	if s.userRepo != nil {
		if player, err := s.userRepo.GetByID(playerID); err == nil {
			username = player.Username
		}
	}

	s.notifier.NotifyQuizPlayed(quiz.UserID, QuizPlayedNotification{
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		Username:       username,
		Score:          score,
		TotalQuestions: total,
	})
}

// displayedAnswer renders the user's stored answer for the results view:
// option text for multiple-choice (the raw submission is an option id),
// True/False labels for booleans, the raw text otherwise.
func displayedAnswer(q *entity.Question, a *entity.UserAnswer) string {
	switch q.Type {
	case entity.QuestionTypeMultipleChoice:
		if a.AnswerID != nil {
			if opt := q.OptionByID(*a.AnswerID); opt != nil {
				return opt.Text
			}
		}
	case entity.QuestionTypeTrueFalse:
		if a.AnswerText == "true" {
			return entity.TrueLabel
		}
		if a.AnswerText == "false" {
			return entity.FalseLabel
		}
	}
	return a.AnswerText
}

func verdictWord(isCorrect bool) string {
	if isCorrect {
		return "Correct"
	}
	return "Incorrect"
}

func isValidJoinCode(code string) bool {
	if len(code) != entity.JoinCodeLength {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func joinCodeCacheKey(code string) string {
	return "quiz:code:" + code
}
