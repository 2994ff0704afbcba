package service

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
	"github.com/yourusername/quizverse-api/internal/domain/repository"
)

// ============================================================================
// Shared mocks for the service tests. One mock per repository interface,
// reused across the test files of this package.
// ============================================================================

// MockQuizRepo implements repository.QuizRepository.
type MockQuizRepo struct {
	mock.Mock
}

func (m *MockQuizRepo) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) GetByJoinCode(code string) (*entity.Quiz, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) ListPublic(limit, offset int) ([]entity.Quiz, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Quiz), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuizRepo) ListByOwner(userID uint) ([]repository.OwnedQuizRow, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.OwnedQuizRow), args.Error(1)
}

func (m *MockQuizRepo) AssignJoinCode(quizID uint, code string) error {
	args := m.Called(quizID, code)
	return args.Error(0)
}

func (m *MockQuizRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockQuestionRepo implements repository.QuestionRepository.
type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) GetByQuizID(quizID uint) ([]entity.Question, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) CountByQuizID(quizID uint) (int64, error) {
	args := m.Called(quizID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserAnswerRepo implements repository.UserAnswerRepository.
type MockUserAnswerRepo struct {
	mock.Mock
}

func (m *MockUserAnswerRepo) Upsert(answer *entity.UserAnswer) error {
	args := m.Called(answer)
	return args.Error(0)
}

func (m *MockUserAnswerRepo) GetByUserAndQuiz(userID, quizID uint) ([]entity.UserAnswer, error) {
	args := m.Called(userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserAnswer), args.Error(1)
}

// MockCompletionRepo implements repository.CompletionRepository.
type MockCompletionRepo struct {
	mock.Mock
}

func (m *MockCompletionRepo) Create(completion *entity.QuizCompletion) error {
	args := m.Called(completion)
	return args.Error(0)
}

func (m *MockCompletionRepo) ListByUser(userID uint, limit int) ([]repository.CompletionRow, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CompletionRow), args.Error(1)
}

func (m *MockCompletionRepo) ListForOwner(ownerID uint, limit int) ([]repository.OwnerNotificationRow, error) {
	args := m.Called(ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.OwnerNotificationRow), args.Error(1)
}

func (m *MockCompletionRepo) ListByQuiz(quizID uint) ([]repository.OwnerNotificationRow, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.OwnerNotificationRow), args.Error(1)
}

// MockActivityRepo implements repository.ActivityRepository.
type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Create(log *entity.ActivityLog) error {
	args := m.Called(log)
	return args.Error(0)
}

func (m *MockActivityRepo) ListByUserAndTypes(userID uint, types []string, limit int) ([]entity.ActivityLog, error) {
	args := m.Called(userID, types, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ActivityLog), args.Error(1)
}

// MockUserRepo implements repository.UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) UpdatePassword(userID uint, hashedPassword string) error {
	args := m.Called(userID, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCacheRepo implements repository.CacheRepository.
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepo) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepo) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepo) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

// MockNotifier implements Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyQuizPlayed(ownerID uint, n QuizPlayedNotification) {
	m.Called(ownerID, n)
}

// uintPtr is a small helper for option ids in expectations.
func uintPtr(v uint) *uint { return &v }
