package repository

import (
	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestRepository интерфейс для результатов тестов
type TestRepository interface {
	CreateResult(tx *gorm.DB, result *models.TestResult) error
	CreateAnswer(tx *gorm.DB, answer *models.TestUserAnswer) error
	GetResultByID(id uuid.UUID) (*models.TestResult, error)
	GetLatestResult(testID, studentID uuid.UUID) (*models.TestResult, error)
	CountResults(testID, studentID uuid.UUID) (int64, error)
	CountFailed(testID, studentID uuid.UUID) (int64, error)
	CountPassedByStudent(studentID uuid.UUID) (int64, error)
	CountDistinctTestsAttemptedInCourse(studentID, courseID uuid.UUID) (int64, error)
	ClaimCoinAward(tx *gorm.DB, resultID uuid.UUID) (bool, error)
}

// testRepository реализация репозитория результатов тестов
type testRepository struct {
	db *gorm.DB
}

// NewTestRepository создает новый репозиторий результатов тестов
func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

// CreateResult создает результат попытки (в рамках переданной транзакции)
func (r *testRepository) CreateResult(tx *gorm.DB, result *models.TestResult) error {
	if tx == nil {
		tx = r.db
	}
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	return tx.Create(result).Error
}

// CreateAnswer сохраняет снимок ответа на вопрос
func (r *testRepository) CreateAnswer(tx *gorm.DB, answer *models.TestUserAnswer) error {
	if tx == nil {
		tx = r.db
	}
	if answer.ID == uuid.Nil {
		answer.ID = uuid.New()
	}
	return tx.Create(answer).Error
}

// GetResultByID получает результат по ID вместе с ответами
func (r *testRepository) GetResultByID(id uuid.UUID) (*models.TestResult, error) {
	var result models.TestResult
	err := r.db.Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		First(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLatestResult получает последнюю попытку ученика по тесту
func (r *testRepository) GetLatestResult(testID, studentID uuid.UUID) (*models.TestResult, error) {
	var result models.TestResult
	err := r.db.Where("test_id = ? AND student_id = ?", testID, studentID).
		Order("created_at DESC").First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CountResults считает попытки ученика по тесту
func (r *testRepository) CountResults(testID, studentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.TestResult{}).
		Where("test_id = ? AND student_id = ?", testID, studentID).
		Count(&count).Error
	return count, err
}

// CountFailed считает неудачные попытки ученика по тесту
func (r *testRepository) CountFailed(testID, studentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.TestResult{}).
		Where("test_id = ? AND student_id = ? AND passed = ?", testID, studentID, false).
		Count(&count).Error
	return count, err
}

// CountPassedByStudent считает все сданные учеником тесты
func (r *testRepository) CountPassedByStudent(studentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.TestResult{}).
		Where("student_id = ? AND passed = ?", studentID, true).
		Count(&count).Error
	return count, err
}

// CountDistinctTestsAttemptedInCourse считает тесты курса, по которым есть хотя бы одна попытка
func (r *testRepository) CountDistinctTestsAttemptedInCourse(studentID, courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.TestResult{}).
		Distinct("test_results.test_id").
		Joins("JOIN tests ON tests.id = test_results.test_id").
		Joins("JOIN lessons ON lessons.id = tests.lesson_id").
		Where("test_results.student_id = ? AND lessons.course_id = ?", studentID, courseID).
		Count(&count).Error
	return count, err
}

// ClaimCoinAward атомарно взводит флаг выплаты; возвращает true, если флаг
// был свободен. Проверка и установка в одном UPDATE исключают двойную выплату
// при конкурирующих запросах.
func (r *testRepository) ClaimCoinAward(tx *gorm.DB, resultID uuid.UUID) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&models.TestResult{}).
		Where("id = ? AND coin_awarded = ?", resultID, false).
		Update("coin_awarded", true)
	return res.RowsAffected > 0, res.Error
}
