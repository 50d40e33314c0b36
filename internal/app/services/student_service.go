package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ekurt/studentdir/internal/app/models"
	"github.com/ekurt/studentdir/internal/app/repositories"
	"github.com/ekurt/studentdir/internal/pkg/apperrors"
)

// StudentService defines the interface for student directory operations.
type StudentService interface {
	GetAll(ctx context.Context) ([]*models.Student, error)
	Search(ctx context.Context, query string) ([]*models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Student, error)
	Delete(ctx context.Context, id string) error
}

// studentServiceImpl implements the StudentService interface.
type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
}

// NewStudentService creates a new student service instance.
func NewStudentService(studentRepo *repositories.StudentRepository) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
	}
}

// validateStudent checks the required identity fields before anything touches
// storage. Whitespace-only values count as missing.
func (s *studentServiceImpl) validateStudent(student *models.Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}

	missing := []string{}
	if strings.TrimSpace(student.FirstName) == "" {
		missing = append(missing, "firstName")
	}
	if strings.TrimSpace(student.LastName) == "" {
		missing = append(missing, "lastName")
	}
	if strings.TrimSpace(student.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", apperrors.ErrValidationFailed, strings.Join(missing, ", "))
	}

	return nil
}

// GetAll returns the full directory, newest enrollment first.
func (s *studentServiceImpl) GetAll(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// Search returns the subset of the directory matching the free-text query as a
// case-insensitive substring of firstName, lastName, email or program. The
// store's native containment operator is case-sensitive, so the match runs
// here over the full set; at directory scale (hundreds to low thousands of
// records) that is a deliberate tradeoff.
func (s *studentServiceImpl) Search(ctx context.Context, query string) ([]*models.Student, error) {
	students, err := s.studentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return students, nil
	}

	matched := []*models.Student{}
	for _, student := range students {
		if matchesQuery(student, needle) {
			matched = append(matched, student)
		}
	}
	return matched, nil
}

// matchesQuery reports whether any searchable field contains the lowercased
// needle. Empty fields simply never match.
func matchesQuery(student *models.Student, needle string) bool {
	return strings.Contains(strings.ToLower(student.FirstName), needle) ||
		strings.Contains(strings.ToLower(student.LastName), needle) ||
		strings.Contains(strings.ToLower(student.Email), needle) ||
		strings.Contains(strings.ToLower(student.Program), needle)
}

// GetByID retrieves a student by id.
func (s *studentServiceImpl) GetByID(ctx context.Context, id string) (*models.Student, error) {
	student, found, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if !found {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

// Create validates and persists a new student record.
func (s *studentServiceImpl) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	if err := s.validateStudent(student); err != nil {
		return nil, err
	}

	created, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}
	return created, nil
}

// Update merges the provided fields over an existing record. Any status value
// may follow any other; no transition rules apply.
func (s *studentServiceImpl) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Student, error) {
	updated, err := s.studentRepo.Replace(ctx, id, fields)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	return updated, nil
}

// Delete removes a student record.
func (s *studentServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return err
		}
		return fmt.Errorf("error deleting student: %w", err)
	}
	return nil
}
