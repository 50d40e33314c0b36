package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ekurt/studentdir/internal/app/models"
	"github.com/ekurt/studentdir/internal/pkg/apperrors"
	"github.com/ekurt/studentdir/internal/pkg/logger"
	"github.com/ekurt/studentdir/internal/store"
)

// StudentRepository adapts student record operations onto the keyed document
// collection. It owns the identifier scheme, the creation timestamp and the
// merge semantics of replace-style updates.
type StudentRepository struct {
	collection store.Collection
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(collection store.Collection) *StudentRepository {
	return &StudentRepository{collection: collection}
}

// ListAll returns every student record, ordered by enrollmentDate descending.
// The ordering is applied here rather than pushed into the store so that every
// collection driver behaves identically.
func (r *StudentRepository) ListAll(ctx context.Context) ([]*models.Student, error) {
	docs, err := r.collection.Scan(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error scanning student collection")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	students := make([]*models.Student, 0, len(docs))
	for _, doc := range docs {
		student, err := documentToStudent(doc)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	sort.SliceStable(students, func(i, j int) bool {
		return students[i].EnrollmentDate > students[j].EnrollmentDate
	})

	return students, nil
}

// GetByID returns the record stored under id. Absence is a normal outcome and
// is reported through the second return value.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, bool, error) {
	doc, found, err := r.collection.Read(ctx, id)
	if err != nil {
		logger.Error().Err(err).Str("id", id).Msg("Error reading student")
		return nil, false, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	if !found {
		return nil, false, nil
	}

	student, err := documentToStudent(doc)
	if err != nil {
		return nil, false, err
	}
	return student, true, nil
}

// Create persists a new record. When the caller supplies no id one is
// generated from the current time plus a random suffix, which makes collisions
// negligible in practice. The creation timestamp is stamped here.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	stored := *student
	if stored.ID == "" {
		stored.ID = newStudentID()
	}
	stored.Timestamp = time.Now().Unix()

	doc, err := studentToDocument(&stored)
	if err != nil {
		return nil, err
	}

	if err := r.collection.Put(ctx, stored.ID, doc); err != nil {
		logger.Error().Err(err).Str("id", stored.ID).Msg("Error creating student")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	return &stored, nil
}

// Replace shallow-merges the given fields over the existing record and
// persists the result. Fields absent from the partial keep their stored value;
// the id can never change, even if the partial tries to supply one.
func (r *StudentRepository) Replace(ctx context.Context, id string, fields map[string]interface{}) (*models.Student, error) {
	doc, found, err := r.collection.Read(ctx, id)
	if err != nil {
		logger.Error().Err(err).Str("id", id).Msg("Error reading student for replace")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	if !found {
		return nil, apperrors.ErrStudentNotFound
	}

	merged := doc.Clone()
	for k, v := range fields {
		merged[k] = v
	}
	merged["id"] = id

	if err := r.collection.Put(ctx, id, merged); err != nil {
		logger.Error().Err(err).Str("id", id).Msg("Error replacing student")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	return documentToStudent(merged)
}

// Delete removes the record stored under id.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.collection.Delete(ctx, id)
	if err != nil {
		logger.Error().Err(err).Str("id", id).Msg("Error deleting student")
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	if !removed {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// newStudentID builds a URL-safe identifier from a millisecond timestamp and a
// random suffix.
func newStudentID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("student-%d-%s", time.Now().UnixMilli(), suffix)
}

// studentToDocument and documentToStudent convert through JSON so the stored
// field names always match the wire names.
func studentToDocument(student *models.Student) (store.Document, error) {
	raw, err := json.Marshal(student)
	if err != nil {
		return nil, fmt.Errorf("failed to encode student: %w", err)
	}
	var doc store.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to build student document: %w", err)
	}
	return doc, nil
}

func documentToStudent(doc store.Document) (*models.Student, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode student document: %w", err)
	}
	student := &models.Student{}
	if err := json.Unmarshal(raw, student); err != nil {
		return nil, fmt.Errorf("failed to decode student document: %w", err)
	}
	return student, nil
}
