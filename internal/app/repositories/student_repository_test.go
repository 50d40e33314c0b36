package repositories

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ekurt/studentdir/internal/app/models"
	"github.com/ekurt/studentdir/internal/pkg/apperrors"
	"github.com/ekurt/studentdir/internal/store"
)

func newTestRepo(t *testing.T) *StudentRepository {
	t.Helper()
	return NewStudentRepository(store.NewMemoryCollection())
}

func sampleStudent() *models.Student {
	return &models.Student{
		FirstName:      "Marie",
		LastName:       "Laurent",
		Email:          "marie.laurent@universite.fr",
		Phone:          "+33 6 12 34 56 78",
		Program:        "Informatique",
		Year:           3,
		Status:         models.StatusActive,
		EnrollmentDate: "2022-09-01",
	}
}

func TestCreate_AssignsIDAndTimestamp(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, sampleStudent())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}
	if !strings.HasPrefix(created.ID, "student-") {
		t.Fatalf("unexpected id format: %q", created.ID)
	}
	if created.Timestamp == 0 {
		t.Fatal("expected a creation timestamp")
	}
	if created.FirstName != "Marie" || created.Email != "marie.laurent@universite.fr" {
		t.Fatalf("input fields not preserved: %+v", created)
	}
}

func TestCreate_SameInputDifferentIDs(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first, err := r.Create(ctx, sampleStudent())
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := r.Create(ctx, sampleStudent())
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("two creates produced the same id %q", first.ID)
	}
}

func TestCreate_HonorsCallerSuppliedID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	s := sampleStudent()
	s.ID = "custom-id"
	created, err := r.Create(ctx, s)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "custom-id" {
		t.Fatalf("expected caller id to be kept, got %q", created.ID)
	}
}

func TestGetByID_AbsenceIsNotAnError(t *testing.T) {
	r := newTestRepo(t)

	student, found, err := r.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found || student != nil {
		t.Fatalf("expected absence, got %+v", student)
	}
}

func TestReplace_MergesOnlyProvidedFields(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, sampleStudent())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := r.Replace(ctx, created.ID, map[string]interface{}{
		"status": "graduated",
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	if updated.Status != models.StatusGraduated {
		t.Fatalf("status not updated: %q", updated.Status)
	}
	if updated.FirstName != created.FirstName ||
		updated.LastName != created.LastName ||
		updated.Email != created.Email ||
		updated.Phone != created.Phone ||
		updated.Program != created.Program ||
		updated.Year != created.Year ||
		updated.EnrollmentDate != created.EnrollmentDate {
		t.Fatalf("unrelated fields changed: %+v vs %+v", updated, created)
	}
	if updated.ID != created.ID {
		t.Fatalf("id changed from %q to %q", created.ID, updated.ID)
	}
}

func TestReplace_IDCannotBeOverwritten(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, sampleStudent())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := r.Replace(ctx, created.ID, map[string]interface{}{
		"id":   "hijacked",
		"year": 4,
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("id changed to %q", updated.ID)
	}
	if updated.Year != 4 {
		t.Fatalf("year not updated: %d", updated.Year)
	}

	// The original id must still resolve.
	_, found, err := r.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("record no longer reachable under its original id")
	}
}

func TestReplace_NotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.Replace(context.Background(), "missing", map[string]interface{}{"year": 2})
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestDelete_NotFoundLeavesOthersIntact(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, sampleStudent())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := r.Delete(ctx, "missing"); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}

	all, err := r.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 || all[0].ID != created.ID {
		t.Fatalf("unrelated record affected: %+v", all)
	}
}

func TestDelete_RemovesRecord(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, sampleStudent())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := r.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, found, err := r.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("record still present after delete")
	}
}

func TestListAll_OrderedByEnrollmentDateDescending(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	dates := []string{"2019-09-01", "2023-09-01", "2022-09-01"}
	for _, date := range dates {
		s := sampleStudent()
		s.EnrollmentDate = date
		if _, err := r.Create(ctx, s); err != nil {
			t.Fatalf("create %s: %v", date, err)
		}
	}

	all, err := r.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}

	want := []string{"2023-09-01", "2022-09-01", "2019-09-01"}
	for i, s := range all {
		if s.EnrollmentDate != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, s.EnrollmentDate, want[i])
		}
	}
}
