package directory

import (
	"context"
	"testing"

	"github.com/ekurt/studentdir/pkg/client"
)

// fakeAPI is an in-memory stand-in for the directory API client.
type fakeAPI struct {
	students []client.Student
	getCalls int
}

func (f *fakeAPI) GetAll(ctx context.Context, search string) ([]client.Student, error) {
	f.getCalls++
	out := make([]client.Student, len(f.students))
	copy(out, f.students)
	return out, nil
}

func (f *fakeAPI) Create(ctx context.Context, form client.StudentForm) (*client.Student, error) {
	s := client.Student{
		ID:        "student-fake",
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Program:   form.Program,
		Year:      form.Year,
		Status:    form.Status,
	}
	f.students = append(f.students, s)
	return &s, nil
}

func (f *fakeAPI) Update(ctx context.Context, id string, patch client.StudentPatch) (*client.Student, error) {
	for i := range f.students {
		if f.students[i].ID == id {
			if patch.Status != nil {
				f.students[i].Status = *patch.Status
			}
			if patch.Year != nil {
				f.students[i].Year = *patch.Year
			}
			return &f.students[i], nil
		}
	}
	return nil, &client.APIError{StatusCode: 404, Message: "student not found"}
}

func (f *fakeAPI) Delete(ctx context.Context, id string) (*client.DeleteResult, error) {
	for i := range f.students {
		if f.students[i].ID == id {
			f.students = append(f.students[:i], f.students[i+1:]...)
			return &client.DeleteResult{Success: true, ID: id}, nil
		}
	}
	return nil, &client.APIError{StatusCode: 404, Message: "student not found"}
}

func roster() []client.Student {
	return []client.Student{
		{ID: "1", FirstName: "Marie", LastName: "Laurent", Email: "marie@universite.fr", Program: "Informatique", Year: 3, Status: "active"},
		{ID: "2", FirstName: "Thomas", LastName: "Bernard", Email: "thomas@universite.fr", Program: "Commerce", Year: 2, Status: "active"},
		{ID: "3", FirstName: "Sophie", LastName: "Martin", Email: "sophie@universite.fr", Program: "Médecine", Year: 5, Status: "graduated"},
		{ID: "4", FirstName: "Luc", LastName: "Petit", Email: "luc@universite.fr", Program: "Informatique", Year: 3, Status: "inactive"},
	}
}

func TestStudents_FilterConjunction(t *testing.T) {
	api := &fakeAPI{students: roster()}
	d := New(api)
	ctx := context.Background()

	d.SetFilters(Filters{Status: "active", Program: "Informatique", Year: FilterAll})
	view, err := d.Students(ctx)
	if err != nil {
		t.Fatalf("students: %v", err)
	}
	if len(view) != 1 || view[0].FirstName != "Marie" {
		t.Fatalf("expected only Marie, got %d records", len(view))
	}

	d.SetFilters(NoFilters())
	view, err = d.Students(ctx)
	if err != nil {
		t.Fatalf("students: %v", err)
	}
	if len(view) != 4 {
		t.Fatalf("all-wildcard filters must return the full set, got %d", len(view))
	}
}

func TestStudents_YearFilterIsExact(t *testing.T) {
	api := &fakeAPI{students: roster()}
	d := New(api)

	d.SetFilters(Filters{Status: FilterAll, Program: FilterAll, Year: "3"})
	view, err := d.Students(context.Background())
	if err != nil {
		t.Fatalf("students: %v", err)
	}
	if len(view) != 2 {
		t.Fatalf("expected the two year-3 students, got %d", len(view))
	}
}

func TestStudents_SearchAndFiltersCombine(t *testing.T) {
	api := &fakeAPI{students: roster()}
	d := New(api)

	d.SetSearch("informatique")
	d.SetFilters(Filters{Status: "inactive", Program: FilterAll, Year: FilterAll})
	view, err := d.Students(context.Background())
	if err != nil {
		t.Fatalf("students: %v", err)
	}
	if len(view) != 1 || view[0].FirstName != "Luc" {
		t.Fatalf("expected only Luc, got %+v", view)
	}
}

func TestFilters_ActiveCount(t *testing.T) {
	if got := NoFilters().ActiveCount(); got != 0 {
		t.Fatalf("expected 0 active filters, got %d", got)
	}
	f := Filters{Status: "active", Program: FilterAll, Year: "2"}
	if got := f.ActiveCount(); got != 2 {
		t.Fatalf("expected 2 active filters, got %d", got)
	}
}

func TestStats(t *testing.T) {
	api := &fakeAPI{students: roster()}
	d := New(api)

	stats, err := d.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 4 || stats.Active != 2 || stats.Inactive != 1 || stats.Graduated != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.ByProgram["Informatique"] != 2 || stats.ByProgram["Commerce"] != 1 {
		t.Fatalf("unexpected program counts: %v", stats.ByProgram)
	}
	// 3 of 4 students are active or graduated.
	if stats.SuccessRate != 75 {
		t.Fatalf("unexpected success rate: %v", stats.SuccessRate)
	}
}

func TestStats_EmptyDirectory(t *testing.T) {
	d := New(&fakeAPI{})

	stats, err := d.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 0 || stats.SuccessRate != 0 {
		t.Fatalf("unexpected stats for empty directory: %+v", stats)
	}
}

func TestCacheServesRepeatedReads(t *testing.T) {
	api := &fakeAPI{students: roster()}
	d := New(api)
	ctx := context.Background()

	if _, err := d.Students(ctx); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, err := d.Stats(ctx); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if _, err := d.Students(ctx); err != nil {
		t.Fatalf("second read: %v", err)
	}

	if api.getCalls != 1 {
		t.Fatalf("expected a single fetch within the staleness window, got %d", api.getCalls)
	}
}

func TestMutationsInvalidateCache(t *testing.T) {
	api := &fakeAPI{students: roster()}
	d := New(api)
	ctx := context.Background()

	view, err := d.Students(ctx)
	if err != nil {
		t.Fatalf("initial read: %v", err)
	}
	if len(view) != 4 {
		t.Fatalf("expected 4 records, got %d", len(view))
	}

	if _, err := d.CreateStudent(ctx, client.StudentForm{
		FirstName: "Nina",
		LastName:  "Robert",
		Email:     "nina@universite.fr",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	view, err = d.Students(ctx)
	if err != nil {
		t.Fatalf("read after create: %v", err)
	}
	if len(view) != 5 {
		t.Fatalf("create did not invalidate the cache: %d records", len(view))
	}

	if _, err := d.DeleteStudent(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	view, err = d.Students(ctx)
	if err != nil {
		t.Fatalf("read after delete: %v", err)
	}
	if len(view) != 4 {
		t.Fatalf("delete did not invalidate the cache: %d records", len(view))
	}
}

func TestPrograms_MergesSuggestedAndObserved(t *testing.T) {
	api := &fakeAPI{students: []client.Student{
		{ID: "1", FirstName: "Ana", Program: "Astrophysique"},
		{ID: "2", FirstName: "Bob", Program: "Informatique"},
	}}
	d := New(api)

	programs, err := d.Programs(context.Background())
	if err != nil {
		t.Fatalf("programs: %v", err)
	}

	seen := map[string]bool{}
	for _, p := range programs {
		if seen[p] {
			t.Fatalf("duplicate program %q", p)
		}
		seen[p] = true
	}
	if !seen["Astrophysique"] {
		t.Fatal("observed program missing")
	}
	if !seen["Informatique"] || !seen["Droit"] {
		t.Fatal("suggested programs missing")
	}
}
