// Package directory holds the client-side view state of the student
// directory: the search text, the active filters and the derived statistics.
// It is the single source of truth over the API client, with a short
// staleness window that is explicitly invalidated after every mutation.
package directory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ekurt/studentdir/pkg/client"
)

// FilterAll is the wildcard value that disables a filter criterion.
const FilterAll = "all"

// cacheKey is the single cache entry holding the fetched directory.
const cacheKey = "students"

// SuggestedPrograms is the program list offered by the admin UI when creating
// a student. It is open-ended; the directory may contain other values.
var SuggestedPrograms = []string{
	"Informatique",
	"Génie Civil",
	"Commerce",
	"Médecine",
	"Droit",
	"Sciences Politiques",
	"Architecture",
	"Design",
}

// API is the slice of the directory client this package needs.
type API interface {
	GetAll(ctx context.Context, search string) ([]client.Student, error)
	Create(ctx context.Context, form client.StudentForm) (*client.Student, error)
	Update(ctx context.Context, id string, patch client.StudentPatch) (*client.Student, error)
	Delete(ctx context.Context, id string) (*client.DeleteResult, error)
}

// Filters is the conjunctive narrowing applied to the directory view. A
// criterion set to FilterAll is inactive; a record passes only when it matches
// every active criterion exactly.
type Filters struct {
	Status  string
	Program string
	Year    string
}

// NoFilters returns the all-wildcard filter set.
func NoFilters() Filters {
	return Filters{Status: FilterAll, Program: FilterAll, Year: FilterAll}
}

// ActiveCount returns how many criteria are set to something other than
// FilterAll.
func (f Filters) ActiveCount() int {
	count := 0
	for _, v := range []string{f.Status, f.Program, f.Year} {
		if v != FilterAll && v != "" {
			count++
		}
	}
	return count
}

func (f Filters) matches(s client.Student) bool {
	if f.Status != "" && f.Status != FilterAll && s.Status != f.Status {
		return false
	}
	if f.Program != "" && f.Program != FilterAll && s.Program != f.Program {
		return false
	}
	if f.Year != "" && f.Year != FilterAll && strconv.Itoa(s.Year) != f.Year {
		return false
	}
	return true
}

// Stats are the aggregate numbers shown on the dashboard.
type Stats struct {
	Total     int
	Active    int
	Inactive  int
	Graduated int
	ByProgram map[string]int

	// SuccessRate is the share of students in good standing (active or
	// graduated) over the whole directory, in percent. Zero when the
	// directory is empty.
	SuccessRate float64
}

// Directory is the view state over the student directory.
type Directory struct {
	api   API
	cache *gocache.Cache

	mu      sync.Mutex
	search  string
	filters Filters
}

// Option customizes a Directory.
type Option func(*Directory)

// WithCacheTTL overrides the default 30 second staleness window.
func WithCacheTTL(ttl time.Duration) Option {
	return func(d *Directory) {
		d.cache = gocache.New(ttl, 2*ttl)
	}
}

// New creates a Directory over the given API client.
func New(api API, opts ...Option) *Directory {
	d := &Directory{
		api:     api,
		cache:   gocache.New(30*time.Second, time.Minute),
		filters: NoFilters(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetSearch sets the free-text search applied to the view.
func (d *Directory) SetSearch(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.search = query
}

// SetFilters replaces the active filter set.
func (d *Directory) SetFilters(f Filters) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters = f
}

// ResetFilters sets every criterion back to FilterAll.
func (d *Directory) ResetFilters() {
	d.SetFilters(NoFilters())
}

// Filters returns the currently active filter set.
func (d *Directory) Filters() Filters {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filters
}

// Invalidate drops the cached directory; the next read refetches.
func (d *Directory) Invalidate() {
	d.cache.Delete(cacheKey)
}

// load returns the full directory, served from cache within the staleness
// window.
func (d *Directory) load(ctx context.Context) ([]client.Student, error) {
	if cached, ok := d.cache.Get(cacheKey); ok {
		return cached.([]client.Student), nil
	}

	students, err := d.api.GetAll(ctx, "")
	if err != nil {
		return nil, err
	}
	d.cache.Set(cacheKey, students, gocache.DefaultExpiration)
	return students, nil
}

// Students returns the directory view: the full set narrowed by the search
// text and the filter conjunction. Search matches firstName, lastName, email
// or program as a case-insensitive substring; empty search matches everything.
func (d *Directory) Students(ctx context.Context) ([]client.Student, error) {
	students, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	search := strings.ToLower(strings.TrimSpace(d.search))
	filters := d.filters
	d.mu.Unlock()

	view := make([]client.Student, 0, len(students))
	for _, s := range students {
		if search != "" && !matchesSearch(s, search) {
			continue
		}
		if !filters.matches(s) {
			continue
		}
		view = append(view, s)
	}
	return view, nil
}

func matchesSearch(s client.Student, needle string) bool {
	return strings.Contains(strings.ToLower(s.FirstName), needle) ||
		strings.Contains(strings.ToLower(s.LastName), needle) ||
		strings.Contains(strings.ToLower(s.Email), needle) ||
		strings.Contains(strings.ToLower(s.Program), needle)
}

// Stats computes the aggregate numbers over the full directory, ignoring the
// active search and filters.
func (d *Directory) Stats(ctx context.Context) (*Stats, error) {
	students, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Total:     len(students),
		ByProgram: make(map[string]int),
	}
	for _, s := range students {
		switch s.Status {
		case "active":
			stats.Active++
		case "inactive":
			stats.Inactive++
		case "graduated":
			stats.Graduated++
		}
		if s.Program != "" {
			stats.ByProgram[s.Program]++
		}
	}
	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Active+stats.Graduated) / float64(stats.Total) * 100
	}
	return stats, nil
}

// Programs returns the suggested program list merged with every program
// actually present in the directory, sorted and without duplicates.
func (d *Directory) Programs(ctx context.Context) ([]string, error) {
	students, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(SuggestedPrograms))
	programs := make([]string, 0, len(SuggestedPrograms))
	for _, p := range SuggestedPrograms {
		seen[p] = struct{}{}
		programs = append(programs, p)
	}
	for _, s := range students {
		if s.Program == "" {
			continue
		}
		if _, ok := seen[s.Program]; !ok {
			seen[s.Program] = struct{}{}
			programs = append(programs, s.Program)
		}
	}

	sort.Strings(programs)
	return programs, nil
}

// CreateStudent adds a record and invalidates the cached view.
func (d *Directory) CreateStudent(ctx context.Context, form client.StudentForm) (*client.Student, error) {
	created, err := d.api.Create(ctx, form)
	if err != nil {
		return nil, err
	}
	d.Invalidate()
	return created, nil
}

// UpdateStudent merges a patch over a record and invalidates the cached view.
func (d *Directory) UpdateStudent(ctx context.Context, id string, patch client.StudentPatch) (*client.Student, error) {
	updated, err := d.api.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	d.Invalidate()
	return updated, nil
}

// DeleteStudent removes a record and invalidates the cached view.
func (d *Directory) DeleteStudent(ctx context.Context, id string) (*client.DeleteResult, error) {
	result, err := d.api.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Invalidate()
	return result, nil
}
