package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ekurt/studentdir/internal/app/models"
	"github.com/ekurt/studentdir/internal/app/repositories"
)

// sampleStudents is the demo roster the admin UI ships with.
var sampleStudents = []models.Student{
	{
		FirstName:      "Marie",
		LastName:       "Laurent",
		Email:          "marie.laurent@universite.fr",
		Phone:          "+33 6 12 34 56 78",
		Program:        "Informatique",
		Year:           3,
		Status:         models.StatusActive,
		EnrollmentDate: "2022-09-01",
	},
	{
		FirstName:      "Thomas",
		LastName:       "Bernard",
		Email:          "thomas.bernard@universite.fr",
		Phone:          "+33 6 98 76 54 32",
		Program:        "Commerce",
		Year:           2,
		Status:         models.StatusActive,
		EnrollmentDate: "2023-09-01",
	},
	{
		FirstName:      "Sophie",
		LastName:       "Martin",
		Email:          "sophie.martin@universite.fr",
		Phone:          "+33 6 45 67 89 01",
		Program:        "Médecine",
		Year:           5,
		Status:         models.StatusGraduated,
		EnrollmentDate: "2019-09-01",
	},
}

// CreateDefaultData inserts the sample roster when the directory is empty.
// Seeding problems are reported to the caller but are not fatal to startup.
func CreateDefaultData(ctx context.Context, studentRepo *repositories.StudentRepository, lgr zerolog.Logger) error {
	existing, err := studentRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing students before seeding: %w", err)
	}
	if len(existing) > 0 {
		lgr.Debug().Int("count", len(existing)).Msg("Directory not empty, skipping seed")
		return nil
	}

	lgr.Info().Msg("Seeding sample students...")
	for i := range sampleStudents {
		student := sampleStudents[i]
		if _, err := studentRepo.Create(ctx, &student); err != nil {
			return fmt.Errorf("failed to seed student %s %s: %w", student.FirstName, student.LastName, err)
		}
	}
	lgr.Info().Int("count", len(sampleStudents)).Msg("Sample students seeded")

	return nil
}
