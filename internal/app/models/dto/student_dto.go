package dto

import "github.com/ekurt/studentdir/internal/app/models"

// CreateStudentRequest is the POST /students body. Only the three identity
// fields are required; everything else is taken as-is. A client-supplied id is
// honored, otherwise the store generates one.
type CreateStudentRequest struct {
	ID             string               `json:"id"`
	FirstName      string               `json:"firstName" binding:"required"`
	LastName       string               `json:"lastName" binding:"required"`
	Email          string               `json:"email" binding:"required"`
	Phone          string               `json:"phone"`
	Program        string               `json:"program"`
	Year           int                  `json:"year"`
	Status         models.StudentStatus `json:"status"`
	EnrollmentDate string               `json:"enrollmentDate"`
	Avatar         string               `json:"avatar"`
}

// UpdateStudentRequest is the PUT /students/{id} body. Every field is
// optional; absent fields keep their stored value. A supplied id is ignored,
// the path id always wins.
type UpdateStudentRequest struct {
	FirstName      *string               `json:"firstName"`
	LastName       *string               `json:"lastName"`
	Email          *string               `json:"email"`
	Phone          *string               `json:"phone"`
	Program        *string               `json:"program"`
	Year           *int                  `json:"year"`
	Status         *models.StudentStatus `json:"status"`
	EnrollmentDate *string               `json:"enrollmentDate"`
	Avatar         *string               `json:"avatar"`
}

// Fields returns only the fields that were present in the request body, keyed
// by their wire names, ready to be merged over the stored document.
func (r *UpdateStudentRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.FirstName != nil {
		fields["firstName"] = *r.FirstName
	}
	if r.LastName != nil {
		fields["lastName"] = *r.LastName
	}
	if r.Email != nil {
		fields["email"] = *r.Email
	}
	if r.Phone != nil {
		fields["phone"] = *r.Phone
	}
	if r.Program != nil {
		fields["program"] = *r.Program
	}
	if r.Year != nil {
		fields["year"] = *r.Year
	}
	if r.Status != nil {
		fields["status"] = string(*r.Status)
	}
	if r.EnrollmentDate != nil {
		fields["enrollmentDate"] = *r.EnrollmentDate
	}
	if r.Avatar != nil {
		fields["avatar"] = *r.Avatar
	}
	return fields
}
