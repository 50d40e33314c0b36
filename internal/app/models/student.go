package models

// StudentStatus is the enrollment status tag of a student record. No state
// machine is enforced: any status may follow any other.
type StudentStatus string

const (
	StatusActive    StudentStatus = "active"
	StatusInactive  StudentStatus = "inactive"
	StatusGraduated StudentStatus = "graduated"
)

// Valid reports whether s is one of the known status tags.
func (s StudentStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusGraduated:
		return true
	}
	return false
}

// Student is the single record type of the directory. The id doubles as the
// document key and the partition key in the record store and never changes
// after creation.
type Student struct {
	ID             string        `json:"id"`
	FirstName      string        `json:"firstName"`
	LastName       string        `json:"lastName"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone,omitempty"`
	Program        string        `json:"program,omitempty"`
	Year           int           `json:"year,omitempty"`
	Status         StudentStatus `json:"status,omitempty"`
	EnrollmentDate string        `json:"enrollmentDate,omitempty"`
	Avatar         string        `json:"avatar,omitempty"`

	// Timestamp is the store-managed creation stamp in unix seconds.
	Timestamp int64 `json:"_ts,omitempty"`
}
