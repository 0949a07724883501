package catalog

import (
	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Student is the billing-relevant view of an enrolled student. Enrollment
// management itself lives outside this engine; fee assignment only needs the
// identity, the current class and active/inactive status.
type Student struct {
	shared.TenantAggregateRoot
	FirstName string
	LastName  string
	Number    string // school-assigned student number
	ClassID   *uuid.UUID
	IsActive  bool
}

// NewStudent creates an active student record.
func NewStudent(tenantID uuid.UUID, firstName, lastName, number string, classID *uuid.UUID) (*Student, error) {
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student name cannot be empty")
	}

	return &Student{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FirstName:           firstName,
		LastName:            lastName,
		Number:              number,
		ClassID:             classID,
		IsActive:            true,
	}, nil
}

// FullName returns the student's display name
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
