package project

import (
	"time"

	"github.com/google/uuid"

	id "workhive/pkg/domain"
)

// Project is a unit of work owned by one organization. Checkers that hold
// project-scoped data (expenses, documents) scan the organization's projects
// through this module.
type Project struct {
	ID             id.ProjectID
	OrganizationID id.OrganizationID
	Name           string
	CreatedAt      time.Time
}

type Task struct {
	ID        uuid.UUID
	ProjectID id.ProjectID
	Title     string
	Status    string
	CreatedAt time.Time
}
