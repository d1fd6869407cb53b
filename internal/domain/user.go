package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a caller known to the service. Users are provisioned out of band.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      UserRole
	CreatedAt time.Time
}
