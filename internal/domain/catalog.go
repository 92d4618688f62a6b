package domain

// Role represents a user role as issued by the auth boundary
type Role string

const (
	RoleStudent    Role = "student"
	RoleTutor      Role = "tutor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superAdmin"
)

// IsAdmin reports whether the role carries the admin capability
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is the read-only projection of a user consumed by the booking core.
// User management itself lives outside this service.
type User struct {
	ID            int64
	Role          Role
	AverageRating *float64
	ReviewCount   int
}

// Modality describes how a tutoring service is delivered
type Modality string

const (
	ModalityInPerson Modality = "in_person"
	ModalityVirtual  Modality = "virtual"
	ModalityBoth     Modality = "both"
)

// SupportsVirtual reports whether the modality includes virtual delivery
func (m Modality) SupportsVirtual() bool {
	return m == ModalityVirtual || m == ModalityBoth
}

// TutoringService is the read-only projection of a tutor's listing
type TutoringService struct {
	ID        int64
	TutorID   int64
	SubjectID int64
	Price     float64
	Modality  Modality
	Active    bool
}
