package models

// Role distinguishes managers, who see and edit every report, from employees.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// Employee is a known account. PasswordHash holds a bcrypt hash.
type Employee struct {
	ID           string `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	Username     string `json:"username" bson:"username" gorm:"size:128;uniqueIndex"`
	Name         string `json:"name" bson:"name"`
	Role         Role   `json:"role" bson:"role" gorm:"size:16"`
	PasswordHash string `json:"passwordHash" bson:"password_hash"`
}

// Identity is the authenticated caller as seen by services and clients.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Identity strips credentials from the employee record.
func (e Employee) Identity() Identity {
	return Identity{ID: e.ID, Name: e.Name, Role: e.Role}
}

// IsManager reports whether the caller holds manager privileges.
func (i Identity) IsManager() bool {
	return i.Role == RoleManager
}

// FindEmployee looks up an employee by id.
func FindEmployee(employees []Employee, id string) (Employee, bool) {
	for _, e := range employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}
