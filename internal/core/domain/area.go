package domain

import "time"

// Area is a physical point of sale. It is the tenant boundary: products,
// ledger entries, cash accounts, invoices and procurement documents all hang
// off one area and are cascade-deleted with it.
type Area struct {
	AreaID   string `json:"areaID"`
	Name     string `json:"name"`
	Location string `json:"location"`
	AuditFields
}

// User is the authenticated actor seen by the core. Identity management is
// owned by the auth boundary; the core only records user ids in audit fields.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`

	// Refresh token state, stored hashed. Nil expiry means no token issued.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
}

// Employee is the staff member who physically initiated an operation
// (may or may not have a user account of their own).
type Employee struct {
	EmployeeID string `json:"employeeID"`
	AreaID     string `json:"areaID"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	AuditFields
}
