package models

// User is the directory view of a user as served by the external user
// service. Only the fields the order workflow needs are mapped.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
