package domain

// User is the account entity. Optional profile fields are pointers: nil means
// the field was never supplied; a supplied empty string is a validation
// failure and is never stored.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	IsActive     bool
	Role         Role
	FirstName    *string
	LastName     *string
	PhoneNumber  *string
	AddressID    *int64
}
