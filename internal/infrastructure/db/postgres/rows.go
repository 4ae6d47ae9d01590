package postgres

// Scan targets for the users table. Optional columns are pointers so NULL
// survives the round trip.
type userRow struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	IsActive     bool
	Role         string
	FirstName    *string
	LastName     *string
	PhoneNumber  *string
	AddressID    *int64
}

type todoRow struct {
	ID          int64
	Title       string
	Description string
	Priority    int
	Complete    bool
	OwnerID     int64

	// owner projection from the join
	OwnerEmail    string
	OwnerUsername string
}

type addressRow struct {
	ID         int64
	City       string
	State      string
	Country    string
	PostalCode *string
}
