package domain

const (
	PriorityMin = 1
	PriorityMax = 5
)

// Todo always belongs to exactly one user; OwnerID is never zero for a
// persisted row.
type Todo struct {
	ID          int64
	Title       string
	Description string
	Priority    int
	Complete    bool
	OwnerID     int64
}

// UserSummary is the owner projection embedded in todo reads.
type UserSummary struct {
	ID       int64
	Email    string
	Username string
}

// TodoWithOwner pairs a todo with its owner summary, mirroring the join the
// read queries perform.
type TodoWithOwner struct {
	Todo  Todo
	Owner UserSummary
}

// Address is referenced by at most one user via user.address_id.
type Address struct {
	ID         int64
	City       string
	State      string
	Country    string
	PostalCode *string
}
