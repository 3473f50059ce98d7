package schema

// RefAccountTable represents the 'users.account' table
type RefAccountTable struct {
	Table      string
	ID         string
	Username   string
	Email      string
	FirstName  string
	LastName   string
	Bio        string
	Role       string
	IsStaff    string
	IsActive   string
	DateJoined string
	UpdatedAt  string
}

// RefAccount is the schema definition for users.account
var RefAccount = RefAccountTable{
	Table:      "users.account",
	ID:         "id",
	Username:   "username",
	Email:      "email",
	FirstName:  "firstname",
	LastName:   "lastname",
	Bio:        "bio",
	Role:       "role",
	IsStaff:    "isstaff",
	IsActive:   "isactive",
	DateJoined: "datejoined",
	UpdatedAt:  "updatedat",
}

func (t RefAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.FirstName, t.LastName, t.Bio, t.Role, t.IsStaff, t.IsActive, t.DateJoined, t.UpdatedAt}
}
