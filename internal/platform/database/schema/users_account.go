package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table            string
	ID               string
	Username         string
	Email            string
	FullName         string
	Password         string
	AvatarURL        string
	CoverImageURL    string
	RefreshTokenHash string
	CreatedAt        string
	UpdatedAt        string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:            "users.account",
	ID:               "id",
	Username:         "username",
	Email:            "email",
	FullName:         "fullname",
	Password:         "passwordhash",
	AvatarURL:        "avatarurl",
	CoverImageURL:    "coverimageurl",
	RefreshTokenHash: "refreshtokenhash",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

// PublicColumns returns the columns safe to project into any response.
// It never includes Password or RefreshTokenHash.
func (t UserAccountTable) PublicColumns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.FullName, t.AvatarURL, t.CoverImageURL, t.CreatedAt, t.UpdatedAt,
	}
}
