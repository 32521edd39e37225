package domain

// Role distinguishes the two account kinds the platform knows about.
type Role string

const (
	RoleClient   Role = "Client"
	RoleBusiness Role = "Business"
)

// User models the authenticated actor as returned by the identity endpoint.
// ProfileID refers to the client profile for regular users and to the owned
// business profile for business accounts.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	UserName  string `json:"userName"`
	Role      Role   `json:"userType"`
	ProfileID int    `json:"profileId"`
}

// Session is the current actor's authentication and authorization state.
// The zero value is the logged-out state.
type Session struct {
	User            *User
	IsAuthenticated bool
	IsBusinessOwner bool

	// OwnedBusinessID is meaningful only while IsBusinessOwner is true.
	// Use OwnedBusiness to read it safely.
	OwnedBusinessID int
}

// SessionFor derives a Session from an identity record, keeping the
// invariants in one place: authenticated iff user is present, owner iff the
// role is Business, owned business id present iff owner.
func SessionFor(user *User) Session {
	if user == nil {
		return Session{}
	}
	s := Session{
		User:            user,
		IsAuthenticated: true,
		IsBusinessOwner: user.Role == RoleBusiness,
	}
	if s.IsBusinessOwner {
		s.OwnedBusinessID = user.ProfileID
	}
	return s
}

// OwnedBusiness returns the id of the business this session controls, and
// whether such a business exists at all.
func (s Session) OwnedBusiness() (int, bool) {
	if !s.IsBusinessOwner {
		return 0, false
	}
	return s.OwnedBusinessID, true
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ClientRegistration is the sign-up payload for a regular user.
type ClientRegistration struct {
	Email     string `json:"email" validate:"required,email"`
	UserName  string `json:"userName" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// BusinessRegistration is the sign-up payload for a business account.
type BusinessRegistration struct {
	Email       string `json:"email" validate:"required,email"`
	UserName    string `json:"userName" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
	CompanyName string `json:"companyName" validate:"required"`
}
