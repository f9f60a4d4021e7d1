package session

// User is the profile of an authenticated user.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// Credentials checks a username and password and returns the matching
// profile. It must be pure.
type Credentials func(username, password string) (User, bool)

type account struct {
	password string
	profile  User
}

var accounts = map[string]account{
	"Hassan": {
		password: "1234",
		profile:  User{Username: "Hassan", Email: "hassan@example.com", Name: "Hassan User"},
	},
	"admin": {
		password: "password",
		profile:  User{Username: "admin", Email: "admin@dashboardapp.com", Name: "Administrator"},
	},
}

// CheckCredentials is the fixed allow-list of dashboard accounts.
func CheckCredentials(username, password string) (User, bool) {
	acc, ok := accounts[username]
	if !ok || acc.password != password {
		return User{}, false
	}
	return acc.profile, true
}
