package models

// User is an author account as persisted in users.json.
// PasswordHash and Salt are hex-encoded PBKDF2 material.
type User struct {
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	PasswordHash string `json:"password"`
	Salt         string `json:"salt"`
}

// PublicUser is the subset of User safe to expose to clients.
type PublicUser struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// Public strips credential material from a User.
func (u User) Public() PublicUser {
	return PublicUser{Username: u.Username, DisplayName: u.DisplayName}
}

// AuthorName is the name stamped on posts: the display name when set,
// otherwise the username.
func (u User) AuthorName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
