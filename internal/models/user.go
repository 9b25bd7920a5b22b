package models

import (
	"fmt"
	"strings"

	"golang.org/x/oauth2"
)

// User is a jukebox user document. Its ID is "<username>@<session id>".
type User struct {
	ID                string        `json:"id" bson:"_id"`
	Username          string        `json:"username" bson:"username"`
	Secret            string        `json:"secret" bson:"secret"`
	SessionID         string        `json:"session_id" bson:"session_id"`
	IsAdmin           bool          `json:"is_admin" bson:"is_admin"`
	Score             int32         `json:"score" bson:"score"`
	SpotifyAuthorized bool          `json:"spotify_authorized" bson:"spotify_authorized"`
	AuthToken         *oauth2.Token `json:"auth_token" bson:"auth_token"`
	AuthState         string        `json:"auth_state" bson:"auth_state"`
}

var _ Document = (*User)(nil)

// UserID composes the _id of the user with the given name in the given session.
func UserID(username, sessionID string) string {
	return fmt.Sprintf("%v@%v", username, sessionID)
}

// DocumentID returns the user's _id.
func (u *User) DocumentID() string { return u.ID }

// Validate checks required fields and that ID matches username and session.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("user: username is required")
	}
	if u.SessionID == "" {
		return fmt.Errorf("user %s: session_id is required", u.Username)
	}
	if want := UserID(u.Username, u.SessionID); u.ID != want {
		return fmt.Errorf("user %s: _id %q does not match %q", u.Username, u.ID, want)
	}
	if u.SpotifyAuthorized && u.AuthToken == nil {
		return fmt.Errorf("user %s: spotify_authorized without auth_token", u.Username)
	}
	return nil
}

// BelongsTo reports whether the user references the given session.
func (u *User) BelongsTo(s *Session) bool {
	return s != nil && u.SessionID == s.ID
}
