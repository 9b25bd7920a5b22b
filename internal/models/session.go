package models

import "fmt"

// Session is a jukebox session document.
type Session struct {
	ID       string `json:"id" bson:"_id"`
	SongList []Song `json:"song_list" bson:"song_list"`
}

var _ Document = (*Session)(nil)

// Song is a track reference in a session's song list.
type Song struct {
	ID       string   `json:"id" bson:"id"`
	Name     string   `json:"name" bson:"name"`
	Artists  []string `json:"artists" bson:"artists"`
	Duration int      `json:"duration_ms" bson:"duration_ms"`
}

// NewSession returns a session with an empty, non-nil song list.
func NewSession(id string) *Session {
	return &Session{ID: id, SongList: []Song{}}
}

// DocumentID returns the session's _id.
func (s *Session) DocumentID() string { return s.ID }

// Validate checks the session has an ID. A nil song list is replaced by an
// empty one so it is stored as [] rather than null.
func (s *Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("session: _id is required")
	}
	if s.SongList == nil {
		s.SongList = []Song{}
	}
	for i, song := range s.SongList {
		if song.ID == "" {
			return fmt.Errorf("session %s: song %d has no id", s.ID, i)
		}
	}
	return nil
}
