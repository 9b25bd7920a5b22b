// Package fixtures holds the documents inserted by the seeder.
//
// Documents are embedded Extended JSON files named "<version>_<collection>.json",
// one document per file, applied in version order.
package fixtures

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/desertthunder/jukeseed/internal/models"
	"github.com/desertthunder/jukeseed/internal/shared"
	"go.mongodb.org/mongo-driver/bson"
)

//go:embed data/*.json
var dataFiles embed.FS

// Collections the embedded fixtures target.
const (
	UsersCollection    = "users"
	SessionsCollection = "sessions"
)

// Fixture is a single document bound for a collection.
type Fixture struct {
	Version    int
	Collection string
	Name       string
	Document   bson.Raw
}

// ID returns the fixture's _id rendered as a string.
func (f Fixture) ID() string {
	val, err := f.Document.LookupErr("_id")
	if err != nil {
		return ""
	}
	if s, ok := val.StringValueOK(); ok {
		return s
	}
	return val.String()
}

// Decode unmarshals the fixture document into v.
func (f Fixture) Decode(v any) error {
	if err := bson.Unmarshal(f.Document, v); err != nil {
		return fmt.Errorf("%w: %s: %w", shared.ErrInvalidFixture, f.Name, err)
	}
	return nil
}

// Set is the typed fixture pair written by a seed run.
type Set struct {
	User    *models.User
	Session *models.Session
}

// Load reads the embedded fixtures.
func Load() ([]Fixture, error) {
	return LoadFS(dataFiles, "data")
}

// LoadFS reads every "<version>_<collection>.json" file in dir of fsys and returns them sorted by version.
func LoadFS(fsys fs.FS, dir string) ([]Fixture, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture directory: %w", err)
	}

	var out []Fixture
	seen := make(map[int]string)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		prefix, rest, ok := strings.Cut(strings.TrimSuffix(name, ".json"), "_")
		if !ok || rest == "" {
			return nil, fmt.Errorf("%w: %s: expected <version>_<collection>.json", shared.ErrInvalidFixture, name)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: bad version %q", shared.ErrInvalidFixture, name, prefix)
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("%w: %s and %s share version %d", shared.ErrInvalidFixture, other, name, version)
		}
		seen[version] = name

		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %s: %w", name, err)
		}

		var d bson.D
		if err := bson.UnmarshalExtJSON(content, false, &d); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", shared.ErrInvalidFixture, name, err)
		}
		doc, err := bson.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", shared.ErrInvalidFixture, name, err)
		}
		if _, err := bson.Raw(doc).LookupErr("_id"); err != nil {
			return nil, fmt.Errorf("%w: %s: missing _id", shared.ErrInvalidFixture, name)
		}

		out = append(out, Fixture{Version: version, Collection: rest, Name: name, Document: bson.Raw(doc)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })

	return out, nil
}

// Default returns the embedded user and session fixtures.
func Default() (*Set, error) {
	all, err := Load()
	if err != nil {
		return nil, err
	}
	return NewSet(all)
}

// NewSet decodes the users and sessions fixtures and checks they reference each other.
func NewSet(all []Fixture) (*Set, error) {
	set := &Set{}

	for _, f := range all {
		switch f.Collection {
		case UsersCollection:
			if set.User != nil {
				return nil, fmt.Errorf("%w: more than one users fixture", shared.ErrInvalidFixture)
			}
			var u models.User
			if err := f.Decode(&u); err != nil {
				return nil, err
			}
			set.User = &u
		case SessionsCollection:
			if set.Session != nil {
				return nil, fmt.Errorf("%w: more than one sessions fixture", shared.ErrInvalidFixture)
			}
			var s models.Session
			if err := f.Decode(&s); err != nil {
				return nil, err
			}
			set.Session = &s
		default:
			return nil, fmt.Errorf("%w: %s: unknown collection %q", shared.ErrInvalidFixture, f.Name, f.Collection)
		}
	}

	if set.User == nil || set.Session == nil {
		return nil, fmt.Errorf("%w: both a users and a sessions fixture are required", shared.ErrInvalidFixture)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate checks each document and that the user's session_id names the session.
func (s *Set) Validate() error {
	if err := s.User.Validate(); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidFixture, err)
	}
	if err := s.Session.Validate(); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidFixture, err)
	}
	if !s.User.BelongsTo(s.Session) {
		return fmt.Errorf("%w: user session_id %q does not match session _id %q",
			shared.ErrInvalidFixture, s.User.SessionID, s.Session.ID)
	}
	return nil
}
