// Package lists stores value lists and their items in space-scoped indices.
//
// Every operation takes a Scope carrying the data-access client, the resolved
// index names and the acting user. The package keeps no state between calls.
package lists

import (
	"github.com/mdouchement/lists/internal/database"
	"github.com/pkg/errors"
)

const (
	// DefaultSpaceID is the space used when none is given.
	DefaultSpaceID = "default"
	// DefaultListIndex is the base name of the list indices.
	DefaultListIndex = ".lists"
	// DefaultListItemIndex is the base name of the list item indices.
	DefaultListItemIndex = ".items"
)

// ErrNoClient is returned when an operation is called without data-access client.
var ErrNoClient = errors.New("lists: no data-access client configured")

// A Scope holds everything an operation needs to reach the right indices.
type Scope struct {
	DB            database.Client
	ListIndex     string
	ListItemIndex string
	// User is the acting user stamped on created and updated documents.
	User string
}

// NewScope returns a Scope with the index names resolved for the given space.
func NewScope(db database.Client, listIndex, listItemIndex, spaceID, user string) Scope {
	return Scope{
		DB:            db,
		ListIndex:     ResolveIndex(listIndex, spaceID),
		ListItemIndex: ResolveIndex(listItemIndex, spaceID),
		User:          user,
	}
}

// ResolveIndex returns the name of the index holding the documents of base for the given space.
func ResolveIndex(base, spaceID string) string {
	if spaceID == "" {
		spaceID = DefaultSpaceID
	}
	return base + "-" + spaceID
}

// ListIndex returns the name of the list index of the given space.
func ListIndex(spaceID string) string {
	return ResolveIndex(DefaultListIndex, spaceID)
}

// ListItemIndex returns the name of the list item index of the given space.
func ListItemIndex(spaceID string) string {
	return ResolveIndex(DefaultListItemIndex, spaceID)
}

func (s Scope) check() error {
	if s.DB == nil {
		return ErrNoClient
	}
	return nil
}
