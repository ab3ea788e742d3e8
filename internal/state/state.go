// Package state holds the in-memory application state (users, requests and
// the logged-in session) and moves it to and from the key-value store.
//
// Every mutation is followed by an explicit Save, which overwrites the
// persisted documents wholesale. There is no cross-process coordination:
// the last writer wins.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/bloodbuddy/internal/logging"
	"github.com/dmitrijs2005/bloodbuddy/internal/migrate"
	"github.com/dmitrijs2005/bloodbuddy/internal/models"
	"github.com/dmitrijs2005/bloodbuddy/internal/storage"
)

// Persisted document keys.
const (
	KeyUsers         = "bloodbuddy_users"
	KeyRequests      = "bloodbuddy_requests"
	KeyCurrentUser   = "bloodbuddy_current_user"
	KeySchemaVersion = "bloodbuddy_schema_version"
)

// ErrPersist marks a failed write. The in-memory state stays valid for the
// rest of the session.
var ErrPersist = errors.New("state not persisted")

// State is the single source of truth shared by the auth and registry
// services. It is not safe for concurrent use.
type State struct {
	Users    []models.User
	Requests []models.BloodRequest
	Current  *models.User

	store  storage.Store
	logger logging.Logger
}

func New(store storage.Store, logger logging.Logger) *State {
	return &State{
		Users:    []models.User{},
		Requests: []models.BloodRequest{},
		store:    store,
		logger:   logger,
	}
}

// Load replaces the in-memory state with the persisted documents, upgrading
// them to the current schema. An upgraded document is saved back.
func (s *State) Load(ctx context.Context) error {
	doc := migrate.Document{}

	version, err := s.store.Get(ctx, KeySchemaVersion)
	if err != nil {
		return err
	}
	if len(version) > 0 {
		if doc.Version, err = strconv.Atoi(string(version)); err != nil {
			return fmt.Errorf("decode %s: %w", KeySchemaVersion, err)
		}
	}
	if err := s.read(ctx, KeyUsers, &doc.Users); err != nil {
		return err
	}
	if err := s.read(ctx, KeyRequests, &doc.Requests); err != nil {
		return err
	}
	if err := s.read(ctx, KeyCurrentUser, &doc.Current); err != nil {
		return err
	}

	from := doc.Version
	changed, err := migrate.Run(&doc)
	if err != nil {
		return err
	}

	s.Users, s.Requests, s.Current = doc.Users, doc.Requests, doc.Current
	if s.Users == nil {
		s.Users = []models.User{}
	}
	if s.Requests == nil {
		s.Requests = []models.BloodRequest{}
	}

	if changed {
		s.logger.Info(ctx, "schema migrated", "from", from, "to", doc.Version)
		if s.Current == nil {
			if err := s.store.Delete(ctx, KeyCurrentUser); err != nil {
				return err
			}
		}
		return s.Save(ctx)
	}
	return nil
}

// Save writes users, requests, the schema version and, when logged in, the
// session snapshot. Failures are logged and returned; nothing is retried.
func (s *State) Save(ctx context.Context) error {
	values := make(map[string][]byte, 4)

	var err error
	if values[KeyUsers], err = json.Marshal(s.Users); err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if values[KeyRequests], err = json.Marshal(s.Requests); err != nil {
		return fmt.Errorf("encode requests: %w", err)
	}
	if s.Current != nil {
		if values[KeyCurrentUser], err = json.Marshal(s.Current); err != nil {
			return fmt.Errorf("encode current user: %w", err)
		}
	}
	values[KeySchemaVersion] = []byte(strconv.Itoa(migrate.CurrentVersion))

	if err := storage.SetMany(ctx, s.store, values); err != nil {
		s.logger.Error(ctx, "failed to save data", "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// ClearCurrent ends the session and removes its persisted snapshot.
func (s *State) ClearCurrent(ctx context.Context) error {
	s.Current = nil
	if err := s.store.Delete(ctx, KeyCurrentUser); err != nil {
		s.logger.Error(ctx, "failed to clear session", "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// SetCurrent makes a copy of u the session user.
func (s *State) SetCurrent(u models.User) {
	s.Current = &u
}

// UserByPhone returns the index of the user with the given cleaned phone.
func (s *State) UserByPhone(phone string) (int, bool) {
	for i, u := range s.Users {
		if u.Phone == phone {
			return i, true
		}
	}
	return -1, false
}

// UserByID returns the index of the user with the given id.
func (s *State) UserByID(id string) (int, bool) {
	for i, u := range s.Users {
		if u.ID == id {
			return i, true
		}
	}
	return -1, false
}

// RequestByID returns the index of the request with the given id.
func (s *State) RequestByID(id string) (int, bool) {
	for i, r := range s.Requests {
		if r.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *State) read(ctx context.Context, key string, v any) error {
	b, err := s.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
