// Package migrate upgrades persisted BloodBuddy documents to the current
// schema version. Every step is idempotent, so a document may be replayed
// through Run safely.
//
// Versions:
//
//	0  records written before the version key existed
//	1  missing fields defaulted (acceptedBy, status, request address snapshot)
//	2  stored passwords replaced by argon2id hashes
package migrate

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bloodbuddy/internal/cryptox"
	"github.com/dmitrijs2005/bloodbuddy/internal/models"
)

// CurrentVersion is the schema version written by this release.
const CurrentVersion = 2

var ErrUnsupportedVersion = errors.New("unsupported schema version")

// Document is the full persisted state.
type Document struct {
	Version  int
	Users    []models.User
	Requests []models.BloodRequest
	Current  *models.User
}

type step func(d *Document)

// steps[i] upgrades a document from version i to i+1.
var steps = []step{
	defaultMissingFields,
	hashPasswords,
}

// Run upgrades d in place and reports whether anything was applied.
func Run(d *Document) (bool, error) {
	if d.Version < 0 || d.Version > CurrentVersion {
		return false, fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	}
	if d.Version == CurrentVersion {
		return false, nil
	}
	for v := d.Version; v < CurrentVersion; v++ {
		steps[v](d)
		d.Version = v + 1
	}
	syncCurrent(d)
	return true, nil
}

func defaultMissingFields(d *Document) {
	if d.Users == nil {
		d.Users = []models.User{}
	}
	if d.Requests == nil {
		d.Requests = []models.BloodRequest{}
	}

	owners := make(map[string]models.User, len(d.Users))
	for _, u := range d.Users {
		owners[u.ID] = u
	}

	for i := range d.Requests {
		r := &d.Requests[i]
		if r.AcceptedBy == nil {
			r.AcceptedBy = []models.Acceptance{}
		}
		if r.Status == "" {
			r.Status = models.StatusActive
		}
		if r.Address == "" && r.City == "" && r.State == "" && r.Pincode == "" {
			if u, ok := owners[r.UserID]; ok {
				r.Address, r.City, r.State, r.Pincode = u.Address, u.City, u.State, u.Pincode
			}
		}
	}
}

func hashPasswords(d *Document) {
	for i := range d.Users {
		u := &d.Users[i]
		if u.Password != "" && !cryptox.IsHashed(u.Password) {
			u.Password = cryptox.HashPassword([]byte(u.Password))
		}
	}
}

// syncCurrent refreshes the session snapshot from the migrated user list.
// A session whose user no longer exists is dropped.
func syncCurrent(d *Document) {
	if d.Current == nil {
		return
	}
	for _, u := range d.Users {
		if u.ID == d.Current.ID {
			cp := u
			d.Current = &cp
			return
		}
	}
	d.Current = nil
}
