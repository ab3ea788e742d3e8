// Package models defines the persisted BloodBuddy records: users, blood
// requests and the acceptances appended to them.
package models

import (
	"time"

	"github.com/dmitrijs2005/bloodbuddy/internal/bloodtype"
	"github.com/dmitrijs2005/bloodbuddy/internal/geo"
)

// User is a registered donor/requester.
//
// Password holds the stored credential. Records written by the first release
// carry it in plain text; the schema migration replaces it with an argon2id
// hash (see package migrate).
type User struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Age       int            `json:"age"`
	Phone     string         `json:"phone"`
	Password  string         `json:"password"`
	BloodType bloodtype.Type `json:"bloodType"`
	Location  *geo.Location  `json:"location"`
	Address   string         `json:"address"`
	City      string         `json:"city"`
	State     string         `json:"state"`
	Pincode   string         `json:"pincode"`
	CreatedAt time.Time      `json:"createdAt"`
}

// HasLocation reports whether the user's coordinates were captured.
func (u User) HasLocation() bool {
	return u.Location != nil
}
