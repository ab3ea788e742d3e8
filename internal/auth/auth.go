// Package auth registers users and manages the single local session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/bloodbuddy/internal/bloodtype"
	"github.com/dmitrijs2005/bloodbuddy/internal/common"
	"github.com/dmitrijs2005/bloodbuddy/internal/cryptox"
	"github.com/dmitrijs2005/bloodbuddy/internal/geo"
	"github.com/dmitrijs2005/bloodbuddy/internal/logging"
	"github.com/dmitrijs2005/bloodbuddy/internal/models"
	"github.com/dmitrijs2005/bloodbuddy/internal/state"
	"github.com/dmitrijs2005/bloodbuddy/internal/validation"
)

var (
	ErrPhoneTaken = errors.New("phone number already registered")

	// ErrInvalidCredentials does not distinguish an unknown phone from a
	// wrong password.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid phone number or password", common.ErrUnauthorized)
)

// dummyHash is verified against when the phone is unknown so both failure
// paths cost one key derivation.
var dummyHash = cryptox.HashPassword([]byte("bloodbuddy"))

type Service struct {
	st     *state.State
	logger logging.Logger

	now   func() time.Time
	newID func() string
}

func NewService(st *state.State, logger logging.Logger) *Service {
	return &Service{st: st, logger: logger, now: time.Now, newID: models.NewID}
}

// Signup validates f, registers a new user and logs them in. Validation
// failures are returned as *validation.Errors.
func (s *Service) Signup(ctx context.Context, f validation.Form) (models.User, error) {
	if err := validation.Validate(f, validation.ModeSignup).Err(); err != nil {
		return models.User{}, err
	}

	phone := models.CleanDigits(f.Phone)
	if _, ok := s.st.UserByPhone(phone); ok {
		return models.User{}, ErrPhoneTaken
	}

	// both already validated
	age, _ := strconv.Atoi(strings.TrimSpace(f.Age))
	bt, _ := bloodtype.Parse(f.BloodType)
	loc := *f.Location

	u := models.User{
		ID:        s.newID(),
		Name:      strings.TrimSpace(f.Name),
		Age:       age,
		Phone:     phone,
		Password:  cryptox.HashPassword([]byte(f.Password)),
		BloodType: bt,
		Location:  &loc,
		Address:   strings.TrimSpace(f.Address),
		City:      strings.TrimSpace(f.City),
		State:     strings.TrimSpace(f.State),
		Pincode:   models.CleanDigits(f.Pincode),
		CreatedAt: s.now(),
	}

	s.st.Users = append(s.st.Users, u)
	s.st.SetCurrent(u)
	s.logger.Info(ctx, "user registered", "user_id", u.ID, "blood_type", u.BloodType)

	return u, s.st.Save(ctx)
}

// Login starts a session for the user owning phone and password. A non-nil
// loc replaces the stored location.
func (s *Service) Login(ctx context.Context, phone, password string, loc *geo.Location) (models.User, error) {
	f := validation.Form{Phone: phone, Password: password}
	if err := validation.Validate(f, validation.ModeLogin).Err(); err != nil {
		return models.User{}, err
	}

	i, ok := s.st.UserByPhone(models.CleanDigits(phone))
	if !ok {
		cryptox.VerifyPassword(dummyHash, []byte(password))
		return models.User{}, ErrInvalidCredentials
	}
	if !cryptox.VerifyPassword(s.st.Users[i].Password, []byte(password)) {
		s.logger.Warn(ctx, "login failed", "user_id", s.st.Users[i].ID)
		return models.User{}, ErrInvalidCredentials
	}

	if loc != nil {
		l := *loc
		s.st.Users[i].Location = &l
	}
	u := s.st.Users[i]
	s.st.SetCurrent(u)
	s.logger.Info(ctx, "user logged in", "user_id", u.ID)

	return u, s.st.Save(ctx)
}

// Logout ends the session. The user list is kept.
func (s *Service) Logout(ctx context.Context) error {
	if s.st.Current != nil {
		s.logger.Info(ctx, "user logged out", "user_id", s.st.Current.ID)
	}
	return s.st.ClearCurrent(ctx)
}

// Current returns the session user.
func (s *Service) Current() (models.User, bool) {
	if s.st.Current == nil {
		return models.User{}, false
	}
	return *s.st.Current, true
}

// UpdateLocation stores loc for the session user, in both the user list and
// the session snapshot.
func (s *Service) UpdateLocation(ctx context.Context, loc geo.Location) (models.User, error) {
	if s.st.Current == nil {
		return models.User{}, common.ErrNotLoggedIn
	}
	i, ok := s.st.UserByID(s.st.Current.ID)
	if !ok {
		return models.User{}, common.ErrNotFound
	}

	s.st.Users[i].Location = &loc
	u := s.st.Users[i]
	s.st.SetCurrent(u)
	s.logger.Debug(ctx, "location updated", "user_id", u.ID)

	return u, s.st.Save(ctx)
}
