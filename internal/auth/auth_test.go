package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/bloodbuddy/internal/bloodtype"
	"github.com/dmitrijs2005/bloodbuddy/internal/common"
	"github.com/dmitrijs2005/bloodbuddy/internal/cryptox"
	"github.com/dmitrijs2005/bloodbuddy/internal/geo"
	"github.com/dmitrijs2005/bloodbuddy/internal/logging"
	"github.com/dmitrijs2005/bloodbuddy/internal/state"
	"github.com/dmitrijs2005/bloodbuddy/internal/storage"
	"github.com/dmitrijs2005/bloodbuddy/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*Service, *state.State, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	st := state.New(store, logging.Discard())
	s := NewService(st, logging.Discard())
	s.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	s.newID = func() string { return "user-1" }
	return s, st, store
}

func form() validation.Form {
	return validation.Form{
		Name:      " Asha Rao ",
		Phone:     "98765 43210",
		Password:  "Abcdef1",
		Age:       "29",
		Address:   "12 MG Road, Ashok Nagar",
		City:      "Bengaluru",
		State:     "Karnataka",
		Pincode:   "560 001",
		BloodType: "o-",
		Location:  &geo.Location{Lat: 12.9716, Lng: 77.5946},
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	s, st, store := newService(t)

	u, err := s.Signup(ctx, form())
	require.NoError(t, err)

	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, "Asha Rao", u.Name)
	assert.Equal(t, "9876543210", u.Phone)
	assert.Equal(t, "560001", u.Pincode)
	assert.Equal(t, 29, u.Age)
	assert.Equal(t, bloodtype.ONeg, u.BloodType)
	assert.True(t, cryptox.VerifyPassword(u.Password, []byte("Abcdef1")))

	require.Len(t, st.Users, 1)
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, u.ID, cur.ID)

	raw, err := store.Get(ctx, state.KeyCurrentUser)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"phone":"9876543210"`)
}

func TestSignup_LocationCopied(t *testing.T) {
	s, _, _ := newService(t)
	f := form()
	u, err := s.Signup(context.Background(), f)
	require.NoError(t, err)

	f.Location.Lat = 0
	assert.Equal(t, 12.9716, u.Location.Lat)
}

func TestSignup_Validation(t *testing.T) {
	s, st, _ := newService(t)
	f := form()
	f.Phone = "5876543210"
	f.Password = "abcdef1"

	_, err := s.Signup(context.Background(), f)

	var verrs *validation.Errors
	require.True(t, errors.As(err, &verrs))
	field, msg, _ := verrs.First()
	assert.Equal(t, validation.FieldPhone, field)
	assert.Equal(t, "Phone number must start with 6, 7, 8 or 9", msg)
	_, ok := verrs.Get(validation.FieldPassword)
	assert.True(t, ok)
	assert.Empty(t, st.Users)
}

func TestSignup_PhoneTaken(t *testing.T) {
	ctx := context.Background()
	s, st, _ := newService(t)
	_, err := s.Signup(ctx, form())
	require.NoError(t, err)

	f := form()
	f.Phone = "9876-543-210"
	_, err = s.Signup(ctx, f)
	require.ErrorIs(t, err, ErrPhoneTaken)
	assert.Len(t, st.Users, 1)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)
	_, err := s.Signup(ctx, form())
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	_, ok := s.Current()
	require.False(t, ok)

	u, err := s.Login(ctx, "98765-43210", "Abcdef1", nil)
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, 12.9716, u.Location.Lat)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, u.ID, cur.ID)
}

func TestLogin_RefreshesLocation(t *testing.T) {
	ctx := context.Background()
	s, st, _ := newService(t)
	_, err := s.Signup(ctx, form())
	require.NoError(t, err)

	fresh := &geo.Location{Lat: 13.0, Lng: 77.6}
	u, err := s.Login(ctx, "9876543210", "Abcdef1", fresh)
	require.NoError(t, err)
	assert.Equal(t, *fresh, *u.Location)
	assert.Equal(t, *fresh, *st.Users[0].Location)
	assert.Equal(t, *fresh, *st.Current.Location)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)
	_, err := s.Signup(ctx, form())
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	tests := []struct {
		name     string
		phone    string
		password string
		want     error
	}{
		{"wrong password", "9876543210", "Abcdef2", ErrInvalidCredentials},
		{"unknown phone", "9123456789", "Abcdef1", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Login(ctx, tt.phone, tt.password, nil)
			require.ErrorIs(t, err, tt.want)
			_, ok := s.Current()
			assert.False(t, ok)
		})
	}

	t.Run("malformed phone", func(t *testing.T) {
		_, err := s.Login(ctx, "98765432", "Abcdef1", nil)
		var verrs *validation.Errors
		require.ErrorAs(t, err, &verrs)
		msg, _ := verrs.Get(validation.FieldPhone)
		assert.Equal(t, "Phone number must be exactly 10 digits", msg)
	})
}

func TestLogin_LegacyPlaintextAfterMigration(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, state.KeyUsers,
		[]byte(`[{"id":"1","name":"Old","phone":"9876543210","password":"Abcdef1","bloodType":"B+"}]`)))

	st := state.New(store, logging.Discard())
	require.NoError(t, st.Load(ctx))
	s := NewService(st, logging.Discard())

	u, err := s.Login(ctx, "9876543210", "Abcdef1", nil)
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)
	assert.NotEqual(t, "Abcdef1", u.Password)
}

func TestLogin_LegacyPasswordFailingCurrentRules(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, state.KeyUsers,
		[]byte(`[{"id":"1","name":"Old","phone":"9876543210","password":"abcdef12","bloodType":"B+"}]`)))

	st := state.New(store, logging.Discard())
	require.NoError(t, st.Load(ctx))
	assert.True(t, strings.HasPrefix(st.Users[0].Password, "$argon2id$"))

	s := NewService(st, logging.Discard())
	_, err := s.Login(ctx, "9876543210", "abcdef12", nil)
	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	_, ok := verrs.Get(validation.FieldPassword)
	assert.True(t, ok)
	assert.Nil(t, st.Current)
}

func TestUpdateLocation(t *testing.T) {
	ctx := context.Background()
	s, st, _ := newService(t)

	_, err := s.UpdateLocation(ctx, geo.Location{Lat: 1, Lng: 2})
	require.ErrorIs(t, err, common.ErrNotLoggedIn)

	_, err = s.Signup(ctx, form())
	require.NoError(t, err)

	u, err := s.UpdateLocation(ctx, geo.Location{Lat: 13.1, Lng: 77.7})
	require.NoError(t, err)
	assert.Equal(t, 13.1, u.Location.Lat)
	assert.Equal(t, 13.1, st.Users[0].Location.Lat)
	assert.Equal(t, 13.1, st.Current.Location.Lat)
}

func TestLogout_KeepsUsers(t *testing.T) {
	ctx := context.Background()
	s, st, store := newService(t)
	_, err := s.Signup(ctx, form())
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))
	assert.Nil(t, st.Current)
	assert.Len(t, st.Users, 1)

	raw, err := store.Get(ctx, state.KeyCurrentUser)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestInvalidCredentialsIsUnauthorized(t *testing.T) {
	assert.ErrorIs(t, ErrInvalidCredentials, common.ErrUnauthorized)
}
