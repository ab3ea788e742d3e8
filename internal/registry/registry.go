// Package registry implements blood requests: raising an SOS, listing one's
// own requests, discovering nearby compatible requests and answering them.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/bloodbuddy/internal/bloodtype"
	"github.com/dmitrijs2005/bloodbuddy/internal/common"
	"github.com/dmitrijs2005/bloodbuddy/internal/geo"
	"github.com/dmitrijs2005/bloodbuddy/internal/logging"
	"github.com/dmitrijs2005/bloodbuddy/internal/models"
	"github.com/dmitrijs2005/bloodbuddy/internal/state"
)

// DefaultRadiusKm is the discovery radius. A request exactly on the
// boundary is not nearby.
const DefaultRadiusKm = 10.0

var (
	ErrNoLocation      = errors.New("location not captured")
	ErrRequestNotFound = fmt.Errorf("request %w", common.ErrNotFound)
)

type Registry struct {
	st       *state.State
	logger   logging.Logger
	radiusKm float64

	now   func() time.Time
	newID func() string
}

type Option func(*Registry)

// WithRadius overrides the discovery radius. Non-positive values are
// ignored.
func WithRadius(km float64) Option {
	return func(r *Registry) {
		if km > 0 {
			r.radiusKm = km
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func WithIDs(newID func() string) Option {
	return func(r *Registry) { r.newID = newID }
}

func New(st *state.State, logger logging.Logger, opts ...Option) *Registry {
	r := &Registry{
		st:       st,
		logger:   logger,
		radiusKm: DefaultRadiusKm,
		now:      time.Now,
		newID:    models.NewID,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Registry) RadiusKm() float64 { return r.radiusKm }

// Create raises a new active request snapshotting the user's contact,
// location and address. The newest request is kept first.
//
// A failed save is reported with state.ErrPersist alongside the created
// request, which stays in memory.
func (r *Registry) Create(ctx context.Context, u models.User) (models.BloodRequest, error) {
	if !u.HasLocation() {
		return models.BloodRequest{}, ErrNoLocation
	}

	req := models.BloodRequest{
		ID:             r.newID(),
		UserID:         u.ID,
		RequesterName:  u.Name,
		RequesterPhone: u.Phone,
		BloodNeeded:    u.BloodType,
		Location:       *u.Location,
		Address:        u.Address,
		City:           u.City,
		State:          u.State,
		Pincode:        u.Pincode,
		Status:         models.StatusActive,
		CreatedAt:      r.now(),
		AcceptedBy:     []models.Acceptance{},
	}

	r.st.Requests = append([]models.BloodRequest{req}, r.st.Requests...)
	r.logger.Info(ctx, "sos created", "request_id", req.ID, "blood_needed", req.BloodNeeded)

	return req, r.st.Save(ctx)
}

// ListMine returns every request raised by userID in registry order.
func (r *Registry) ListMine(userID string) []models.BloodRequest {
	out := []models.BloodRequest{}
	for _, req := range r.st.Requests {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out
}

// ListNearby returns other users' active requests within the radius that
// the viewer's blood type can serve, closest first. Distances are rounded
// to one decimal before sorting; ties keep registry order.
func (r *Registry) ListNearby(viewer models.User) []models.NearbyRequest {
	out := []models.NearbyRequest{}
	if !viewer.HasLocation() {
		return out
	}

	for _, req := range r.st.Requests {
		if req.UserID == viewer.ID || !req.IsActive() {
			continue
		}
		d := geo.Distance(*viewer.Location, req.Location)
		if !(d < r.radiusKm) {
			continue
		}
		if !bloodtype.CanDonate(req.BloodNeeded, viewer.BloodType) {
			continue
		}
		out = append(out, models.NearbyRequest{BloodRequest: req, Distance: geo.RoundTenth(d)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out
}

// Get returns the request with the given id.
func (r *Registry) Get(id string) (models.BloodRequest, error) {
	i, ok := r.st.RequestByID(id)
	if !ok {
		return models.BloodRequest{}, ErrRequestNotFound
	}
	return r.st.Requests[i], nil
}

// Accept records donor as answering the request and returns the updated
// record. Repeated accepts by the same donor are recorded independently.
func (r *Registry) Accept(ctx context.Context, id string, donor models.User) (models.BloodRequest, error) {
	i, ok := r.st.RequestByID(id)
	if !ok {
		return models.BloodRequest{}, ErrRequestNotFound
	}

	req := &r.st.Requests[i]
	req.AcceptedBy = append(req.AcceptedBy, models.Acceptance{
		DonorID:        donor.ID,
		DonorName:      donor.Name,
		DonorPhone:     donor.Phone,
		DonorBloodType: donor.BloodType,
		AcceptedAt:     r.now(),
	})
	r.logger.Info(ctx, "request accepted", "request_id", id, "donor_id", donor.ID, "acceptances", len(req.AcceptedBy))

	updated := *req
	updated.AcceptedBy = append([]models.Acceptance(nil), req.AcceptedBy...)
	return updated, r.st.Save(ctx)
}

// Decline changes nothing; it only confirms the request exists.
func (r *Registry) Decline(ctx context.Context, id string) error {
	if _, ok := r.st.RequestByID(id); !ok {
		return ErrRequestNotFound
	}
	r.logger.Debug(ctx, "request declined", "request_id", id)
	return nil
}

// DonorsNear returns registered users, other than the requester, who are
// within the radius of req and can donate to it.
func (r *Registry) DonorsNear(req models.BloodRequest) []models.User {
	out := []models.User{}
	for _, u := range r.st.Users {
		if u.ID == req.UserID || !u.HasLocation() {
			continue
		}
		if geo.Distance(*u.Location, req.Location) < r.radiusKm &&
			bloodtype.CanDonate(req.BloodNeeded, u.BloodType) {
			out = append(out, u)
		}
	}
	return out
}
