// Package locator obtains the device location for signup, login and SOS.
//
// Providers report why a fix could not be obtained with one of the sentinel
// errors below. Fallback wraps a provider so the caller always gets a
// location, substituting an approximate one near a reference point.
package locator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/bloodbuddy/internal/geo"
)

var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrUnavailable      = errors.New("location unavailable")
	ErrTimeout          = errors.New("location request timed out")
	ErrUnsupported      = errors.New("location not supported")
)

// Provider yields the current location.
type Provider interface {
	Locate(ctx context.Context) (geo.Location, error)
}

// Static returns a fixed, preconfigured location. A nil Loc means no
// location is configured.
type Static struct {
	Loc *geo.Location
}

func (s Static) Locate(ctx context.Context) (geo.Location, error) {
	if err := ctx.Err(); err != nil {
		return geo.Location{}, contextErr(err)
	}
	if s.Loc == nil {
		return geo.Location{}, ErrUnsupported
	}
	return *s.Loc, nil
}

// Prompt asks the user to type coordinates as "lat,lng". An empty answer is
// treated as a refusal.
//
// The deadline of ctx is only checked before asking: an answer typed after
// it passed is still used.
type Prompt struct {
	Read func(prompt string) (string, error)
}

func (p Prompt) Locate(ctx context.Context) (geo.Location, error) {
	if p.Read == nil {
		return geo.Location{}, ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return geo.Location{}, contextErr(err)
	}
	line, err := p.Read("Enter your location as lat,lng (empty to skip)")
	if err != nil {
		return geo.Location{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if strings.TrimSpace(line) == "" {
		return geo.Location{}, ErrPermissionDenied
	}
	return ParseLatLng(line)
}

// ParseLatLng parses "lat,lng" in decimal degrees.
func ParseLatLng(s string) (geo.Location, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geo.Location{}, fmt.Errorf("%w: expected lat,lng", ErrUnavailable)
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err := errors.Join(err1, err2); err != nil {
		return geo.Location{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if math.Abs(lat) > 90 || math.Abs(lng) > 180 {
		return geo.Location{}, fmt.Errorf("%w: coordinates out of range", ErrUnavailable)
	}
	return geo.Location{Lat: lat, Lng: lng}, nil
}

// Chain tries providers in order and returns the first fix. When all fail
// the last error is returned.
type Chain []Provider

func (c Chain) Locate(ctx context.Context) (geo.Location, error) {
	err := ErrUnsupported
	for _, p := range c {
		var loc geo.Location
		if loc, err = p.Locate(ctx); err == nil {
			return loc, nil
		}
		if errors.Is(err, ErrTimeout) {
			break
		}
	}
	return geo.Location{}, err
}

// Reference point for the approximate location and the width, in degrees,
// of the box it is drawn from.
var (
	DefaultCenter = geo.Location{Lat: 12.9716, Lng: 77.5946}
	DefaultSpread = 0.1
)

// Result is a location fix. When Approximate is set, Reason holds the
// provider error that caused the fallback.
type Result struct {
	Location    geo.Location
	Approximate bool
	Reason      error
}

// Fallback bounds a provider by Timeout and never fails: any provider error
// yields a random point within Spread/2 degrees of Center.
type Fallback struct {
	Provider Provider
	Timeout  time.Duration
	Center   geo.Location
	Spread   float64
	Rand     *rand.Rand
}

func NewFallback(p Provider, timeout time.Duration) *Fallback {
	return &Fallback{
		Provider: p,
		Timeout:  timeout,
		Center:   DefaultCenter,
		Spread:   DefaultSpread,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (f *Fallback) Locate(ctx context.Context) Result {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	loc, err := f.Provider.Locate(ctx)
	if err == nil {
		return Result{Location: loc}
	}
	if cerr := ctx.Err(); cerr != nil && errors.Is(err, cerr) {
		err = contextErr(cerr)
	}
	return Result{
		Location:    geo.Jitter(f.Center, f.Spread, f.Rand),
		Approximate: true,
		Reason:      err,
	}
}

func contextErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
