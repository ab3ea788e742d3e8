package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bloodbuddy/internal/models"
	"github.com/dmitrijs2005/bloodbuddy/internal/registry"
)

// SOS raises a request for the session user's own blood type.
func (a *App) SOS(ctx context.Context) error {
	u, _ := a.auth.Current()

	req, err := a.registry.Create(ctx, u)
	if err = a.saved(err); err != nil {
		if errors.Is(err, registry.ErrNoLocation) {
			printlnFn("Location not available. Please update your location with 'locate'.")
		} else {
			printlnFn("Error:", err)
		}
		return err
	}

	donors := a.registry.DonorsNear(req)
	printlnFn("🚨 SOS Alert Sent! Nearby compatible donors will be notified.")
	printlnFn(fmt.Sprintf("Request %s for %s, %d registered compatible donor(s) within %.0f km",
		req.ID, req.BloodNeeded, len(donors), a.registry.RadiusKm()))
	return nil
}

// Nearby lists compatible active requests around the session user.
func (a *App) Nearby(ctx context.Context) error {
	u, _ := a.auth.Current()
	if !u.HasLocation() {
		printlnFn("Location not available. Please update your location with 'locate'.")
		return nil
	}

	list := a.registry.ListNearby(u)
	if len(list) == 0 {
		printlnFn(fmt.Sprintf("No compatible requests within %.0f km", a.registry.RadiusKm()))
		return nil
	}
	for _, n := range list {
		printlnFn(n.String())
	}
	return nil
}

// Mine lists the session user's requests with the donors who accepted.
func (a *App) Mine(ctx context.Context) error {
	u, _ := a.auth.Current()

	list := a.registry.ListMine(u.ID)
	if len(list) == 0 {
		printlnFn("You have not raised any requests")
		return nil
	}
	for _, r := range list {
		printlnFn(r.String())
		for _, acc := range r.AcceptedBy {
			printlnFn(fmt.Sprintf("    ✓ %s (%s) %s at %s",
				acc.DonorName, acc.DonorBloodType, models.FormatPhone(acc.DonorPhone),
				acc.AcceptedAt.Local().Format(time.DateTime)))
		}
	}
	return nil
}

// Accept answers a request and shows the requester's contact details.
func (a *App) Accept(ctx context.Context, id string) error {
	u, _ := a.auth.Current()

	if req, err := a.registry.Get(id); err == nil && req.UserID == u.ID {
		printlnFn("You cannot accept your own request")
		return nil
	}

	req, err := a.registry.Accept(ctx, id, u)
	if err = a.saved(err); err != nil {
		if errors.Is(err, registry.ErrRequestNotFound) {
			printlnFn("Request not found:", id)
		} else {
			printlnFn("Error:", err)
		}
		return err
	}

	printlnFn(fmt.Sprintf("✓ Request Accepted!\n\nCall Now: %s\nName: %s\nBlood Type: %s",
		models.FormatPhone(req.RequesterPhone), req.RequesterName, req.BloodNeeded))
	return nil
}

// Decline leaves the request untouched for other donors.
func (a *App) Decline(ctx context.Context, id string) error {
	if err := a.registry.Decline(ctx, id); err != nil {
		printlnFn("Request not found:", id)
		return err
	}
	printlnFn("Request declined. It will remain visible to other donors.")
	return nil
}

// Call dials a request's requester when target is a request id, and target
// itself otherwise.
func (a *App) Call(ctx context.Context, target string) error {
	phone := target
	if req, err := a.registry.Get(target); err == nil {
		phone = req.RequesterPhone
	}

	if err := a.dialer.Dial(ctx, phone); err != nil {
		printlnFn("Error:", err)
		return err
	}
	return nil
}
