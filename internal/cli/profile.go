package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bloodbuddy/internal/bloodtype"
	"github.com/dmitrijs2005/bloodbuddy/internal/models"
)

// Profile prints the session user's details and blood compatibility.
func (a *App) Profile(ctx context.Context) error {
	u, _ := a.auth.Current()

	printlnFn("Name:       ", u.Name)
	printlnFn("Phone:      ", models.FormatPhone(u.Phone))
	printlnFn("Blood type: ", u.BloodType)
	if u.Age > 0 {
		printlnFn("Age:        ", u.Age)
	}
	if u.Address != "" {
		printlnFn("Address:    ", fmt.Sprintf("%s, %s, %s %s", u.Address, u.City, u.State, u.Pincode))
	}
	if u.HasLocation() {
		printlnFn("Location:   ", fmt.Sprintf("%.4f, %.4f", u.Location.Lat, u.Location.Lng))
	} else {
		printlnFn("Location:    not captured")
	}
	printlnFn("Can give to:", joinTypes(bloodtype.Recipients(u.BloodType)))
	printlnFn("Can get from:", joinTypes(bloodtype.Donors(u.BloodType)))
	return nil
}
