package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bloodbuddy/internal/auth"
	"github.com/dmitrijs2005/bloodbuddy/internal/bloodtype"
	"github.com/dmitrijs2005/bloodbuddy/internal/common"
	"github.com/dmitrijs2005/bloodbuddy/internal/models"
	"github.com/dmitrijs2005/bloodbuddy/internal/validation"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Locate captures the current location. Before login it is kept for the
// next signup or login; after login it updates the profile.
func (a *App) Locate(ctx context.Context) error {
	res := a.locator.Locate(ctx)
	if res.Approximate {
		a.logger.Info(ctx, "using approximate location", "reason", res.Reason)
		printlnFn("✓ Demo location set!")
	} else {
		printlnFn("✓ Location captured!")
	}

	loc := res.Location
	if !a.isLoggedIn() {
		a.pendingLoc = &loc
		return nil
	}

	if _, err := a.auth.UpdateLocation(ctx, loc); a.saved(err) != nil {
		printlnFn("Error:", err)
		return err
	}
	return nil
}

// Signup prompts for the profile fields and registers a new account. A
// location is captured first when none is pending.
func (a *App) Signup(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in. Logout first.")
		return nil
	}
	if a.pendingLoc == nil {
		_ = a.Locate(ctx)
	}

	f := validation.Form{Location: a.pendingLoc}
	var err error

	if f.Name, err = getSimpleText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if f.Phone, err = getSimpleText(a.reader, "Phone number (10 digits)", a.out); err != nil {
		return err
	}
	pw, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	f.Password = string(pw)

	if f.Age, err = getSimpleText(a.reader, "Age", a.out); err != nil {
		return err
	}
	if f.Address, err = getSimpleText(a.reader, "Address", a.out); err != nil {
		return err
	}
	if f.City, err = getSimpleText(a.reader, "City", a.out); err != nil {
		return err
	}
	state, err := getSimpleText(a.reader, "State (name or number, '?' to list)", a.out)
	if err != nil {
		return err
	}
	if state == "?" {
		printStates()
		if state, err = getSimpleText(a.reader, "State", a.out); err != nil {
			return err
		}
	}
	f.State = pickState(state)
	if f.Pincode, err = getSimpleText(a.reader, "Pincode", a.out); err != nil {
		return err
	}
	if f.BloodType, err = getSimpleText(a.reader, "Blood type ("+joinTypes(bloodtype.All())+")", a.out); err != nil {
		return err
	}

	u, err := a.auth.Signup(ctx, f)
	if err = a.saved(err); err != nil {
		var verrs *validation.Errors
		switch {
		case errors.As(err, &verrs):
			printValidation(verrs)
		case errors.Is(err, auth.ErrPhoneTaken):
			printlnFn("This phone number is already registered. Please login.")
		default:
			printlnFn("Error:", err)
		}
		return err
	}

	a.pendingLoc = nil
	printlnFn(fmt.Sprintf("Account created successfully! Welcome, %s.", u.Name))
	return nil
}

// Login prompts for phone and password. A pending location replaces the
// stored one.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in. Logout first.")
		return nil
	}

	phone, err := getSimpleText(a.reader, "Phone number", a.out)
	if err != nil {
		return err
	}
	pw, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	u, err := a.auth.Login(ctx, phone, string(pw), a.pendingLoc)
	if err = a.saved(err); err != nil {
		var verrs *validation.Errors
		switch {
		case errors.As(err, &verrs):
			printValidation(verrs)
		case errors.Is(err, auth.ErrInvalidCredentials):
			printlnFn("Invalid phone number or password. Try signing up first!")
		default:
			printlnFn("Error:", err)
		}
		return err
	}

	a.pendingLoc = nil
	printlnFn(fmt.Sprintf("Logged in successfully! Welcome, %s.", u.Name))
	return nil
}

// Logout ends the session and forgets any pending location.
func (a *App) Logout(ctx context.Context) error {
	a.pendingLoc = nil
	if err := a.saved(a.auth.Logout(ctx)); err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn("Logged out")
	return nil
}

// printValidation shows the first violation, then every field's message.
func printValidation(e *validation.Errors) {
	_, first, _ := e.First()
	printlnFn("Error:", first)
	if e.Len() < 2 {
		return
	}
	m := e.Map()
	for _, f := range e.Fields() {
		printlnFn(fmt.Sprintf("  - %s: %s", f, m[f]))
	}
}

func printStates() {
	for i, s := range models.States() {
		printlnFn(fmt.Sprintf("%2d. %s", i+1, s))
	}
}

// pickState maps a list number to its state name; other input is returned
// as typed.
func pickState(in string) string {
	states := models.States()
	if n, err := strconv.Atoi(strings.TrimSpace(in)); err == nil && n >= 1 && n <= len(states) {
		return states[n-1]
	}
	return in
}

func joinTypes(ts []bloodtype.Type) string {
	s := make([]string, len(ts))
	for i, t := range ts {
		s[i] = t.String()
	}
	return strings.Join(s, ", ")
}
