// Package validation checks signup and login form input and reports every
// violated rule per field.
package validation

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/bloodbuddy/internal/bloodtype"
	"github.com/dmitrijs2005/bloodbuddy/internal/geo"
	"github.com/dmitrijs2005/bloodbuddy/internal/models"
)

// Mode selects the rule set.
type Mode int

const (
	ModeSignup Mode = iota
	ModeLogin
)

const (
	MinAge         = 18
	MaxAge         = 65
	MinPasswordLen = 6
	MaxPasswordLen = 20
)

// Form holds raw user input as typed.
type Form struct {
	Name      string
	Phone     string
	Password  string
	Age       string
	Address   string
	City      string
	State     string
	Pincode   string
	BloodType string
	Location  *geo.Location
}

// Validate applies the rules for mode m and returns the collected
// violations. An empty result means the form is valid.
func Validate(f Form, m Mode) *Errors {
	e := &Errors{}

	if m == ModeSignup {
		checkName(e, f.Name)
	}
	checkPhone(e, f.Phone)
	checkPassword(e, f.Password)

	if m == ModeLogin {
		return e
	}

	checkAge(e, f.Age)
	checkMinTrimmed(e, FieldAddress, f.Address, "Address", 10)
	checkMinTrimmed(e, FieldCity, f.City, "City", 3)
	checkState(e, f.State)
	checkPincode(e, f.Pincode)
	if f.Location == nil {
		e.add(FieldLocation, "Please capture your location first")
	}
	checkBloodType(e, f.BloodType)

	return e
}

func checkName(e *Errors, raw string) {
	name := strings.TrimSpace(raw)
	switch {
	case name == "":
		e.add(FieldName, "Name is required")
	case utf8.RuneCountInString(name) < 2:
		e.add(FieldName, "Name must be at least 2 characters")
	case !models.IsLettersAndSpaces(name):
		e.add(FieldName, "Name can only contain letters and spaces")
	}
}

func checkPhone(e *Errors, raw string) {
	if strings.TrimSpace(raw) == "" {
		e.add(FieldPhone, "Phone number is required")
		return
	}
	phone := models.CleanDigits(raw)
	switch {
	case len(phone) != 10:
		e.add(FieldPhone, "Phone number must be exactly 10 digits")
	case !strings.ContainsRune("6789", rune(phone[0])):
		e.add(FieldPhone, "Phone number must start with 6, 7, 8 or 9")
	}
}

func checkPassword(e *Errors, pw string) {
	if pw == "" {
		e.add(FieldPassword, "Password is required")
		return
	}
	n := utf8.RuneCountInString(pw)
	if n < MinPasswordLen || n > MaxPasswordLen {
		e.add(FieldPassword, "Password must be 6-20 characters")
		return
	}

	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		e.add(FieldPassword, "Password must contain an uppercase letter, a lowercase letter and a digit")
	}
}

func checkAge(e *Errors, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		e.add(FieldAge, "Age is required")
		return
	}
	age, err := strconv.Atoi(raw)
	if err != nil {
		e.add(FieldAge, "Age must be a whole number")
		return
	}
	if age < MinAge || age > MaxAge {
		e.add(FieldAge, "Age must be between 18 and 65")
	}
}

func checkMinTrimmed(e *Errors, f Field, raw, label string, min int) {
	v := strings.TrimSpace(raw)
	switch {
	case v == "":
		e.add(f, label+" is required")
	case utf8.RuneCountInString(v) < min:
		e.add(f, label+" must be at least "+strconv.Itoa(min)+" characters")
	}
}

func checkState(e *Errors, raw string) {
	v := strings.TrimSpace(raw)
	switch {
	case v == "":
		e.add(FieldState, "State is required")
	case !models.IsState(v):
		e.add(FieldState, "Please select a valid state")
	}
}

func checkPincode(e *Errors, raw string) {
	if strings.TrimSpace(raw) == "" {
		e.add(FieldPincode, "Pincode is required")
		return
	}
	if len(models.CleanDigits(raw)) != 6 {
		e.add(FieldPincode, "Pincode must be exactly 6 digits")
	}
}

func checkBloodType(e *Errors, raw string) {
	if strings.TrimSpace(raw) == "" {
		e.add(FieldBloodType, "Blood type is required")
		return
	}
	if _, err := bloodtype.Parse(raw); err != nil {
		e.add(FieldBloodType, "Please select a valid blood type")
	}
}
