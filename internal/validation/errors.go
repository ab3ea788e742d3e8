package validation

import "fmt"

// Field names a validated form input.
type Field string

const (
	FieldName      Field = "name"
	FieldPhone     Field = "phone"
	FieldPassword  Field = "password"
	FieldAge       Field = "age"
	FieldAddress   Field = "address"
	FieldCity      Field = "city"
	FieldState     Field = "state"
	FieldPincode   Field = "pincode"
	FieldLocation  Field = "location"
	FieldBloodType Field = "bloodType"
)

// fieldOrder is the order in which violations are reported by First.
var fieldOrder = []Field{
	FieldName,
	FieldPhone,
	FieldPassword,
	FieldAge,
	FieldAddress,
	FieldCity,
	FieldState,
	FieldPincode,
	FieldLocation,
	FieldBloodType,
}

// Errors collects at most one message per field. The zero value is empty
// and ready to use.
type Errors struct {
	m map[Field]string
}

func (e *Errors) add(f Field, msg string) {
	if e.m == nil {
		e.m = make(map[Field]string)
	}
	if _, ok := e.m[f]; ok {
		return
	}
	e.m[f] = msg
}

func (e *Errors) Len() int {
	if e == nil {
		return 0
	}
	return len(e.m)
}

// Get returns the message recorded for f, if any.
func (e *Errors) Get(f Field) (string, bool) {
	if e == nil {
		return "", false
	}
	msg, ok := e.m[f]
	return msg, ok
}

// First returns the first violation in form order.
func (e *Errors) First() (Field, string, bool) {
	for _, f := range fieldOrder {
		if msg, ok := e.Get(f); ok {
			return f, msg, true
		}
	}
	return "", "", false
}

// Fields returns the violated fields in form order.
func (e *Errors) Fields() []Field {
	var out []Field
	for _, f := range fieldOrder {
		if _, ok := e.Get(f); ok {
			out = append(out, f)
		}
	}
	return out
}

// Map returns a copy of all violations.
func (e *Errors) Map() map[Field]string {
	out := make(map[Field]string, e.Len())
	if e == nil {
		return out
	}
	for f, msg := range e.m {
		out[f] = msg
	}
	return out
}

// Err returns e as an error, or nil when there are no violations.
func (e *Errors) Err() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}

// Error reports the first violation, followed by the number of others.
func (e *Errors) Error() string {
	_, msg, ok := e.First()
	if !ok {
		return "no validation errors"
	}
	if n := e.Len() - 1; n > 0 {
		return fmt.Sprintf("%s (and %d more)", msg, n)
	}
	return msg
}
