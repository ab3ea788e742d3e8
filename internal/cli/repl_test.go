package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(c string) error {
	f.calls = append(f.calls, c)
	return nil
}

func (f *fakeExec) isLoggedIn() bool                 { return f.loggedIn }
func (f *fakeExec) Signup(ctx context.Context) error { f.loggedIn = true; return f.record("signup") }
func (f *fakeExec) Login(ctx context.Context) error  { f.loggedIn = true; return f.record("login") }
func (f *fakeExec) Locate(ctx context.Context) error { return f.record("locate") }
func (f *fakeExec) SOS(ctx context.Context) error    { return f.record("sos") }
func (f *fakeExec) Nearby(ctx context.Context) error { return f.record("nearby") }
func (f *fakeExec) Mine(ctx context.Context) error   { return f.record("mine") }
func (f *fakeExec) Accept(ctx context.Context, id string) error {
	return f.record("accept " + id)
}
func (f *fakeExec) Decline(ctx context.Context, id string) error {
	return f.record("decline " + id)
}
func (f *fakeExec) Call(ctx context.Context, target string) error {
	return f.record("call " + target)
}
func (f *fakeExec) Profile(ctx context.Context) error { return f.record("profile") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = fmt.Sprint(v)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Dispatch(t *testing.T) {
	captureOutput(t)

	input := strings.Join([]string{
		"help",
		"locate",
		"login",
		"sos",
		"nearby",
		"mine",
		"ACCEPT r1",
		"decline r2",
		"call 98765 43210",
		"profile",
		"logout",
		"exit",
		"sos",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr(input))

	assert.Equal(t, []string{
		"locate", "login", "sos", "nearby", "mine", "accept r1", "decline r2",
		"call 98765 43210", "profile", "logout",
	}, exec.calls)
}

func TestRunREPL_GuardsAndUsage(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" },
		rdr("sos\nfoobar\n\nsignup\naccept\ndecline\ncall\nhelp\nquit\n"))

	assert.Equal(t, []string{"signup"}, exec.calls)
	assert.Contains(t, *out, "Please login or signup first")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Usage: accept <id>")
	assert.Contains(t, *out, "Usage: decline <id>")
	assert.Contains(t, *out, "Usage: call <phone|id>")
	assert.Contains(t, *out, helpLoggedIn)
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	captureOutput(t)
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("locate"))
	assert.Equal(t, []string{"locate"}, exec.calls)
}
