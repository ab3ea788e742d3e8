package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Locate(ctx context.Context) error
	SOS(ctx context.Context) error
	Nearby(ctx context.Context) error
	Mine(ctx context.Context) error
	Accept(ctx context.Context, id string) error
	Decline(ctx context.Context, id string) error
	Call(ctx context.Context, target string) error
	Profile(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: locate, signup, login, help, exit"
	helpLoggedIn  = "Available commands: sos, nearby, mine, accept <id>, decline <id>, call <phone|id>, locate, profile, logout, help, exit"
)

// runREPL reads commands from reader and dispatches them to a until EOF or
// "exit"/"quit". The prompt shows statusFn().
//
// Handler errors are not acted on here; handlers report to the user
// themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bb %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if requiresLogin(cmd) && !a.isLoggedIn() {
			printlnFn("Please login or signup first")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "locate":
			_ = a.Locate(ctx)

		case "sos":
			_ = a.SOS(ctx)

		case "nearby":
			_ = a.Nearby(ctx)

		case "mine":
			_ = a.Mine(ctx)

		case "accept":
			if len(args) == 0 {
				printlnFn("Usage: accept <id>")
				continue
			}
			_ = a.Accept(ctx, args[0])

		case "decline":
			if len(args) == 0 {
				printlnFn("Usage: decline <id>")
				continue
			}
			_ = a.Decline(ctx, args[0])

		case "call":
			if len(args) == 0 {
				printlnFn("Usage: call <phone|id>")
				continue
			}
			_ = a.Call(ctx, strings.Join(args, " "))

		case "profile":
			_ = a.Profile(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requiresLogin(cmd string) bool {
	switch cmd {
	case "sos", "nearby", "mine", "accept", "decline", "call", "profile", "logout":
		return true
	}
	return false
}
