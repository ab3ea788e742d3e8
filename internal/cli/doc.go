// Package cli provides the interactive BloodBuddy command-line client.
//
// It wires configuration, storage, the auth and request services, the
// location provider and the dialer into a REPL. Typical flow: locate,
// signup or login, then raise an SOS or browse nearby requests and accept
// one.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command set.
package cli
