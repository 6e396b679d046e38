// Package cli provides the interactive helpdesk command-line client.
//
// It wires configuration, the REST client, the auth and ticket stores and
// an interactive REPL. Typical flow: silently check for an existing
// session, load the ticket list when one is found, then execute user
// commands until exit.
//
// Key features:
//   - Signup / Login / Logout for users and admins
//   - List user, all (admin) and assigned tickets
//   - Create tickets, comment, change status and priority, assign
//   - Delete (admin) and remove (owner) tickets
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
