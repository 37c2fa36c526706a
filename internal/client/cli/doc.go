// Package cli provides the interactive gophauth command-line client.
//
// It wires configuration and the gRPC client into a small REPL. A background
// watcher polls the server health check and switches the prompt between
// online and offline mode.
//
// Key features:
//   - Register a new account
//   - Log in with email and password, or with a biometric key
//   - Enroll a biometric key for an existing account
//   - Show the current access token
//   - Call the server health check
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
