// Package cli provides the interactive GymTracker command-line client.
//
// It wires configuration, local storage, the selected auth backend, and an
// interactive REPL rendered from the auth orchestrator's state. Commands
// touching the account are routed through an auth guard: while the session
// is being restored the guard waits, and an anonymous user is sent through
// the login flow with the attempted command re-dispatched on success.
//
// Key features:
//   - Register / Login / Logout against the local registry or the external
//     provider, selected by configuration
//   - whoami, profile editing, avatar upload
//   - anamnesis questionnaire
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
