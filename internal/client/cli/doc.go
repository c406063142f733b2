// Package cli provides the interactive taskdesk command-line client.
//
// It wires configuration, the local session store, the API client and the
// screen controllers from package views into a simple REPL. On start the
// saved session (if any) is used to show the task list straight away;
// otherwise the user is asked to log in or sign up.
//
// Commands:
//   - login / signup / logout
//   - list, add, edit, status, delete
//   - profile (name, email and avatar)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
