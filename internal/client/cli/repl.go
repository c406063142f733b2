package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, ref string) error
	Status(ctx context.Context, ref, status string) error
	Delete(ctx context.Context, ref string) error
	Profile(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the taskdesk CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user
// types "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - signup         create an account
//	  - login          authenticate
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - help                   show available commands
//	  - list | l               reload and show tasks
//	  - add                    create a task
//	  - edit <n|id>            edit title and description
//	  - status <n|id> <status> set status (pending, in-progress, completed)
//	  - delete <n|id>          delete a task
//	  - profile                edit name, email and avatar
//	  - logout                 log out
//	  - exit | quit            leave the program
//
// Errors returned by command handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if s := statusFn(); s != "" {
			printlnFn(fmt.Sprintf("td (%s)> ", s))
		} else {
			printlnFn("td> ")
		}

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, add, edit <n|id>, status <n|id> <status>, delete <n|id>, profile, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, exit")
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "add":
			cmdErr = a.Add(ctx)

		case "edit":
			if len(args) != 1 {
				printlnFn("Usage: edit <n|id>")
				continue
			}
			cmdErr = a.Edit(ctx, args[0])

		case "status":
			if len(args) < 2 {
				printlnFn("Usage: status <n|id> <pending|in-progress|completed>")
				continue
			}
			cmdErr = a.Status(ctx, args[0], strings.Join(args[1:], " "))

		case "delete", "rm":
			if len(args) != 1 {
				printlnFn("Usage: delete <n|id>")
				continue
			}
			cmdErr = a.Delete(ctx, args[0])

		case "profile":
			cmdErr = a.Profile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}

		if err != nil {
			return
		}
	}
}
