package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	BiometricLogin(ctx context.Context) error
	EnrollBiometric(ctx context.Context) error
	ShowToken(ctx context.Context) error
	Health(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from scanner and dispatches them to a until EOF or
// "exit"/"quit".
//
//	Always available:
//	  - help           show available commands
//	  - register       create an account
//	  - login          authenticate with email and password
//	  - bio | biologin authenticate with a biometric key
//	  - enroll         attach a biometric key to an account
//	  - health         check the server
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - token          print the current access token
//	  - logout         forget the access token
//
// Errors returned by handlers are ignored; handlers report their own.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ga %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: token, logout, enroll, health, exit")
			} else {
				printlnFn("Available commands: register, login, bio, enroll, health, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "bio", "biologin":
			_ = a.BiometricLogin(ctx)

		case "enroll":
			_ = a.EnrollBiometric(ctx)

		case "token":
			_ = a.ShowToken(ctx)

		case "health":
			_ = a.Health(ctx)

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
