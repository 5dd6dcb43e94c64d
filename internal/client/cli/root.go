package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	SetupTwoFactor(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	AddFile(ctx context.Context) error
	GetFile(ctx context.Context) error
	CheckHealth(ctx context.Context) error
	Share(ctx context.Context) error
	Reveal(ctx context.Context) error
	Generate(ctx context.Context) error
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to SecurePass CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// runREPL reads a line, parses the first token as the command and dispatches
// to methods on 'a'. The loop exits on scanner EOF or when the user types
// "exit" or "quit". Errors from command handlers are ignored here; handlers
// print their own diagnostics.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sp %s> ", statusFn()))
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
				printlnFn("Available commands: add, (l)ist, show, addfile, getfile, check, share, reveal, generate, 2fa, logout, exit")
			} else {
				printlnFn("Available commands: register, login, reveal, generate, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "2fa":
			_ = a.SetupTwoFactor(ctx)

		case "add":
			_ = a.Add(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "addfile":
			_ = a.AddFile(ctx)

		case "getfile":
			_ = a.GetFile(ctx)

		case "check":
			_ = a.CheckHealth(ctx)

		case "share":
			_ = a.Share(ctx)

		case "reveal":
			_ = a.Reveal(ctx)

		case "generate":
			_ = a.Generate(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
