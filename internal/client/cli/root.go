package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) printHelp() {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: register, login, exit")
		return
	}
	fmt.Fprintln(a.out, "Available commands: list, insert, release, move, findtype, findlevel, finddex, weakto, logout, exit")
	if a.admin {
		fmt.Fprintln(a.out, "Operator commands:  hacked, counts, addspecies")
	}
}

// Root runs the command loop until EOF or an exit command.
func (a *App) Root(ctx context.Context) {
	if a.admin {
		fmt.Fprintln(a.out, "Storage system operator console (type 'help' for commands)")
	} else {
		fmt.Fprintln(a.out, "Welcome to the storage system (type 'help' for commands)")
	}
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "box %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			a.printHelp()
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "l", "list":
			err = a.list(ctx, args)
		case "insert":
			err = a.insert(ctx, args)
		case "release":
			err = a.release(ctx, args)
		case "move":
			err = a.move(ctx, args)
		case "findtype":
			err = a.findType(ctx, args)
		case "findlevel":
			err = a.findLevel(ctx, args)
		case "finddex":
			err = a.findDex(ctx, args)
		case "weakto":
			err = a.weakTo(ctx, args)
		case "hacked":
			err = a.hacked(ctx)
		case "counts":
			err = a.counts(ctx)
		case "addspecies":
			err = a.addSpecies(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(a.out, "Error:", err)
		}
	}
}
