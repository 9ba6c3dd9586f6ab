package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) showLogin() string {
	if a.user != nil {
		return a.user.Email
	}
	return "not logged in"
}

func (a *App) Main(ctx context.Context) {

	fmt.Println("memberctl CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("memberhub %s > ", a.showLogin())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: list [query] [status], stats, logout, exit")
			} else {
				fmt.Println("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "l", "list":
			query, status := "", ""
			if len(args) > 0 {
				query = args[0]
			}
			if len(args) > 1 {
				status = args[1]
			}
			_ = a.List(ctx, query, status)

		case "stats":
			_ = a.Stats(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
