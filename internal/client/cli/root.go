package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if a.controller != nil {
		s = s + " " + a.controller.State().String()
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", strings.TrimSpace(s))
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to the internship recommender CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	for {
		fmt.Printf("irec %s> ", a.getStatus())
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
				fmt.Println("Available commands: internships, pick <path>, drop <path>, camera, capture, closecam, clear, status, analyze, recommend, export <path>, apply <id> <score>, history, profile, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, internships, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "profile":
			a.Profile(ctx)
		case "internships":
			a.Internships(ctx)
		case "pick":
			a.Pick(ctx, args)
		case "drop":
			a.Drop(ctx, args)
		case "camera":
			a.OpenCamera(ctx)
		case "capture":
			a.Capture(ctx)
		case "closecam":
			a.CloseCamera(ctx)
		case "clear":
			a.ClearSelection(ctx)
		case "status":
			a.Status(ctx)
		case "analyze":
			a.Analyze(ctx)
		case "recommend":
			a.Recommend(ctx)
		case "export":
			a.Export(ctx, args)
		case "apply":
			a.Apply(ctx, args)
		case "history":
			a.History(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
