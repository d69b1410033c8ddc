package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/spec-kit/helpdesk-core/internal/identity"
)

func loginCommand() *command {
	return &command{
		name:    "login",
		summary: "Sign in and store a session token",
		usage:   "login --email <email> --password <password>",
		run: func(a *app, args []string) error {
			flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
			email := flags.String("email", "", "account email")
			password := flags.String("password", "", "account password")
			asJSON := flags.Bool("json", false, "output as JSON")
			if err := flags.Parse(args); err != nil {
				return err
			}

			result, err := a.authService.Login(context.Background(), identity.Credential{
				Email:  *email,
				Secret: *password,
			})
			if err != nil {
				return err
			}
			if err := a.session.Save(result.Token); err != nil {
				return err
			}

			if *asJSON {
				return printJSON(map[string]any{
					"user_id":    result.Principal.UserID,
					"name":       result.Principal.Name,
					"role":       result.Principal.Role,
					"route":      result.Route,
					"expires_at": result.ExpiresAt,
				})
			}
			fmt.Printf("signed in as %s (%s)\n", result.Principal.Name, result.Principal.Role)
			fmt.Printf("dashboard: %s\n", result.Route)
			return nil
		},
	}
}

func logoutCommand() *command {
	return &command{
		name:    "logout",
		summary: "Discard the stored session",
		usage:   "logout",
		run: func(a *app, args []string) error {
			if err := a.session.Clear(); err != nil {
				return err
			}
			fmt.Println("signed out")
			return nil
		},
	}
}

func whoamiCommand() *command {
	return &command{
		name:    "whoami",
		summary: "Show the current session principal",
		usage:   "whoami",
		run: func(a *app, args []string) error {
			flags := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
			asJSON := flags.Bool("json", false, "output as JSON")
			if err := flags.Parse(args); err != nil {
				return err
			}

			principal, err := a.requirePrincipal()
			if err != nil {
				return err
			}
			if *asJSON {
				return printJSON(map[string]any{
					"user_id": principal.UserID,
					"name":    principal.Name,
					"role":    principal.Role,
					"route":   identity.DashboardRoute(principal.Role),
				})
			}
			fmt.Printf("%s (%s)\n", principal.Name, principal.Role)
			return nil
		},
	}
}
