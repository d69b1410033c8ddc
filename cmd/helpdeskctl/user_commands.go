package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/spec-kit/helpdesk-core/internal/domain"
	"github.com/spec-kit/helpdesk-core/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-core/pkg/util"
)

func createUserCommand() *command {
	return &command{
		name:    "create-user",
		summary: "Provision a new directory account (admin only)",
		usage:   "create-user --name <n> --email <e> --role <staff|it_support|admin>",
		run: func(a *app, args []string) error {
			flags := pflag.NewFlagSet("create-user", pflag.ContinueOnError)
			name := flags.String("name", "", "full name")
			email := flags.String("email", "", "email address")
			role := flags.String("role", "", "staff|it_support|admin")
			asJSON := flags.Bool("json", false, "output as JSON")
			if err := flags.Parse(args); err != nil {
				return err
			}

			principal, err := a.requirePrincipal()
			if err != nil {
				return err
			}
			user, err := a.userService.Create(context.Background(), principal, *name, *email, domain.Role(*role))
			if err != nil {
				return err
			}

			if *asJSON {
				return printJSON(userToJSON(*user))
			}
			fmt.Printf("created user %s (%s, %s)\n", user.ID, user.Name, user.Role)
			return nil
		},
	}
}

func setUserStatusCommand() *command {
	return &command{
		name:    "set-user-status",
		summary: "Activate or deactivate an account (admin only)",
		usage:   "set-user-status <user-id> <active|inactive>",
		run: func(a *app, args []string) error {
			flags := pflag.NewFlagSet("set-user-status", pflag.ContinueOnError)
			asJSON := flags.Bool("json", false, "output as JSON")
			if err := flags.Parse(args); err != nil {
				return err
			}
			rest := flags.Args()
			if len(rest) != 2 {
				return apperrors.NewValidationError("usage: set-user-status <user-id> <active|inactive>", nil)
			}

			principal, err := a.requirePrincipal()
			if err != nil {
				return err
			}
			user, err := a.userService.SetStatus(context.Background(), principal, rest[0], domain.UserStatus(rest[1]))
			if err != nil {
				return err
			}

			if *asJSON {
				return printJSON(userToJSON(*user))
			}
			fmt.Printf("%s is now %s\n", user.Name, user.Status)
			return nil
		},
	}
}

func deleteUserCommand() *command {
	return &command{
		name:    "delete-user",
		summary: "Remove an account from the directory (admin only)",
		usage:   "delete-user <user-id>",
		run: func(a *app, args []string) error {
			flags := pflag.NewFlagSet("delete-user", pflag.ContinueOnError)
			if err := flags.Parse(args); err != nil {
				return err
			}
			rest := flags.Args()
			if len(rest) != 1 {
				return apperrors.NewValidationError("usage: delete-user <user-id>", nil)
			}

			principal, err := a.requirePrincipal()
			if err != nil {
				return err
			}
			if err := a.userService.Delete(context.Background(), principal, rest[0]); err != nil {
				return err
			}
			fmt.Printf("deleted user %s\n", rest[0])
			return nil
		},
	}
}

func listUsersCommand() *command {
	return &command{
		name:    "list-users",
		summary: "List directory accounts (admin only)",
		usage:   "list-users [--search <q>]",
		run: func(a *app, args []string) error {
			flags := pflag.NewFlagSet("list-users", pflag.ContinueOnError)
			search := flags.String("search", "", "search by name, email, or role")
			asJSON := flags.Bool("json", false, "output as JSON")
			if err := flags.Parse(args); err != nil {
				return err
			}

			principal, err := a.requirePrincipal()
			if err != nil {
				return err
			}
			users, err := a.userService.Find(context.Background(), principal, repository.UserFilter{Text: *search})
			if err != nil {
				return err
			}

			if *asJSON {
				out := make([]userJSON, 0, len(users))
				for _, user := range users {
					out = append(out, userToJSON(user))
				}
				return printJSON(out)
			}
			printUserTable(users)
			return nil
		},
	}
}
