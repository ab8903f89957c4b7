package main

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func loginCmd(c *cli) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Authenticate against the notes service and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]

			pw := password
			if pw == "" {
				var err error
				pw, err = promptPassword(cmd)
				if err != nil {
					return err
				}
			}

			if err := c.app.Session.Login(cmd.Context(), email, pw); err != nil {
				return err
			}

			state := c.app.Session.Snapshot()
			if state.User != nil {
				cmd.Printf("Logged in as %s\n", state.User.Email)
				return nil
			}
			cmd.Println("Logged in")
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "",
		"Password (prompted for when omitted)")
	return cmd
}

func promptPassword(cmd *cobra.Command) (string, error) {
	cmd.PrintErr("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", errors.New("read password: aborted")
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("password is required")
	}
	return pw, nil
}

func logoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("Logged out")
			return nil
		},
	}
}

func whoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := c.app.Session.Snapshot()
			if !state.IsAuthenticated {
				return errors.New("not logged in")
			}

			if err := c.app.Session.FetchCurrentUser(cmd.Context()); err != nil {
				return err
			}

			state = c.app.Session.Snapshot()
			if state.User == nil {
				return errors.New("not logged in")
			}
			cmd.Printf("%s <%s>\n", state.User.Name, state.User.Email)
			return nil
		},
	}
}
