package cli

import (
	"fmt"
)

// handleUser dispatches the user scope commands.
func (c *CLI) handleUser(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing user command (try 'help user')")
	}

	switch args[0] {
	case "add":
		return c.userAdd(args[1:])
	case "select":
		return c.userSelect(args[1:])
	case "delete":
		return c.userDelete(args[1:])
	case "list":
		return c.userList()
	case "logout":
		return c.manager.Logout()
	default:
		return fmt.Errorf("unknown user command: %s", args[0])
	}
}

func (c *CLI) userAdd(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: user add <username>")
	}

	user, err := c.manager.CreateUser(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("User '%s' created and selected (id %s)\n", user.Username, user.ID)
	return nil
}

func (c *CLI) userSelect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: user select <username|id>")
	}

	user, err := c.resolveUser(args[0])
	if err != nil {
		return err
	}
	if err := c.manager.SelectUser(user.ID); err != nil {
		return err
	}
	fmt.Printf("Switched to user '%s'\n", user.Username)
	return nil
}

func (c *CLI) userDelete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: user delete <username|id>")
	}

	user, err := c.resolveUser(args[0])
	if err != nil {
		return err
	}
	if err := c.manager.DeleteUser(user.ID); err != nil {
		return err
	}
	fmt.Printf("User '%s' and all owned lists deleted\n", user.Username)
	return nil
}

func (c *CLI) userList() error {
	d := c.manager.Data()
	if len(d.Users) == 0 {
		fmt.Println("No users yet (use 'user add')")
		return nil
	}

	for _, u := range d.Users {
		marker := " "
		if d.CurrentUserID != nil && *d.CurrentUserID == u.ID {
			marker = "*"
		}
		fmt.Printf("%s %s  %s  (%d lists)\n", marker, u.ID, u.Username, len(u.Lists))
	}
	return nil
}
