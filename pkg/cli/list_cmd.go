package cli

import (
	"fmt"
	"strconv"
	"time"

	"packpro/pkg/model"
)

// handleList dispatches the list scope commands.
func (c *CLI) handleList(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing list command (try 'help list')")
	}

	switch args[0] {
	case "add":
		return c.listAdd(args[1:])
	case "select":
		return c.listSelect(args[1:])
	case "update":
		return c.listUpdate(args[1:])
	case "delete":
		return c.listDelete(args[1:])
	case "list":
		return c.listList()
	default:
		return fmt.Errorf("unknown list command: %s", args[0])
	}
}

func (c *CLI) listAdd(args []string) error {
	withDefaults := false
	rest := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--defaults" {
			withDefaults = true
			continue
		}
		rest = append(rest, a)
	}

	if len(rest) < 1 || len(rest) > 3 {
		return fmt.Errorf("usage: list add <title> [description] [duration] [--defaults]")
	}

	title := rest[0]
	description := ""
	duration := 7
	if len(rest) >= 2 {
		description = rest[1]
	}
	if len(rest) == 3 {
		d, err := strconv.Atoi(rest[2])
		if err != nil {
			return fmt.Errorf("duration must be a number of days: %w", err)
		}
		duration = d
	}

	list, err := c.manager.CreateList(title, description, duration, withDefaults)
	if err != nil {
		return err
	}
	fmt.Printf("List '%s' created (id %s, %d items)\n", list.Title, list.ID, len(list.Items))
	return nil
}

func (c *CLI) listSelect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: list select <title|id>")
	}

	list, err := c.resolveList(args[0])
	if err != nil {
		return err
	}
	c.activeListID = list.ID
	fmt.Printf("Active list: '%s'\n", list.Title)
	return nil
}

func (c *CLI) listUpdate(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: list update <title|id> <title|description|duration|destination> <value>")
	}

	list, err := c.resolveList(args[0])
	if err != nil {
		return err
	}

	var upd model.ListUpdate
	switch args[1] {
	case "title":
		upd.Title = &args[2]
	case "description":
		upd.Description = &args[2]
	case "destination":
		upd.Destination = &args[2]
	case "duration":
		d, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("duration must be a number of days: %w", err)
		}
		upd.Duration = &d
	default:
		return fmt.Errorf("unknown list field: %s", args[1])
	}

	return c.manager.UpdateListMetadata(list.ID, upd)
}

func (c *CLI) listDelete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: list delete <title|id>")
	}

	list, err := c.resolveList(args[0])
	if err != nil {
		return err
	}
	if err := c.manager.DeleteList(list.ID); err != nil {
		return err
	}
	fmt.Printf("List '%s' and its items deleted\n", list.Title)
	return nil
}

func (c *CLI) listList() error {
	user := c.manager.Data().CurrentUser()
	if user == nil {
		return fmt.Errorf("no user is selected")
	}
	if len(user.Lists) == 0 {
		fmt.Println("No lists yet (use 'list add')")
		return nil
	}

	for _, l := range user.Lists {
		marker := " "
		if l.ID == c.activeListID {
			marker = "*"
		}
		packed, total, percent := l.Progress()
		created := time.UnixMilli(l.CreatedAt).Format("2006-01-02")
		fmt.Printf("%s %s  %-20s  %2dd  %d/%d packed (%d%%)  created %s\n",
			marker, l.ID, l.Title, l.Duration, packed, total, percent, created)
	}
	return nil
}
