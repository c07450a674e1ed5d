package cli

import (
	"fmt"
)

// handleSystem dispatches the system scope commands.
func (c *CLI) handleSystem(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing system command (try 'help system')")
	}

	switch args[0] {
	case "export":
		return c.systemExport(args[1:])
	case "import":
		return c.systemImport(args[1:])
	case "stats":
		return c.systemStats()
	default:
		return fmt.Errorf("unknown system command: %s", args[0])
	}
}

func (c *CLI) systemExport(args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else if len(args) > 1 {
		return fmt.Errorf("usage: system export [path]")
	}

	written, err := c.manager.Export(path)
	if err != nil {
		return err
	}
	fmt.Printf("Backup written to %s\n", written)
	return nil
}

func (c *CLI) systemImport(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: system import <file>")
	}

	if err := c.manager.Import(args[0]); err != nil {
		return err
	}
	fmt.Println("Import complete")
	return nil
}

func (c *CLI) systemStats() error {
	d := c.manager.Data()
	lists := 0
	for _, u := range d.Users {
		lists += len(u.Lists)
	}
	fmt.Printf("%d users, %d lists, %d items\n", len(d.Users), lists, d.ItemCount())
	if user := d.CurrentUser(); user != nil {
		fmt.Printf("Current user: %s\n", user.Username)
	}
	return nil
}
