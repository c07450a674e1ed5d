package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"packpro/pkg/model"
	"packpro/pkg/suggest"
)

// handleItem dispatches the item scope commands. All of them act on the
// active list.
func (c *CLI) handleItem(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing item command (try 'help item')")
	}

	switch args[0] {
	case "add":
		return c.itemAdd(args[1:])
	case "list":
		return c.itemList()
	case "update":
		return c.itemUpdate(args[1:])
	case "check":
		return c.itemCheck(args[1:], true)
	case "uncheck":
		return c.itemCheck(args[1:], false)
	case "delete":
		return c.itemDelete(args[1:])
	case "move":
		return c.itemMove(args[1:])
	case "packall":
		return c.itemMarkAll(true)
	case "unpackall":
		return c.itemMarkAll(false)
	case "suggest":
		return c.itemSuggest()
	default:
		return fmt.Errorf("unknown item command: %s", args[0])
	}
}

func (c *CLI) itemAdd(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: item add <name> [target quantity]")
	}

	list, err := c.activeList()
	if err != nil {
		return err
	}

	target := 1
	if len(args) == 2 {
		t, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("target quantity must be a number: %w", err)
		}
		target = t
	}

	item, err := c.manager.AddItem(list.ID, args[0], target)
	if err != nil {
		return err
	}
	fmt.Printf("Item '%s' added (id %s, target %d)\n", item.Name, item.ID, item.TargetQuantity)
	return nil
}

func (c *CLI) itemList() error {
	list, err := c.activeList()
	if err != nil {
		return err
	}
	if len(list.Items) == 0 {
		fmt.Println("No items yet (use 'item add')")
		return nil
	}

	for _, it := range list.Items {
		marker := "[ ]"
		if it.IsCompleted {
			marker = "[x]"
		}
		fmt.Printf("%s %s  %-20s  %d/%d\n", marker, it.ID, it.Name, it.PackedQuantity, it.TargetQuantity)
	}
	packed, total, percent := list.Progress()
	fmt.Printf("%d of %d items packed (%d%%)\n", packed, total, percent)
	return nil
}

func (c *CLI) itemUpdate(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: item update <name|id> <name|target|packed> <value>")
	}

	list, err := c.activeList()
	if err != nil {
		return err
	}
	item, err := c.resolveItem(list, args[0])
	if err != nil {
		return err
	}

	var upd model.ItemUpdate
	switch args[1] {
	case "name":
		upd.Name = &args[2]
	case "target":
		t, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("target quantity must be a number: %w", err)
		}
		upd.TargetQuantity = &t
	case "packed":
		p, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("packed quantity must be a number: %w", err)
		}
		upd.PackedQuantity = &p
	default:
		return fmt.Errorf("unknown item field: %s", args[1])
	}

	return c.manager.UpdateItem(list.ID, item.ID, upd)
}

func (c *CLI) itemCheck(args []string, completed bool) error {
	if len(args) != 1 {
		verb := "check"
		if !completed {
			verb = "uncheck"
		}
		return fmt.Errorf("usage: item %s <name|id>", verb)
	}

	list, err := c.activeList()
	if err != nil {
		return err
	}
	item, err := c.resolveItem(list, args[0])
	if err != nil {
		return err
	}

	return c.manager.UpdateItem(list.ID, item.ID, model.ItemUpdate{IsCompleted: &completed})
}

func (c *CLI) itemDelete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: item delete <name|id>")
	}

	list, err := c.activeList()
	if err != nil {
		return err
	}
	item, err := c.resolveItem(list, args[0])
	if err != nil {
		return err
	}

	if err := c.manager.DeleteItem(list.ID, item.ID); err != nil {
		return err
	}
	fmt.Printf("Item '%s' deleted\n", item.Name)
	return nil
}

func (c *CLI) itemMove(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: item move <name|id> <target user> <target list id|title>")
	}

	list, err := c.activeList()
	if err != nil {
		return err
	}
	item, err := c.resolveItem(list, args[0])
	if err != nil {
		return err
	}
	targetUser, err := c.resolveUser(args[1])
	if err != nil {
		return err
	}

	var targetList *model.PackingList
	for i := range targetUser.Lists {
		if targetUser.Lists[i].ID == args[2] || targetUser.Lists[i].Title == args[2] {
			targetList = &targetUser.Lists[i]
			break
		}
	}
	if targetList == nil {
		return fmt.Errorf("no list '%s' for user '%s'", args[2], targetUser.Username)
	}

	if err := c.manager.MoveItem(item.ID, targetUser.ID, targetList.ID); err != nil {
		return err
	}
	fmt.Printf("Item '%s' moved to %s/%s\n", item.Name, targetUser.Username, targetList.Title)
	return nil
}

func (c *CLI) itemMarkAll(packed bool) error {
	list, err := c.activeList()
	if err != nil {
		return err
	}
	if err := c.manager.MarkAllItems(list.ID, packed); err != nil {
		return err
	}
	if packed {
		fmt.Println("All items marked as packed")
	} else {
		fmt.Println("All items marked as unpacked")
	}
	return nil
}

func (c *CLI) itemSuggest() error {
	if c.suggester == nil {
		return fmt.Errorf("suggestions are disabled (set GEMINI_API_KEY)")
	}

	list, err := c.activeList()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("Asking for suggestions...")
	suggestions, err := c.suggester.SuggestItems(ctx, list)
	if err != nil {
		return err
	}
	if len(suggestions) == 0 {
		fmt.Println("No suggestions")
		return nil
	}

	for i, s := range suggestions {
		fmt.Printf("%d. %s: %s\n", i+1, s.Name, s.Reason)
	}
	return c.promptAddSuggestions(list, suggestions)
}

// promptAddSuggestions lets the user accept all suggestions at once.
func (c *CLI) promptAddSuggestions(list model.PackingList, suggestions []suggest.Suggestion) error {
	c.rl.SetPrompt("Add all suggestions? [y/N] ")
	line, err := c.rl.Readline()
	if err != nil {
		return nil
	}
	if line != "y" && line != "Y" {
		return nil
	}

	for _, s := range suggestions {
		if _, err := c.manager.AddItem(list.ID, s.Name, 1); err != nil {
			return err
		}
	}
	fmt.Printf("%d items added\n", len(suggestions))
	return nil
}
