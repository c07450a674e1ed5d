// Package cli implements the interactive command-line interface. Commands
// are grouped by scope (user, list, item, system); the active list tracks
// the user's focus the way the original interface kept one list open.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"packpro/pkg/data"
	"packpro/pkg/event"
	"packpro/pkg/model"
	"packpro/pkg/suggest"
)

// CLI represents the command-line interface.
type CLI struct {
	manager      *data.Manager
	suggester    suggest.Client // nil when no API key is configured
	rl           *readline.Instance
	logger       *zap.SugaredLogger
	activeListID string
}

// NewCLI creates a new CLI instance and wires it to data change events.
func NewCLI(manager *data.Manager, suggester suggest.Client, logger *zap.SugaredLogger) (*CLI, error) {
	rl, err := readline.New("packpro> ")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}

	c := &CLI{
		manager:   manager,
		suggester: suggester,
		rl:        rl,
		logger:    logger,
	}

	events := manager.Events()
	events.Subscribe(event.UserSelected, func(event.Event) { c.activateFirstList() })
	events.Subscribe(event.SnapshotImported, func(event.Event) { c.activateFirstList() })
	events.Subscribe(event.UserLoggedOut, func(event.Event) { c.activeListID = "" })
	events.Subscribe(event.UserDeleted, func(event.Event) { c.activateFirstList() })
	events.Subscribe(event.ListAdded, func(e event.Event) {
		if id, ok := e.Data.(string); ok {
			c.activeListID = id
		}
	})
	events.Subscribe(event.ListDeleted, func(e event.Event) {
		if id, ok := e.Data.(string); ok && id == c.activeListID {
			c.activeListID = ""
		}
	})

	c.activateFirstList()
	return c, nil
}

// Run starts the CLI and handles user input until exit or EOF.
func (c *CLI) Run() error {
	fmt.Println("Welcome to PackPro!")
	fmt.Println("Type 'help' for a list of commands or 'exit' to quit.")
	defer c.rl.Close()

	for {
		c.rl.SetPrompt(c.prompt())
		line, err := c.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		args := c.parseArgs(line)
		if done := c.executeCommand(args); done {
			return nil
		}
	}
}

// Stop closes the input so Run returns.
func (c *CLI) Stop() {
	c.rl.Close()
}

// prompt shows the current user and active list.
func (c *CLI) prompt() string {
	d := c.manager.Data()
	user := d.CurrentUser()
	if user == nil {
		return "packpro> "
	}
	if list := user.FindList(c.activeListID); list != nil {
		return fmt.Sprintf("packpro %s/%s> ", user.Username, list.Title)
	}
	return fmt.Sprintf("packpro %s> ", user.Username)
}

// parseArgs splits the input into arguments, honoring double quotes.
func (c *CLI) parseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes {
				if currentArg.Len() > 0 {
					args = append(args, currentArg.String())
					currentArg.Reset()
				}
			} else {
				currentArg.WriteRune(char)
			}
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 {
		args = append(args, currentArg.String())
	}

	return args
}

// executeCommand dispatches one parsed command. It reports true when the
// session should end.
func (c *CLI) executeCommand(args []string) bool {
	// Input made only of quotes parses to zero arguments.
	if len(args) == 0 {
		return false
	}

	var err error
	switch args[0] {
	case "user":
		err = c.handleUser(args[1:])
	case "list":
		err = c.handleList(args[1:])
	case "item":
		err = c.handleItem(args[1:])
	case "system":
		err = c.handleSystem(args[1:])
	case "help":
		c.printHelp(args[1:])
	case "exit", "quit":
		fmt.Println("Goodbye!")
		return true
	default:
		err = fmt.Errorf("unknown command: %s (try 'help')", args[0])
	}
	if err != nil {
		c.logger.Debugw("Command failed", "command", args[0], "error", err)
		fmt.Printf("Error: %v\n", err)
	}
	return false
}

// activateFirstList points the active list at the current user's first
// list, or clears it when there is none.
func (c *CLI) activateFirstList() {
	user := c.manager.Data().CurrentUser()
	if user == nil || len(user.Lists) == 0 {
		c.activeListID = ""
		return
	}
	c.activeListID = user.Lists[0].ID
}

// resolveUser finds a user by id or username.
func (c *CLI) resolveUser(arg string) (model.User, error) {
	for _, u := range c.manager.Data().Users {
		if u.ID == arg || u.Username == arg {
			return u, nil
		}
	}
	return model.User{}, fmt.Errorf("no user '%s'", arg)
}

// resolveList finds a list of the current user by id or title.
func (c *CLI) resolveList(arg string) (model.PackingList, error) {
	user := c.manager.Data().CurrentUser()
	if user == nil {
		return model.PackingList{}, fmt.Errorf("no user is selected")
	}
	for _, l := range user.Lists {
		if l.ID == arg || l.Title == arg {
			return l, nil
		}
	}
	return model.PackingList{}, fmt.Errorf("no list '%s'", arg)
}

// activeList returns the currently active list.
func (c *CLI) activeList() (model.PackingList, error) {
	if c.activeListID == "" {
		return model.PackingList{}, fmt.Errorf("no list is active (use 'list select')")
	}
	return c.resolveList(c.activeListID)
}

// resolveItem finds an item in the given list by id or name.
func (c *CLI) resolveItem(list model.PackingList, arg string) (model.Item, error) {
	for _, it := range list.Items {
		if it.ID == arg || it.Name == arg {
			return it, nil
		}
	}
	return model.Item{}, fmt.Errorf("no item '%s' in list '%s'", arg, list.Title)
}
