package cli

import "fmt"

// printHelp prints general help or the help text of one scope.
func (c *CLI) printHelp(args []string) {
	if len(args) == 0 {
		fmt.Println("Available command scopes:")
		for _, scope := range []string{"user", "list", "item", "system"} {
			fmt.Printf("  %s\n", scope)
		}
		fmt.Println("  exit")
		fmt.Println("\nUse 'help <scope>' for the commands of a scope.")
		return
	}

	if help, ok := scopeHelp[args[0]]; ok {
		fmt.Println(help)
	} else {
		fmt.Printf("Unknown scope: %s\n", args[0])
	}
}

// scopeHelp contains help text for each command scope.
var scopeHelp = map[string]string{
	"user": `User commands:
  user add <username>         Create a profile and switch to it
  user select <username|id>   Switch to a profile
  user delete <username|id>   Delete a profile and all its lists
  user list                   Show all profiles (* marks the current one)
  user logout                 Clear the current profile`,

	"list": `List commands (for the current user):
  list add <title> [description] [duration] [--defaults]
                              Create a list; --defaults seeds starter items
  list select <title|id>      Make a list active
  list update <title|id> <title|description|duration|destination> <value>
                              Change one list field
  list delete <title|id>      Delete a list and its items
  list list                   Show all lists with packing progress`,

	"item": `Item commands (for the active list):
  item add <name> [target]    Add an item with a target quantity (default 1)
  item list                   Show items and progress
  item update <name|id> <name|target|packed> <value>
                              Change one item field; quantities are clamped
  item check <name|id>        Mark an item fully packed
  item uncheck <name|id>      Mark an item unpacked
  item delete <name|id>       Remove an item
  item move <name|id> <user> <list>
                              Move an item to another user's list
  item packall                Mark every item packed
  item unpackall              Mark every item unpacked
  item suggest                Ask the AI for missing items`,

	"system": `System commands:
  system export [path]        Write a JSON backup (dated filename by default)
  system import <file>        Import a full backup or a single-list file
  system stats                Show totals across all users`,
}
