package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sandrolain/regkit/pkg/common"
	"github.com/sandrolain/regkit/pkg/registrant"
	"github.com/sandrolain/regkit/pkg/toolutil"
)

type menuEntry struct {
	label string
	run   func() error
}

type app struct {
	ctx    context.Context
	client *mongo.Client
	db     *mongo.Database
	store  *registrant.Store
	prompt *common.Prompter
	out    io.Writer
	menu   []menuEntry
}

func newApp(client *mongo.Client, db *mongo.Database, prompt *common.Prompter) *app {
	a := &app{
		ctx:    context.Background(),
		client: client,
		db:     db,
		store:  registrant.NewStore(db, registrant.DefaultCollection),
		prompt: prompt,
		out:    os.Stdout,
	}
	a.menu = []menuEntry{
		{"Add new registrant", a.addRegistrant},
		{"Update a registrant", a.updateRegistrant},
		{"Query registrant by email", a.queryRegistrant},
		{"Query email domains with counts (Descending Order)", a.queryEmailDomains},
		{"Show detailed rolesInfo", a.showRolesInfo},
	}
	return a
}

// menuLoop runs the blocking read-eval loop until the operator exits or
// input is closed. Operation failures are reported inline and the menu
// is shown again.
func (a *app) menuLoop() error {
	for {
		toolutil.PrintSeparator()
		fmt.Fprintln(a.out, "Choose an operation:")
		for i, entry := range a.menu {
			fmt.Fprintf(a.out, "%d. %s\n", i+1, entry.label)
		}
		exitChoice := len(a.menu) + 1
		fmt.Fprintf(a.out, "%d. Exit\n", exitChoice)

		choice, err := a.prompt.Int("Enter your choice: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch {
		case choice == exitChoice:
			fmt.Fprintln(a.out, "Exiting program. Goodbye.")
			return nil
		case choice < 1 || choice > len(a.menu):
			toolutil.PrintError("Invalid choice. Please try again.")
		default:
			if err := a.menu[choice-1].run(); err != nil {
				toolutil.PrintError("Operation failed: %v", err)
			}
		}
	}
}
