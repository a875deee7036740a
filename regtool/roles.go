package main

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sandrolain/regkit/pkg/mongoinfo"
	"github.com/sandrolain/regkit/pkg/toolutil"
)

// reportAccess lists the databases and collections visible to the
// current credential. Authorization failures are diagnostics, not
// errors: the report continues past them.
func reportAccess(ctx context.Context, client *mongo.Client) {
	toolutil.PrintInfo("Checking accessible databases and collections for current user")

	access, err := mongoinfo.ListAccess(ctx, client)
	if err != nil {
		toolutil.PrintWarning("Unable to list databases. User may not have the listDatabases privilege. Continuing...")
		toolutil.Logger().Warn("listDatabases denied", "error", err)
		return
	}
	for _, db := range access {
		fmt.Printf("Database: %s\n", db.Name)
		if db.Denied {
			fmt.Printf("   (No access to list collections in %s)\n", db.Name)
			continue
		}
		for _, coll := range db.Collections {
			fmt.Printf("   Collection: %s\n", coll)
		}
	}
}

// reportConnectionStatus prints the authenticated identity and role
// bindings from the connectionStatus command.
func reportConnectionStatus(ctx context.Context, db *mongo.Database) {
	toolutil.PrintInfo("Checking roles and privileges for current user")

	info, err := mongoinfo.ConnectionStatus(ctx, db)
	if err != nil {
		toolutil.PrintWarning("Unable to run connectionStatus command: %v. Continuing without role/privilege info...", err)
		return
	}
	if info == nil {
		fmt.Println("No authInfo returned. User may not be authenticated.")
		return
	}
	if len(info.AuthenticatedUsers) > 0 {
		fmt.Println("Authenticated Users:")
		for _, u := range info.AuthenticatedUsers {
			fmt.Printf("  %s@%s\n", u.User, u.DB)
		}
	}
	if len(info.AuthenticatedUserRoles) > 0 {
		fmt.Println("Authenticated User Roles:")
		for _, r := range info.AuthenticatedUserRoles {
			fmt.Printf("  Role: %-20s | Database Scope: %s\n", r.Role, r.DB)
		}
	}
}

// showRolesInfo renders the detailed rolesInfo report.
func (a *app) showRolesInfo() error {
	toolutil.PrintSeparator()
	toolutil.PrintInfo("Detailed Roles Info (rolesInfo command)")

	report, err := mongoinfo.RolesInfo(a.ctx, a.client, a.db)
	if err != nil {
		toolutil.PrintWarning("Unable to run rolesInfo command: %v. Continuing without detailed roles info...", err)
		return nil
	}

	fmt.Printf("[Source: %s]\n", report.Source)
	for _, role := range report.Roles {
		fmt.Printf("\nRole: %s | DB: %s\n", role.Role, role.DB)
		fmt.Printf("  %-30s | %-50s\n", "Resource", "Actions")
		fmt.Printf("  %s-+-%s\n", strings.Repeat("-", 30), strings.Repeat("-", 50))
		for _, priv := range role.Privileges {
			fmt.Printf("  %-30s | %-50s\n", priv.Resource.String(), priv.ActionList())
		}
	}
	return nil
}
