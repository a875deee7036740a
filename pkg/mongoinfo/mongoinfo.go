// Package mongoinfo introspects the server-side view of the connecting
// principal: visible databases and collections, the connectionStatus
// authentication block, and the rolesInfo privilege report.
package mongoinfo

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DatabaseAccess is the outcome of probing one database for collection
// visibility. Denied records a per-database authorization failure
// without failing the overall report.
type DatabaseAccess struct {
	Name        string
	Collections []string
	Denied      bool
	Err         error
}

// ListAccess enumerates the databases visible to the authenticated
// principal and the collections of each. Per-database failures are
// recorded in the result, not returned; a failure of the top-level
// listing is returned for the caller to log and continue past.
func ListAccess(ctx context.Context, client *mongo.Client) ([]DatabaseAccess, error) {
	names, err := client.ListDatabaseNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("unable to list databases: %w", err)
	}

	out := make([]DatabaseAccess, 0, len(names))
	for _, name := range names {
		acc := DatabaseAccess{Name: name}
		colls, err := client.Database(name).ListCollectionNames(ctx, bson.D{})
		if err != nil {
			acc.Denied = true
			acc.Err = err
		} else {
			acc.Collections = colls
		}
		out = append(out, acc)
	}
	return out, nil
}

// AuthUser identifies one authenticated principal.
type AuthUser struct {
	User string `bson:"user"`
	DB   string `bson:"db"`
}

// RoleRef names a role binding and its scope database.
type RoleRef struct {
	Role string `bson:"role"`
	DB   string `bson:"db"`
}

// AuthInfo is the authentication block of a connectionStatus reply.
type AuthInfo struct {
	AuthenticatedUsers     []AuthUser `bson:"authenticatedUsers"`
	AuthenticatedUserRoles []RoleRef  `bson:"authenticatedUserRoles"`
}

type connectionStatusReply struct {
	AuthInfo *AuthInfo `bson:"authInfo"`
}

// ConnectionStatus runs the connectionStatus command and returns its
// authentication block. A nil result means the server reported no
// authentication block, which is not an error.
func ConnectionStatus(ctx context.Context, db *mongo.Database) (*AuthInfo, error) {
	var reply connectionStatusReply
	res := db.RunCommand(ctx, bson.D{{Key: "connectionStatus", Value: 1}})
	if err := res.Decode(&reply); err != nil {
		return nil, fmt.Errorf("unable to run connectionStatus command: %w", err)
	}
	return reply.AuthInfo, nil
}

// Resource is a privilege scope: the whole cluster, or a database and
// collection pair where an empty name stands for any.
type Resource struct {
	Cluster    bool   `bson:"cluster"`
	DB         string `bson:"db"`
	Collection string `bson:"collection"`
}

// String collapses the resource to the literal "cluster" when
// cluster-scoped, otherwise to explicit names with "*" for unscoped
// wildcards.
func (r Resource) String() string {
	if r.Cluster {
		return "cluster"
	}
	db := r.DB
	if db == "" {
		db = "*"
	}
	coll := r.Collection
	if coll == "" {
		coll = "*"
	}
	return fmt.Sprintf("db=%s, coll=%s", db, coll)
}

// Privilege grants a list of actions on one resource.
type Privilege struct {
	Resource Resource `bson:"resource"`
	Actions  []string `bson:"actions"`
}

// ActionList renders the granted actions as a comma-separated string.
func (p Privilege) ActionList() string {
	return strings.Join(p.Actions, ", ")
}

// Role is one role with its privileges as returned by rolesInfo.
type Role struct {
	Role       string      `bson:"role"`
	DB         string      `bson:"db"`
	Privileges []Privilege `bson:"privileges"`
}

type rolesInfoReply struct {
	Roles []Role `bson:"roles"`
}

// RolesReport carries the rolesInfo result and the database it came
// from.
type RolesReport struct {
	Source string
	Roles  []Role
}

// RolesInfo runs rolesInfo with privileges against the admin database
// first, falling back to the current database when admin reports no
// roles.
func RolesInfo(ctx context.Context, client *mongo.Client, current *mongo.Database) (*RolesReport, error) {
	cmd := bson.D{
		{Key: "rolesInfo", Value: 1},
		{Key: "showPrivileges", Value: true},
	}

	var reply rolesInfoReply
	if err := client.Database("admin").RunCommand(ctx, cmd).Decode(&reply); err != nil {
		return nil, fmt.Errorf("unable to run rolesInfo command: %w", err)
	}
	if len(reply.Roles) > 0 {
		return &RolesReport{Source: "admin", Roles: reply.Roles}, nil
	}

	reply = rolesInfoReply{}
	if err := current.RunCommand(ctx, cmd).Decode(&reply); err != nil {
		return nil, fmt.Errorf("unable to run rolesInfo command: %w", err)
	}
	return &RolesReport{Source: current.Name(), Roles: reply.Roles}, nil
}
