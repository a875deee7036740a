package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sandrolain/regkit/pkg/common"
	"github.com/sandrolain/regkit/pkg/connfile"
	"github.com/sandrolain/regkit/pkg/toolutil"
)

func runCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Connect to MongoDB and start the interactive menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := connfile.Load(configPath)
			if err != nil {
				return err
			}

			toolutil.PrintKeyValue("URI", cfg.URI)
			toolutil.PrintKeyValue("Database", cfg.Database)
			if cfg.InsecureTLS {
				toolutil.PrintWarning("TLS certificate validation is disabled (tlsAllowInvalidCertificates=true)")
			}

			ctx := context.Background()
			client, err := connfile.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := client.Disconnect(context.Background()); err != nil {
					toolutil.PrintError("Failed to disconnect: %v", err)
				}
			}()

			db := client.Database(cfg.Database)

			// Diagnostic steps: denials are reported, never fatal.
			reportAccess(ctx, client)
			reportConnectionStatus(ctx, db)
			reportCollections(ctx, db)

			toolutil.PrintSuccess("Connected successfully")

			a := newApp(client, db, common.NewPrompter(os.Stdin, os.Stdout))
			return a.menuLoop()
		},
	}

	toolutil.AddConfigFlag(cmd, &configPath)

	return cmd
}

func reportCollections(ctx context.Context, db *mongo.Database) {
	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		toolutil.PrintWarning("Unable to list collections in %s: %v", db.Name(), err)
		return
	}
	for _, name := range names {
		fmt.Printf("Found collection: %s\n", name)
	}
}
