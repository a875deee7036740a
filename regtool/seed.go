package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sandrolain/regkit/pkg/common"
	"github.com/sandrolain/regkit/pkg/connfile"
	"github.com/sandrolain/regkit/pkg/fakedata"
	"github.com/sandrolain/regkit/pkg/registrant"
	"github.com/sandrolain/regkit/pkg/toolutil"
)

func seedCommand() *cobra.Command {
	var (
		configPath string
		count      int
		interval   string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert fake registrants for testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := connfile.Load(configPath)
			if err != nil {
				return err
			}

			ctx, cancel := common.SetupGracefulShutdown()
			defer cancel()

			client, err := connfile.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := client.Disconnect(context.Background()); err != nil {
					toolutil.PrintError("Failed to disconnect: %v", err)
				}
			}()

			store := registrant.NewStore(client.Database(cfg.Database), registrant.DefaultCollection)

			toolutil.PrintSuccess("Connected to MongoDB")
			toolutil.PrintKeyValue("Database", cfg.Database)
			toolutil.PrintKeyValue("Collection", registrant.DefaultCollection)

			insert := func() error {
				r := fakedata.NewRegistrant()
				if err := store.Insert(ctx, r); err != nil {
					return err
				}
				toolutil.PrintInfo("Inserted registrant: %s <%s>", r.Name, r.Email)
				return nil
			}

			if interval != "" {
				toolutil.PrintKeyValue("Interval", interval)
				return common.StartPeriodicTask(ctx, interval, insert)
			}

			for i := 0; i < count; i++ {
				if err := insert(); err != nil {
					return err
				}
			}
			toolutil.PrintSuccess("Inserted %d registrants", count)
			return nil
		},
	}

	toolutil.AddConfigFlag(cmd, &configPath)
	cmd.Flags().IntVar(&count, "count", 10, "Number of registrants to insert")
	cmd.Flags().StringVar(&interval, "interval", "", "Insert one registrant per interval until interrupted (e.g. 5s)")

	return cmd
}
