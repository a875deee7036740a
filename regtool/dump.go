package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sandrolain/regkit/pkg/connfile"
	"github.com/sandrolain/regkit/pkg/registrant"
	"github.com/sandrolain/regkit/pkg/toolutil"
)

func dumpCommand() *cobra.Command {
	var (
		configPath string
		format     string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Export the registrants collection as JSON or CBOR",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := connfile.Load(configPath)
			if err != nil {
				return err
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

			store := registrant.NewStore(client.Database(cfg.Database), registrant.DefaultCollection)
			regs, err := store.All(ctx)
			if err != nil {
				return err
			}

			var data []byte
			var mime string
			switch format {
			case "json":
				data, err = json.MarshalIndent(regs, "", "  ")
				mime = toolutil.CTJSON
			case "cbor":
				data, err = cbor.Marshal(regs)
				mime = toolutil.CTCBOR
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
			if err != nil {
				return fmt.Errorf("failed to encode registrants: %w", err)
			}

			if outPath == "" {
				if mime == toolutil.CTJSON {
					fmt.Println(toolutil.PrettyJSON(data))
					return nil
				}
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0600); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			toolutil.PrintSuccess("Exported %d registrants to %s", len(regs), outPath)
			return nil
		},
	}

	toolutil.AddConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&format, "format", "json", "Export format: json or cbor")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (stdout when empty)")

	return cmd
}
