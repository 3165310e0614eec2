package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/cacheengine"
)

func pingCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Connect and probe the servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), g, func(e *cacheengine.Engine) error {
				fmt.Fprintf(cmd.OutOrStdout(), "ok %s\n", e.Settings().Location)
				return nil
			})
		},
	}
}

func getCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <segment> <id>",
		Short: "Print the envelope stored at a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), g, func(e *cacheengine.Engine) error {
				if err := e.ValidateNamespace(args[0]); err != nil {
					return err
				}
				env, err := e.Get(cmd.Context(), cacheengine.Key{Segment: args[0], ID: args[1]})
				if err != nil {
					return err
				}
				if env == nil {
					return fmt.Errorf("miss: %s/%s", args[0], args[1])
				}
				out := json.NewEncoder(cmd.OutOrStdout())
				out.SetIndent("", "  ")
				return out.Encode(map[string]any{
					"item":   env.Item,
					"stored": env.StoredAt().UTC().Format(time.RFC3339Nano),
					"ttl":    env.Lifetime().String(),
				})
			})
		},
	}
}

func setCmd(g *globalFlags) *cobra.Command {
	var ttl time.Duration
	var raw bool

	cmd := &cobra.Command{
		Use:   "set <segment> <id> <value>",
		Short: "Store a value",
		Long:  "Store a value. The value is parsed as JSON unless --raw is given.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v any = args[2]
			if !raw {
				if err := json.Unmarshal([]byte(args[2]), &v); err != nil {
					return fmt.Errorf("value is not JSON (use --raw for plain strings): %w", err)
				}
			}
			return withEngine(cmd.Context(), g, func(e *cacheengine.Engine) error {
				if err := e.ValidateNamespace(args[0]); err != nil {
					return err
				}
				return e.Set(cmd.Context(), cacheengine.Key{Segment: args[0], ID: args[1]}, v, ttl)
			})
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", time.Minute, "Entry lifetime")
	cmd.Flags().BoolVar(&raw, "raw", false, "Store the value as a plain string")
	return cmd
}

func dropCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <segment> <id>",
		Short: "Remove a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), g, func(e *cacheengine.Engine) error {
				if err := e.ValidateNamespace(args[0]); err != nil {
					return err
				}
				return e.Drop(cmd.Context(), cacheengine.Key{Segment: args[0], ID: args[1]})
			})
		},
	}
}
