package main

import (
	"encoding/json"
	"fmt"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"github.com/tommeville/go-mcpclient"
)

var toolsMatch string

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools the server advertises",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := serverURL()
		if err != nil {
			return err
		}

		client := mcpclient.NewClient(url, clientOptions()...)
		defer client.Close()

		if _, err := client.Initialize(cmd.Context()); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}

		raw, err := client.ListTools(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list tools: %w", err)
		}

		var msg mcpclient.JSONRPCMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return fmt.Errorf("failed to decode reply envelope: %w", err)
		}
		if msg.Error != nil {
			return msg.Error
		}

		var result mcpclient.ListToolsResult
		if err := json.Unmarshal(msg.Result, &result); err != nil {
			return fmt.Errorf("failed to decode tool list: %w", err)
		}

		var g glob.Glob
		if toolsMatch != "" {
			g, err = glob.Compile(toolsMatch)
			if err != nil {
				return fmt.Errorf("invalid match pattern %q: %w", toolsMatch, err)
			}
		}

		for _, tool := range result.Tools {
			if g != nil && !g.Match(tool.Name) {
				continue
			}
			fmt.Printf("%s\t%s\n", tool.Name, tool.Description)
		}
		return nil
	},
}

func init() {
	toolsCmd.Flags().StringVar(&toolsMatch, "match", "", "only show tools whose name matches this glob, e.g. 'get_*'")
	rootCmd.AddCommand(toolsCmd)
}
