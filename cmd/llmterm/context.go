package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llmterm/llmterm/internal/contextdoc"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the assembled global context document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		doc := contextdoc.New(env.layout.GlobalContextDir(), env.events).Build()
		rendered := doc.Render()
		if rendered == "" {
			fmt.Println("(global context is empty)")
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}
