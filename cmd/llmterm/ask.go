package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llmterm/llmterm/internal/agentcfg"
	"github.com/llmterm/llmterm/internal/provider"
)

var askCmd = &cobra.Command{
	Use:   "ask <agent> <prompt>...",
	Short: "Send one prompt to an agent and print the reply",
	Long:  "ask makes a single text-generation call with the agent's composed context. Tools are not executed; use chat for tool-driven sessions.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAsk(cmd.Context(), args[0], strings.Join(args[1:], " "))
	},
}

func runAsk(ctx context.Context, name, prompt string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	agent, err := agentcfg.NewBuilder(env.cfg, env.layout, env.events).Build(name)
	if err != nil {
		return err
	}

	gw, err := provider.NewGateway(env.cfg)
	if err != nil {
		return err
	}

	reply, err := gw.GenerateText(ctx, prompt, agent.Prompt, provider.CallOverrides{
		Model:     agent.Model,
		MaxTokens: agent.MaxTokens,
	})
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}
