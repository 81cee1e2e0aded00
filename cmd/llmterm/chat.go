package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/llmterm/llmterm/internal/agentcfg"
	"github.com/llmterm/llmterm/internal/provider"
	"github.com/llmterm/llmterm/internal/runner"
	"github.com/llmterm/llmterm/internal/telemetry"
	"github.com/llmterm/llmterm/internal/windowing"
	"github.com/llmterm/llmterm/memory"
)

var (
	youLabel   = color.New(color.FgBlue, color.Bold).Sprint("You:")
	agentLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
)

var resumeSessionID string

var chatCmd = &cobra.Command{
	Use:   "chat <agent>",
	Short: "Start an interactive session with an agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(args[0])
	},
}

func init() {
	chatCmd.Flags().StringVar(&resumeSessionID, "session", "", "resume an existing session by ID")
}

func runChat(name string) error {
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

	sessionID := resumeSessionID
	if sessionID == "" {
		sessionID = telemetry.NewSessionID()
	}
	memoryPath := env.layout.SessionMemoryFile(name, sessionID)
	summaryPath := env.layout.SessionSummaryFile(name, sessionID)

	// Resumed history is trimmed to the configured budget, newest first.
	history, err := memory.LoadTranscript(memoryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load session transcript: %v\n", err)
	}
	window, stats := windowing.PrepareHistory(history, env.cfg.GetInt("memory.history_budget"))
	env.events.Emit("window_prepared", map[string]any{
		"session_id":         sessionID,
		"budget":             stats.Budget,
		"total_estimated":    stats.Total,
		"included":           stats.Included,
		"skipped":            stats.Skipped,
		"over_budget_newest": stats.OverBudgetNewest,
	})

	session := memory.NewSession(name, sessionID, memoryPath, summaryPath, history)

	// Replay the windowed transcript into SDK message params.
	conv := make([]anthropic.MessageParam, 0, len(window))
	for _, m := range window {
		if m.Role == "user" {
			conv = append(conv, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text)))
		} else {
			conv = append(conv, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Text)))
		}
	}

	model := agent.Model
	if model == "" {
		model = gw.Model()
	}
	r := runner.New(gw.Client(), model, agent.MaxTokens, agent.Prompt, agent.Tools, env.events)
	r.Label = agentLabel(name + ":")

	// Graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = telemetry.WithSessionID(ctx, sessionID)
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		fmt.Println("\nExiting...")
		cancel()
	}()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Printf("Chat with %s (session %s, Ctrl-C to quit)\n", name, sessionID)

	// stdin reader goroutine -> lines into channel
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

outer:
	for {
		fmt.Printf("%s ", youLabel)
		var (
			user string
			ok   bool
		)
		select {
		case <-ctx.Done():
			break outer
		case user, ok = <-inputCh:
			if !ok {
				break outer
			}
		}
		conv = append(conv, anthropic.NewUserMessage(anthropic.NewTextBlock(user)))

		// Track assistant visible text to persist after the turn
		var lastAssistantText string
		for {
			msg, toolResults, err := r.RunOneStep(ctx, conv)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				break
			}
			conv = append(conv, msg.ToParam())
			// Collect assistant text blocks from this message
			for _, b := range msg.Content {
				if tb, ok := b.AsAny().(anthropic.TextBlock); ok {
					if tb.Text != "" {
						if lastAssistantText == "" {
							lastAssistantText = tb.Text
						} else {
							lastAssistantText += "\n" + tb.Text
						}
					}
				}
			}
			if len(toolResults) == 0 {
				break // done with assistant turn
			}
			// Provide tool results as a user message back to the model
			conv = append(conv, anthropic.NewUserMessage(toolResults...))
		}

		// Persist the text-only transcript (user + assistant); tool blocks stay transient
		session.Append("user", user)
		if strings.TrimSpace(lastAssistantText) != "" {
			session.Append("assistant", lastAssistantText)
		}
		if err := session.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save session transcript: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stdin read error: %v\n", err)
	}

	if err := session.WriteSummary(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write session summary: %v\n", err)
	}
	env.events.Emit("session_saved", map[string]any{
		"session_id": sessionID,
		"agent":      name,
		"messages":   len(session.Messages()),
	})
	return nil
}
