package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mzakany23/ncsh-agent/internal/config"
	"github.com/mzakany23/ncsh-agent/internal/datasets"
	"github.com/mzakany23/ncsh-agent/internal/duckdb"
	"github.com/mzakany23/ncsh-agent/internal/prompts"
	"github.com/mzakany23/ncsh-agent/internal/provider"
	"github.com/mzakany23/ncsh-agent/internal/runner"
	"github.com/mzakany23/ncsh-agent/memory"
	"github.com/mzakany23/ncsh-agent/tools"
)

var userLabel = color.New(color.FgBlue).SprintFunc()

func newChatCmd(opts *rootOptions) *cobra.Command {
	var noResume bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive session over the dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.RequireAPIKey(); err != nil {
				return err
			}
			return runChat(cfg, noResume)
		},
	}
	cmd.Flags().BoolVar(&noResume, "no-resume", false, "start a fresh session instead of resuming the saved transcript")
	return cmd
}

func runChat(cfg config.Config, noResume bool) error {
	dataFile := datasets.DataFile(cfg.DataFile)

	a, err := duckdb.Open(dataFile)
	if err != nil {
		return err
	}
	schema, err := a.CompactSchema(context.Background())
	a.Close()
	if err != nil {
		return err
	}

	// Load prior conversation if it exists.
	persistPath := memory.DefaultPath
	var persisted []memory.Message
	if !noResume {
		persisted, err = memory.LoadConversation(persistPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load saved session: %v\n", err)
		}
	}

	r := runner.New(provider.NewAnthropicClient(), tools.Registry(), cfg)
	r.System = fmt.Sprintf("%s\n\nData source: %s\nSchema: %s\nToday's date: %s",
		prompts.Analysis, dataFile, schema, time.Now().Format("2006-01-02"))

	// Rebuild the SDK conversation from the persisted text-only transcript.
	conv := make([]anthropic.MessageParam, 0, len(persisted))
	for _, m := range persisted {
		if m.Role == "user" {
			conv = append(conv, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text)))
		} else {
			conv = append(conv, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Text)))
		}
	}

	// Graceful shutdown on Ctrl-C (SIGINT) / SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		fmt.Println("\nExiting...")
		cancel()
	}()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Printf("Chat about %s (Ctrl-C to quit)\n", dataFile)

	// stdin reader goroutine -> lines into channel.
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

outer:
	for {
		fmt.Printf("%s: ", userLabel("You"))
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
		if strings.TrimSpace(user) == "" {
			continue
		}
		conv = append(conv, anthropic.NewUserMessage(anthropic.NewTextBlock(user)))

		// Track assistant visible text to persist after the turn.
		var lastAssistantText string
		for {
			msg, toolResults, err := r.RunOneStep(ctx, conv)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				break
			}
			conv = append(conv, msg.ToParam())
			for _, b := range msg.Content {
				if tb, ok := b.AsAny().(anthropic.TextBlock); ok && tb.Text != "" {
					if lastAssistantText == "" {
						lastAssistantText = tb.Text
					} else {
						lastAssistantText += "\n" + tb.Text
					}
				}
			}
			if len(toolResults) == 0 {
				break
			}
			conv = append(conv, anthropic.NewUserMessage(toolResults...))
		}

		// Persist a minimal text-only transcript; tool blocks stay transient.
		persisted = append(persisted, memory.Message{Role: "user", Text: user})
		if strings.TrimSpace(lastAssistantText) != "" {
			persisted = append(persisted, memory.Message{Role: "assistant", Text: lastAssistantText})
		}
		if err := memory.SaveConversation(persistPath, persisted); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save session: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stdin read error: %v\n", err)
	}
	return nil
}
