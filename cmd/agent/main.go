// Command agent runs an autonomous web browsing agent: it takes a natural
// language task, plans it, and drives a real browser until the task is done.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/agent"
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/browser"
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/config"
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/llm/openai"
)

var (
	flagConfig   string
	flagTask     string
	flagHeadless bool
)

func main() {
	root := &cobra.Command{
		Use:   "agent",
		Short: "Autonomous web browsing agent",
		Long:  "An LLM-driven agent that plans and executes web tasks in a real browser.",
		RunE:  runAgent,
	}
	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to YAML config file")
	root.Flags().StringVarP(&flagTask, "task", "t", "", "run a single task and exit")
	root.Flags().BoolVar(&flagHeadless, "headless", false, "run the browser headless")

	root.AddCommand(newLoginCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func runAgent(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	provider, err := openai.NewProvider(cfg.APIKey,
		openai.WithModel(cfg.Model),
		openai.WithBaseURL(cfg.BaseURL),
	)
	if err != nil {
		return err
	}

	service, err := browser.NewService(cfg)
	if err != nil {
		return err
	}
	if err := service.Start(); err != nil {
		return err
	}
	defer service.Stop()

	ag, err := agent.New(provider, service,
		agent.WithMaxIterations(cfg.MaxIterations),
		agent.WithTokenLimit(cfg.HistoryTokenLimit),
		agent.WithAsker(newConsoleAsker()),
		agent.WithObserver(consoleObserver{}),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagTask != "" {
		result, err := ag.Run(ctx, flagTask)
		if err != nil {
			return err
		}
		fmt.Printf("Task %s after %d iteration(s).\n", result.Status, result.Iterations)
		return nil
	}

	fmt.Println(taskStyle.Render("Web agent ready. Type a task, or 'q' to exit."))
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Enter task (q to exit): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		task := strings.TrimSpace(line)
		if task == "" {
			continue
		}
		if task == "q" || task == "quit" || task == "exit" {
			return nil
		}

		result, err := ag.Run(ctx, task)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Println(errorStyle.Render("Task failed: " + err.Error()))
			continue
		}
		fmt.Printf("Task %s after %d iteration(s).\n", result.Status, result.Iterations)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = flagHeadless
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
