package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/agent/prompts"
)

var (
	taskStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	iterationStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	thoughtStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("245"))

	toolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	planStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	finalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("114")).
			Border(lipgloss.DoubleBorder()).
			Padding(0, 1)

	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))
)

// maxResultPreview keeps long observations from flooding the console; the
// model still receives the full result.
const maxResultPreview = 1200

// consoleObserver renders agent progress to stdout.
type consoleObserver struct{}

func (consoleObserver) OnIterationStart(n int, mode prompts.Mode) {
	fmt.Println(iterationStyle.Render(fmt.Sprintf("--- iteration %d [%s] ---", n, mode)))
}

func (consoleObserver) OnAssistantText(text string) {
	fmt.Println(thoughtStyle.Render(text))
}

func (consoleObserver) OnToolCall(name, args string) {
	fmt.Println(toolStyle.Render(fmt.Sprintf("> %s %s", name, args)))
}

func (consoleObserver) OnToolResult(name, result string) {
	preview := result
	if runes := []rune(preview); len(runes) > maxResultPreview {
		preview = string(runes[:maxResultPreview]) + "..."
	}
	style := resultStyle
	if strings.HasPrefix(result, "Error") {
		style = errorStyle
	}
	fmt.Println(style.Render(preview))
}

func (consoleObserver) OnPlanSet(steps []string) {
	var b strings.Builder
	b.WriteString("Plan:\n")
	for i, step := range steps {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
	}
	fmt.Println(planStyle.Render(strings.TrimRight(b.String(), "\n")))
}

func (consoleObserver) OnTaskFinished(result string) {
	fmt.Println(finalStyle.Render(result))
}

// consoleAsker relays agent questions to the terminal and reads the answer
// from stdin.
type consoleAsker struct {
	reader *bufio.Reader
}

func newConsoleAsker() *consoleAsker {
	return &consoleAsker{reader: bufio.NewReader(os.Stdin)}
}

func (c *consoleAsker) Ask(question string) (string, error) {
	fmt.Println(questionStyle.Render("Agent asks: " + question))
	fmt.Print("> ")
	answer, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
