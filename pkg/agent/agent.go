// Package agent implements the autonomous control loop: a planner/worker
// LLM conversation that drives a browser through a closed tool vocabulary,
// with history pruning, loop detection, and adaptive failure hints.
package agent

import (
	"context"
	"time"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/agent/history"
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/agent/prompts"
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/llm"
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/llm/tokenizer"
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/logging"
)

const (
	defaultMaxIterations = 50
	defaultTokenLimit    = 100000
	defaultRetryDelay    = 5 * time.Second
)

// Executor is the browser capability set the agent dispatches actions to.
// Every method degrades failures into a descriptive result string.
type Executor interface {
	OpenURL(ctx context.Context, url string) string
	ScanPage(ctx context.Context) string
	ClickElement(ctx context.Context, id int) string
	TypeText(ctx context.Context, id int, text string, submit bool) string
	Scroll(ctx context.Context, direction string) string
	GetTabs(ctx context.Context) string
	SwitchTab(ctx context.Context, idx int) string
	CloseTab(ctx context.Context) string
}

// Asker delivers clarifying questions to the user and returns the answer.
type Asker interface {
	Ask(question string) (string, error)
}

// Observer receives progress callbacks for rendering. All methods may be
// called from the loop goroutine only.
type Observer interface {
	OnIterationStart(n int, mode prompts.Mode)
	OnAssistantText(text string)
	OnToolCall(name, args string)
	OnToolResult(name, result string)
	OnPlanSet(steps []string)
	OnTaskFinished(result string)
}

type nopObserver struct{}

func (nopObserver) OnIterationStart(int, prompts.Mode) {}
func (nopObserver) OnAssistantText(string)             {}
func (nopObserver) OnToolCall(string, string)          {}
func (nopObserver) OnToolResult(string, string)        {}
func (nopObserver) OnPlanSet([]string)                 {}
func (nopObserver) OnTaskFinished(string)              {}

// Agent runs browsing tasks end to end.
type Agent struct {
	provider llm.Provider
	executor Executor
	asker    Asker
	observer Observer
	history  *history.Manager
	counter  history.TokenCounter
	log      *logging.Logger

	maxIterations int
	tokenLimit    int
	retryDelay    time.Duration
}

// Option configures an Agent.
type Option func(*Agent)

// WithMaxIterations caps how many loop iterations a task may consume.
func WithMaxIterations(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxIterations = n
		}
	}
}

// WithAsker wires the channel for ask_user questions.
func WithAsker(asker Asker) Option {
	return func(a *Agent) {
		a.asker = asker
	}
}

// WithObserver wires progress callbacks for rendering.
func WithObserver(observer Observer) Option {
	return func(a *Agent) {
		if observer != nil {
			a.observer = observer
		}
	}
}

// WithTokenLimit sets the transcript token budget.
func WithTokenLimit(limit int) Option {
	return func(a *Agent) {
		if limit > 0 {
			a.tokenLimit = limit
		}
	}
}

// WithTokenCounter overrides the token counter used for pruning.
func WithTokenCounter(counter history.TokenCounter) Option {
	return func(a *Agent) {
		a.counter = counter
	}
}

// WithRetryDelay sets the backoff after a failed LLM call.
func WithRetryDelay(d time.Duration) Option {
	return func(a *Agent) {
		if d > 0 {
			a.retryDelay = d
		}
	}
}

// New creates an agent. The token counter defaults to a tokenizer for the
// provider's model, falling back to a character estimate if unavailable.
func New(provider llm.Provider, executor Executor, opts ...Option) (*Agent, error) {
	log, err := logging.NewLogger("agent")
	if err != nil {
		log.Warnf("file logging unavailable, using stderr: %v", err)
	}

	a := &Agent{
		provider:      provider,
		executor:      executor,
		observer:      nopObserver{},
		log:           log,
		maxIterations: defaultMaxIterations,
		tokenLimit:    defaultTokenLimit,
		retryDelay:    defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.counter == nil {
		if tok, err := tokenizer.NewForModel(provider.GetModel()); err == nil {
			a.counter = tok
		} else {
			log.Warnf("tokenizer unavailable for model %s, using character estimate: %v", provider.GetModel(), err)
		}
	}
	a.history = history.NewManager(a.counter, a.tokenLimit)
	return a, nil
}
