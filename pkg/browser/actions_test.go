package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/browser/a11y"
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/config"
)

// newTestService builds a service without starting a browser. Only paths
// that return before touching Playwright are exercised here.
func newTestService(t *testing.T, cfg *config.Config) *Service {
	t.Helper()
	s, err := NewService(cfg)
	require.NoError(t, err)
	return s
}

func TestNewServiceRejectsBadDomainPattern(t *testing.T) {
	cfg := config.Default()
	cfg.AllowedDomains = []string{"["}

	_, err := NewService(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allowed_domains")
}

func TestOpenURLRejectsEmptyURL(t *testing.T) {
	s := newTestService(t, config.Default())
	assert.Equal(t, "Error: empty URL.", s.OpenURL(context.Background(), "   "))
}

func TestOpenURLRejectsUnparsableURL(t *testing.T) {
	s := newTestService(t, config.Default())
	result := s.OpenURL(context.Background(), "https://exa mple.com")
	assert.Contains(t, result, "Error: invalid URL")
}

func TestOpenURLRejectsDisallowedDomain(t *testing.T) {
	cfg := config.Default()
	cfg.AllowedDomains = []string{"*.wikipedia.org", "wikipedia.org"}
	s := newTestService(t, cfg)

	tests := []struct {
		name string
		url  string
		host string
	}{
		// A bare host gets the https scheme before the check, so the parsed
		// hostname shows up in the rejection.
		{"bare host", "example.com/page", "example.com"},
		{"https url", "https://evil.com/search?q=x", "evil.com"},
		{"http url", "http://sub.example.com", "sub.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.OpenURL(context.Background(), tt.url)
			assert.Contains(t, result, "not in the allowed list")
			assert.Contains(t, result, tt.host)
		})
	}
}

func TestHostAllowed(t *testing.T) {
	cfg := config.Default()
	cfg.AllowedDomains = []string{"*.wikipedia.org", "wikipedia.org"}
	s := newTestService(t, cfg)

	tests := []struct {
		host    string
		allowed bool
	}{
		{"wikipedia.org", true},
		{"en.wikipedia.org", true},
		{"evil.org", false},
		{"wikipedia.org.evil.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, s.hostAllowed(tt.host), "host %s", tt.host)
	}

	// No patterns configured means no restriction.
	open := newTestService(t, config.Default())
	assert.True(t, open.hostAllowed("anything.example"))
}

func TestClickElementStaleID(t *testing.T) {
	s := newTestService(t, config.Default())
	s.setElements(map[int]a11y.Element{1: {ID: 1, Role: "button", Name: "Buy"}})

	result := s.ClickElement(context.Background(), 42)
	assert.Equal(t, "Error: element id 42 not found. Call 'scan_page' to refresh element ids.", result)
}

func TestTypeTextStaleID(t *testing.T) {
	s := newTestService(t, config.Default())
	s.setElements(map[int]a11y.Element{1: {ID: 1, Role: "textbox", Name: "Search"}})

	result := s.TypeText(context.Background(), 7, "query", true)
	assert.Equal(t, "Error: element id 7 not found. Call 'scan_page' to refresh element ids.", result)
}

func TestScrollRejectsUnknownDirection(t *testing.T) {
	s := newTestService(t, config.Default())
	result := s.Scroll(context.Background(), "sideways")
	assert.Contains(t, result, `unknown scroll direction "sideways"`)
}
