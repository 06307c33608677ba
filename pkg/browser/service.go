// Package browser implements the agent's capability set on top of
// Playwright: navigation, element interaction, tab management, and
// accessibility scans. Every operation degrades failures into descriptive
// status strings so the agent loop can feed them back to the model instead
// of aborting the task.
package browser

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gobwas/glob"
	"github.com/playwright-community/playwright-go"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/browser/a11y"
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/config"
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/logging"
)

// stealthScript hides the webdriver flag that many sites use to block
// automated browsers.
const stealthScript = "Object.defineProperty(navigator, 'webdriver', {get: () => undefined})"

// Service owns one browser, one context, and the element index of the most
// recent scan. It is a single mutable resource: the agent's single-flight
// discipline is the only concurrency control for actions, while the mutex
// covers page switches raised by Playwright's event goroutines.
type Service struct {
	cfg *config.Config
	log *logging.Logger

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext

	mu       sync.Mutex
	page     playwright.Page
	elements map[int]a11y.Element

	allowed []glob.Glob
}

// NewService creates a service for the given configuration. Start must be
// called before any action.
func NewService(cfg *config.Config) (*Service, error) {
	log, err := logging.NewLogger("browser")
	if err != nil {
		log.Warnf("file logging unavailable, using stderr: %v", err)
	}

	allowed := make([]glob.Glob, 0, len(cfg.AllowedDomains))
	for _, pattern := range cfg.AllowedDomains {
		g, err := glob.Compile(pattern, '.')
		if err != nil {
			return nil, fmt.Errorf("invalid allowed_domains pattern %q: %w", pattern, err)
		}
		allowed = append(allowed, g)
	}

	return &Service{
		cfg:      cfg,
		log:      log,
		elements: make(map[int]a11y.Element),
		allowed:  allowed,
	}, nil
}

// Start installs and launches the browser, restoring the saved session state
// when the configured storage file exists.
func (s *Service) Start() error {
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}
	s.pw = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.cfg.Headless),
		Channel:  playwright.String("chrome"),
		Args:     s.cfg.BrowserArgs,
	})
	if err != nil {
		s.pw.Stop()
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	s.browser = browser

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  s.cfg.ViewportWidth,
			Height: s.cfg.ViewportHeight,
		},
		Locale:    playwright.String(s.cfg.Locale),
		UserAgent: playwright.String(s.cfg.UserAgent),
	}
	if _, err := os.Stat(s.cfg.StorageStatePath); err == nil {
		contextOpts.StorageStatePath = playwright.String(s.cfg.StorageStatePath)
	}

	context, err := browser.NewContext(contextOpts)
	if err != nil {
		s.browser.Close()
		s.pw.Stop()
		return fmt.Errorf("failed to create browser context: %w", err)
	}
	s.context = context

	if err := context.AddInitScript(playwright.Script{Content: playwright.String(stealthScript)}); err != nil {
		s.log.Warnf("failed to add stealth init script: %v", err)
	}

	// A freshly opened tab (e.g. target=_blank links) becomes the active page.
	context.OnPage(func(page playwright.Page) {
		if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
			State: playwright.LoadStateDomcontentloaded,
		}); err != nil {
			s.log.Warnf("new tab did not reach domcontentloaded: %v", err)
		}
		s.setActivePage(page)
	})

	page, err := context.NewPage()
	if err != nil {
		s.context.Close()
		s.browser.Close()
		s.pw.Stop()
		return fmt.Errorf("failed to create page: %w", err)
	}
	s.setActivePage(page)

	s.log.Printf("browser started (headless=%v, session=%s)", s.cfg.Headless, s.cfg.StorageStatePath)
	return nil
}

// Stop saves the session state and shuts down the browser.
func (s *Service) Stop() error {
	if s.context != nil {
		if err := s.SaveSession(); err != nil {
			s.log.Warnf("failed to save session state: %v", err)
		}
		if err := s.context.Close(); err != nil {
			s.log.Warnf("failed to close context: %v", err)
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.log.Warnf("failed to close browser: %v", err)
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			return fmt.Errorf("failed to stop playwright: %w", err)
		}
	}
	return nil
}

// SaveSession persists cookies and local storage to the configured storage
// state file so the next run stays logged in.
func (s *Service) SaveSession() error {
	if s.context == nil {
		return fmt.Errorf("browser context not started")
	}
	if _, err := s.context.StorageState(s.cfg.StorageStatePath); err != nil {
		return fmt.Errorf("failed to save storage state: %w", err)
	}
	return nil
}

func (s *Service) setActivePage(page playwright.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
}

func (s *Service) activePage() playwright.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// lookupElement resolves an element id against the most recent scan. Ids are
// reassigned on every scan, so anything absent from the current index is
// treated as stale.
func (s *Service) lookupElement(id int) (a11y.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.elements[id]
	return el, ok
}

func (s *Service) setElements(elements map[int]a11y.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements = elements
}

// hostAllowed checks the host against the configured domain globs. An empty
// pattern list allows everything.
func (s *Service) hostAllowed(host string) bool {
	if len(s.allowed) == 0 {
		return true
	}
	for _, g := range s.allowed {
		if g.Match(host) {
			return true
		}
	}
	return false
}
