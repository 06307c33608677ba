package browser

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/browser/a11y"
)

const (
	settleDelay     = 2 * time.Second
	scrollDelay     = 500 * time.Millisecond
	scrollAmount    = 800
	clickTimeoutMs  = 2000
	scrollToTimeout = 1000
)

// OpenURL navigates the active tab. Bare hosts get an https scheme, and the
// target host must pass the allowed-domain globs when any are configured.
func (s *Service) OpenURL(ctx context.Context, rawURL string) string {
	target := strings.TrimSpace(rawURL)
	if target == "" {
		return "Error: empty URL."
	}
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return fmt.Sprintf("Error: invalid URL %q: %v", rawURL, err)
	}
	if !s.hostAllowed(parsed.Hostname()) {
		return fmt.Sprintf("Error: domain %q is not in the allowed list. Choose a different site.", parsed.Hostname())
	}

	page := s.activePage()
	_, err = page.Goto(target, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(s.cfg.NavigationTimeoutMs)),
	})
	if err != nil {
		return fmt.Sprintf("Error opening %s: %v", target, err)
	}

	// Let late-loading widgets and consent dialogs render before we report.
	s.sleep(ctx, settleDelay)
	s.dismissOverlays(page)

	title, err := page.Title()
	if err != nil {
		title = ""
	}
	s.log.Printf("opened %s (%s)", target, title)
	return fmt.Sprintf("Opened %s - Title: %s", target, title)
}

// ScanPage captures the accessibility tree of the active tab, compacts it,
// and rebuilds the element index. Old element ids become invalid.
func (s *Service) ScanPage(ctx context.Context) string {
	page := s.activePage()
	s.dismissOverlays(page)

	snapshot, err := page.Locator("body").AriaSnapshot()
	if err != nil {
		return fmt.Sprintf("Error scanning page: %v", err)
	}

	root, err := a11y.ParseSnapshot(snapshot)
	if err != nil {
		return fmt.Sprintf("Error scanning page: %v", err)
	}

	result := a11y.Scan(root)
	s.setElements(result.ElementMap())
	s.log.Printf("scan registered %d elements", len(result.Elements))
	return result.Report
}

// ClickElement clicks an element from the latest scan by id. The click is
// attempted three ways, from most to least faithful to a real user: a
// standard click, a forced click that ignores hit-target checks, and a
// JavaScript click dispatched on the element itself.
func (s *Service) ClickElement(ctx context.Context, id int) string {
	el, ok := s.lookupElement(id)
	if !ok {
		return fmt.Sprintf("Error: element id %d not found. Call 'scan_page' to refresh element ids.", id)
	}

	page := s.activePage()
	locator := s.resolveLocator(page, el)

	count, err := locator.Count()
	if err != nil || count == 0 {
		return fmt.Sprintf("Error: element %d ([%s] '%s') disappeared from the page. Call 'scan_page' to refresh element ids.", id, el.Role, el.Name)
	}

	if err := locator.ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{
		Timeout: playwright.Float(scrollToTimeout),
	}); err != nil {
		s.log.Debugf("scroll into view failed for element %d: %v", id, err)
	}

	stdErr := locator.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(clickTimeoutMs)})
	if stdErr == nil {
		return fmt.Sprintf("Clicked %s '%s' (standard)", el.Role, el.Name)
	}

	forceErr := locator.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(clickTimeoutMs),
		Force:   playwright.Bool(true),
	})
	if forceErr == nil {
		return fmt.Sprintf("Clicked %s '%s' (forced - element was obscured)", el.Role, el.Name)
	}

	_, jsErr := locator.Evaluate("element => element.click()", nil)
	if jsErr == nil {
		return fmt.Sprintf("Clicked %s '%s' (via script click)", el.Role, el.Name)
	}
	return fmt.Sprintf("Error: could not click %s '%s'. Standard click: %v; forced click: %v; script click: %v. The element may be outside of the viewport or obscured by another element.",
		el.Role, el.Name, stdErr, forceErr, jsErr)
}

// TypeText fills an element from the latest scan with text, optionally
// pressing Enter to submit.
func (s *Service) TypeText(ctx context.Context, id int, text string, submit bool) string {
	el, ok := s.lookupElement(id)
	if !ok {
		return fmt.Sprintf("Error: element id %d not found. Call 'scan_page' to refresh element ids.", id)
	}

	page := s.activePage()
	locator := s.resolveLocator(page, el)

	count, err := locator.Count()
	if err != nil || count == 0 {
		return fmt.Sprintf("Error: element %d ([%s] '%s') disappeared from the page. Call 'scan_page' to refresh element ids.", id, el.Role, el.Name)
	}

	// Focus the field first; some inputs ignore fills without focus.
	if err := locator.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(clickTimeoutMs),
		Force:   playwright.Bool(true),
	}); err != nil {
		s.log.Debugf("focus click failed for element %d: %v", id, err)
	}

	if err := locator.Fill(""); err != nil {
		return fmt.Sprintf("Error: typing failed: %v", err)
	}
	if err := locator.Fill(text); err != nil {
		return fmt.Sprintf("Error: typing failed: %v", err)
	}

	if submit {
		if err := page.Keyboard().Press("Enter"); err != nil {
			return fmt.Sprintf("Typed '%s' into %s '%s' but pressing Enter failed: %v", text, el.Role, el.Name, err)
		}
		s.sleep(ctx, settleDelay)
		return fmt.Sprintf("Typed '%s' into %s '%s' and pressed Enter", text, el.Role, el.Name)
	}
	return fmt.Sprintf("Typed '%s' into %s '%s'", text, el.Role, el.Name)
}

// Scroll scrolls the active tab half a screen up or down.
func (s *Service) Scroll(ctx context.Context, direction string) string {
	delta := float64(scrollAmount)
	switch direction {
	case "down":
	case "up":
		delta = -delta
	default:
		return fmt.Sprintf("Error: unknown scroll direction %q (use 'up' or 'down').", direction)
	}

	page := s.activePage()
	if err := page.Mouse().Wheel(0, delta); err != nil {
		return fmt.Sprintf("Error scrolling: %v", err)
	}
	s.sleep(ctx, scrollDelay)
	return fmt.Sprintf("Scrolled %s.", direction)
}

// GetTabs lists all open tabs with the active one marked.
func (s *Service) GetTabs(ctx context.Context) string {
	pages := s.context.Pages()
	if len(pages) == 0 {
		return "No open tabs."
	}

	active := s.activePage()
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Open tabs (%d):\n", len(pages)))
	for i, page := range pages {
		title, err := page.Title()
		if err != nil {
			title = ""
		}
		marker := ""
		if page == active {
			marker = " [ACTIVE]"
		}
		b.WriteString(fmt.Sprintf("%d: %s (%s)%s\n", i, page.URL(), title, marker))
	}
	return strings.TrimRight(b.String(), "\n")
}

// SwitchTab brings the tab at the given index to the front and makes it the
// target of subsequent actions.
func (s *Service) SwitchTab(ctx context.Context, idx int) string {
	pages := s.context.Pages()
	if idx < 0 || idx >= len(pages) {
		return fmt.Sprintf("Invalid tab index %d (have %d tabs, indices start at 0).", idx, len(pages))
	}

	page := pages[idx]
	if err := page.BringToFront(); err != nil {
		return fmt.Sprintf("Error switching to tab %d: %v", idx, err)
	}
	s.setActivePage(page)

	title, err := page.Title()
	if err != nil {
		title = ""
	}
	return fmt.Sprintf("Active tab: %s (%s)", page.URL(), title)
}

// CloseTab closes the active tab and switches to the last remaining one.
// The last open tab cannot be closed.
func (s *Service) CloseTab(ctx context.Context) string {
	pages := s.context.Pages()
	if len(pages) <= 1 {
		return "Cannot close last tab."
	}

	active := s.activePage()
	if err := active.Close(); err != nil {
		return fmt.Sprintf("Error closing tab: %v", err)
	}

	remaining := s.context.Pages()
	next := remaining[len(remaining)-1]
	if err := next.BringToFront(); err != nil {
		s.log.Warnf("failed to focus tab after close: %v", err)
	}
	s.setActivePage(next)

	title, err := next.Title()
	if err != nil {
		title = ""
	}
	return fmt.Sprintf("Closed tab. Active tab: %s (%s)", next.URL(), title)
}

// resolveLocator finds an element on the live page by its scanned role and
// name. Role lookup is primary; a text lookup covers elements whose
// accessible name was synthesized from descendants.
func (s *Service) resolveLocator(page playwright.Page, el a11y.Element) playwright.Locator {
	if el.Name != "" {
		byRole := page.GetByRole(playwright.AriaRole(el.Role), playwright.PageGetByRoleOptions{
			Name: el.Name,
		}).First()
		if count, err := byRole.Count(); err == nil && count > 0 {
			return byRole
		}
		return page.GetByText(el.Name).First()
	}
	return page.GetByRole(playwright.AriaRole(el.Role)).First()
}

// dismissOverlays force-clicks the configured cookie/consent selectors.
// Overlays are best effort: anything that is not visible or fails to click
// is ignored.
func (s *Service) dismissOverlays(page playwright.Page) {
	for _, selector := range s.cfg.OverlaySelectors {
		locator := page.Locator(selector).First()
		visible, err := locator.IsVisible()
		if err != nil || !visible {
			continue
		}
		if err := locator.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(clickTimeoutMs),
			Force:   playwright.Bool(true),
		}); err != nil {
			s.log.Debugf("overlay dismiss failed for %q: %v", selector, err)
			continue
		}
		s.log.Printf("dismissed overlay %q", selector)
	}
}

// sleep waits for d or until the context is cancelled.
func (s *Service) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
