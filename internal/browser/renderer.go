package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-jobsearch-malawi/internal/config"
)

// Renderer owns one headless Chromium instance for the duration of a crawl
// run. Callers must Close it when the run ends, success or failure.
type Renderer struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	ctx     playwright.BrowserContext

	navTimeoutMs float64
	settle       time.Duration
}

func NewRenderer(cfg *config.Config) (*Renderer, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	browserCtx, err := b.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(cfg.UserAgent),
	})
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("create browser context: %w", err)
	}

	return &Renderer{
		pw:           pw,
		browser:      b,
		ctx:          browserCtx,
		navTimeoutMs: float64(cfg.TimeoutMs),
		settle:       time.Duration(cfg.SettleMs) * time.Millisecond,
	}, nil
}

// RenderHTML opens the URL in a fresh page, waits for network idle plus a
// settle delay so client-side rendering finishes, and returns the full DOM.
func (r *Renderer) RenderHTML(ctx context.Context, url string) (string, error) {
	page, err := r.ctx.NewPage()
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	defer page.Close()

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(r.navTimeoutMs),
	}); err != nil {
		return "", fmt.Errorf("navigate to %s: %w", url, err)
	}

	select {
	case <-time.After(r.settle):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return page.Content()
}

func (r *Renderer) Close() {
	if r.browser != nil {
		r.browser.Close()
	}
	if r.pw != nil {
		r.pw.Stop()
	}
}
