package linkedin

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mwarner-dev/postpilot/internal/config"
)

// fakeDriver is a scripted Driver for pipeline tests. Visibility, current
// URL, and redirects are set up front; interactions are recorded.
type fakeDriver struct {
	mu sync.Mutex

	location  string
	redirects map[string]string
	visible   map[string]bool

	navigated []string
	fills     map[string]string
	clicks    []string
	closes    int

	navErr   error
	locErr   error
	fillErr  error
	clickErr error
	shot     []byte
	shotErr  error

	// onClick runs after a click is recorded; tests use it to simulate
	// navigation triggered by the click.
	onClick func(selector string)
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		redirects: make(map[string]string),
		visible:   make(map[string]bool),
		fills:     make(map[string]string),
	}
}

func (f *fakeDriver) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.navErr != nil {
		return f.navErr
	}
	f.navigated = append(f.navigated, url)
	if target, ok := f.redirects[url]; ok {
		f.location = target
	} else {
		f.location = url
	}
	return nil
}

func (f *fakeDriver) Location(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locErr != nil {
		return "", f.locErr
	}
	return f.location, nil
}

func (f *fakeDriver) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.visible[selector] {
		return nil
	}
	return errors.New("element not visible: " + selector)
}

func (f *fakeDriver) Fill(ctx context.Context, selector, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fillErr != nil {
		return f.fillErr
	}
	f.fills[selector] = text
	return nil
}

func (f *fakeDriver) Click(ctx context.Context, selector string, timeout time.Duration) error {
	f.mu.Lock()
	if f.clickErr != nil {
		f.mu.Unlock()
		return f.clickErr
	}
	f.clicks = append(f.clicks, selector)
	hook := f.onClick
	f.mu.Unlock()

	if hook != nil {
		hook(selector)
	}
	return nil
}

func (f *fakeDriver) Screenshot(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.shotErr != nil {
		return nil, f.shotErr
	}
	return f.shot, nil
}

func (f *fakeDriver) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

func (f *fakeDriver) setLocation(loc string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.location = loc
}

func (f *fakeDriver) clickCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clicks)
}

func (f *fakeDriver) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes
}

// testConfig returns defaults with every wait shrunk so tests never stall on
// tuning sleeps.
func testConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.LinkedIn.LoginWait = 50 * time.Millisecond
	cfg.LinkedIn.EditorWait = time.Millisecond
	cfg.LinkedIn.FallbackWait = time.Millisecond
	cfg.LinkedIn.ConfirmWait = time.Millisecond
	cfg.LinkedIn.AltConfirmWait = time.Millisecond
	cfg.LinkedIn.ComposeSettle = 0
	cfg.LinkedIn.ConfirmSettle = 0
	cfg.Browser.NavigationTimeout = 50 * time.Millisecond
	return cfg
}
