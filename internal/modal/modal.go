package modal

import (
	"sync"

	"prison-admin/internal/view"
)

// Key and click targets that close the overlay.
const (
	KeyEscape     = "Escape"
	TargetOverlay = "modal"
)

// Controller owns the single shared overlay. Opening replaces whatever
// was shown before; there is never more than one modal.
type Controller struct {
	mu       sync.Mutex
	current  view.Modal
	changeCh chan struct{}
}

// New creates a closed Controller.
func New() *Controller {
	return &Controller{changeCh: make(chan struct{}, 1)}
}

// ChangeCh receives a value whenever the modal opens or closes.
func (c *Controller) ChangeCh() <-chan struct{} { return c.changeCh }

func (c *Controller) notifyChange() {
	select {
	case c.changeCh <- struct{}{}:
	default:
	}
}

// OpenForm shows a form, replacing any prior content.
func (c *Controller) OpenForm(f view.Form) {
	c.mu.Lock()
	c.current = view.Modal{Open: true, Title: f.Title, Form: &f}
	c.mu.Unlock()
	c.notifyChange()
}

// OpenDetail shows a read-only detail view, replacing any prior content.
func (c *Controller) OpenDetail(d view.Detail) {
	c.mu.Lock()
	c.current = view.Modal{Open: true, Title: d.Title, Detail: &d}
	c.mu.Unlock()
	c.notifyChange()
}

// Close hides the overlay and discards its content, including any unsaved
// form input. It never touches the network.
func (c *Controller) Close() {
	c.mu.Lock()
	wasOpen := c.current.Open
	c.current = view.Modal{}
	c.mu.Unlock()
	if wasOpen {
		c.notifyChange()
	}
}

// HandleKey closes the overlay on Escape. It reports whether it closed.
func (c *Controller) HandleKey(key string) bool {
	if key != KeyEscape || !c.IsOpen() {
		return false
	}
	c.Close()
	return true
}

// HandleClick closes the overlay when the click landed on the background
// rather than on the modal content.
func (c *Controller) HandleClick(target string) bool {
	if target != TargetOverlay || !c.IsOpen() {
		return false
	}
	c.Close()
	return true
}

// IsOpen reports whether the overlay is visible.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Open
}

// Current returns the overlay content.
func (c *Controller) Current() view.Modal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// ShowsForm reports whether the open modal is the form for entity bound
// to record id. A nil id means the create form.
func (c *Controller) ShowsForm(entity string, id *int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.current.Form
	if !c.current.Open || f == nil || f.Entity != entity {
		return false
	}
	if f.ID == nil || id == nil {
		return f.ID == nil && id == nil
	}
	return *f.ID == *id
}
