// package carousel implements the rotating hero carousel state
package carousel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mvx/internal/models"
)

// MaxItems caps the hero rotation at the first five trending movies.
const MaxItems = 5

// DefaultInterval is the automatic advancement period.
const DefaultInterval = 4 * time.Second

// TickMsg is the [tea.Msg] driving automatic advancement. Generation ties a
// tick to the timer chain that scheduled it so a stale timer never advances
// a newer (or torn down) controller.
type TickMsg struct {
	Generation int
}

// Controller owns the rotation index over a bounded, fixed item list.
//
// The item list is set once at construction. The index wraps modulo the list
// length under both automatic ticks and manual Next/Prev. At most one timer
// chain is live at a time: Start and Stop bump the generation, orphaning any
// tick still in flight.
type Controller struct {
	items      []models.Movie
	index      int
	interval   time.Duration
	generation int
	active     bool
}

// NewController creates a controller over the first [MaxItems] of items.
func NewController(items []models.Movie, interval time.Duration) *Controller {
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Controller{items: items, interval: interval}
}

// Len returns the number of items in rotation.
func (c *Controller) Len() int {
	return len(c.items)
}

// Index returns the current rotation index.
func (c *Controller) Index() int {
	return c.index
}

// Current returns the movie at the rotation index. ok is false when the
// rotation is empty.
func (c *Controller) Current() (models.Movie, bool) {
	if len(c.items) == 0 {
		return models.Movie{}, false
	}
	return c.items[c.index], true
}

// Items returns the rotation list.
func (c *Controller) Items() []models.Movie {
	return c.items
}

// Next advances the rotation by one, wrapping at the end. No-op when empty.
// Manual advancement does not restart the automatic timer.
func (c *Controller) Next() {
	if len(c.items) == 0 {
		return
	}
	c.index = (c.index + 1) % len(c.items)
}

// Prev moves the rotation back by one, wrapping at the start. No-op when empty.
func (c *Controller) Prev() {
	if len(c.items) == 0 {
		return
	}
	c.index = (c.index - 1 + len(c.items)) % len(c.items)
}

// Start activates automatic advancement and returns the command that arms
// the timer. Returns nil for an empty rotation: no timer is ever armed.
func (c *Controller) Start() tea.Cmd {
	if len(c.items) == 0 {
		return nil
	}
	c.generation++
	c.active = true
	return c.tick()
}

// Stop deactivates automatic advancement. Any tick already in flight carries
// a stale generation and is discarded on arrival.
func (c *Controller) Stop() {
	c.generation++
	c.active = false
}

// Tick handles an automatic advancement message. Stale ticks (from a
// stopped or restarted timer chain) are dropped without effect; a live tick
// advances the rotation and schedules the next one.
func (c *Controller) Tick(msg TickMsg) tea.Cmd {
	if !c.active || msg.Generation != c.generation {
		return nil
	}
	c.Next()
	return c.tick()
}

func (c *Controller) tick() tea.Cmd {
	generation := c.generation
	return tea.Tick(c.interval, func(time.Time) tea.Msg {
		return TickMsg{Generation: generation}
	})
}
