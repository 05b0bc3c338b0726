package notification

import (
	"sync"
	"time"

	"freelance-match/internal/domain/marketplace"
)

const idSeparator = "-"

func ID(projectID, freelancerID string) string {
	return projectID + idSeparator + freelancerID
}

// Derive builds one notification per qualifying freelancer. Each carries a
// copy of the freelancer as it looked at derivation time.
func Derive(p marketplace.Project, freelancers []marketplace.Freelancer, now time.Time) []marketplace.Notification {
	out := make([]marketplace.Notification, 0, len(freelancers))
	for _, f := range freelancers {
		out = append(out, marketplace.Notification{
			ID:           ID(p.ID, f.ID),
			ProjectID:    p.ID,
			ProjectTitle: p.Title,
			Freelancer:   f.Clone(),
			Timestamp:    now,
		})
	}
	return out
}

// Inbox is a newest-first list of notifications.
type Inbox struct {
	items []marketplace.Notification
}

// Prepend places batch ahead of everything already held, keeping batch order.
func (b *Inbox) Prepend(batch []marketplace.Notification) {
	if len(batch) == 0 {
		return
	}
	next := make([]marketplace.Notification, 0, len(batch)+len(b.items))
	next = append(next, batch...)
	next = append(next, b.items...)
	b.items = next
}

// Dismiss removes the notification with the given id and reports whether
// one was found.
func (b *Inbox) Dismiss(id string) bool {
	for i, n := range b.items {
		if n.ID != id {
			continue
		}
		b.items = append(b.items[:i:i], b.items[i+1:]...)
		return true
	}
	return false
}

func (b *Inbox) List() []marketplace.Notification {
	return append([]marketplace.Notification{}, b.items...)
}

func (b *Inbox) Len() int {
	return len(b.items)
}

func (b *Inbox) Clear() {
	b.items = nil
}

// Center holds one Inbox per recipient for the lifetime of the process.
type Center struct {
	mu      sync.Mutex
	inboxes map[string]*Inbox
}

func NewCenter() *Center {
	return &Center{inboxes: make(map[string]*Inbox)}
}

func (c *Center) Prepend(userID string, batch []marketplace.Notification) {
	if len(batch) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	box, ok := c.inboxes[userID]
	if !ok {
		box = &Inbox{}
		c.inboxes[userID] = box
	}
	box.Prepend(batch)
}

func (c *Center) List(userID string) []marketplace.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	box, ok := c.inboxes[userID]
	if !ok {
		return []marketplace.Notification{}
	}
	return box.List()
}

func (c *Center) Dismiss(userID, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	box, ok := c.inboxes[userID]
	if !ok {
		return false
	}
	return box.Dismiss(id)
}

func (c *Center) Clear(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inboxes, userID)
}
