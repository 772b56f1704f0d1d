package service

import (
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.Notifier = (*NoticeCenter)(nil)
var _ port.NoticeReader = (*NoticeCenter)(nil)

// A NoticeCenter holds transient status messages. Every posted notice
// gets its own dismissal timer: notices expire independently, there is
// no queue bound and duplicates are not coalesced.
type NoticeCenter struct {
	mu      sync.Mutex
	ttl     time.Duration
	seq     int64
	notices []domain.Notice
}

func NewNoticeCenter(ttl time.Duration) *NoticeCenter {
	return &NoticeCenter{ttl: ttl}
}

func (c *NoticeCenter) Notify(kind domain.NoticeKind, text string) {
	c.mu.Lock()
	c.seq++
	id := c.seq
	c.notices = append(c.notices, domain.Notice{ID: id, Kind: kind, Text: text})
	c.mu.Unlock()

	// Dismissal timers are not cancelable once scheduled.
	time.AfterFunc(c.ttl, func() { c.dismiss(id) })
}

func (c *NoticeCenter) dismiss(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.notices {
		if n.ID == id {
			c.notices = append(c.notices[:i], c.notices[i+1:]...)
			return
		}
	}
}

// Active returns live notices in posting order.
func (c *NoticeCenter) Active() []domain.Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	ns := make([]domain.Notice, len(c.notices))
	copy(ns, c.notices)
	return ns
}
