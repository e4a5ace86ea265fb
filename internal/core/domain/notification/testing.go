package notification

import (
	"context"
	"sync"
	"time"
)

type FakeNotifier struct {
	IsUnavailable bool
	// ShowErrors are returned by consecutive Show calls, nil entries succeed.
	ShowErrors  []error
	ListError   error
	Active      map[ID]Content
	Shown       []ShownNotification
	Cleared     []ID
	showCounter int
	lock        sync.Mutex
}

type ShownNotification struct {
	ID      ID
	Content Content
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{Active: make(map[ID]Content)}
}

func (n *FakeNotifier) Available() bool {
	return !n.IsUnavailable
}

func (n *FakeNotifier) Show(ctx context.Context, id ID, content Content) (ID, error) {
	n.lock.Lock()
	defer n.lock.Unlock()
	if n.IsUnavailable {
		return id, ErrServiceUnavailable
	}
	call := n.showCounter
	n.showCounter++
	if call < len(n.ShowErrors) && n.ShowErrors[call] != nil {
		return id, n.ShowErrors[call]
	}
	n.Active[id] = content
	n.Shown = append(n.Shown, ShownNotification{ID: id, Content: content})
	return id, nil
}

func (n *FakeNotifier) Clear(ctx context.Context, id ID) error {
	n.lock.Lock()
	defer n.lock.Unlock()
	if n.IsUnavailable {
		return ErrServiceUnavailable
	}
	delete(n.Active, id)
	n.Cleared = append(n.Cleared, id)
	return nil
}

func (n *FakeNotifier) ListActive(ctx context.Context) ([]ID, error) {
	n.lock.Lock()
	defer n.lock.Unlock()
	if n.IsUnavailable {
		return nil, ErrServiceUnavailable
	}
	if n.ListError != nil {
		return nil, n.ListError
	}
	ids := make([]ID, 0, len(n.Active))
	for id := range n.Active {
		ids = append(ids, id)
	}
	return ids, nil
}

type ScheduledClear struct {
	ID    ID
	Delay time.Duration
}

type FakeAutoClearer struct {
	Scheduled []ScheduledClear
	lock      sync.Mutex
}

func NewFakeAutoClearer() *FakeAutoClearer {
	return &FakeAutoClearer{}
}

func (c *FakeAutoClearer) ClearAfter(id ID, delay time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Scheduled = append(c.Scheduled, ScheduledClear{ID: id, Delay: delay})
}

type FakeTabOpener struct {
	Opened []string
	Error  error
}

func NewFakeTabOpener() *FakeTabOpener {
	return &FakeTabOpener{}
}

func (o *FakeTabOpener) OpenTab(ctx context.Context, url string) error {
	if o.Error != nil {
		return o.Error
	}
	o.Opened = append(o.Opened, url)
	return nil
}
