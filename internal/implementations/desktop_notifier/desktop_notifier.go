package desktopnotifier

import (
	"context"
	"fmt"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/notification"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = "/org/freedesktop/Notifications"
	notifyIntf  = "org.freedesktop.Notifications"
	notifyCall  = notifyIntf + ".Notify"
	closeCall   = notifyIntf + ".CloseNotification"
	actionEvent = notifyIntf + ".ActionInvoked"
	closedEvent = notifyIntf + ".NotificationClosed"

	// body click, not a visible button
	defaultAction = "default"
)

type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// ServerIDStore keeps the id mapping across restarts. The notification
// server outlives this process and keeps its ids.
type ServerIDStore interface {
	Load(ctx context.Context) (map[notification.ID]uint32, error)
	Save(ctx context.Context, ids map[notification.ID]uint32) error
}

// DBus shows alerts through the freedesktop notification service. The
// server assigns its own numeric IDs, they are mapped to ours here.
type DBus struct {
	log       logging.Logger
	appName   string
	object    caller
	store     ServerIDStore
	conn      *dbus.Conn
	signals   chan *dbus.Signal
	clicks    chan notification.ID
	serverIDs map[notification.ID]uint32
	localIDs  map[uint32]notification.ID
	// ids loaded from the store, the server may have dropped them meanwhile
	restored map[uint32]bool
	lock     sync.Mutex
	saveLock sync.Mutex
}

func newDBus(log logging.Logger, appName string, object caller, store ServerIDStore) *DBus {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	return &DBus{
		log:       log,
		appName:   appName,
		object:    object,
		store:     store,
		clicks:    make(chan notification.ID, 16),
		serverIDs: make(map[notification.ID]uint32),
		localIDs:  make(map[uint32]notification.ID),
		restored:  make(map[uint32]bool),
	}
}

// Connect attaches to the session bus, restores the alerts shown by a
// previous run and starts listening for clicks and closes.
func Connect(ctx context.Context, log logging.Logger, appName string, store ServerIDStore) (*DBus, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("could not connect to the session bus: %w", err)
	}
	err = conn.AddMatchSignal(
		dbus.WithMatchObjectPath(notifyPath),
		dbus.WithMatchInterface(notifyIntf),
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not subscribe to notification signals: %w", err)
	}

	n := newDBus(log, appName, conn.Object(notifyDest, notifyPath), store)
	if err := n.restore(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	n.conn = conn
	n.signals = make(chan *dbus.Signal, 16)
	conn.Signal(n.signals)
	go n.listen()
	return n, nil
}

func (n *DBus) Close() error {
	if n.conn == nil {
		return nil
	}
	n.conn.RemoveSignal(n.signals)
	return n.conn.Close()
}

func (n *DBus) Clicks() <-chan notification.ID {
	return n.clicks
}

func (n *DBus) Available() bool {
	return true
}

func (n *DBus) Show(ctx context.Context, id notification.ID, content notification.Content) (notification.ID, error) {
	n.lock.Lock()
	replaces := n.serverIDs[id]
	n.lock.Unlock()

	var serverID uint32
	err := n.object.CallWithContext(
		ctx,
		notifyCall,
		0,
		n.appName,
		replaces,
		content.Icon,
		content.Title,
		content.Body,
		[]string{defaultAction, "Open"},
		map[string]dbus.Variant{},
		int32(-1),
	).Store(&serverID)
	if err != nil {
		return id, fmt.Errorf("could not show notification %s: %w", id, err)
	}

	n.lock.Lock()
	if replaces != 0 && replaces != serverID {
		delete(n.localIDs, replaces)
		delete(n.restored, replaces)
	}
	n.serverIDs[id] = serverID
	n.localIDs[serverID] = id
	n.lock.Unlock()

	n.persist(ctx)
	return id, nil
}

func (n *DBus) Clear(ctx context.Context, id notification.ID) error {
	n.lock.Lock()
	serverID, ok := n.serverIDs[id]
	restored := n.restored[serverID]
	n.forget(serverID)
	n.lock.Unlock()
	if !ok {
		return nil
	}
	n.persist(ctx)

	call := n.object.CallWithContext(ctx, closeCall, 0, serverID)
	if call.Err != nil {
		if restored {
			n.log.Debug(
				ctx,
				"Restored notification is already gone.",
				logging.Entry("notificationID", id),
				logging.Entry("err", call.Err),
			)
			return nil
		}
		return fmt.Errorf("could not clear notification %s: %w", id, call.Err)
	}
	return nil
}

// ListActive returns the alerts shown by this or a previous run that the
// server has not reported closed.
func (n *DBus) ListActive(ctx context.Context) ([]notification.ID, error) {
	n.lock.Lock()
	defer n.lock.Unlock()
	ids := make([]notification.ID, 0, len(n.serverIDs))
	for id := range n.serverIDs {
		ids = append(ids, id)
	}
	return ids, nil
}

func (n *DBus) listen() {
	for signal := range n.signals {
		n.handleSignal(signal)
	}
	close(n.clicks)
}

func (n *DBus) handleSignal(signal *dbus.Signal) {
	if signal == nil || len(signal.Body) == 0 {
		return
	}
	serverID, ok := signal.Body[0].(uint32)
	if !ok {
		return
	}

	switch signal.Name {
	case actionEvent:
		if len(signal.Body) < 2 || signal.Body[1] != defaultAction {
			return
		}
		n.lock.Lock()
		id, ok := n.localIDs[serverID]
		n.lock.Unlock()
		if !ok {
			return
		}
		select {
		case n.clicks <- id:
		default:
			n.log.Warning(context.Background(), "Click queue is full, click dropped.", logging.Entry("notificationID", id))
		}
	case closedEvent:
		n.lock.Lock()
		_, known := n.localIDs[serverID]
		n.forget(serverID)
		n.lock.Unlock()
		if known {
			n.persist(context.Background())
		}
	}
}

func (n *DBus) forget(serverID uint32) {
	id, ok := n.localIDs[serverID]
	if !ok {
		return
	}
	delete(n.localIDs, serverID)
	delete(n.serverIDs, id)
	delete(n.restored, serverID)
}

func (n *DBus) restore(ctx context.Context) error {
	ids, err := n.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("could not load notification ids: %w", err)
	}

	n.lock.Lock()
	defer n.lock.Unlock()
	for id, serverID := range ids {
		n.serverIDs[id] = serverID
		n.localIDs[serverID] = id
		n.restored[serverID] = true
	}
	if len(ids) > 0 {
		n.log.Info(ctx, "Notification ids restored.", logging.Entry("count", len(ids)))
	}
	return nil
}

// persist writes the current mapping. Saves are serialized, the last one
// always carries the latest state.
func (n *DBus) persist(ctx context.Context) {
	n.saveLock.Lock()
	defer n.saveLock.Unlock()

	n.lock.Lock()
	ids := make(map[notification.ID]uint32, len(n.serverIDs))
	for id, serverID := range n.serverIDs {
		ids[id] = serverID
	}
	n.lock.Unlock()

	if err := n.store.Save(ctx, ids); err != nil {
		n.log.Warning(ctx, "Could not save notification ids.", logging.Entry("err", err))
	}
}
