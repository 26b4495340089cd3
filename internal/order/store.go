package order

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"pizza-orders-be/internal/logger"

	"go.uber.org/zap"
)

// PreferenceKey is the name view preferences are persisted under.
const PreferenceKey = "order-store"

const preferenceSaveTimeout = 3 * time.Second

// PreferenceRepository persists the sort and filter configuration.
type PreferenceRepository interface {
	Load(ctx context.Context, name string) (*Preferences, error)
	Save(ctx context.Context, name string, prefs Preferences) error
}

// StatusChange describes one applied status update.
type StatusChange struct {
	OrderID   string      `json:"orderId"`
	From      OrderStatus `json:"from"`
	To        OrderStatus `json:"to"`
	ChangedAt time.Time   `json:"changedAt"`
}

// EventPublisher is notified after every status change.
type EventPublisher interface {
	PublishStatusChange(ctx context.Context, change StatusChange) error
}

// Recorder receives store activity for metrics.
type Recorder interface {
	ObserveStatusChange(from, to OrderStatus)
	ObserveViewChange(operation string)
}

type Option func(*Store)

func WithPreferences(repo PreferenceRepository) Option {
	return func(s *Store) { s.prefs = repo }
}

func WithPublisher(p EventPublisher) Option {
	return func(s *Store) { s.publisher = p }
}

func WithRecorder(r Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store owns the order collection and the view parameters. Every mutator
// re-derives the visible orders before it returns.
type Store struct {
	mu      sync.RWMutex
	orders  []Order
	index   map[string]int
	view    View
	visible []Order

	// prefSeq numbers view changes under mu. saveMu serializes saves and
	// guards savedSeq, the newest view a save was attempted for, so an older
	// view never overwrites a newer one.
	prefSeq  uint64
	saveMu   sync.Mutex
	savedSeq uint64

	prefs     PreferenceRepository
	publisher EventPublisher
	recorder  Recorder
	now       func() time.Time
}

// NewStore seeds a store with orders and restores persisted preferences.
// Preference failures fall back to the defaults.
func NewStore(ctx context.Context, orders []Order, opts ...Option) *Store {
	s := &Store{
		orders: slices.Clone(orders),
		index:  make(map[string]int, len(orders)),
		view:   DefaultView(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	for i, o := range s.orders {
		s.index[o.ID] = i
	}

	s.restorePreferences(ctx)
	s.derive()
	return s
}

func (s *Store) restorePreferences(ctx context.Context) {
	if s.prefs == nil {
		return
	}

	log := logger.For(ctx, "store", "restorePreferences")

	prefs, err := s.prefs.Load(ctx, PreferenceKey)
	if err != nil {
		log.Warn("failed to load preferences, using defaults", zap.Error(err))
		return
	}
	if prefs == nil {
		return
	}
	if err := prefs.Validate(); err != nil {
		log.Warn("stored preferences are invalid, using defaults", zap.Error(err))
		return
	}

	s.view.Sort = prefs.Sort
	s.view.Filter = prefs.Filter
	log.Info("preferences restored",
		zap.String("sort_key", string(prefs.Sort.Key)),
		zap.String("sort_direction", string(prefs.Sort.Direction)),
		zap.String("status_filter", string(prefs.Filter.Status)),
	)
}

// derive must be called with the write lock held.
func (s *Store) derive() {
	s.visible = Apply(s.orders, s.view)
}

// pendingPreferences captures the persisted part of the view. It must be
// called with the write lock held.
func (s *Store) pendingPreferences() (Preferences, uint64) {
	s.prefSeq++
	return Preferences{Sort: s.view.Sort, Filter: s.view.Filter}, s.prefSeq
}

// persist saves prefs unless a save for a newer view already ran. It must be
// called without holding mu.
func (s *Store) persist(ctx context.Context, prefs Preferences, seq uint64) {
	if s.prefs == nil {
		return
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if seq <= s.savedSeq {
		return
	}
	s.savedSeq = seq

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), preferenceSaveTimeout)
	defer cancel()

	if err := s.prefs.Save(ctx, PreferenceKey, prefs); err != nil {
		logger.For(ctx, "store", "persist").Warn("failed to persist preferences",
			zap.Uint64("seq", seq),
			zap.Error(err),
		)
	}
}

func (s *Store) observeView(op string) {
	if s.recorder != nil {
		s.recorder.ObserveViewChange(op)
	}
}

func (s *Store) SetSearchQuery(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.view.SearchQuery = query
	s.derive()
	s.observeView("search")
}

func (s *Store) SetFilterConfig(ctx context.Context, cfg FilterConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DateRange != nil {
		r := *cfg.DateRange
		cfg.DateRange = &r
	}

	s.mu.Lock()
	s.view.Filter = cfg
	s.derive()
	prefs, seq := s.pendingPreferences()
	s.mu.Unlock()

	s.persist(ctx, prefs, seq)
	s.observeView("filter")
	return nil
}

func (s *Store) SetSortConfig(ctx context.Context, cfg SortConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.view.Sort = cfg
	s.derive()
	prefs, seq := s.pendingPreferences()
	s.mu.Unlock()

	s.persist(ctx, prefs, seq)
	s.observeView("sort")
	return nil
}

// ResetFilters restores the default filter and sort and clears the search.
func (s *Store) ResetFilters(ctx context.Context) {
	s.mu.Lock()
	s.view = DefaultView()
	s.derive()
	prefs, seq := s.pendingPreferences()
	s.mu.Unlock()

	s.persist(ctx, prefs, seq)
	s.observeView("reset")
}

// UpdateOrderStatus sets the status of one order. Any status may move to any
// other status. Unknown ids return ErrOrderNotFound and change nothing.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) error {
	log := logger.For(ctx, "store", "UpdateOrderStatus").With(
		zap.String("order_id", orderID),
		zap.String("status", string(status)),
	)

	if !status.Valid() {
		log.Warn("invalid status")
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	i, ok := s.index[orderID]
	if !ok {
		s.mu.Unlock()
		log.Warn("order not found")
		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}

	change := StatusChange{
		OrderID:   orderID,
		From:      s.orders[i].Status,
		To:        status,
		ChangedAt: s.now(),
	}
	s.orders[i].Status = status
	s.derive()
	s.mu.Unlock()

	log.Info("order status updated", zap.String("previous_status", string(change.From)))

	if s.recorder != nil {
		s.recorder.ObserveStatusChange(change.From, change.To)
	}
	if s.publisher != nil {
		if err := s.publisher.PublishStatusChange(ctx, change); err != nil {
			log.Warn("failed to publish status change", zap.Error(err))
		}
	}
	return nil
}

// Snapshot is a consistent read of the view parameters and the orders they
// produce.
type Snapshot struct {
	View           View
	Orders         []Order
	FiltersApplied bool
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.view
	if v.Filter.DateRange != nil {
		r := *v.Filter.DateRange
		v.Filter.DateRange = &r
	}
	return Snapshot{
		View:           v,
		Orders:         slices.Clone(s.visible),
		FiltersApplied: v.SearchQuery != "" || v.Filter.Status != StatusAll,
	}
}

// VisibleOrders returns a copy of the current derived view.
func (s *Store) VisibleOrders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.visible)
}

// Orders returns a copy of the full collection in seed order.
func (s *Store) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.orders)
}

func (s *Store) Order(orderID string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[orderID]
	if !ok {
		return Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return s.orders[i], nil
}

func (s *Store) View() View {
	return s.Snapshot().View
}

// FiltersApplied reports whether a search or status filter narrows the view.
func (s *Store) FiltersApplied() bool {
	return s.Snapshot().FiltersApplied
}

// Stats aggregates over every order, ignoring the view parameters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeStats(s.orders)
}

// Dashboard summarizes the collection as of now.
func (s *Store) Dashboard(now time.Time) Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Dashboard{
		Stats:        ComputeStats(s.orders),
		TodayOrders:  CountOnDay(s.orders, now),
		RecentOrders: RecentOrders(s.orders, 5),
	}
}
