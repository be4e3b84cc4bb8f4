package pos

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/internal/cart"
	"github.com/petrocini/fast-sale-backend/internal/composer"
	product "github.com/petrocini/fast-sale-backend/internal/products"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
	pkgerrors "github.com/petrocini/fast-sale-backend/pkg/errors"
	"github.com/petrocini/fast-sale-backend/pkg/logger"
	"github.com/petrocini/fast-sale-backend/pkg/metrics"
	"gorm.io/gorm"
)

// Confirmation paths recorded on the counters.
const (
	pathComposed = "composed"
	pathQuickAdd = "quick_add"
)

// Service runs the register: it stages product compositions, validates their
// addon selections, and maintains the per-session basket.
type Service interface {
	StartComposition(ctx context.Context, sessionID string, productID uuid.UUID) (CompositionView, error)
	ToggleAddon(ctx context.Context, sessionID string, groupID, itemID uuid.UUID) (CompositionView, error)
	AdjustCompositionQuantity(ctx context.Context, sessionID string, delta int) (CompositionView, error)
	ConfirmComposition(ctx context.Context, sessionID string) (CartView, error)
	QuickAdd(ctx context.Context, sessionID string, productID uuid.UUID) (CartView, error)
	RemoveLine(ctx context.Context, sessionID string, lineID uuid.UUID) (CartView, error)
	AdjustLine(ctx context.Context, sessionID string, lineID uuid.UUID, delta int) (CartView, error)
	ClearCart(ctx context.Context, sessionID string) (CartView, error)
	CartSnapshot(ctx context.Context, sessionID string) (CartView, error)
	SetEvent(ctx context.Context, sessionID string, eventID *uuid.UUID) (CartView, error)
}

type productGetter interface {
	GetProductDetail(ctx context.Context, productID uuid.UUID) (*product.ProductDTO, error)
}

type eventLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

// session holds one register's transient state. Each session is guarded by its
// own mutex so concurrent registers never contend with each other.
type session struct {
	mu          sync.Mutex
	ledger      *cart.Ledger
	composition *composer.Composition
	eventID     *uuid.UUID
}

type service struct {
	products productGetter
	events   eventLoader
	logg     *logger.Logger
	metrics  *metrics.PosMetrics

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService constructs the register service.
func NewService(products productGetter, events eventLoader, logg *logger.Logger, posMetrics *metrics.PosMetrics) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product getter required")
	}
	if events == nil {
		return nil, fmt.Errorf("event loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		products: products,
		events:   events,
		logg:     logg,
		metrics:  posMetrics,
		sessions: map[string]*session{},
	}, nil
}

func (s *service) session(sessionID string) (*session, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[sessionID]; ok {
		return existing, nil
	}
	created := &session{
		ledger:      cart.NewLedger(),
		composition: composer.New(),
	}
	s.sessions[sessionID] = created
	return created, nil
}

// StartComposition stages a product for customization, discarding any
// half-finished composition from a previous product.
func (s *service) StartComposition(ctx context.Context, sessionID string, productID uuid.UUID) (CompositionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return CompositionView{}, err
	}

	detail, err := s.loadProduct(ctx, productID)
	if err != nil {
		return CompositionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.composition.Begin(detail)

	ctx = s.logg.WithField(ctx, "product_id", productID.String())
	s.logg.Info(ctx, "composition started")
	return newCompositionView(sess.composition), nil
}

// ToggleAddon flips one addon selection on the staged composition.
func (s *service) ToggleAddon(ctx context.Context, sessionID string, groupID, itemID uuid.UUID) (CompositionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return CompositionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.composition.Product() == nil {
		return CompositionView{}, pkgerrors.New(pkgerrors.CodeValidation, "no composition in progress")
	}
	sess.composition.Toggle(groupID, itemID)
	return newCompositionView(sess.composition), nil
}

// AdjustCompositionQuantity moves the staged quantity by the delta, floored at 1.
func (s *service) AdjustCompositionQuantity(ctx context.Context, sessionID string, delta int) (CompositionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return CompositionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.composition.Product() == nil {
		return CompositionView{}, pkgerrors.New(pkgerrors.CodeValidation, "no composition in progress")
	}
	for ; delta > 0; delta-- {
		sess.composition.IncrementQuantity()
	}
	for ; delta < 0; delta++ {
		sess.composition.DecrementQuantity()
	}
	return newCompositionView(sess.composition), nil
}

// ConfirmComposition folds the staged composition into the basket. It refuses
// while any addon group is below its minimum selection.
func (s *service) ConfirmComposition(ctx context.Context, sessionID string) (CartView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return CartView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.composition.Product() == nil {
		return CartView{}, pkgerrors.New(pkgerrors.CodeValidation, "no composition in progress")
	}
	snapshot, quantity, addons, ok := sess.composition.Confirm()
	if !ok {
		return CartView{}, pkgerrors.New(pkgerrors.CodeValidation, "selection incomplete for one or more addon groups")
	}

	line, outcome := sess.ledger.Add(snapshot, quantity, addons)
	s.metrics.IncConfirmed(pathComposed)
	s.metrics.IncLine(outcome)

	ctx = s.logg.WithFields(ctx, map[string]any{
		"product_id": snapshot.ID.String(),
		"line_id":    line.InternalID.String(),
		"outcome":    outcome,
	})
	s.logg.Info(ctx, "composition confirmed")
	return newCartView(sess.ledger, sess.eventID), nil
}

// QuickAdd puts a product straight into the basket. Products carrying addon
// groups must go through the composition flow instead.
func (s *service) QuickAdd(ctx context.Context, sessionID string, productID uuid.UUID) (CartView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return CartView{}, err
	}

	detail, err := s.loadProduct(ctx, productID)
	if err != nil {
		return CartView{}, err
	}
	if len(detail.AddonConfigs) > 0 {
		return CartView{}, pkgerrors.New(pkgerrors.CodeValidation, "product requires composition")
	}

	snapshot := cart.ProductSnapshot{ID: detail.ID, Name: detail.Name, Price: detail.Price}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	line, outcome := sess.ledger.Add(snapshot, 1, nil)
	s.metrics.IncConfirmed(pathQuickAdd)
	s.metrics.IncLine(outcome)

	ctx = s.logg.WithFields(ctx, map[string]any{
		"product_id": detail.ID.String(),
		"line_id":    line.InternalID.String(),
		"outcome":    outcome,
	})
	s.logg.Info(ctx, "product quick-added")
	return newCartView(sess.ledger, sess.eventID), nil
}

// RemoveLine drops a basket line; unknown ids are a no-op.
func (s *service) RemoveLine(ctx context.Context, sessionID string, lineID uuid.UUID) (CartView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return CartView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.ledger.Remove(lineID)
	return newCartView(sess.ledger, sess.eventID), nil
}

// AdjustLine moves a basket line's quantity by the delta; results below 1 leave
// the line untouched.
func (s *service) AdjustLine(ctx context.Context, sessionID string, lineID uuid.UUID, delta int) (CartView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return CartView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.ledger.AdjustQuantity(lineID, delta)
	return newCartView(sess.ledger, sess.eventID), nil
}

// ClearCart empties the basket and abandons any staged composition.
func (s *service) ClearCart(ctx context.Context, sessionID string) (CartView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return CartView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.ledger.Clear()
	sess.composition = composer.New()
	s.metrics.IncClear()
	s.logg.Info(ctx, "basket cleared")
	return newCartView(sess.ledger, sess.eventID), nil
}

// CartSnapshot returns the current basket without mutating it.
func (s *service) CartSnapshot(ctx context.Context, sessionID string) (CartView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return CartView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return newCartView(sess.ledger, sess.eventID), nil
}

// SetEvent attaches or detaches the sales event for the session. The basket
// itself is untouched.
func (s *service) SetEvent(ctx context.Context, sessionID string, eventID *uuid.UUID) (CartView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return CartView{}, err
	}

	if eventID != nil {
		record, err := s.events.FindByID(ctx, *eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return CartView{}, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
			}
			return CartView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
		}
		if !record.IsActive {
			return CartView{}, pkgerrors.New(pkgerrors.CodeValidation, "event is not active")
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.eventID = eventID
	return newCartView(sess.ledger, sess.eventID), nil
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*product.ProductDTO, error) {
	detail, err := s.products.GetProductDetail(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !detail.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not active")
	}
	return detail, nil
}
