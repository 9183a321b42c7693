package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
	"github.com/kipngetich-lab/TukoShop-App/pkg/logger"
	"github.com/kipngetich-lab/TukoShop-App/pkg/metrics"
)

// OrderService implements the order-placement workflow: validate the cart,
// reserve stock, commit the order, clear the cart.
//
// Stock is reserved with per-product conditional decrements (never
// read-modify-write), with compensating increments on any failure before the
// order commits. A failed cart-clear after commit is non-fatal: the order
// stands and the deletion is handed to the reconcile hook for retry.
type OrderService struct {
	carts    CartStore
	products ProductStore
	orders   OrderStore

	// reconcile is invoked when cart-clearing fails after the order has
	// durably committed. Wired to a queue job at boot; optional.
	reconcile func(buyer primitive.ObjectID, products []primitive.ObjectID)
}

func NewOrderService(carts CartStore, products ProductStore, orders OrderStore) *OrderService {
	return &OrderService{carts: carts, products: products, orders: orders}
}

// OnCartClearFailure registers the reconciliation hook.
func (s *OrderService) OnCartClearFailure(fn func(buyer primitive.ObjectID, products []primitive.ObjectID)) {
	s.reconcile = fn
}

// appliedDecrement records one reservation so it can be compensated.
type appliedDecrement struct {
	product primitive.ObjectID
	qty     int64
}

// PlaceOrder turns the buyer's cart into an immutable order.
//
// idempotencyKey may be empty; when set, a retry of a placement that already
// committed returns the original order with no further side effects.
func (s *OrderService) PlaceOrder(ctx context.Context, buyer primitive.ObjectID, buyerUsername, idempotencyKey string) (models.Order, error) {
	log := logger.WithCtx(ctx)

	// Validating: replayed attempt?
	if idempotencyKey != "" {
		if prev, err := s.orders.FindByIdempotencyKey(ctx, buyer, idempotencyKey); err == nil {
			return prev, nil
		} else if !errors.Is(err, models.ErrNotFound) {
			return models.Order{}, err
		}
	}

	lines, err := s.loadLines(ctx, buyer)
	if err != nil {
		metrics.OrdersPlaced.WithLabelValues("rejected").Inc()
		return models.Order{}, err
	}

	// The pre-check keeps the common failure cheap; it cannot replace the
	// conditional decrement below, which is what actually closes the race.
	for _, line := range lines {
		if line.Item.Quantity > line.Product.Quantity {
			metrics.OrdersPlaced.WithLabelValues("rejected").Inc()
			return models.Order{}, &models.InsufficientStockError{ProductName: line.Product.Name}
		}
	}

	// Reserving: conditional decrement per product, all-or-nothing.
	applied := make([]appliedDecrement, 0, len(lines))
	for _, line := range lines {
		ok, err := s.products.DecrementStock(ctx, line.Product.ID, line.Item.Quantity)
		if err != nil {
			return models.Order{}, s.rollback(ctx, applied, buyer, lines, err)
		}
		if !ok {
			// A concurrent placement consumed the stock first.
			metrics.StockConflicts.Inc()
			stockErr := &models.InsufficientStockError{ProductName: line.Product.Name}
			return models.Order{}, s.rollback(ctx, applied, buyer, lines, stockErr)
		}
		applied = append(applied, appliedDecrement{product: line.Product.ID, qty: line.Item.Quantity})
	}

	// Committing: snapshot items with the price at this moment.
	order := models.Order{
		Buyer:          buyer,
		BuyerUsername:  buyerUsername,
		Status:         models.StatusPending,
		IdempotencyKey: idempotencyKey,
		Items:          make([]models.OrderItem, 0, len(lines)),
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			Product:  line.Product.ID,
			Name:     line.Product.Name,
			Price:    line.Product.Price,
			Quantity: line.Item.Quantity,
		})
	}

	if err := s.orders.Create(ctx, &order); err != nil {
		if errors.Is(err, models.ErrConflict) && idempotencyKey != "" {
			// Lost an idempotency race to our own retry: the other attempt
			// committed, so undo this attempt's reservations and return its
			// order.
			if rbErr := s.compensate(ctx, applied); rbErr != nil {
				return models.Order{}, s.fatal(ctx, buyer, lines, applied, rbErr)
			}
			return s.orders.FindByIdempotencyKey(ctx, buyer, idempotencyKey)
		}
		return models.Order{}, s.rollback(ctx, applied, buyer, lines, err)
	}

	// Clearing: delete exactly the consumed lines. Failure past this point
	// never rolls the order back.
	productIDs := make([]primitive.ObjectID, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.Product.ID)
	}
	if err := s.carts.ClearForBuyer(ctx, buyer, productIDs); err != nil {
		metrics.CartReconciliations.WithLabelValues("queued").Inc()
		log.Error("order committed but cart clear failed; queued for reconciliation",
			"order_id", order.ID.Hex(),
			"buyer", buyer.Hex(),
			"products", len(productIDs),
			"error", err,
		)
		if s.reconcile != nil {
			s.reconcile(buyer, productIDs)
		}
	}

	metrics.OrdersPlaced.WithLabelValues("cleared").Inc()
	log.Info("order placed",
		"order_id", order.ID.Hex(),
		"buyer", buyer.Hex(),
		"items", len(order.Items),
		"total", order.Total(),
	)
	return order, nil
}

// ListForBuyer returns the buyer's order history.
func (s *OrderService) ListForBuyer(ctx context.Context, buyer primitive.ObjectID) ([]models.Order, error) {
	return s.orders.ListByBuyer(ctx, buyer)
}

// All returns every order for the admin view.
func (s *OrderService) All(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	return s.orders.All(ctx, page, limit)
}

// UpdateStatus advances an order's status. Unknown values and backwards
// moves fail ErrInvalidTransition; setting the current status is a no-op.
func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("%w: unknown status %q", models.ErrInvalidTransition, status)
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransition(order.Status, status) {
		return fmt.Errorf("%w: cannot move from %s to %s", models.ErrInvalidTransition, order.Status, status)
	}
	if order.Status == status {
		return nil
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

func (s *OrderService) loadLines(ctx context.Context, buyer primitive.ObjectID) ([]models.CartLine, error) {
	items, err := s.carts.ListForBuyer(ctx, buyer)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, models.ErrEmptyCart
	}

	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Product)
	}
	byID, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.Product]
		if !ok {
			// The product vanished between add-to-cart and placement.
			return nil, fmt.Errorf("%w: product no longer exists", models.ErrNotFound)
		}
		lines = append(lines, models.CartLine{Item: item, Product: product})
	}
	return lines, nil
}

// rollback compensates the decrements applied so far and returns cause,
// escalating to fatal when compensation itself fails.
func (s *OrderService) rollback(ctx context.Context, applied []appliedDecrement, buyer primitive.ObjectID, lines []models.CartLine, cause error) error {
	if err := s.compensate(ctx, applied); err != nil {
		return s.fatal(ctx, buyer, lines, applied, err)
	}
	if models.IsInsufficientStock(cause) {
		metrics.OrdersPlaced.WithLabelValues("rejected").Inc()
	} else {
		metrics.OrdersPlaced.WithLabelValues("fatal").Inc()
	}
	return cause
}

func (s *OrderService) compensate(ctx context.Context, applied []appliedDecrement) error {
	for _, a := range applied {
		if err := s.products.IncrementStock(ctx, a.product, a.qty); err != nil {
			return fmt.Errorf("compensate product %s: %w", a.product.Hex(), err)
		}
	}
	return nil
}

// fatal logs everything an operator needs to reconcile by hand: the buyer,
// the attempted line items, and which decrements had been applied.
func (s *OrderService) fatal(ctx context.Context, buyer primitive.ObjectID, lines []models.CartLine, applied []appliedDecrement, err error) error {
	attempted := make([]string, 0, len(lines))
	for _, line := range lines {
		attempted = append(attempted, fmt.Sprintf("%s x%d", line.Product.ID.Hex(), line.Item.Quantity))
	}
	appliedDesc := make([]string, 0, len(applied))
	for _, a := range applied {
		appliedDesc = append(appliedDesc, fmt.Sprintf("%s x%d", a.product.Hex(), a.qty))
	}

	metrics.OrdersPlaced.WithLabelValues("fatal").Inc()
	logger.WithCtx(ctx).Error("order placement fatal: manual reconciliation required",
		"buyer", buyer.Hex(),
		"attempted", attempted,
		"applied_decrements", appliedDesc,
		"error", err,
	)
	return fmt.Errorf("%w: %v", models.ErrFatal, err)
}
