package services

import (
	"context"
	"errors"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/logx"
)

// Client-facing order messages.
const (
	MsgOrderMissingDetails = "Missing essential order details."
	MsgOrderNotFound       = "Order not found."
	MsgOrderInsertErr      = "Order Insert Failed"
	MsgOrderFetchErr       = "Order Fetch Failed"
	MsgOrderUpdateErr      = "Order Update Failed"
	MsgOrderDeleteErr      = "Order Delete Failed"
)

// OrderEventPublisher publishes order lifecycle events.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event models.OrderEvent) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher OrderEventPublisher
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		now:       time.Now,
	}
}

// GetAllOrders returns every order, newest first.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Internal(MsgOrderFetchErr, err)
	}
	return orders, nil
}

// CreateOrder records a checkout. Product id, customer name, address and a
// non-zero price are required; the referenced product is not looked up.
func (s *OrderService) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ProductID == 0 || blank(order.UserName) || blank(order.Address) || order.Price.IsZero() {
		return apperr.Invalid(MsgOrderMissingDetails)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return apperr.Internal(MsgOrderInsertErr, err)
	}

	s.publish(ctx, models.OrderCreated, order.ID, order)
	return nil
}

// UpdateOrder overwrites the customer fields of an order.
func (s *OrderService) UpdateOrder(ctx context.Context, id uint, contact models.OrderContact) error {
	if err := s.orderRepo.UpdateContact(ctx, id, contact); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.NotFound(MsgOrderNotFound)
		}
		return apperr.Internal(MsgOrderUpdateErr, err)
	}

	s.publish(ctx, models.OrderUpdated, id, nil)
	return nil
}

// DeleteOrder deletes an order by its ID.
func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.NotFound(MsgOrderNotFound)
		}
		return apperr.Internal(MsgOrderDeleteErr, err)
	}

	s.publish(ctx, models.OrderDeleted, id, nil)
	return nil
}

// publish never fails the request; the write has already happened.
func (s *OrderService) publish(ctx context.Context, eventType string, id uint, order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := models.OrderEvent{
		Type:       eventType,
		OrderID:    id,
		OccurredAt: s.now().UTC(),
		Order:      order,
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		logx.Warn().Err(err).Str("type", eventType).Uint("order_id", id).Msg("failed to publish order event")
		return
	}
	logx.Debug().Str("type", eventType).Uint("order_id", id).Msg("published order event")
}

func blank(s *string) bool {
	return s == nil || *s == ""
}
