package service

import (
	"context"
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"qr-dine-be/internal/dto"
	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/model"
	"qr-dine-be/internal/pkg/apperr"
	"qr-dine-be/internal/pkg/logger"
	"qr-dine-be/internal/pkg/mailer"
	"qr-dine-be/internal/pkg/payment"
	"qr-dine-be/internal/repository/specification"
	"qr-dine-be/internal/repository/unitofwork"
	"qr-dine-be/pkg/events"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// EventPublisher is the slice of the NATS publisher the order flow needs.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IOrderService interface {
	CreateOrder(ctx context.Context, userId uuid.UUID, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetOrder(ctx context.Context, userId, orderId uuid.UUID) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, userId uuid.UUID) ([]*dto.OrderResponse, error)
	PayOrder(ctx context.Context, userId, orderId uuid.UUID, req *dto.PayOrderRequest) (*dto.PayOrderResponse, error)
	CancelOrder(ctx context.Context, userId, orderId uuid.UUID) error
	RefundOrder(ctx context.Context, merchantId, orderId uuid.UUID) error
	MerchantQueue(ctx context.Context, merchantId uuid.UUID, status string) ([]*dto.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, merchantId, orderId uuid.UUID, status string) (*dto.OrderResponse, error)
	HandleGatewayNotification(ctx context.Context, req *dto.GatewayWebhookRequest) error
}

type orderService struct {
	uowFactory     unitofwork.RepositoryFactory
	rewardService  IRewardService
	gateway        payment.Gateway
	eventPublisher EventPublisher
	emailService   mailer.IEmailService
	cache          *gocache.Cache
	logger         logger.ILogger
	serverKey      string
}

func NewOrderService(
	uowFactory unitofwork.RepositoryFactory,
	rewardService IRewardService,
	gateway payment.Gateway,
	eventPublisher EventPublisher,
	emailService mailer.IEmailService,
	cache *gocache.Cache,
	log logger.ILogger,
	serverKey string,
) IOrderService {
	return &orderService{
		uowFactory:     uowFactory,
		rewardService:  rewardService,
		gateway:        gateway,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		cache:          cache,
		logger:         log,
		serverKey:      serverKey,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userId uuid.UUID, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	merchant, err := uow.MerchantRepository().FindOne(ctx,
		specification.ByID{ID: req.MerchantId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if merchant == nil {
		return nil, apperr.NotFound("merchant")
	}

	productIds := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		productIds = append(productIds, item.ProductId)
	}

	products, err := uow.ProductRepository().FindAll(ctx,
		specification.ByIDs{IDs: productIds},
		specification.MerchantOwnedBy{MerchantID: req.MerchantId},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	productById := make(map[uuid.UUID]*entity.Product, len(products))
	for _, p := range products {
		productById[p.Id] = p
	}

	orderId := uuid.New()
	var total float64
	items := make([]entity.OrderItem, 0, len(req.Items))

	for _, item := range req.Items {
		product, ok := productById[item.ProductId]
		if !ok {
			return nil, apperr.NotFound("product")
		}
		if !product.IsAvailable {
			return nil, apperr.Validation(fmt.Sprintf("product %q is not available", product.Name), nil)
		}

		total += product.Price * float64(item.Quantity)
		items = append(items, entity.OrderItem{
			Id:        uuid.New(),
			OrderId:   orderId,
			ProductId: product.Id,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Product:   product,
		})
	}

	order := &entity.Order{
		Id:          orderId,
		UserId:      userId,
		MerchantId:  req.MerchantId,
		TableNumber: req.TableNumber,
		Status:      entity.OrderStatusPending,
		TotalAmount: total,
		FinalAmount: total,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Items:       items,
	}

	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return nil, apperr.Internal(err)
	}

	s.publish(ctx, events.TypeOrderCreated, map[string]interface{}{
		"order_id":     order.Id,
		"merchant_id":  order.MerchantId,
		"table_number": order.TableNumber,
		"total_amount": order.TotalAmount,
	})

	s.logger.Info("OrderService", "Order created", map[string]interface{}{
		"order_id": order.Id,
		"user_id":  userId,
		"total":    total,
	})

	return orderToResponse(order), nil
}

func (s *orderService) GetOrder(ctx context.Context, userId, orderId uuid.UUID) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOneWithItems(ctx,
		specification.ByID{ID: orderId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if order == nil {
		return nil, apperr.NotFound("order")
	}

	return orderToResponse(order), nil
}

func (s *orderService) ListOrders(ctx context.Context, userId uuid.UUID) ([]*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	orders, err := uow.OrderRepository().FindAllWithItems(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	res := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, orderToResponse(o))
	}
	return res, nil
}

// PayOrder drives the settlement flow: optionally apply a token redemption,
// charge the remainder through the gateway, and on success transition to
// paid and award reward tokens on the pre-discount total. A definitive
// decline compensates any redemption applied for this attempt and marks the
// order failed, so no tokens are ever stranded on a failed payment. A
// gateway error with an unknown outcome (timeouts included) leaves the order
// pending for the webhook to resolve.
func (s *orderService) PayOrder(ctx context.Context, userId, orderId uuid.UUID, req *dto.PayOrderRequest) (*dto.PayOrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, apperr.Internal(err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOneForUpdate(ctx, userId)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}

	order, err := uow.OrderRepository().FindOneWithItems(ctx,
		specification.ByID{ID: orderId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if order == nil {
		return nil, apperr.NotFound("order")
	}
	if order.Status != entity.OrderStatusPending {
		return nil, apperr.StateConflict("order is not awaiting payment")
	}

	if req.RedeemTokens != nil {
		if _, err := applyRedemption(ctx, uow, userId, orderId, req.RedeemTokens.TokenTypeId, req.RedeemTokens.Amount); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, apperr.Internal(err)
	}

	if req.RedeemTokens != nil {
		s.invalidateUserBalances(userId)
		// Re-read so the charge amount and the fully-covered check use the
		// totals the redemption persisted.
		order, err = s.uowFactory.NewUnitOfWork(ctx).OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if order == nil {
			return nil, apperr.NotFound("order")
		}
	}

	// Fully covered by tokens: settle without touching the gateway.
	if order.FinalAmount <= 0 {
		earned, err := s.settleOrder(ctx, orderId, "")
		if err != nil {
			return nil, err
		}
		return s.payResponse(ctx, userId, orderId, "", earned)
	}

	result, chargeErr := s.gateway.Charge(ctx, &payment.ChargeRequest{
		OrderId:       order.Id.String(),
		GrossAmount:   int64(math.Round(order.FinalAmount * 100)),
		PaymentType:   req.PaymentType,
		CustomerName:  user.Name,
		CustomerPhone: user.PhoneNumber,
		ItemName:      fmt.Sprintf("Order %s", shortId(order.Id)),
	})
	if chargeErr != nil {
		// The charge outcome is unknown: the provider may still have taken
		// the money. The order stays pending and any redemption stays
		// applied until the webhook delivers a definitive status.
		s.logger.Warn("OrderService", "Gateway charge error, awaiting webhook", map[string]interface{}{
			"order_id": orderId, "error": chargeErr.Error(),
		})
		return nil, apperr.Gateway("payment charge failed", chargeErr)
	}

	switch result.Status {
	case payment.ChargeStatusSuccess:
		earned, err := s.settleOrder(ctx, orderId, result.PaymentRef)
		if err != nil {
			return nil, err
		}
		return s.payResponse(ctx, userId, orderId, result.PaymentRef, earned)

	case payment.ChargeStatusPending:
		if err := s.attachPaymentRef(ctx, orderId, result.PaymentRef); err != nil {
			return nil, err
		}
		return s.payResponse(ctx, userId, orderId, result.PaymentRef, 0)

	default: // declined
		if err := s.failOrder(ctx, orderId, entity.OrderStatusFailed); err != nil {
			return nil, err
		}
		return nil, apperr.Gateway(fmt.Sprintf("payment declined: %s", result.FailureReason), nil)
	}
}

func (s *orderService) payResponse(ctx context.Context, userId, orderId uuid.UUID, paymentRef string, earned int) (*dto.PayOrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOneWithItems(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if order == nil {
		return nil, apperr.NotFound("order")
	}

	return &dto.PayOrderResponse{
		Order:        *orderToResponse(order),
		PaymentRef:   paymentRef,
		TokensEarned: earned,
	}, nil
}

// settleOrder transitions a pending order to paid and credits reward tokens.
// Idempotent: an already-paid order returns without changes, so a webhook
// confirmation racing the synchronous path cannot double-award.
func (s *orderService) settleOrder(ctx context.Context, orderId uuid.UUID, paymentRef string) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return 0, apperr.Internal(err)
	}
	defer uow.Rollback()

	order, err := uow.OrderRepository().FindOneWithItems(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return 0, apperr.Internal(err)
	}
	if order == nil {
		return 0, apperr.NotFound("order")
	}

	user, err := uow.UserRepository().FindOneForUpdate(ctx, order.UserId)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	if user == nil {
		return 0, apperr.NotFound("user")
	}

	// Re-read under the user lock: a racing settlement commits while this
	// one waits on the lock, and its status change must be visible to the
	// idempotency check.
	order, err = uow.OrderRepository().FindOneWithItems(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return 0, apperr.Internal(err)
	}
	if order == nil {
		return 0, apperr.NotFound("order")
	}
	if order.Status == entity.OrderStatusPaid {
		return 0, nil
	}
	if !entity.CanTransition(order.Status, entity.OrderStatusPaid) {
		return 0, apperr.StateConflict(fmt.Sprintf("order cannot settle from status %s", order.Status))
	}

	order.Status = entity.OrderStatusPaid
	if paymentRef != "" {
		order.PaymentIntentId = &paymentRef
	}
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return 0, apperr.Internal(err)
	}

	earned, err := s.rewardService.AwardOrderTokens(ctx, uow, user, order)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, apperr.Internal(err)
	}

	s.invalidateUserBalances(order.UserId)
	s.afterSettle(ctx, user, order, earned)

	return earned, nil
}

// afterSettle runs the best-effort side effects of a successful settlement.
func (s *orderService) afterSettle(ctx context.Context, user *entity.User, order *entity.Order, earned int) {
	s.publish(ctx, events.TypeOrderPaid, map[string]interface{}{
		"order_id":      order.Id,
		"merchant_id":   order.MerchantId,
		"table_number":  order.TableNumber,
		"final_amount":  order.FinalAmount,
		"tokens_earned": earned,
	})

	s.logger.Info("OrderService", "Order settled", map[string]interface{}{
		"order_id": order.Id,
		"earned":   earned,
	})

	if s.emailService == nil || user.Email == "" {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	merchant, err := uow.MerchantRepository().FindOne(ctx, specification.ByID{ID: order.MerchantId})
	if err != nil || merchant == nil {
		return
	}

	receipt := &mailer.ReceiptData{
		OrderNumber:   shortId(order.Id),
		MerchantName:  merchant.Name,
		TableNumber:   order.TableNumber,
		Subtotal:      order.TotalAmount,
		TokenDiscount: order.DiscountAmount,
		Total:         order.FinalAmount,
		TokensEarned:  int64(earned),
	}
	for _, item := range order.Items {
		name := "Item"
		if item.Product != nil {
			name = item.Product.Name
		}
		receipt.Items = append(receipt.Items, mailer.ReceiptItem{
			Name:     name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	go func() {
		if err := s.emailService.SendOrderReceipt(user.Email, receipt); err != nil {
			s.logger.Warn("OrderService", "Receipt delivery failed", map[string]interface{}{
				"order_id": order.Id, "error": err.Error(),
			})
		}
	}()
}

// attachPaymentRef records the gateway reference on an order that stayed
// pending; the webhook resolves it later.
func (s *orderService) attachPaymentRef(ctx context.Context, orderId uuid.UUID, paymentRef string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return apperr.Internal(err)
	}
	if order == nil {
		return apperr.NotFound("order")
	}

	order.PaymentIntentId = &paymentRef
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// failOrder moves a pending order to the terminal status and compensates
// every redemption still applied to it in the same transaction: offsetting
// refund rows in the ledger, redemption rows flipped to refunded.
// Idempotent: an order already in the terminal status is left alone.
func (s *orderService) failOrder(ctx context.Context, orderId uuid.UUID, terminal entity.OrderStatus) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return apperr.Internal(err)
	}
	defer uow.Rollback()

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return apperr.Internal(err)
	}
	if order == nil {
		return apperr.NotFound("order")
	}

	user, err := uow.UserRepository().FindOneForUpdate(ctx, order.UserId)
	if err != nil {
		return apperr.Internal(err)
	}
	if user == nil {
		return apperr.NotFound("user")
	}

	// Status checks run on a fresh read taken under the user lock, same as
	// settleOrder.
	order, err = uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return apperr.Internal(err)
	}
	if order == nil {
		return apperr.NotFound("order")
	}
	if order.Status == terminal {
		return nil
	}
	if !entity.CanTransition(order.Status, terminal) {
		return apperr.StateConflict(fmt.Sprintf("order cannot move from %s to %s", order.Status, terminal))
	}

	if err := s.compensateOrderRedemptions(ctx, uow, user, order); err != nil {
		return err
	}

	order.Status = terminal
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return apperr.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		return apperr.Internal(err)
	}

	s.invalidateUserBalances(order.UserId)
	s.publish(ctx, events.TypeOrderFailed, map[string]interface{}{
		"order_id":    order.Id,
		"merchant_id": order.MerchantId,
		"status":      string(terminal),
	})

	return nil
}

func (s *orderService) compensateOrderRedemptions(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, order *entity.Order) error {
	redemptions, err := uow.TokenRedemptionRepository().FindAll(ctx,
		specification.Filter("order_id", order.Id),
		specification.ByStatus{Status: string(entity.RedemptionStatusApplied)},
	)
	if err != nil {
		return apperr.Internal(err)
	}

	for _, redemption := range redemptions {
		if err := compensateRedemption(ctx, uow, user, redemption, order); err != nil {
			return err
		}
	}
	return nil
}

func (s *orderService) CancelOrder(ctx context.Context, userId, orderId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx,
		specification.ByID{ID: orderId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return apperr.Internal(err)
	}
	if order == nil {
		return apperr.NotFound("order")
	}

	return s.failOrder(ctx, orderId, entity.OrderStatusCancelled)
}

// RefundOrder reverses a settled order: redemptions flow back to the
// customer, the order closes as refunded. Earned reward tokens are not
// clawed back.
func (s *orderService) RefundOrder(ctx context.Context, merchantId, orderId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return apperr.Internal(err)
	}
	defer uow.Rollback()

	order, err := uow.OrderRepository().FindOne(ctx,
		specification.ByID{ID: orderId},
		specification.MerchantOwnedBy{MerchantID: merchantId},
	)
	if err != nil {
		return apperr.Internal(err)
	}
	if order == nil {
		return apperr.NotFound("order")
	}
	if order.Status == entity.OrderStatusRefunded {
		return nil
	}
	if !entity.CanTransition(order.Status, entity.OrderStatusRefunded) {
		return apperr.StateConflict(fmt.Sprintf("order cannot be refunded from status %s", order.Status))
	}

	user, err := uow.UserRepository().FindOneForUpdate(ctx, order.UserId)
	if err != nil {
		return apperr.Internal(err)
	}
	if user == nil {
		return apperr.NotFound("user")
	}

	redemptions, err := uow.TokenRedemptionRepository().FindAll(ctx,
		specification.Filter("order_id", order.Id),
		specification.ByStatus{Status: string(entity.RedemptionStatusApplied)},
	)
	if err != nil {
		return apperr.Internal(err)
	}
	for _, redemption := range redemptions {
		// The order total stays historical on a refund; only the tokens
		// travel back.
		if err := compensateRedemption(ctx, uow, user, redemption, nil); err != nil {
			return err
		}
	}

	order.Status = entity.OrderStatusRefunded
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return apperr.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		return apperr.Internal(err)
	}

	s.invalidateUserBalances(order.UserId)
	s.publish(ctx, events.TypeOrderStatus, map[string]interface{}{
		"order_id":    order.Id,
		"merchant_id": order.MerchantId,
		"status":      string(entity.OrderStatusRefunded),
	})

	s.logger.Info("OrderService", "Order refunded", map[string]interface{}{"order_id": order.Id})
	return nil
}

func (s *orderService) MerchantQueue(ctx context.Context, merchantId uuid.UUID, status string) ([]*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.MerchantOwnedBy{MerchantID: merchantId},
		specification.OrderBy{Field: "created_at"},
	}
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}

	orders, err := uow.OrderRepository().FindAllWithItems(ctx, specs...)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	res := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, orderToResponse(o))
	}
	return res, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, merchantId, orderId uuid.UUID, status string) (*dto.OrderResponse, error) {
	target := entity.OrderStatus(status)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx,
		specification.ByID{ID: orderId},
		specification.MerchantOwnedBy{MerchantID: merchantId},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if order == nil {
		return nil, apperr.NotFound("order")
	}

	if target == entity.OrderStatusCancelled {
		// Cancelling releases any tokens spent on the order.
		if err := s.failOrder(ctx, orderId, entity.OrderStatusCancelled); err != nil {
			return nil, err
		}
	} else {
		if !entity.CanTransition(order.Status, target) {
			return nil, apperr.StateConflict(fmt.Sprintf("order cannot move from %s to %s", order.Status, target))
		}
		order.Status = target
		if err := uow.OrderRepository().Update(ctx, order); err != nil {
			return nil, apperr.Internal(err)
		}
	}

	s.publish(ctx, events.TypeOrderStatus, map[string]interface{}{
		"order_id":    orderId,
		"merchant_id": merchantId,
		"status":      status,
	})

	updated, err := uow.OrderRepository().FindOneWithItems(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return orderToResponse(updated), nil
}

// HandleGatewayNotification resolves asynchronous charge outcomes. The raw
// payload is persisted before any processing, then the signature is checked:
// SHA512(order_id + status_code + gross_amount + server_key).
func (s *orderService) HandleGatewayNotification(ctx context.Context, req *dto.GatewayWebhookRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	payload, _ := json.Marshal(req)
	var eventOrderId *uuid.UUID
	if parsed, err := uuid.Parse(req.OrderId); err == nil {
		eventOrderId = &parsed
	}
	event := &model.PaymentEvent{
		Id:        uuid.New(),
		Provider:  "midtrans",
		EventType: req.TransactionStatus,
		OrderId:   eventOrderId,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	if err := uow.PaymentEventRepository().Create(ctx, event); err != nil {
		s.logger.Error("OrderService", "Failed to persist payment event", map[string]interface{}{"error": err.Error()})
	}

	if s.serverKey == "" {
		return apperr.Internal(fmt.Errorf("payment server key not configured"))
	}

	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + s.serverKey
	expected := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if !strings.EqualFold(req.SignatureKey, expected) {
		s.logger.Warn("OrderService", "Webhook signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return apperr.Validation("invalid signature", nil)
	}

	if eventOrderId == nil {
		return apperr.Validation("invalid order id format", nil)
	}
	orderId := *eventOrderId

	switch req.TransactionStatus {
	case "capture", "settlement":
		if _, err := s.settleOrder(ctx, orderId, req.TransactionId); err != nil {
			return err
		}
	case "deny", "cancel", "expire":
		if err := s.failOrder(ctx, orderId, entity.OrderStatusFailed); err != nil {
			return err
		}
	default:
		// pending and unknown statuses need no action
	}

	if err := uow.PaymentEventRepository().MarkProcessed(ctx, event.Id); err != nil {
		s.logger.Warn("OrderService", "Failed to mark payment event processed", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (s *orderService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("OrderService", "Event publish failed", map[string]interface{}{
			"event": eventType, "error": err.Error(),
		})
	}
}

// invalidateUserBalances drops every cached balance for the user. Awards can
// touch several token types in one settlement, so per-type deletes would be
// fiddly for no gain at this cache size.
func (s *orderService) invalidateUserBalances(userId uuid.UUID) {
	if s.cache == nil {
		return
	}
	prefix := fmt.Sprintf("balance:%s:", userId)
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			s.cache.Delete(key)
		}
	}
}

func orderToResponse(o *entity.Order) *dto.OrderResponse {
	res := &dto.OrderResponse{
		Id:             o.Id,
		MerchantId:     o.MerchantId,
		TableNumber:    o.TableNumber,
		Status:         string(o.Status),
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		FinalAmount:    o.FinalAmount,
		Items:          make([]dto.OrderItemResponse, 0, len(o.Items)),
		CreatedAt:      o.CreatedAt,
	}
	for _, item := range o.Items {
		ir := dto.OrderItemResponse{
			Id:        item.Id,
			ProductId: item.ProductId,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		if item.Product != nil {
			ir.ProductName = item.Product.Name
		}
		res.Items = append(res.Items, ir)
	}
	return res
}

func shortId(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}
