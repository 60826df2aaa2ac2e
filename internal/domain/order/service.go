// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/biloop252/suuqsade-backend/internal/config"
	"github.com/biloop252/suuqsade-backend/internal/domain/cart"
	"github.com/biloop252/suuqsade-backend/internal/domain/checkout"
	"github.com/biloop252/suuqsade-backend/internal/domain/discount"
	"github.com/biloop252/suuqsade-backend/internal/domain/user"
	"github.com/biloop252/suuqsade-backend/internal/pkg/email"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service handles order placement and retrieval
type Service struct {
	db          *gorm.DB
	config      *config.Config
	logger      *logrus.Logger
	cartSvc     *cart.Service
	checkoutSvc *checkout.Service
	discountSvc *discount.Service
	userSvc     *user.Service
	emailSvc    *email.Service
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, logger *logrus.Logger, cartSvc *cart.Service, checkoutSvc *checkout.Service, discountSvc *discount.Service, userSvc *user.Service, emailSvc *email.Service) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		logger:      logger,
		cartSvc:     cartSvc,
		checkoutSvc: checkoutSvc,
		discountSvc: discountSvc,
		userSvc:     userSvc,
		emailSvc:    emailSvc,
	}
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Status string `form:"status"`
}

// OrderListResponse represents a paginated order list
type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
	Total  int64   `json:"total"`
}

// PlaceOrder turns the user's checkout session into an order. The order, its
// items, the payment record and the delivery record are created in one
// transaction; discount-usage tracking and the confirmation email run after
// commit and are best effort.
func (s *Service) PlaceOrder(ctx context.Context, userID uint) (*Order, error) {
	session, err := s.checkoutSvc.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Stage != checkout.StagePayment && session.Stage != checkout.StageConfirmation {
		return nil, fmt.Errorf("checkout has not reached the payment stage")
	}
	if session.Address == nil || !session.Address.IsComplete() {
		return nil, fmt.Errorf("a complete shipping address is required")
	}
	if session.PaymentMethod == "" {
		return nil, fmt.Errorf("a payment method is required")
	}

	pricing, application, err := s.checkoutSvc.QuoteForSession(session)
	if err != nil {
		return nil, err
	}

	o := s.buildOrder(userID, session, pricing)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range pricing.Lines {
			line := &pricing.Lines[i]
			item := OrderItem{
				OrderID:             o.ID,
				ProductID:           line.ProductID,
				ProductVariantID:    line.ProductVariantID,
				VendorID:            line.VendorID,
				ProductName:         line.ProductName,
				SKU:                 line.SKU,
				Quantity:            line.Quantity,
				UnitPrice:           line.UnitPrice,
				DiscountedUnitPrice: line.DiscountedUnitPrice,
				DiscountAmount:      line.DiscountAmount,
				TotalPrice:          line.LineTotal,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		payment := Payment{
			OrderID:  o.ID,
			Method:   session.PaymentMethod,
			Status:   PaymentPending,
			Amount:   pricing.Total,
			Currency: o.Currency,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		del := Delivery{
			OrderID: o.ID,
			City:    session.Address.City,
			Country: session.Address.Country,
			Cost:    pricing.ShippingAmount,
			Status:  StatusPending,
		}
		if err := tx.Create(&del).Error; err != nil {
			return fmt.Errorf("failed to create delivery record: %w", err)
		}

		history := StatusHistory{OrderID: o.ID, Status: StatusPending, Note: "Order placed"}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create status history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterPlacement(ctx, userID, o, pricing, application)

	return s.GetOrder(userID, o.ID)
}

// afterPlacement runs the best-effort side effects: usage tracking, cart
// cleanup, session cleanup and the confirmation email. Failures are logged
// and swallowed so a placed order always reaches the customer.
func (s *Service) afterPlacement(ctx context.Context, userID uint, o *Order, pricing *checkout.Pricing, application *discount.CouponApplication) {
	var couponID *uint
	if application != nil && application.Applied {
		id := application.DiscountID
		couponID = &id
	}
	if applied := pricing.AppliedDiscounts(couponID); len(applied) > 0 {
		if err := s.discountSvc.RecordUsage(userID, o.ID, applied); err != nil {
			s.logger.WithError(err).WithField("order_number", o.OrderNumber).
				Warn("Failed to record discount usage")
		}
	}

	if err := s.cartSvc.ClearCart(userID); err != nil {
		s.logger.WithError(err).WithField("order_number", o.OrderNumber).
			Warn("Failed to clear cart after order placement")
	}

	if err := s.checkoutSvc.Complete(ctx, userID); err != nil {
		s.logger.WithError(err).WithField("order_number", o.OrderNumber).
			Warn("Failed to remove checkout session")
	}

	u, err := s.userSvc.GetProfile(userID)
	if err != nil {
		s.logger.WithError(err).WithField("order_number", o.OrderNumber).
			Warn("Failed to load user for confirmation email")
		return
	}
	confirmation := &email.OrderConfirmation{
		OrderNumber:  o.OrderNumber,
		CustomerName: u.GetFullName(),
		TotalAmount:  o.TotalAmount,
		Currency:     o.Currency,
		PlacedAt:     o.CreatedAt,
	}
	if err := s.emailSvc.SendOrderConfirmation(u.Email, confirmation); err != nil {
		s.logger.WithError(err).WithField("order_number", o.OrderNumber).
			Warn("Failed to send order confirmation email")
	}
}

func (s *Service) buildOrder(userID uint, session *checkout.Session, pricing *checkout.Pricing) *Order {
	o := &Order{
		OrderNumber:             generateOrderNumber(),
		UserID:                  userID,
		Status:                  StatusPending,
		SubtotalAmount:          pricing.Subtotal,
		TaxAmount:               pricing.TaxAmount,
		ShippingAmount:          pricing.ShippingAmount,
		DiscountAmount:          pricing.CouponDiscount,
		ProductDiscountAmount:   pricing.ProductDiscount,
		AutomaticDiscountAmount: pricing.AutomaticDiscount,
		TotalAmount:             pricing.Total,
		Currency:                s.config.Checkout.Currency,
		ShippingAddressLine1:    session.Address.AddressLine1,
		ShippingAddressLine2:    session.Address.AddressLine2,
		ShippingCity:            session.Address.City,
		ShippingState:           session.Address.State,
		ShippingPostalCode:      session.Address.PostalCode,
		ShippingCountry:         session.Address.Country,
	}
	if session.CouponCode != "" && pricing.CouponDiscount > 0 {
		code := session.CouponCode
		o.CouponCode = &code
	}
	return o
}

// GetOrders lists the user's orders, newest first
func (s *Service) GetOrders(userID uint, req *OrderListRequest) (*OrderListResponse, error) {
	var orders []Order
	var total int64

	query := s.db.Model(&Order{}).Where("user_id = ?", userID)
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	if req.Limit <= 0 {
		req.Limit = 20
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	offset := (req.Page - 1) * req.Limit

	if err := query.Preload("Items").Preload("Payment").Preload("Delivery").
		Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	return &OrderListResponse{
		Orders: orders,
		Page:   req.Page,
		Limit:  req.Limit,
		Total:  total,
	}, nil
}

// GetOrder retrieves one of the user's orders with all its records
func (s *Service) GetOrder(userID, orderID uint) (*Order, error) {
	var o Order
	result := s.db.Preload("Items").Preload("Payment").Preload("Delivery").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &o, nil
}

// GetOrderByNumber retrieves one of the user's orders by order number
func (s *Service) GetOrderByNumber(userID uint, orderNumber string) (*Order, error) {
	var o Order
	result := s.db.Preload("Items").Preload("Payment").Preload("Delivery").
		Where("order_number = ? AND user_id = ?", orderNumber, userID).
		First(&o)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &o, nil
}

// CancelOrder cancels a pending order
func (s *Service) CancelOrder(userID, orderID uint) error {
	var o Order
	if err := s.db.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return fmt.Errorf("order not found")
	}
	if o.Status != StatusPending {
		return fmt.Errorf("only pending orders can be cancelled")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&o).Update("status", StatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel order: %w", err)
		}
		history := StatusHistory{OrderID: o.ID, Status: StatusCancelled, Note: "Cancelled by customer"}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record cancellation: %w", err)
		}
		return nil
	})
}

// UpdateStatus transitions an order's status (admin operation)
func (s *Service) UpdateStatus(orderID uint, status, note string) error {
	switch status {
	case StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
	default:
		return fmt.Errorf("invalid order status: %s", status)
	}

	var o Order
	if err := s.db.First(&o, orderID).Error; err != nil {
		return fmt.Errorf("order not found")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&o).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		history := StatusHistory{OrderID: o.ID, Status: status, Note: note}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record status change: %w", err)
		}
		return nil
	})
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%05d", time.Now().UTC().Format("20060102"), rand.Intn(100000))
}
