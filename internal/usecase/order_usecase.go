package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bookcourier/internal/domain/model"
	repo "bookcourier/internal/repository"

	"github.com/google/uuid"
)

type OrderUsecase struct {
	orderRepo repo.OrderRepository
	bookRepo  repo.BookRepository
	userRepo  repo.UserRepository
}

func NewOrderUsecase(orderRepo repo.OrderRepository, bookRepo repo.BookRepository, userRepo repo.UserRepository) *OrderUsecase {
	return &OrderUsecase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		userRepo:  userRepo,
	}
}

type CreateOrderInput struct {
	BookID   string
	Quantity int64
}

func (u *OrderUsecase) Create(ctx context.Context, customerEmail string, in CreateOrderInput) (model.Order, error) {
	if customerEmail == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.BookID == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid book id")
	}
	if in.Quantity < 1 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
	}

	b, err := u.bookRepo.FindByID(ctx, in.BookID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "book not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//在庫切れは注文させない
	if b.Quantity < 1 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "out of stock")
	}

	//名前のスナップショット用
	customerName := ""
	if customer, cerr := u.userRepo.FindByEmail(ctx, customerEmail); cerr == nil {
		customerName = customer.Name
	}

	order := model.Order{
		ID:            uuid.NewString(),
		BookID:        b.ID,
		BookName:      b.Name,
		AuthorName:    b.AuthorName,
		AuthorEmail:   b.AuthorEmail,
		CustomerEmail: customerEmail,
		CustomerName:  customerName,
		Price:         b.Price,
		Quantity:      in.Quantity,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusUnpaid,
		OrderDate:     time.Now(),
	}
	if err := u.orderRepo.Create(ctx, order); err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return order, nil
}

// statusだけ更新する。paymentStatusは別経路（payment-success）でしか変わらない。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderID string, rawStatus string) error {
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	status := model.OrderStatus(strings.TrimSpace(rawStatus))
	if !status.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	err := u.orderRepo.UpdateStatus(ctx, orderID, status)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *OrderUsecase) ListByCustomer(ctx context.Context, email string) ([]model.Order, error) {
	if email == "" {
		return []model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	items, err := u.orderRepo.ListByCustomerEmail(ctx, email)
	if err != nil {
		return []model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
