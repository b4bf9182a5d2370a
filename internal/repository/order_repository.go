package repository

import (
	"context"

	"bookcourier/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	//order_date降順で顧客の注文一覧
	ListByCustomerEmail(ctx context.Context, email string) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) error
	//statusだけ更新（paymentStatusは触らない）
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error

	//unpaidのときだけ paid にして数量を1減らす（条件付きUPDATE）
	MarkPaid(ctx context.Context, orderID string) (bool, error)
}
