package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"bookcourier/internal/domain/model"
	repo "bookcourier/internal/repository"
	"bookcourier/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func stockedBook() model.Book {
	return model.Book{
		ID:          "B1",
		Name:        "Go入門",
		AuthorName:  "author",
		AuthorEmail: "author@x.com",
		Price:       5,
		Quantity:    3,
		Status:      model.BookStatusPublished,
	}
}

// 新規注文はpending/unpaidで始まる
func TestCreateOrder_StartsPendingUnpaid(t *testing.T) {
	orders := &OrderRepoMock{}
	books := &BookRepoMock{}
	users := &UserRepoMock{}
	uc := usecase.NewOrderUsecase(orders, books, users)

	books.On("FindByID", mock.Anything, "B1").Return(stockedBook(), nil)
	users.On("FindByEmail", mock.Anything, "a@x.com").Return(model.User{Name: "a"}, nil)
	orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.Status == model.OrderStatusPending &&
			o.PaymentStatus == model.PaymentStatusUnpaid &&
			o.BookID == "B1" &&
			o.CustomerEmail == "a@x.com" &&
			o.Quantity == 1 &&
			o.ID != ""
	})).Return(nil)

	out, err := uc.Create(context.Background(), "a@x.com", usecase.CreateOrderInput{BookID: "B1", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, out.Status)
	assert.Equal(t, model.PaymentStatusUnpaid, out.PaymentStatus)
	//本のスナップショット
	assert.Equal(t, "Go入門", out.BookName)
	assert.Equal(t, "author@x.com", out.AuthorEmail)
	assert.EqualValues(t, 5, out.Price)
}

func TestCreateOrder_BookNotFound(t *testing.T) {
	orders := &OrderRepoMock{}
	books := &BookRepoMock{}
	users := &UserRepoMock{}
	uc := usecase.NewOrderUsecase(orders, books, users)

	books.On("FindByID", mock.Anything, "missing").Return(model.Book{}, repo.ErrNotFound)

	_, err := uc.Create(context.Background(), "a@x.com", usecase.CreateOrderInput{BookID: "missing", Quantity: 1})
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

// 在庫ゼロは注文不可
func TestCreateOrder_OutOfStock(t *testing.T) {
	orders := &OrderRepoMock{}
	books := &BookRepoMock{}
	users := &UserRepoMock{}
	uc := usecase.NewOrderUsecase(orders, books, users)

	b := stockedBook()
	b.Quantity = 0
	books.On("FindByID", mock.Anything, "B1").Return(b, nil)

	_, err := uc.Create(context.Background(), "a@x.com", usecase.CreateOrderInput{BookID: "B1", Quantity: 1})
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_OK(t *testing.T) {
	orders := &OrderRepoMock{}
	books := &BookRepoMock{}
	users := &UserRepoMock{}
	uc := usecase.NewOrderUsecase(orders, books, users)

	orders.On("UpdateStatus", mock.Anything, "O1", model.OrderStatusConfirmed).Return(nil)

	err := uc.UpdateStatus(context.Background(), "O1", "confirmed")
	require.NoError(t, err)
	orders.AssertExpectations(t)
}

// 閉じたenum以外は弾く（自由文字列は受けない）
func TestUpdateOrderStatus_RejectsUnknown(t *testing.T) {
	orders := &OrderRepoMock{}
	books := &BookRepoMock{}
	users := &UserRepoMock{}
	uc := usecase.NewOrderUsecase(orders, books, users)

	err := uc.UpdateStatus(context.Background(), "O1", "shipped-to-mars")
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	orders := &OrderRepoMock{}
	books := &BookRepoMock{}
	users := &UserRepoMock{}
	uc := usecase.NewOrderUsecase(orders, books, users)

	orders.On("UpdateStatus", mock.Anything, "missing", model.OrderStatusCancelled).Return(repo.ErrNotFound)

	err := uc.UpdateStatus(context.Background(), "missing", "cancelled")
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestListOrdersByCustomer(t *testing.T) {
	orders := &OrderRepoMock{}
	books := &BookRepoMock{}
	users := &UserRepoMock{}
	uc := usecase.NewOrderUsecase(orders, books, users)

	orders.On("ListByCustomerEmail", mock.Anything, "a@x.com").
		Return([]model.Order{{ID: "O1"}, {ID: "O2"}}, nil)

	out, err := uc.ListByCustomer(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
