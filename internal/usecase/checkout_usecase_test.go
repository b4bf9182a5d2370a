package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"bookcourier/internal/domain/model"
	"bookcourier/internal/gateway"
	repo "bookcourier/internal/repository"
	"bookcourier/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const clientOrigin = "http://localhost:3000"

func newCheckoutUsecase(gw *CheckoutGatewayMock, orders *OrderRepoMock, payments *PaymentRepoMock) (*usecase.CheckoutUsecase, *TxManagerMock) {
	tx := &TxManagerMock{Repos: &TxReposMock{orders: orders, payments: payments}}
	tx.On("WithinTx", mock.Anything).Return(nil).Maybe()
	return usecase.NewCheckoutUsecase(gw, tx, orders, payments, clientOrigin), tx
}

func paidSession(orderID string) gateway.Session {
	return gateway.Session{
		ID:            "cs_test_1",
		PaymentStatus: "paid",
		TransactionID: "pi_001",
		AmountTotal:   500,
		CustomerEmail: "a@x.com",
		OrderID:       orderID,
	}
}

func pendingOrder(id string) model.Order {
	return model.Order{
		ID:            id,
		BookID:        "B1",
		BookName:      "Go入門",
		AuthorName:    "author",
		AuthorEmail:   "author@x.com",
		CustomerEmail: "a@x.com",
		CustomerName:  "a",
		Price:         5,
		Quantity:      3,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusUnpaid,
		OrderDate:     time.Now(),
	}
}

// 新規の支払い済みセッション：Payment一件作成＋注文をpaidにして一回だけ減算
func TestFinalizePayment_NewPaidSession(t *testing.T) {
	gw := &CheckoutGatewayMock{}
	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	uc, _ := newCheckoutUsecase(gw, orders, payments)

	gw.On("RetrieveSession", mock.Anything, "cs_test_1").Return(paidSession("O1"), nil)
	orders.On("FindByID", mock.Anything, "O1").Return(pendingOrder("O1"), nil)
	payments.On("FindByTransactionID", mock.Anything, "pi_001").Return(model.Payment{}, false, nil)
	payments.On("Create", mock.Anything, mock.MatchedBy(func(p model.Payment) bool {
		//amountTotal 500 → 5.00（最小通貨単位の換算）
		return p.TransactionID == "pi_001" &&
			p.OrderID == "O1" &&
			p.Price == 5.00 &&
			p.CustomerEmail == "a@x.com" &&
			p.AuthorEmail == "author@x.com"
	})).Return(nil)
	orders.On("MarkPaid", mock.Anything, "O1").Return(true, nil)

	out, err := uc.FinalizePayment(context.Background(), "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, "pi_001", out.TransactionID)
	assert.Equal(t, "O1", out.OrderID)

	payments.AssertNumberOfCalls(t, "Create", 1)
	orders.AssertNumberOfCalls(t, "MarkPaid", 1)
}

// 再実行（成功ページのリロード等）：既存を返すだけで書き込みゼロ
func TestFinalizePayment_ReplayIsNoop(t *testing.T) {
	gw := &CheckoutGatewayMock{}
	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	uc, _ := newCheckoutUsecase(gw, orders, payments)

	gw.On("RetrieveSession", mock.Anything, "cs_test_1").Return(paidSession("O1"), nil)
	orders.On("FindByID", mock.Anything, "O1").Return(pendingOrder("O1"), nil)
	payments.On("FindByTransactionID", mock.Anything, "pi_001").
		Return(model.Payment{TransactionID: "pi_001", OrderID: "O1"}, true, nil)

	out, err := uc.FinalizePayment(context.Background(), "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, "pi_001", out.TransactionID)
	assert.Equal(t, "O1", out.OrderID)

	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
}

// 同時二重実行：一意制約の衝突を拾って既存を返す（減算も一回だけ）
func TestFinalizePayment_ConcurrentDuplicate(t *testing.T) {
	gw := &CheckoutGatewayMock{}
	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	uc, _ := newCheckoutUsecase(gw, orders, payments)

	gw.On("RetrieveSession", mock.Anything, "cs_test_1").Return(paidSession("O1"), nil)
	orders.On("FindByID", mock.Anything, "O1").Return(pendingOrder("O1"), nil)
	//存在チェックの時点ではまだ無い（レース）
	payments.On("FindByTransactionID", mock.Anything, "pi_001").
		Return(model.Payment{}, false, nil).Once()
	//insertで衝突
	payments.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicateTransaction)
	//引き直したら相手の分が入っている
	payments.On("FindByTransactionID", mock.Anything, "pi_001").
		Return(model.Payment{TransactionID: "pi_001", OrderID: "O1"}, true, nil)

	out, err := uc.FinalizePayment(context.Background(), "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, "pi_001", out.TransactionID)
	assert.Equal(t, "O1", out.OrderID)

	orders.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
}

// 未決済セッション：明示的に失敗して書き込みゼロ
func TestFinalizePayment_SessionNotPaid(t *testing.T) {
	gw := &CheckoutGatewayMock{}
	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	uc, _ := newCheckoutUsecase(gw, orders, payments)

	sess := paidSession("O1")
	sess.PaymentStatus = "unpaid"
	gw.On("RetrieveSession", mock.Anything, "cs_test_1").Return(sess, nil)
	orders.On("FindByID", mock.Anything, "O1").Return(pendingOrder("O1"), nil)
	payments.On("FindByTransactionID", mock.Anything, "pi_001").Return(model.Payment{}, false, nil)

	_, err := uc.FinalizePayment(context.Background(), "cs_test_1")
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusPaymentRequired, he.Status)

	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
}

func TestFinalizePayment_SessionNotFound(t *testing.T) {
	gw := &CheckoutGatewayMock{}
	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	uc, _ := newCheckoutUsecase(gw, orders, payments)

	gw.On("RetrieveSession", mock.Anything, "cs_missing").
		Return(gateway.Session{}, gateway.ErrSessionNotFound)

	_, err := uc.FinalizePayment(context.Background(), "cs_missing")
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestFinalizePayment_OrderNotFound(t *testing.T) {
	gw := &CheckoutGatewayMock{}
	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	uc, _ := newCheckoutUsecase(gw, orders, payments)

	gw.On("RetrieveSession", mock.Anything, "cs_test_1").Return(paidSession("O_gone"), nil)
	orders.On("FindByID", mock.Anything, "O_gone").Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.FinalizePayment(context.Background(), "cs_test_1")
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFinalizePayment_GatewayError(t *testing.T) {
	gw := &CheckoutGatewayMock{}
	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	uc, _ := newCheckoutUsecase(gw, orders, payments)

	gw.On("RetrieveSession", mock.Anything, "cs_test_1").
		Return(gateway.Session{}, errors.New("connection reset"))

	_, err := uc.FinalizePayment(context.Background(), "cs_test_1")
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, he.Status)
}

// セッション作成：価格は主要通貨単位で渡し、orderIdをメタデータで運ぶ
func TestCreateSession_BuildsRedirectURLs(t *testing.T) {
	gw := &CheckoutGatewayMock{}
	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	uc, _ := newCheckoutUsecase(gw, orders, payments)

	orders.On("FindByID", mock.Anything, "O1").Return(pendingOrder("O1"), nil)
	gw.On("CreateSession", mock.Anything, mock.MatchedBy(func(in gateway.CreateSessionInput) bool {
		return in.OrderID == "O1" &&
			in.UnitPrice == 5.0 &&
			in.SuccessURL == clientOrigin+"/payment-success?session_id={CHECKOUT_SESSION_ID}" &&
			in.CancelURL == clientOrigin+"/payment-cancelled"
	})).Return("https://checkout.example/s/cs_test_1", nil)

	out, err := uc.CreateSession(context.Background(), "O1")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/s/cs_test_1", out.URL)
}

func TestCreateSession_AlreadyPaid(t *testing.T) {
	gw := &CheckoutGatewayMock{}
	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	uc, _ := newCheckoutUsecase(gw, orders, payments)

	o := pendingOrder("O1")
	o.PaymentStatus = model.PaymentStatusPaid
	orders.On("FindByID", mock.Anything, "O1").Return(o, nil)

	_, err := uc.CreateSession(context.Background(), "O1")
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	gw.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestCreateSession_GatewayError(t *testing.T) {
	gw := &CheckoutGatewayMock{}
	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	uc, _ := newCheckoutUsecase(gw, orders, payments)

	orders.On("FindByID", mock.Anything, "O1").Return(pendingOrder("O1"), nil)
	gw.On("CreateSession", mock.Anything, mock.Anything).Return("", errors.New("api key invalid"))

	_, err := uc.CreateSession(context.Background(), "O1")
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, he.Status)
}
