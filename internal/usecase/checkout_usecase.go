package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bookcourier/internal/domain/model"
	"bookcourier/internal/gateway"
	repo "bookcourier/internal/repository"

	"github.com/google/uuid"
)

type CheckoutUsecase struct {
	gw           gateway.CheckoutGateway
	tx           repo.TransactionManager
	orderRepo    repo.OrderRepository
	paymentRepo  repo.PaymentRepository
	clientOrigin string
}

func NewCheckoutUsecase(
	gw gateway.CheckoutGateway,
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	paymentRepo repo.PaymentRepository,
	clientOrigin string,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		gw:           gw,
		tx:           tx,
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		clientOrigin: clientOrigin,
	}
}

type CheckoutSessionOutput struct {
	URL string `json:"url"`
}

// ホスト型決済セッションを作ってリダイレクト先を返す。
func (u *CheckoutUsecase) CreateSession(ctx context.Context, orderID string) (CheckoutSessionOutput, error) {
	if orderID == "" {
		return CheckoutSessionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return CheckoutSessionOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CheckoutSessionOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//支払い済みはもう一度払わせない
	if o.PaymentStatus == model.PaymentStatusPaid {
		return CheckoutSessionOutput{}, NewHTTPError(http.StatusBadRequest, "already paid")
	}

	origin := strings.TrimRight(u.clientOrigin, "/")
	url, err := u.gw.CreateSession(ctx, gateway.CreateSessionInput{
		OrderID:       o.ID,
		BookName:      o.BookName,
		CustomerEmail: o.CustomerEmail,
		UnitPrice:     o.Price,
		SuccessURL:    origin + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     origin + "/payment-cancelled",
	})
	if err != nil {
		return CheckoutSessionOutput{}, NewHTTPError(http.StatusBadGateway, "payment gateway error")
	}
	return CheckoutSessionOutput{URL: url}, nil
}

type PaymentResult struct {
	TransactionID string `json:"transactionId"`
	OrderID       string `json:"orderId"`
}

// 決済の最終確定。何回呼ばれてもPaymentは一件、減算は一回だけ。
func (u *CheckoutUsecase) FinalizePayment(ctx context.Context, sessionID string) (PaymentResult, error) {
	if sessionID == "" {
		return PaymentResult{}, NewHTTPError(http.StatusBadRequest, "session_id required")
	}

	sess, err := u.gw.RetrieveSession(ctx, sessionID)
	if err == gateway.ErrSessionNotFound {
		return PaymentResult{}, NewHTTPError(http.StatusNotFound, "session not found")
	}
	if err != nil {
		return PaymentResult{}, NewHTTPError(http.StatusBadGateway, "payment gateway error")
	}
	if sess.OrderID == "" {
		return PaymentResult{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	var out PaymentResult

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, sess.OrderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//同じtransactionIdなら再処理しないで既存を返す（成功リロード・コールバック二重発火対策）
		if sess.TransactionID != "" {
			existing, found, err := r.Payments().FindByTransactionID(ctx, sess.TransactionID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if found {
				out = PaymentResult{TransactionID: existing.TransactionID, OrderID: existing.OrderID}
				return nil
			}
		}

		//未決済セッションでは何も書かない
		if sess.PaymentStatus != "paid" {
			return NewHTTPError(http.StatusPaymentRequired, "payment not completed")
		}

		p := model.Payment{
			ID:            uuid.NewString(),
			OrderID:       o.ID,
			TransactionID: sess.TransactionID,
			BookName:      o.BookName,
			AuthorName:    o.AuthorName,
			AuthorEmail:   o.AuthorEmail,
			CustomerEmail: o.CustomerEmail,
			CustomerName:  o.CustomerName,
			Status:        string(model.PaymentStatusPaid),
			//最小通貨単位→主要通貨単位
			Price:       float64(sess.AmountTotal) / 100,
			PaymentDate: time.Now(),
		}

		//存在チェック＋insertだけでは競合で二重になるので、
		//一意制約の衝突を拾って既存を引き直す。
		if err := r.Payments().Create(ctx, p); err != nil {
			if err == repo.ErrDuplicateTransaction {
				existing, found, ferr := r.Payments().FindByTransactionID(ctx, sess.TransactionID)
				if ferr != nil || !found {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				out = PaymentResult{TransactionID: existing.TransactionID, OrderID: existing.OrderID}
				return nil
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//unpaidのときだけ減る条件付きUPDATEなので減算は一回まで
		if _, err := r.Orders().MarkPaid(ctx, o.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = PaymentResult{TransactionID: p.TransactionID, OrderID: p.OrderID}
		return nil
	})

	if err != nil {
		return PaymentResult{}, err
	}
	return out, nil
}

func (u *CheckoutUsecase) ListPaymentsByCustomer(ctx context.Context, email string) ([]model.Payment, error) {
	if email == "" {
		return []model.Payment{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	items, err := u.paymentRepo.ListByCustomerEmail(ctx, email)
	if err != nil {
		return []model.Payment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CheckoutUsecase) ListPaymentsByAuthor(ctx context.Context, email string) ([]model.Payment, error) {
	if email == "" {
		return []model.Payment{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	items, err := u.paymentRepo.ListByAuthorEmail(ctx, email)
	if err != nil {
		return []model.Payment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
