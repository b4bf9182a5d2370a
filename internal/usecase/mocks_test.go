package usecase_test

import (
	"context"

	"bookcourier/internal/domain/model"
	"bookcourier/internal/gateway"
	repo "bookcourier/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders   repo.OrderRepository
	payments repo.PaymentRepository
	books    repo.BookRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository     { return r.orders }
func (r *TxReposMock) Payments() repo.PaymentRepository { return r.payments }
func (r *TxReposMock) Books() repo.BookRepository       { return r.books }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByCustomerEmail(ctx context.Context, email string) ([]model.Order, error) {
	args := m.Called(ctx, email)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) MarkPaid(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) FindByTransactionID(ctx context.Context, transactionID string) (model.Payment, bool, error) {
	args := m.Called(ctx, transactionID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Bool(1), args.Error(2)
}

func (m *PaymentRepoMock) Create(ctx context.Context, p model.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PaymentRepoMock) ListByCustomerEmail(ctx context.Context, email string) ([]model.Payment, error) {
	args := m.Called(ctx, email)
	items, _ := args.Get(0).([]model.Payment)
	return items, args.Error(1)
}

func (m *PaymentRepoMock) ListByAuthorEmail(ctx context.Context, email string) ([]model.Payment, error) {
	args := m.Called(ctx, email)
	items, _ := args.Get(0).([]model.Payment)
	return items, args.Error(1)
}

type BookRepoMock struct{ mock.Mock }

func (m *BookRepoMock) List(ctx context.Context, q repo.BookListQuery) ([]model.Book, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Book)
	return items, args.Error(1)
}

func (m *BookRepoMock) FindByID(ctx context.Context, id string) (model.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(model.Book)
	return b, args.Error(1)
}

func (m *BookRepoMock) Create(ctx context.Context, b model.Book) (model.Book, error) {
	args := m.Called(ctx, b)
	out, _ := args.Get(0).(model.Book)
	return out, args.Error(1)
}

func (m *BookRepoMock) Replace(ctx context.Context, b model.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BookRepoMock) UpdateStatus(ctx context.Context, id string, status model.BookStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *BookRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID string) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Create(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) UpdateLastLoggedIn(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *UserRepoMock) UpdateProfile(ctx context.Context, userID string, name string, image string) error {
	args := m.Called(ctx, userID, name, image)
	return args.Error(0)
}

func (m *UserRepoMock) UpdateRole(ctx context.Context, email string, role model.Role) error {
	args := m.Called(ctx, email, role)
	return args.Error(0)
}

func (m *UserRepoMock) ListExcept(ctx context.Context, email string) ([]model.User, error) {
	args := m.Called(ctx, email)
	items, _ := args.Get(0).([]model.User)
	return items, args.Error(1)
}

// =====================
// Gateway mock
// =====================

type CheckoutGatewayMock struct{ mock.Mock }

func (m *CheckoutGatewayMock) CreateSession(ctx context.Context, in gateway.CreateSessionInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *CheckoutGatewayMock) RetrieveSession(ctx context.Context, sessionID string) (gateway.Session, error) {
	args := m.Called(ctx, sessionID)
	s, _ := args.Get(0).(gateway.Session)
	return s, args.Error(1)
}
