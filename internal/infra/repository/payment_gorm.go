package repository

import (
	"context"
	"errors"

	"bookcourier/internal/domain/model"
	repo "bookcourier/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// postgresの一意制約違反
const pgUniqueViolation = "23505"

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) FindByTransactionID(ctx context.Context, transactionID string) (model.Payment, bool, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, false, nil
	}
	if err != nil {
		return model.Payment{}, false, err
	}
	return p, true, nil
}

// transaction_idの一意制約で二重登録を防ぐ。
// 衝突したら ErrDuplicateTransaction を返して呼び出し側で既存を引き直す。
func (r *PaymentGormRepository) Create(ctx context.Context, p model.Payment) error {
	err := r.db.WithContext(ctx).Create(&p).Error
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return repo.ErrDuplicateTransaction
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repo.ErrDuplicateTransaction
	}
	return err
}

func (r *PaymentGormRepository) ListByCustomerEmail(ctx context.Context, email string) ([]model.Payment, error) {
	var items []model.Payment
	err := r.db.WithContext(ctx).
		Where("customer_email = ?", email).
		Order("payment_date desc").
		Find(&items).Error
	if err != nil {
		return []model.Payment{}, err
	}
	return items, nil
}

func (r *PaymentGormRepository) ListByAuthorEmail(ctx context.Context, email string) ([]model.Payment, error) {
	var items []model.Payment
	err := r.db.WithContext(ctx).
		Where("author_email = ?", email).
		Order("payment_date desc").
		Find(&items).Error
	if err != nil {
		return []model.Payment{}, err
	}
	return items, nil
}
