package repository

import (
	"context"
	"errors"

	"bookcourier/internal/domain/model"
	repo "bookcourier/internal/repository"

	"gorm.io/gorm"
)

type BookGormRepository struct {
	db *gorm.DB
}

func NewBookGormRepository(db *gorm.DB) *BookGormRepository {
	return &BookGormRepository{db: db}
}

func (r *BookGormRepository) List(ctx context.Context, q repo.BookListQuery) ([]model.Book, error) {
	tx := r.db.WithContext(ctx).Model(&model.Book{})

	//著者絞り込み
	if q.AuthorEmail != "" {
		tx = tx.Where("author_email = ?", q.AuthorEmail)
	}
	//ステータス絞り込み
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	tx = tx.Order("create_date desc")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var items []model.Book
	if err := tx.Find(&items).Error; err != nil {
		return []model.Book{}, err
	}
	return items, nil
}

func (r *BookGormRepository) FindByID(ctx context.Context, id string) (model.Book, error) {
	var b model.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Book{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Book{}, err
	}
	return b, nil
}

func (r *BookGormRepository) Create(ctx context.Context, b model.Book) (model.Book, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return model.Book{}, err
	}
	return b, nil
}

// 全項目置き換え（PUT）。create_dateは元の値を呼び出し側が入れる。
func (r *BookGormRepository) Replace(ctx context.Context, b model.Book) error {
	res := r.db.WithContext(ctx).Model(&model.Book{}).
		Where("id = ?", b.ID).
		Select("*").Omit("id").
		Updates(&b)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// statusだけ更新。create_dateは触らない（/latestの並びを壊さない）。
func (r *BookGormRepository) UpdateStatus(ctx context.Context, id string, status model.BookStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Book{}).
		Where("id = ?", id).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BookGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Book{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
