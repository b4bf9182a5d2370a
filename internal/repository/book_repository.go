package repository

import (
	"context"

	"bookcourier/internal/domain/model"
)

// 一覧検索
type BookListQuery struct {
	AuthorEmail string
	Status      string
	Limit       int
}

// 本の永続化（保存・取得）だけを約束。
type BookRepository interface {
	//create_date降順で一覧
	List(ctx context.Context, q BookListQuery) ([]model.Book, error)
	FindByID(ctx context.Context, id string) (model.Book, error)

	Create(ctx context.Context, b model.Book) (model.Book, error)
	//全項目置き換え（PUT）
	Replace(ctx context.Context, b model.Book) error
	//ステータスだけ更新する（create_dateは触らない）
	UpdateStatus(ctx context.Context, id string, status model.BookStatus) error
	Delete(ctx context.Context, id string) error
}
