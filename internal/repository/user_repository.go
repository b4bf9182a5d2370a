package repository

import (
	"context"
	"errors"

	"bookcourier/internal/domain/model"
)

// 見つかりませんを統一
var ErrNotFound = errors.New("not found")

// ユーザーの保存・取得を約束
type UserRepository interface {
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (model.User, error)
	// IDからユーザーを一件取得する。
	FindByID(ctx context.Context, userID string) (model.User, error)
	//新規ユーザー作成
	Create(ctx context.Context, user model.User) error
	//最後のログインだけ更新する
	UpdateLastLoggedIn(ctx context.Context, email string) error
	//プロフィール（name/image）だけ更新する
	UpdateProfile(ctx context.Context, userID string, name string, image string) error
	//ロールだけ更新する
	UpdateRole(ctx context.Context, email string, role model.Role) error
	//指定メール以外の全ユーザー
	ListExcept(ctx context.Context, email string) ([]model.User, error)
}
