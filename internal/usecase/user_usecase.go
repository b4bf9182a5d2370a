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

type UserUsecase struct {
	userRepo repo.UserRepository
}

// DI
func NewUserUsecase(userRepo repo.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

func (u *UserUsecase) GetByEmail(ctx context.Context, email string) (model.User, error) {
	if email == "" {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return model.User{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user, nil
}

type UpsertUserInput struct {
	Email string
	Name  string
	Image string
}

// ログインのたびに呼ばれる。
// 既存ならlast_loggedInだけ更新（role・create_dateは保持）、なければcustomerで新規作成。
func (u *UserUsecase) UpsertOnLogin(ctx context.Context, in UpsertUserInput) (model.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "email required")
	}

	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err == nil {
		if uerr := u.userRepo.UpdateLastLoggedIn(ctx, email); uerr != nil {
			return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		existing.LastLoggedIn = time.Now()
		return existing, nil
	}
	if err != repo.ErrNotFound {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := time.Now()
	newUser := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         in.Name,
		Image:        in.Image,
		Role:         model.RoleCustomer,
		CreateDate:   now,
		LastLoggedIn: now,
	}
	if err := u.userRepo.Create(ctx, newUser); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return newUser, nil
}

// プロフィール編集はname/imageだけ。本人のみ。
func (u *UserUsecase) UpdateProfile(ctx context.Context, callerEmail string, userID string, name string, image string) error {
	if userID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if strings.TrimSpace(name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}

	target, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//他人のプロフィールは触れない
	if target.Email != callerEmail {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if err := u.userRepo.UpdateProfile(ctx, userID, strings.TrimSpace(name), image); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ロール変更（admin限定はミドルウェアで担保）。roleだけ触る。
func (u *UserUsecase) UpdateRole(ctx context.Context, email string, rawRole string) error {
	if email == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	role := model.Role(strings.TrimSpace(rawRole))
	if !role.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	err := u.userRepo.UpdateRole(ctx, email, role)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 自分以外の全ユーザー（admin画面用）
func (u *UserUsecase) ListAllExcept(ctx context.Context, email string) ([]model.User, error) {
	if email == "" {
		return []model.User{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	items, err := u.userRepo.ListExcept(ctx, email)
	if err != nil {
		return []model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

type RoleOutput struct {
	Role model.Role `json:"role"`
}

func (u *UserUsecase) GetRole(ctx context.Context, email string) (RoleOutput, error) {
	if email == "" {
		return RoleOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return RoleOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return RoleOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return RoleOutput{Role: user.Role}, nil
}
