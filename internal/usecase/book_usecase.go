package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bookcourier/internal/domain/model"
	repo "bookcourier/internal/repository"

	"github.com/google/uuid"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// /latestの上限
const latestBooksLimit = 8

type BookUsecase struct {
	bookRepo repo.BookRepository
	userRepo repo.UserRepository
}

// DI
func NewBookUsecase(bookRepo repo.BookRepository, userRepo repo.UserRepository) *BookUsecase {
	return &BookUsecase{
		bookRepo: bookRepo,
		userRepo: userRepo,
	}
}

type ListBooksInput struct {
	AuthorEmail string
	Status      string
}

func (u *BookUsecase) List(ctx context.Context, in ListBooksInput) ([]model.Book, error) {
	if in.Status != "" && !model.BookStatus(in.Status).Valid() {
		return []model.Book{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	items, err := u.bookRepo.List(ctx, repo.BookListQuery{
		AuthorEmail: strings.TrimSpace(in.AuthorEmail),
		Status:      in.Status,
	})
	if err != nil {
		return []model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// create_date降順で最大8冊
func (u *BookUsecase) Latest(ctx context.Context) ([]model.Book, error) {
	items, err := u.bookRepo.List(ctx, repo.BookListQuery{Limit: latestBooksLimit})
	if err != nil {
		return []model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *BookUsecase) Get(ctx context.Context, bookID string) (model.Book, error) {
	if bookID == "" {
		return model.Book{}, NewHTTPError(http.StatusBadRequest, "invalid book id")
	}

	b, err := u.bookRepo.FindByID(ctx, bookID)
	if err == repo.ErrNotFound {
		return model.Book{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b, nil
}

type BookInput struct {
	Name        string
	AuthorName  string
	Image       string
	Description string
	Price       float64
	Quantity    int64
	Status      string
}

func (u *BookUsecase) Create(ctx context.Context, authorEmail string, in BookInput) (model.Book, error) {
	if authorEmail == "" {
		return model.Book{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Book{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return model.Book{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Quantity < 0 {
		return model.Book{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}

	//未指定はpending開始
	status := model.BookStatus(in.Status)
	if in.Status == "" {
		status = model.BookStatusPending
	}
	if !status.Valid() {
		return model.Book{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	b, err := u.bookRepo.Create(ctx, model.Book{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		AuthorName:  in.AuthorName,
		AuthorEmail: authorEmail,
		Image:       in.Image,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Status:      status,
		CreateDate:  time.Now(),
	})
	if err != nil {
		return model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b, nil
}

// PUT（全項目置き換え）。所有者かadminだけ。
func (u *BookUsecase) Replace(ctx context.Context, callerEmail string, bookID string, in BookInput) error {
	if bookID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid book id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Quantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}
	status := model.BookStatus(in.Status)
	if !status.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	existing, err := u.bookRepo.FindByID(ctx, bookID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.requireOwnerOrAdmin(ctx, callerEmail, existing); err != nil {
		return err
	}

	//create_dateと著者メールは元の値を保つ
	err = u.bookRepo.Replace(ctx, model.Book{
		ID:          bookID,
		Name:        strings.TrimSpace(in.Name),
		AuthorName:  in.AuthorName,
		AuthorEmail: existing.AuthorEmail,
		Image:       in.Image,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Status:      status,
		CreateDate:  existing.CreateDate,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// publish/unpublishの切り替え。create_dateは触らない。
func (u *BookUsecase) UpdateStatus(ctx context.Context, callerEmail string, bookID string, rawStatus string) error {
	if bookID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid book id")
	}
	status := model.BookStatus(strings.TrimSpace(rawStatus))
	if !status.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	existing, err := u.bookRepo.FindByID(ctx, bookID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.requireOwnerOrAdmin(ctx, callerEmail, existing); err != nil {
		return err
	}

	err = u.bookRepo.UpdateStatus(ctx, bookID, status)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *BookUsecase) Delete(ctx context.Context, callerEmail string, bookID string) error {
	if bookID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid book id")
	}

	existing, err := u.bookRepo.FindByID(ctx, bookID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.requireOwnerOrAdmin(ctx, callerEmail, existing); err != nil {
		return err
	}

	err = u.bookRepo.Delete(ctx, bookID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 所有者（author_email一致）かadminだけ許可
func (u *BookUsecase) requireOwnerOrAdmin(ctx context.Context, callerEmail string, b model.Book) error {
	if callerEmail == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if b.AuthorEmail == callerEmail {
		return nil
	}

	caller, err := u.userRepo.FindByEmail(ctx, callerEmail)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if caller.Role != model.RoleAdmin {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}
