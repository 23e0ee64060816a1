package usecase

import (
	"context"
	"net/http"
	"strings"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
)

// 著者
type AuthorUsecase struct {
	authors repo.AuthorRepository
	books   repo.BookRepository
}

func NewAuthorUsecase(authors repo.AuthorRepository, books repo.BookRepository) *AuthorUsecase {
	return &AuthorUsecase{authors: authors, books: books}
}

type AuthorInput struct {
	Name        string
	Nationality string
}

func (in AuthorInput) normalize() (AuthorInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Nationality = strings.TrimSpace(in.Nationality)
	if in.Name == "" {
		return in, NewHTTPError(http.StatusBadRequest, "nombre required")
	}
	return in, nil
}

func (u *AuthorUsecase) List(ctx context.Context) ([]model.Author, error) {
	items, err := u.authors.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *AuthorUsecase) Get(ctx context.Context, id int64) (model.Author, error) {
	if id <= 0 {
		return model.Author{}, errInvalidID()
	}
	a, err := u.authors.FindByID(ctx, id)
	if err != nil {
		return model.Author{}, mapRepoErr(err, "")
	}
	return a, nil
}

func (u *AuthorUsecase) Create(ctx context.Context, in AuthorInput) (model.Author, error) {
	in, err := in.normalize()
	if err != nil {
		return model.Author{}, err
	}
	a, err := u.authors.Create(ctx, model.Author{Name: in.Name, Nationality: in.Nationality})
	if err != nil {
		return model.Author{}, mapRepoErr(err, "author already exists")
	}
	return a, nil
}

func (u *AuthorUsecase) Update(ctx context.Context, id int64, in AuthorInput) error {
	if id <= 0 {
		return errInvalidID()
	}
	in, err := in.normalize()
	if err != nil {
		return err
	}
	return mapRepoErr(u.authors.Update(ctx, model.Author{ID: id, Name: in.Name, Nationality: in.Nationality}), "author already exists")
}

func (u *AuthorUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errInvalidID()
	}
	n, err := u.books.CountByAuthor(ctx, id)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if n > 0 {
		return errInUse("author", n, "books")
	}
	return mapRepoErr(u.authors.Delete(ctx, id), "")
}

// カテゴリ
type CategoryUsecase struct {
	categories repo.CategoryRepository
	books      repo.BookRepository
}

func NewCategoryUsecase(categories repo.CategoryRepository, books repo.BookRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories, books: books}
}

type CategoryInput struct {
	Name        string
	Description string
}

func (in CategoryInput) normalize() (CategoryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || len(in.Name) > 100 {
		return in, NewHTTPError(http.StatusBadRequest, "invalid nombre")
	}
	return in, nil
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	items, err := u.categories.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, errInvalidID()
	}
	c, err := u.categories.FindByID(ctx, id)
	if err != nil {
		return model.Category{}, mapRepoErr(err, "")
	}
	return c, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, in CategoryInput) (model.Category, error) {
	in, err := in.normalize()
	if err != nil {
		return model.Category{}, err
	}
	c, err := u.categories.Create(ctx, model.Category{Name: in.Name, Description: in.Description})
	if err != nil {
		return model.Category{}, mapRepoErr(err, "category already exists")
	}
	return c, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id int64, in CategoryInput) error {
	if id <= 0 {
		return errInvalidID()
	}
	in, err := in.normalize()
	if err != nil {
		return err
	}
	return mapRepoErr(u.categories.Update(ctx, model.Category{ID: id, Name: in.Name, Description: in.Description}), "category already exists")
}

func (u *CategoryUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errInvalidID()
	}
	n, err := u.books.CountByCategory(ctx, id)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if n > 0 {
		return errInUse("category", n, "books")
	}
	return mapRepoErr(u.categories.Delete(ctx, id), "")
}
