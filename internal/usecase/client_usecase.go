package usecase

import (
	"context"
	"net/http"
	"strings"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
)

type ClientUsecase struct {
	clients repo.ClientRepository
	sales   repo.SaleRepository
}

func NewClientUsecase(clients repo.ClientRepository, sales repo.SaleRepository) *ClientUsecase {
	return &ClientUsecase{clients: clients, sales: sales}
}

type ClientInput struct {
	Document string
	Name     string
	Email    string
	Phone    string
	Address  string
}

type ClientListOutput struct {
	Items []model.Client `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func (in ClientInput) normalize() (ClientInput, error) {
	in.Document = strings.TrimSpace(in.Document)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)

	if in.Document == "" || len(in.Document) > 20 {
		return in, NewHTTPError(http.StatusBadRequest, "invalid documento")
	}
	if in.Name == "" {
		return in, NewHTTPError(http.StatusBadRequest, "nombre required")
	}
	return in, nil
}

func (in ClientInput) toModel(id int64) model.Client {
	return model.Client{
		ID:       id,
		Document: in.Document,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Address:  in.Address,
	}
}

func (u *ClientUsecase) List(ctx context.Context, q string, page int, limit int) (ClientListOutput, error) {
	if page < 1 {
		return ClientListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return ClientListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.clients.List(ctx, strings.TrimSpace(q), repo.Page{Page: page, Limit: limit})
	if err != nil {
		return ClientListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ClientListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (u *ClientUsecase) Get(ctx context.Context, id int64) (model.Client, error) {
	if id <= 0 {
		return model.Client{}, errInvalidID()
	}
	c, err := u.clients.FindByID(ctx, id)
	if err != nil {
		return model.Client{}, mapRepoErr(err, "")
	}
	return c, nil
}

func (u *ClientUsecase) Create(ctx context.Context, in ClientInput) (model.Client, error) {
	in, err := in.normalize()
	if err != nil {
		return model.Client{}, err
	}
	c, err := u.clients.Create(ctx, in.toModel(0))
	if err != nil {
		return model.Client{}, mapRepoErr(err, "documento already registered")
	}
	return c, nil
}

func (u *ClientUsecase) Update(ctx context.Context, id int64, in ClientInput) error {
	if id <= 0 {
		return errInvalidID()
	}
	in, err := in.normalize()
	if err != nil {
		return err
	}
	return mapRepoErr(u.clients.Update(ctx, in.toModel(id)), "documento already registered")
}

func (u *ClientUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errInvalidID()
	}
	//販売履歴がある顧客は削除不可
	n, err := u.sales.CountByClient(ctx, id)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if n > 0 {
		return errInUse("client", n, "sales")
	}
	return mapRepoErr(u.clients.Delete(ctx, id), "")
}
