package usecase

import (
	"context"
	"net/http"
	"strings"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
)

type SupplierUsecase struct {
	suppliers repo.SupplierRepository
}

func NewSupplierUsecase(suppliers repo.SupplierRepository) *SupplierUsecase {
	return &SupplierUsecase{suppliers: suppliers}
}

type SupplierInput struct {
	TaxID       string
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
}

func (in SupplierInput) toModel(id int64) (model.Supplier, error) {
	s := model.Supplier{
		ID:          id,
		TaxID:       strings.TrimSpace(in.TaxID),
		Name:        strings.TrimSpace(in.Name),
		ContactName: strings.TrimSpace(in.ContactName),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		Address:     strings.TrimSpace(in.Address),
	}
	if s.TaxID == "" || len(s.TaxID) > 20 {
		return s, NewHTTPError(http.StatusBadRequest, "invalid ruc")
	}
	if s.Name == "" {
		return s, NewHTTPError(http.StatusBadRequest, "nombre required")
	}
	return s, nil
}

func (u *SupplierUsecase) List(ctx context.Context) ([]model.Supplier, error) {
	items, err := u.suppliers.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *SupplierUsecase) Get(ctx context.Context, id int64) (model.Supplier, error) {
	if id <= 0 {
		return model.Supplier{}, errInvalidID()
	}
	s, err := u.suppliers.FindByID(ctx, id)
	if err != nil {
		return model.Supplier{}, mapRepoErr(err, "")
	}
	return s, nil
}

func (u *SupplierUsecase) Create(ctx context.Context, in SupplierInput) (model.Supplier, error) {
	s, err := in.toModel(0)
	if err != nil {
		return model.Supplier{}, err
	}
	s, err = u.suppliers.Create(ctx, s)
	if err != nil {
		return model.Supplier{}, mapRepoErr(err, "ruc already registered")
	}
	return s, nil
}

func (u *SupplierUsecase) Update(ctx context.Context, id int64, in SupplierInput) error {
	if id <= 0 {
		return errInvalidID()
	}
	s, err := in.toModel(id)
	if err != nil {
		return err
	}
	return mapRepoErr(u.suppliers.Update(ctx, s), "ruc already registered")
}

func (u *SupplierUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errInvalidID()
	}
	return mapRepoErr(u.suppliers.Delete(ctx, id), "")
}
