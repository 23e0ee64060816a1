package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
	"bookstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type SupplierRepoMock struct{ mock.Mock }

func (m *SupplierRepoMock) List(ctx context.Context) ([]model.Supplier, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.Supplier)
	return v, args.Error(1)
}

func (m *SupplierRepoMock) FindByID(ctx context.Context, id int64) (model.Supplier, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Supplier), args.Error(1)
}

func (m *SupplierRepoMock) Create(ctx context.Context, s model.Supplier) (model.Supplier, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(model.Supplier), args.Error(1)
}

func (m *SupplierRepoMock) Update(ctx context.Context, s model.Supplier) error {
	return m.Called(ctx, s).Error(0)
}

func (m *SupplierRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestSupplierCreate_Trims(t *testing.T) {
	suppliers := &SupplierRepoMock{}
	want := model.Supplier{TaxID: "20123456789", Name: "Distribuidora Andina", ContactName: "Luis"}
	created := want
	created.ID = 3
	suppliers.On("Create", mock.Anything, want).Return(created, nil).Once()

	uc := usecase.NewSupplierUsecase(suppliers)
	s, err := uc.Create(context.Background(), usecase.SupplierInput{TaxID: " 20123456789 ", Name: "Distribuidora Andina ", ContactName: " Luis"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), s.ID)
	suppliers.AssertExpectations(t)
}

func TestSupplierCreate_Validation(t *testing.T) {
	uc := usecase.NewSupplierUsecase(&SupplierRepoMock{})

	_, err := uc.Create(context.Background(), usecase.SupplierInput{Name: "Sin RUC"})
	assert.Equal(t, "invalid ruc", httpErr(err).Message)

	_, err = uc.Create(context.Background(), usecase.SupplierInput{TaxID: "20123456789"})
	assert.Equal(t, "nombre required", httpErr(err).Message)
}

func TestSupplierCreate_DuplicateTaxID(t *testing.T) {
	suppliers := &SupplierRepoMock{}
	suppliers.On("Create", mock.Anything, mock.Anything).Return(model.Supplier{}, repo.ErrConflict)

	uc := usecase.NewSupplierUsecase(suppliers)
	_, err := uc.Create(context.Background(), usecase.SupplierInput{TaxID: "20123456789", Name: "X"})
	he := httpErr(err)
	assert.Equal(t, http.StatusConflict, he.Status)
	assert.Equal(t, "ruc already registered", he.Message)
}

func TestSupplierUpdateAndDelete_NotFound(t *testing.T) {
	suppliers := &SupplierRepoMock{}
	suppliers.On("Update", mock.Anything, mock.MatchedBy(func(s model.Supplier) bool { return s.ID == 9 })).Return(repo.ErrNotFound)
	suppliers.On("Delete", mock.Anything, int64(9)).Return(repo.ErrNotFound)

	uc := usecase.NewSupplierUsecase(suppliers)
	err := uc.Update(context.Background(), 9, usecase.SupplierInput{TaxID: "20123456789", Name: "X"})
	assert.Equal(t, http.StatusNotFound, httpErr(err).Status)

	err = uc.Delete(context.Background(), 9)
	assert.Equal(t, http.StatusNotFound, httpErr(err).Status)

	err = uc.Delete(context.Background(), 0)
	assert.Equal(t, http.StatusBadRequest, httpErr(err).Status)
}
