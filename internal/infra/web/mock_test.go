//go:build !integration

// File: internal/infra/web/mock_test.go
package web

import (
	"context"

	"github.com/bayusbkt/patungan-bay/internal/domain"
	"github.com/bayusbkt/patungan-bay/internal/domain/model"
	"github.com/bayusbkt/patungan-bay/internal/usecase"
)

// Func-field mocks for the usecase interfaces; unset funcs return ErrNotFound
// so handlers exercise the error mapping by default.

type mockCatalogUC struct {
	CreateFunc  func(ctx context.Context, in usecase.CreateProductInput) (*model.Product, error)
	UpdateFunc  func(ctx context.Context, id string, in usecase.CreateProductInput) (*model.Product, error)
	DetailFunc  func(ctx context.Context, id string) (*usecase.ProductDetail, error)
	ListFunc    func(ctx context.Context) ([]*model.Product, error)
	DeleteFunc  func(ctx context.Context, id string) error
	RestoreFunc func(ctx context.Context, id string) error
}

func (m *mockCatalogUC) Create(ctx context.Context, in usecase.CreateProductInput) (*model.Product, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalogUC) Update(ctx context.Context, id string, in usecase.CreateProductInput) (*model.Product, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, in)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalogUC) Detail(ctx context.Context, id string) (*usecase.ProductDetail, error) {
	if m.DetailFunc != nil {
		return m.DetailFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalogUC) List(ctx context.Context) ([]*model.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockCatalogUC) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return domain.ErrNotFound
}

func (m *mockCatalogUC) Restore(ctx context.Context, id string) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id)
	}
	return domain.ErrNotFound
}

type mockSubUC struct {
	CreateDraftFunc   func(ctx context.Context, productID string, customer model.Customer) (*model.ProductSubscription, error)
	AttachPaymentFunc func(ctx context.Context, id string, details usecase.PaymentDetails) (*model.ProductSubscription, error)
	ApproveFunc       func(ctx context.Context, id string) (*model.ProductSubscription, error)
	GetFunc           func(ctx context.Context, id string) (*model.ProductSubscription, error)
	ListFunc          func(ctx context.Context) ([]*model.ProductSubscription, error)
	CountUnpaidFunc   func(ctx context.Context) (int, error)
}

func (m *mockSubUC) CreateDraft(ctx context.Context, productID string, customer model.Customer) (*model.ProductSubscription, error) {
	if m.CreateDraftFunc != nil {
		return m.CreateDraftFunc(ctx, productID, customer)
	}
	return nil, domain.ErrNotFound
}

func (m *mockSubUC) AttachPayment(ctx context.Context, id string, details usecase.PaymentDetails) (*model.ProductSubscription, error) {
	if m.AttachPaymentFunc != nil {
		return m.AttachPaymentFunc(ctx, id, details)
	}
	return nil, domain.ErrNotFound
}

func (m *mockSubUC) Approve(ctx context.Context, id string) (*model.ProductSubscription, error) {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockSubUC) Get(ctx context.Context, id string) (*model.ProductSubscription, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockSubUC) GetByBookingTrxID(ctx context.Context, trxID string) (*model.ProductSubscription, error) {
	return nil, domain.ErrNotFound
}

func (m *mockSubUC) List(ctx context.Context) ([]*model.ProductSubscription, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockSubUC) ListByProduct(ctx context.Context, productID string) ([]*model.ProductSubscription, error) {
	return nil, nil
}

func (m *mockSubUC) CountUnpaid(ctx context.Context) (int, error) {
	if m.CountUnpaidFunc != nil {
		return m.CountUnpaidFunc(ctx)
	}
	return 0, nil
}

func (m *mockSubUC) Delete(ctx context.Context, id string) error  { return domain.ErrNotFound }
func (m *mockSubUC) Restore(ctx context.Context, id string) error { return domain.ErrNotFound }

type mockAllocUC struct {
	AllocateFunc func(ctx context.Context, subscriptionID string, startCount int) (*usecase.AllocationResult, error)
}

func (m *mockAllocUC) Allocate(ctx context.Context, subscriptionID string, startCount int) (*usecase.AllocationResult, error) {
	if m.AllocateFunc != nil {
		return m.AllocateFunc(ctx, subscriptionID, startCount)
	}
	return nil, domain.ErrNotFound
}

type mockGroupUC struct {
	GetFunc        func(ctx context.Context, id string) (*usecase.GroupView, error)
	AddMessageFunc func(ctx context.Context, groupID, text string) (*model.GroupMessage, error)
}

func (m *mockGroupUC) Get(ctx context.Context, id string) (*usecase.GroupView, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockGroupUC) List(ctx context.Context) ([]*usecase.GroupView, error) { return nil, nil }

func (m *mockGroupUC) ListByProduct(ctx context.Context, productID string) ([]*usecase.GroupView, error) {
	return nil, nil
}

func (m *mockGroupUC) Delete(ctx context.Context, id string) error { return domain.ErrNotFound }

func (m *mockGroupUC) AddMessage(ctx context.Context, groupID, text string) (*model.GroupMessage, error) {
	if m.AddMessageFunc != nil {
		return m.AddMessageFunc(ctx, groupID, text)
	}
	return nil, domain.ErrNotFound
}

func (m *mockGroupUC) Messages(ctx context.Context, groupID string) ([]*model.GroupMessage, error) {
	return nil, nil
}

func (m *mockGroupUC) Participants(ctx context.Context, groupID string) ([]*model.GroupParticipant, error) {
	return nil, nil
}

type mockStatsUC struct {
	DashboardFunc func(ctx context.Context) (*usecase.DashboardStats, error)
}

func (m *mockStatsUC) Dashboard(ctx context.Context) (*usecase.DashboardStats, error) {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx)
	}
	return &usecase.DashboardStats{}, nil
}

var (
	_ usecase.CatalogUseCase      = (*mockCatalogUC)(nil)
	_ usecase.SubscriptionUseCase = (*mockSubUC)(nil)
	_ usecase.AllocatorUseCase    = (*mockAllocUC)(nil)
	_ usecase.GroupUseCase        = (*mockGroupUC)(nil)
	_ usecase.StatsUseCase        = (*mockStatsUC)(nil)
)
