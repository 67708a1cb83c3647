package region

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reclamation/internal/domain"
	"reclamation/internal/repository"
)

type MockRegionRepository struct {
	mock.Mock
}

func (m *MockRegionRepository) Create(ctx context.Context, region *domain.Region) error {
	args := m.Called(ctx, region)
	region.ID = 11
	return args.Error(0)
}

func (m *MockRegionRepository) GetByID(ctx context.Context, id int64) (*domain.Region, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Region), args.Error(1)
}

func (m *MockRegionRepository) List(ctx context.Context) ([]domain.Region, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Region), args.Error(1)
}

func (m *MockRegionRepository) Update(ctx context.Context, region *domain.Region) error {
	return m.Called(ctx, region).Error(0)
}

func (m *MockRegionRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserLister struct {
	mock.Mock
}

func (m *MockUserLister) List(ctx context.Context, f repository.UserFilter) ([]domain.User, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.User), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestService_Create_Success(t *testing.T) {
	regions := new(MockRegionRepository)
	regions.On("Create", mock.Anything, mock.AnythingOfType("*domain.Region")).Return(nil)
	svc := NewService(regions, new(MockUserLister))

	region, err := svc.Create(context.Background(), RegionRequest{Name: " North ", DateDebut: "2024-01-01", DateFin: strPtr("2024-12-31")})

	require.NoError(t, err)
	assert.Equal(t, int64(11), region.ID)
	assert.Equal(t, "North", region.Name)
	require.NotNil(t, region.DateFin)
	assert.Equal(t, 2024, region.DateFin.Year())
	regions.AssertExpectations(t)
}

func TestService_Create_Validation(t *testing.T) {
	cases := []struct {
		name string
		req  RegionRequest
	}{
		{name: "blank name", req: RegionRequest{Name: "   ", DateDebut: "2024-01-01"}},
		{name: "bad start", req: RegionRequest{Name: "North", DateDebut: "first of may"}},
		{name: "bad end", req: RegionRequest{Name: "North", DateDebut: "2024-01-01", DateFin: strPtr("never")}},
		{name: "end before start", req: RegionRequest{Name: "North", DateDebut: "2024-05-01", DateFin: strPtr("2024-01-01")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			regions := new(MockRegionRepository)
			svc := NewService(regions, new(MockUserLister))

			_, err := svc.Create(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrValidation)
			regions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Update_NotFound(t *testing.T) {
	regions := new(MockRegionRepository)
	regions.On("GetByID", mock.Anything, int64(5)).Return(nil, repository.ErrNotFound)
	svc := NewService(regions, new(MockUserLister))

	_, err := svc.Update(context.Background(), 5, RegionRequest{Name: "South", DateDebut: "2024-01-01"})
	assert.ErrorIs(t, err, ErrNotFound)
	regions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Delete_MapsNotFound(t *testing.T) {
	regions := new(MockRegionRepository)
	regions.On("Delete", mock.Anything, int64(9)).Return(repository.ErrNotFound)
	svc := NewService(regions, new(MockUserLister))

	assert.ErrorIs(t, svc.Delete(context.Background(), 9), ErrNotFound)
}

func TestService_Agents(t *testing.T) {
	regions := new(MockRegionRepository)
	regions.On("GetByID", mock.Anything, int64(3)).Return(&domain.Region{ID: 3, Name: "East"}, nil)
	users := new(MockUserLister)
	users.On("List", mock.Anything, repository.UserFilter{Role: domain.RoleAgent, RegionID: 3}).
		Return([]domain.User{{ID: 8, Name: "agent", Role: domain.RoleAgent}}, nil)
	svc := NewService(regions, users)

	agents, err := svc.Agents(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, int64(8), agents[0].ID)
}
