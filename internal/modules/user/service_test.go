package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"reclamation/internal/domain"
	"reclamation/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	u.ID = 1
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, f repository.UserFilter) ([]domain.User, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id int64, role domain.UserRole, regionID *int64) error {
	return m.Called(ctx, id, role, regionID).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockRegionChecker struct {
	mock.Mock
}

func (m *MockRegionChecker) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID int64, role string) (string, error) {
	return "token-for-" + role, nil
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func int64Ptr(v int64) *int64 { return &v }

var (
	anon  = Actor{}
	admin = Actor{ID: 99, Role: domain.RoleAdmin}
)

func validCreate() CreateUserRequest {
	return CreateUserRequest{
		Name:        "Amira",
		Email:       " Amira@Example.com ",
		PhoneNumber: "21612345678",
		Password:    "secret1",
	}
}

func TestService_Create_Success(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, " Amira@Example.com ").Return(false, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	svc := NewService(users, new(MockRegionChecker), stubJWT{})

	u, err := svc.Create(context.Background(), anon, validCreate())

	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "amira@example.com", u.Email)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))
	users.AssertExpectations(t)
}

func TestService_Create_EmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(true, nil)
	svc := NewService(users, new(MockRegionChecker), stubJWT{})

	_, err := svc.Create(context.Background(), anon, validCreate())

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_UniqueViolationOnInsert(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(errors.New("UNIQUE constraint failed: users.email"))
	svc := NewService(users, new(MockRegionChecker), stubJWT{})

	_, err := svc.Create(context.Background(), anon, validCreate())

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Create_StaffRoleNeedsAdmin(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockRegionChecker), stubJWT{})
	req := validCreate()
	req.Role = "agent"

	_, err := svc.Create(context.Background(), Actor{ID: 5, Role: domain.RoleUser}, req)
	assert.ErrorIs(t, err, ErrForbidden)

	users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	u, err := svc.Create(context.Background(), admin, req)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgent, u.Role)
}

func TestService_Create_UnknownRegion(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	regions := new(MockRegionChecker)
	regions.On("Exists", mock.Anything, int64(7)).Return(false, nil)
	svc := NewService(users, regions, stubJWT{})
	req := validCreate()
	req.RegionID = int64Ptr(7)

	_, err := svc.Create(context.Background(), anon, req)

	assert.ErrorIs(t, err, ErrRegionNotFound)
}

func TestService_Create_ShortPassword(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	svc := NewService(users, new(MockRegionChecker), stubJWT{})
	req := validCreate()
	req.Password = "123"

	_, err := svc.Create(context.Background(), anon, req)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Login(t *testing.T) {
	stored := &domain.User{ID: 3, Email: "a@b.io", Role: domain.RoleAgent, PasswordHash: hashed(t, "secret1")}

	tests := []struct {
		name     string
		email    string
		password string
		found    bool
		wantErr  error
	}{
		{name: "success", email: "a@b.io", password: "secret1", found: true},
		{name: "wrong password", email: "a@b.io", password: "nope", found: true, wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "x@b.io", password: "secret1", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			if tt.found {
				users.On("GetByEmail", mock.Anything, tt.email).Return(stored, nil)
			} else {
				users.On("GetByEmail", mock.Anything, tt.email).Return(nil, repository.ErrNotFound)
			}
			svc := NewService(users, new(MockRegionChecker), stubJWT{})

			res, err := svc.Login(context.Background(), LoginRequest{Email: tt.email, Password: tt.password})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "token-for-agent", res.Token)
			assert.Equal(t, int64(3), res.User.ID)
		})
	}
}

func TestService_Get_Access(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(4)).Return(&domain.User{ID: 4}, nil)
	svc := NewService(users, new(MockRegionChecker), stubJWT{})
	ctx := context.Background()

	_, err := svc.Get(ctx, Actor{ID: 4, Role: domain.RoleUser}, 4)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, Actor{ID: 8, Role: domain.RoleAgent}, 4)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, Actor{ID: 5, Role: domain.RoleUser}, 4)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Get_NotFound(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(4)).Return(nil, repository.ErrNotFound)
	svc := NewService(users, new(MockRegionChecker), stubJWT{})

	_, err := svc.Get(context.Background(), admin, 4)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Update_KeepsEmailWithoutUniquenessCheck(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(4)).Return(&domain.User{ID: 4, Email: "a@b.io"}, nil)
	users.On("UpdateProfile", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	svc := NewService(users, new(MockRegionChecker), stubJWT{})

	u, err := svc.Update(context.Background(), Actor{ID: 4, Role: domain.RoleUser}, 4, UpdateUserRequest{
		Name: "<b>New</b> name", Email: "A@B.io", PhoneNumber: "21612345678",
	})

	require.NoError(t, err)
	assert.Equal(t, "New name", u.Name)
	users.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
}

func TestService_Update_Forbidden(t *testing.T) {
	svc := NewService(new(MockUserRepository), new(MockRegionChecker), stubJWT{})

	_, err := svc.Update(context.Background(), Actor{ID: 5, Role: domain.RoleAgent}, 4, UpdateUserRequest{})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_UpdateRole(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(4)).Return(&domain.User{ID: 4, Role: domain.RoleAgent}, nil)
	users.On("UpdateRole", mock.Anything, int64(4), domain.RoleAgent, int64Ptr(2)).Return(nil)
	regions := new(MockRegionChecker)
	regions.On("Exists", mock.Anything, int64(2)).Return(true, nil)
	svc := NewService(users, regions, stubJWT{})

	u, err := svc.UpdateRole(context.Background(), 4, UpdateRoleRequest{Role: "agent", RegionID: int64Ptr(2)})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgent, u.Role)
	users.AssertExpectations(t)
}

func TestService_ChangePassword(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(4)).Return(&domain.User{ID: 4, PasswordHash: hashed(t, "old-pass")}, nil)
	users.On("UpdatePassword", mock.Anything, int64(4), mock.AnythingOfType("string")).Return(nil)
	svc := NewService(users, new(MockRegionChecker), stubJWT{})
	me := Actor{ID: 4, Role: domain.RoleUser}

	err := svc.ChangePassword(context.Background(), me, ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "new-pass"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(context.Background(), me, ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-pass"})
	require.NoError(t, err)
	users.AssertNumberOfCalls(t, "UpdatePassword", 1)
}

func TestService_Delete(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Delete", mock.Anything, int64(4)).Return(repository.ErrNotFound)
	svc := NewService(users, new(MockRegionChecker), stubJWT{})

	assert.ErrorIs(t, svc.Delete(context.Background(), Actor{ID: 5, Role: domain.RoleUser}, 4), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), admin, 4), ErrNotFound)
}

func TestService_List_RejectsUnknownRole(t *testing.T) {
	svc := NewService(new(MockUserRepository), new(MockRegionChecker), stubJWT{})

	_, err := svc.List(context.Background(), repository.UserFilter{Role: "root"})

	assert.ErrorIs(t, err, ErrValidation)
}
