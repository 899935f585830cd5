package api

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ridedispatch/pkg/models"
	"ridedispatch/pkg/security"
	"ridedispatch/service"
)

type mockManager struct {
	auth    *mockAuth
	users   *mockUsers
	clients *mockClients
	drivers *mockDrivers
	classes *mockClasses
	rides   *mockRides
	files   *mockFiles
}

func newMockManager() *mockManager {
	return &mockManager{
		auth:    &mockAuth{},
		users:   &mockUsers{},
		clients: &mockClients{},
		drivers: &mockDrivers{},
		classes: &mockClasses{},
		rides:   &mockRides{},
		files:   &mockFiles{},
	}
}

func (m *mockManager) Auth() service.AuthService               { return m.auth }
func (m *mockManager) User() service.UserService               { return m.users }
func (m *mockManager) Client() service.ClientService           { return m.clients }
func (m *mockManager) Driver() service.DriverService           { return m.drivers }
func (m *mockManager) RideClass() service.RideClassService     { return m.classes }
func (m *mockManager) ExtraOption() service.ExtraOptionService { return nil }
func (m *mockManager) Ride() service.RideService               { return m.rides }
func (m *mockManager) File() service.FileService               { return m.files }

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Login(ctx context.Context, username, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, username, password)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

func (m *mockAuth) Refresh(ctx context.Context, refreshToken string) (*service.AuthResult, error) {
	args := m.Called(ctx, refreshToken)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

func (m *mockAuth) Logout(ctx context.Context, userID int64, refreshToken string) error {
	return m.Called(ctx, userID, refreshToken).Error(0)
}

func (m *mockAuth) Authenticate(accessToken string) (*security.Claims, error) {
	args := m.Called(accessToken)
	claims, _ := args.Get(0).(*security.Claims)
	return claims, args.Error(1)
}

func (m *mockAuth) Me(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockAuth) EnsureAdmin(ctx context.Context, username, password string) error {
	return m.Called(ctx, username, password).Error(0)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, user *models.User, password string) (*models.User, error) {
	args := m.Called(ctx, user, password)
	out, _ := args.Get(0).(*models.User)
	return out, args.Error(1)
}

func (m *mockUsers) Update(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	out, _ := args.Get(0).(*models.User)
	return out, args.Error(1)
}

func (m *mockUsers) ChangePassword(ctx context.Context, actor *security.Claims, id int64, password string) error {
	return m.Called(ctx, actor, id, password).Error(0)
}

func (m *mockUsers) Get(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*models.User)
	return out, args.Error(1)
}

func (m *mockUsers) List(ctx context.Context, q models.ListQuery) (models.Page[*models.User], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(models.Page[*models.User]), args.Error(1)
}

func (m *mockUsers) Delete(ctx context.Context, actor *security.Claims, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockClients struct{ mock.Mock }

func (m *mockClients) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	args := m.Called(ctx, client)
	out, _ := args.Get(0).(*models.Client)
	return out, args.Error(1)
}

func (m *mockClients) Update(ctx context.Context, client *models.Client) (*models.Client, error) {
	args := m.Called(ctx, client)
	out, _ := args.Get(0).(*models.Client)
	return out, args.Error(1)
}

func (m *mockClients) Get(ctx context.Context, id int64) (*models.Client, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*models.Client)
	return out, args.Error(1)
}

func (m *mockClients) List(ctx context.Context, q models.ListQuery) (models.Page[*models.Client], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(models.Page[*models.Client]), args.Error(1)
}

func (m *mockClients) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockDrivers struct{ mock.Mock }

func (m *mockDrivers) Create(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	args := m.Called(ctx, driver)
	out, _ := args.Get(0).(*models.Driver)
	return out, args.Error(1)
}

func (m *mockDrivers) Update(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	args := m.Called(ctx, driver)
	out, _ := args.Get(0).(*models.Driver)
	return out, args.Error(1)
}

func (m *mockDrivers) Get(ctx context.Context, id int64) (*models.Driver, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*models.Driver)
	return out, args.Error(1)
}

func (m *mockDrivers) List(ctx context.Context, q models.ListQuery, active *bool) (models.Page[*models.Driver], error) {
	args := m.Called(ctx, q, active)
	return args.Get(0).(models.Page[*models.Driver]), args.Error(1)
}

func (m *mockDrivers) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockClasses struct{ mock.Mock }

func (m *mockClasses) Create(ctx context.Context, class *models.RideClass) (*models.RideClass, error) {
	args := m.Called(ctx, class)
	out, _ := args.Get(0).(*models.RideClass)
	return out, args.Error(1)
}

func (m *mockClasses) Update(ctx context.Context, class *models.RideClass) (*models.RideClass, error) {
	args := m.Called(ctx, class)
	out, _ := args.Get(0).(*models.RideClass)
	return out, args.Error(1)
}

func (m *mockClasses) Get(ctx context.Context, id int64) (*models.RideClass, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*models.RideClass)
	return out, args.Error(1)
}

func (m *mockClasses) List(ctx context.Context, q models.ListQuery) (models.Page[*models.RideClass], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(models.Page[*models.RideClass]), args.Error(1)
}

func (m *mockClasses) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockRides struct{ mock.Mock }

func (m *mockRides) Create(ctx context.Context, ride *models.Ride, operatorID int64) (*models.Ride, error) {
	args := m.Called(ctx, ride, operatorID)
	out, _ := args.Get(0).(*models.Ride)
	return out, args.Error(1)
}

func (m *mockRides) Update(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	args := m.Called(ctx, ride)
	out, _ := args.Get(0).(*models.Ride)
	return out, args.Error(1)
}

func (m *mockRides) Get(ctx context.Context, id int64) (*models.Ride, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*models.Ride)
	return out, args.Error(1)
}

func (m *mockRides) List(ctx context.Context, q models.ListQuery, f models.RideFilter) (models.Page[*models.Ride], error) {
	args := m.Called(ctx, q, f)
	return args.Get(0).(models.Page[*models.Ride]), args.Error(1)
}

func (m *mockRides) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRides) Quote(ctx context.Context, rideClassID int64, points []models.LatLng) (*models.Quote, error) {
	args := m.Called(ctx, rideClassID, points)
	out, _ := args.Get(0).(*models.Quote)
	return out, args.Error(1)
}

type mockFiles struct{ mock.Mock }

func (m *mockFiles) Upload(ctx context.Context, in service.Upload) (*models.FileMetadata, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*models.FileMetadata)
	return out, args.Error(1)
}

func (m *mockFiles) Get(ctx context.Context, id uuid.UUID) (*models.FileMetadata, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*models.FileMetadata)
	return out, args.Error(1)
}

func (m *mockFiles) Open(ctx context.Context, id uuid.UUID) (*models.FileMetadata, io.ReadCloser, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*models.FileMetadata)
	body, _ := args.Get(1).(io.ReadCloser)
	return out, body, args.Error(2)
}

func (m *mockFiles) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
