package service

import (
	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/maps"
	"ridedispatch/pkg/notifier"
	"ridedispatch/pkg/security"
	"ridedispatch/storage"
)

type IServiceManager interface {
	Auth() AuthService
	User() UserService
	Client() ClientService
	Driver() DriverService
	RideClass() RideClassService
	ExtraOption() ExtraOptionService
	Ride() RideService
	File() FileService
}

// Deps holds the optional collaborators; nil members disable the matching feature.
type Deps struct {
	JWT                *security.JWTManager
	MaxRefreshSessions int
	Router             maps.Router
	RouteCache         storage.IRouteCache
	Objects            storage.IObjectStorage
	MaxUploadSize      int64
	Notifier           notifier.Notifier
}

type service struct {
	authService        AuthService
	userService        UserService
	clientService      ClientService
	driverService      DriverService
	rideClassService   RideClassService
	extraOptionService ExtraOptionService
	rideService        RideService
	fileService        FileService
}

func New(stg storage.IStorage, deps Deps, log logger.ILogger) IServiceManager {
	return &service{
		authService:        NewAuthService(stg, deps.JWT, deps.MaxRefreshSessions, log),
		userService:        NewUserService(stg, log),
		clientService:      NewClientService(stg, log),
		driverService:      NewDriverService(stg, log),
		rideClassService:   NewRideClassService(stg, log),
		extraOptionService: NewExtraOptionService(stg, log),
		rideService:        NewRideService(stg, deps.Router, deps.RouteCache, deps.Notifier, log),
		fileService:        NewFileService(stg, deps.Objects, deps.MaxUploadSize, log),
	}
}

func (s *service) Auth() AuthService               { return s.authService }
func (s *service) User() UserService               { return s.userService }
func (s *service) Client() ClientService           { return s.clientService }
func (s *service) Driver() DriverService           { return s.driverService }
func (s *service) RideClass() RideClassService     { return s.rideClassService }
func (s *service) ExtraOption() ExtraOptionService { return s.extraOptionService }
func (s *service) Ride() RideService               { return s.rideService }
func (s *service) File() FileService               { return s.fileService }
