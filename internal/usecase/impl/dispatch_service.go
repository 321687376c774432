package impl

import (
	"context"
	"log/slog"
	"strconv"

	"hailer/config"
	deliverycontext "hailer/internal/delivery/context"
	"hailer/internal/domain/entity"
	domainerrors "hailer/internal/domain/errors"
	"hailer/internal/domain/repository"
	"hailer/internal/domain/service"
	"hailer/internal/usecase"

	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dispatchService implements the DispatchUsecase interface.
type dispatchService struct {
	txManager   repository.TransactionManager
	driverRepo  repository.DriverRepository
	orderRepo   repository.OrderRepository
	notifier    service.NotificationService
	maxDistance float64
	logger      *slog.Logger
}

// DispatchServiceParams holds dependencies for dispatchService, injected by Fx.
type DispatchServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	DriverRepo repository.DriverRepository
	OrderRepo  repository.OrderRepository
	Notifier   service.NotificationService `optional:"true"`
	Config     *config.Config
	Logger     *slog.Logger
}

// NewDispatchService is the constructor for dispatchService.
func NewDispatchService(params DispatchServiceParams) usecase.DispatchUsecase {
	maxDistance := float64(config.DefaultMatchDistance)
	if params.Config != nil && params.Config.Matching != nil && params.Config.Matching.MaxDistance > 0 {
		maxDistance = params.Config.Matching.MaxDistance
	}

	return &dispatchService{
		txManager:   params.TxManager,
		driverRepo:  params.DriverRepo,
		orderRepo:   params.OrderRepo,
		notifier:    params.Notifier,
		maxDistance: maxDistance,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *dispatchService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// FindEligibleDrivers returns all active drivers of the requested class whose
// planar distance to the destination is strictly below the threshold, in
// discovery order. Distance is Euclidean in the store's scaled coordinate
// space, not great-circle.
func (srv *dispatchService) FindEligibleDrivers(ctx context.Context, input *usecase.FindDriversInput) ([]*entity.Driver, error) {
	srv.log(ctx).Debug("Finding eligible drivers",
		slog.String("carClass", input.CarClass.String()),
		slog.String("destination", input.Destination),
	)

	if !input.CarClass.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown car class")
	}

	destination, err := entity.ParseCoordinates(input.Destination)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrMalformedCoordinate, err.Error())
	}

	drivers, err := srv.driverRepo.ListActiveByCarClass(ctx, input.CarClass)
	if err != nil {
		if errors.Is(err, entity.ErrMalformedCoordinate) {
			return nil, errors.Wrap(domainerrors.ErrMalformedCoordinate, err.Error())
		}

		return nil, errors.Wrap(err, "failed to list active drivers")
	}

	eligible := make([]*entity.Driver, 0, len(drivers))
	for _, driver := range drivers {
		profile := driver.Profile()
		if profile == nil {
			return nil, errors.Wrapf(domainerrors.ErrDriverNotFound,
				"driver %d has no profile", driver.ID)
		}

		distance := planar.Distance(profile.Coordinates.Point(), destination.Point())
		if distance < srv.maxDistance {
			eligible = append(eligible, driver)
		}
	}

	srv.log(ctx).Debug("Eligible drivers found",
		slog.Int("candidates", len(drivers)),
		slog.Int("eligible", len(eligible)),
	)

	return eligible, nil
}

// RequestDriver assigns the rider's current open order to the named driver.
// The read and the conditional assignment share one transaction; the store's
// compare-and-swap write decides concurrent requests for the same order.
func (srv *dispatchService) RequestDriver(ctx context.Context, input *usecase.RequestDriverInput) error {
	srv.log(ctx).Info("Requesting driver",
		slog.Int64("driverID", input.DriverID),
		slog.Int64("riderID", input.RiderID),
	)

	var orderID int64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()
		driverRepo := repoFactory.DriverRepo()

		order, err := orderRepo.FindCurrentByRiderID(ctx, input.RiderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrNoOpenOrder, "request driver failed")
			}

			return errors.Wrap(err, "failed to find rider's open order")
		}

		if err := driverRepo.AssignOrder(ctx, order.ID, input.DriverID); err != nil {
			switch {
			case errors.Is(err, repository.ErrOrderAlreadyAssigned):
				return errors.Wrap(domainerrors.ErrInvalidOrderState, "order already assigned")
			case errors.Is(err, repository.ErrDriverNotFound):
				return errors.Wrap(domainerrors.ErrDriverNotFound, "request driver failed")
			default:
				return errors.Wrap(err, "failed to assign order to driver")
			}
		}

		orderID = order.ID

		return nil
	})

	if err != nil {
		return errors.Wrap(err, "failed to execute driver request transaction")
	}

	srv.notifyDriver(ctx, input.DriverID, orderID)

	return nil
}

// DriverRequested reports whether a driver has been requested for the order.
func (srv *dispatchService) DriverRequested(ctx context.Context, orderID int64) (bool, error) {
	requested, err := srv.orderRepo.DriverRequested(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return false, errors.Wrap(domainerrors.ErrOrderNotFound, "driver-requested check failed")
		}

		return false, errors.Wrap(err, "failed to check driver-requested flag")
	}

	return requested, nil
}

// notifyDriver sends a best-effort push about the new request. Failures are
// logged and never surface to the rider.
func (srv *dispatchService) notifyDriver(ctx context.Context, driverID, orderID int64) {
	if srv.notifier == nil {
		return
	}

	driver, err := srv.driverRepo.FindByID(ctx, driverID)
	if err != nil || driver.Profile() == nil || driver.Profile().DeviceToken == "" {
		// A missing driver record or token just skips the push.
		return
	}

	data := map[string]string{"orderId": strconv.FormatInt(orderID, 10)}
	if err := srv.notifier.SendSingleNotification(ctx, driver.Profile().DeviceToken, "New ride request", "A rider has requested you for a trip", data); err != nil {
		srv.log(ctx).Warn("Failed to push dispatch notification",
			slog.Int64("driverID", driverID),
			slog.Any("error", err),
		)
	}
}
