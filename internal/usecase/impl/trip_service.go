package impl

import (
	"context"
	"log/slog"

	deliverycontext "hailer/internal/delivery/context"
	"hailer/internal/domain/entity"
	domainerrors "hailer/internal/domain/errors"
	"hailer/internal/domain/repository"
	"hailer/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// tripService implements the TripUsecase interface.
type tripService struct {
	txManager  repository.TransactionManager
	driverRepo repository.DriverRepository
	orderRepo  repository.OrderRepository
	logger     *slog.Logger
}

// TripServiceParams holds dependencies for tripService, injected by Fx.
type TripServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	DriverRepo repository.DriverRepository
	OrderRepo  repository.OrderRepository
	Logger     *slog.Logger
}

// NewTripService is the constructor for tripService.
func NewTripService(params TripServiceParams) usecase.TripUsecase {
	return &tripService{
		txManager:  params.TxManager,
		driverRepo: params.DriverRepo,
		orderRepo:  params.OrderRepo,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *tripService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AcceptOrder moves the order REQUESTED -> ASSIGNED and records it as the
// driver's current order. Only the driver the order was requested to may accept.
func (srv *tripService) AcceptOrder(ctx context.Context, input *usecase.AcceptOrderInput) (*entity.Order, error) {
	srv.log(ctx).Info("Driver accepting order",
		slog.Int64("driverID", input.DriverID),
		slog.Int64("orderID", input.OrderID),
	)

	var accepted *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()
		driverRepo := repoFactory.DriverRepo()

		order, err := orderRepo.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "accept order failed")
			}

			return errors.Wrap(err, "failed to find order")
		}

		if order.DriverID == nil || *order.DriverID != input.DriverID {
			return errors.Wrap(domainerrors.ErrForbidden, "order was not requested to this driver")
		}

		if err := srv.transition(ctx, orderRepo, input.OrderID, entity.OrderRequested, entity.OrderAssigned); err != nil {
			return err
		}

		if err := driverRepo.SetCurrentOrder(ctx, input.DriverID, &input.OrderID); err != nil {
			return errors.Wrap(err, "failed to record driver's current order")
		}

		order.Status = entity.OrderAssigned
		accepted = order

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute accept-order transaction")
	}

	return accepted, nil
}

// StartTrip moves the order ASSIGNED -> IN_PROGRESS. Any other prior state is
// an invalid-state outcome.
func (srv *tripService) StartTrip(ctx context.Context, orderID int64) error {
	srv.log(ctx).Info("Starting trip", slog.Int64("orderID", orderID))

	if err := srv.transition(ctx, srv.orderRepo, orderID, entity.OrderAssigned, entity.OrderInProgress); err != nil {
		return errors.Wrap(err, "failed to start trip")
	}

	return nil
}

// CompleteTrip moves the order IN_PROGRESS -> COMPLETED and frees the driver.
func (srv *tripService) CompleteTrip(ctx context.Context, orderID int64) error {
	srv.log(ctx).Info("Completing trip", slog.Int64("orderID", orderID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()
		driverRepo := repoFactory.DriverRepo()

		order, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "complete trip failed")
			}

			return errors.Wrap(err, "failed to find order")
		}

		if err := srv.transition(ctx, orderRepo, orderID, entity.OrderInProgress, entity.OrderCompleted); err != nil {
			return err
		}

		if order.DriverID != nil {
			if err := driverRepo.SetCurrentOrder(ctx, *order.DriverID, nil); err != nil {
				return errors.Wrap(err, "failed to clear driver's current order")
			}
		}

		return nil
	})

	if err != nil {
		return errors.Wrap(err, "failed to execute complete-trip transaction")
	}

	return nil
}

// SetAvailability toggles the driver's active flag.
func (srv *tripService) SetAvailability(ctx context.Context, input *usecase.SetAvailabilityInput) error {
	srv.log(ctx).Debug("Setting driver availability",
		slog.Int64("driverID", input.DriverID),
		slog.Bool("active", input.Active),
	)

	if err := srv.driverRepo.SetActive(ctx, input.DriverID, input.Active); err != nil {
		if errors.Is(err, repository.ErrDriverNotFound) {
			return errors.Wrap(domainerrors.ErrDriverNotFound, "set availability failed")
		}

		return errors.Wrap(err, "failed to set driver availability")
	}

	return nil
}

// UpdateLocation records the driver's last reported position.
func (srv *tripService) UpdateLocation(ctx context.Context, input *usecase.UpdateLocationInput) error {
	coords := entity.Coordinates{Lat: input.Lat, Lon: input.Lon}

	if err := srv.driverRepo.SetCoordinates(ctx, input.DriverID, coords); err != nil {
		if errors.Is(err, repository.ErrDriverNotFound) {
			return errors.Wrap(domainerrors.ErrDriverNotFound, "update location failed")
		}

		return errors.Wrap(err, "failed to update driver location")
	}

	return nil
}

// RegisterDevice stores the driver's FCM device token for dispatch pushes.
func (srv *tripService) RegisterDevice(ctx context.Context, input *usecase.RegisterDeviceInput) error {
	if err := srv.driverRepo.SetDeviceToken(ctx, input.DriverID, input.Token); err != nil {
		if errors.Is(err, repository.ErrDriverNotFound) {
			return errors.Wrap(domainerrors.ErrDriverNotFound, "register device failed")
		}

		return errors.Wrap(err, "failed to store device token")
	}

	return nil
}

// transition maps the repository's compare-and-swap outcomes onto domain errors.
func (srv *tripService) transition(ctx context.Context, orderRepo repository.OrderRepository, orderID int64, from, to entity.OrderStatus) error {
	if err := orderRepo.Transition(ctx, orderID, from, to); err != nil {
		switch {
		case errors.Is(err, repository.ErrStateConflict):
			return errors.Wrapf(domainerrors.ErrInvalidOrderState, "order %d is not %s", orderID, from)
		case errors.Is(err, repository.ErrOrderNotFound):
			return errors.Wrap(domainerrors.ErrOrderNotFound, "order lookup failed")
		default:
			return errors.Wrapf(err, "failed to transition order %d", orderID)
		}
	}

	return nil
}
