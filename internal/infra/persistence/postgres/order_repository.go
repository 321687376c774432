package postgres

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"hailer/internal/domain/entity"
	domainerrors "hailer/internal/domain/errors"
	"hailer/internal/domain/repository"
	"hailer/internal/infra/persistence/model"
)

// orderRepository implements the domain's OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// FindByID retrieves a single order.
func (repo *orderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).First(&orderM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM)
}

// FindCurrentByRiderID retrieves the rider's open (non-terminal) order. A
// rider has at most one order in flight, so the earliest open row is the
// current one.
func (repo *orderRepository) FindCurrentByRiderID(ctx context.Context, riderID int64) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Where("rider_id = ? AND status <> ?", riderID, entity.OrderCompleted.String()).
		Order("id").
		First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find rider's open order")
	}

	return toOrderDomain(&orderM)
}

// DriverRequested reports whether a driver has been requested for the order.
func (repo *orderRepository) DriverRequested(ctx context.Context, orderID int64) (bool, error) {
	var requested bool
	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("driver_requested").
		Where("id = ?", orderID).
		Take(&requested).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, repository.ErrOrderNotFound
		}

		return false, errors.Wrap(err, "failed to read driver-requested flag")
	}

	return requested, nil
}

// Transition advances the order from one state to its successor as a single
// compare-and-swap write. The status predicate in the UPDATE makes the
// transition atomic under concurrent callers without row locks.
func (repo *orderRepository) Transition(ctx context.Context, orderID int64, from, to entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", orderID, from.String()).
		Updates(map[string]any{
			"status":     to.String(),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to transition order")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Zero rows touched: distinguish a missing order from a state conflict.
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "failed to check order existence")
	}
	if count == 0 {
		return repository.ErrOrderNotFound
	}

	return repository.ErrStateConflict
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) (*entity.Order, error) {
	if data == nil {
		return nil, nil
	}

	destination, err := entity.ParseCoordinates(data.Destination)
	if err != nil {
		return nil, errors.Wrapf(err, "order %d has malformed stored destination", data.ID)
	}

	return &entity.Order{
		ID:              data.ID,
		RiderID:         data.RiderID,
		Destination:     destination,
		DriverID:        data.DriverID,
		Status:          entity.OrderStatus(data.Status),
		DriverRequested: data.DriverRequested,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}, nil
}
