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

// driverRepository implements the domain's DriverRepository interface using GORM.
type driverRepository struct {
	db *gorm.DB
}

// NewDriverRepository is the constructor for driverRepository.
func NewDriverRepository(db *gorm.DB) repository.DriverRepository {
	return &driverRepository{db: db}
}

// FindByID retrieves a single driver with their profile.
func (repo *driverRepository) FindByID(ctx context.Context, driverID int64) (*entity.Driver, error) {
	var participantM model.ParticipantModel
	err := repo.db.WithContext(ctx).
		Preload("DriverProfile").
		Where("id = ? AND role = ?", driverID, entity.RoleDriver.String()).
		First(&participantM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDriverNotFound
		}

		return nil, errors.Wrap(err, "failed to find driver by id")
	}

	participant, err := toParticipantDomain(&participantM)
	if err != nil {
		return nil, err
	}

	return &entity.Driver{Participant: *participant}, nil
}

// ListActiveByCarClass retrieves all active drivers of the given vehicle
// class. Insertion order of the profiles is preserved so callers see drivers
// in store discovery order.
func (repo *driverRepository) ListActiveByCarClass(ctx context.Context, class entity.CarClass) ([]*entity.Driver, error) {
	var participantsM []*model.ParticipantModel
	err := repo.db.WithContext(ctx).
		Joins("JOIN driver_profiles ON driver_profiles.participant_id = participants.id").
		Where("driver_profiles.active = ? AND driver_profiles.car_class = ?", true, class.String()).
		Preload("DriverProfile").
		Order("participants.id").
		Find(&participantsM).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active drivers")
	}

	drivers := make([]*entity.Driver, 0, len(participantsM))
	for _, participantM := range participantsM {
		participant, err := toParticipantDomain(participantM)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, &entity.Driver{Participant: *participant})
	}

	return drivers, nil
}

// SetActive toggles whether the driver is accepting rides.
func (repo *driverRepository) SetActive(ctx context.Context, driverID int64, active bool) error {
	return repo.updateProfile(ctx, driverID, map[string]any{"active": active})
}

// AssignOrder atomically binds the order to the driver. The conditional
// update only succeeds while the order is still unassigned in its initial
// state, so exactly one of any set of concurrent requests wins.
func (repo *driverRepository) AssignOrder(ctx context.Context, orderID, driverID int64) error {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.DriverProfileModel{}).
		Where("participant_id = ?", driverID).
		Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "failed to check driver existence")
	}
	if count == 0 {
		return repository.ErrDriverNotFound
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ? AND driver_id IS NULL", orderID, entity.OrderCreated.String()).
		Updates(map[string]any{
			"driver_id":        driverID,
			"driver_requested": true,
			"status":           entity.OrderRequested.String(),
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to assign order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderAlreadyAssigned
	}

	return nil
}

// SetCurrentOrder records (or clears, with nil) the order a driver is serving.
func (repo *driverRepository) SetCurrentOrder(ctx context.Context, driverID int64, orderID *int64) error {
	return repo.updateProfile(ctx, driverID, map[string]any{"current_order_id": orderID})
}

// SetCoordinates updates the driver's last reported position.
func (repo *driverRepository) SetCoordinates(ctx context.Context, driverID int64, coords entity.Coordinates) error {
	return repo.updateProfile(ctx, driverID, map[string]any{"coordinates": coords.String()})
}

// SetDeviceToken stores the driver's push-notification device token.
func (repo *driverRepository) SetDeviceToken(ctx context.Context, driverID int64, token string) error {
	return repo.updateProfile(ctx, driverID, map[string]any{"device_token": token})
}

// updateProfile applies a partial update to the driver's profile row.
// Touching zero rows means the driver does not exist.
func (repo *driverRepository) updateProfile(ctx context.Context, driverID int64, fields map[string]any) error {
	fields["updated_at"] = time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.DriverProfileModel{}).
		Where("participant_id = ?", driverID).
		Updates(fields)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update driver profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDriverNotFound
	}

	return nil
}
