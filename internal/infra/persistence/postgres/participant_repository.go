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

// participantRepository implements the domain's ParticipantRepository interface using GORM.
type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository is the constructor for participantRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewParticipantRepository(db *gorm.DB) repository.ParticipantRepository {
	return &participantRepository{db: db}
}

// FindByID retrieves a single participant by their unique ID, preloading the driver profile.
func (repo *participantRepository) FindByID(ctx context.Context, id int64) (*entity.Participant, error) {
	var participantM model.ParticipantModel
	err := repo.db.WithContext(ctx).
		Preload("DriverProfile").
		First(&participantM, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrParticipantNotFound
		}

		return nil, errors.Wrap(err, "failed to find participant by id")
	}

	return toParticipantDomain(&participantM)
}

// FindByName retrieves a single participant by their unique name, preloading the driver profile.
func (repo *participantRepository) FindByName(ctx context.Context, name string) (*entity.Participant, error) {
	var participantM model.ParticipantModel
	err := repo.db.WithContext(ctx).
		Preload("DriverProfile").
		Where("name = ?", name).
		First(&participantM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrParticipantNotFound
		}

		return nil, errors.Wrap(err, "failed to find participant by name")
	}

	return toParticipantDomain(&participantM)
}

// Create persists a new participant and, for drivers, the associated profile.
// The store's unique index on name decides concurrent sign-up races.
func (repo *participantRepository) Create(ctx context.Context, participant *entity.Participant) error {
	participantM := fromParticipantDomain(participant)

	if err := repo.db.WithContext(ctx).Create(participantM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrNameTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create participant")
	}

	// Write generated keys and timestamps back to the entity.
	participant.ID = participantM.ID
	participant.CreatedAt = participantM.CreatedAt
	participant.UpdatedAt = participantM.UpdatedAt
	if participant.DriverProfile != nil && participantM.DriverProfile != nil {
		participant.DriverProfile.ParticipantID = participantM.DriverProfile.ParticipantID
		participant.DriverProfile.UpdatedAt = participantM.DriverProfile.UpdatedAt
	}

	return nil
}

// Update modifies an existing participant record.
func (repo *participantRepository) Update(ctx context.Context, participant *entity.Participant) error {
	participantM := fromParticipantDomain(participant)

	err := repo.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(participantM).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrNameTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update participant")
	}

	participant.UpdatedAt = participantM.UpdatedAt

	return nil
}

// UpdatePassword replaces only the password hash column. A full-record save
// here could revert a concurrently committed rename, so the write stays
// column-scoped. Touching zero rows means the participant does not exist.
func (repo *participantRepository) UpdatePassword(ctx context.Context, participantID int64, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ParticipantModel{}).
		Where("id = ?", participantID).
		Updates(map[string]any{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update participant password")
	}
	if result.RowsAffected == 0 {
		return repository.ErrParticipantNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toParticipantDomain converts a GORM ParticipantModel to a domain Participant entity.
// A driver profile with an unparsable stored coordinate is reported as
// entity.ErrMalformedCoordinate rather than silently dropped.
func toParticipantDomain(data *model.ParticipantModel) (*entity.Participant, error) {
	if data == nil {
		return nil, nil
	}

	profile, err := toDriverProfileDomain(data.DriverProfile)
	if err != nil {
		return nil, err
	}

	return &entity.Participant{
		ID:            data.ID,
		Name:          data.Name,
		PasswordHash:  data.PasswordHash,
		Email:         data.Email,
		Phone:         data.Phone,
		Role:          entity.Role(data.Role),
		DriverProfile: profile,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}, nil
}

// fromParticipantDomain converts a domain Participant entity to a GORM ParticipantModel.
func fromParticipantDomain(data *entity.Participant) *model.ParticipantModel {
	if data == nil {
		return nil
	}

	return &model.ParticipantModel{
		ID:            data.ID,
		Name:          data.Name,
		PasswordHash:  data.PasswordHash,
		Email:         data.Email,
		Phone:         data.Phone,
		Role:          data.Role.String(),
		DriverProfile: fromDriverProfileDomain(data.DriverProfile),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// toDriverProfileDomain converts a GORM DriverProfileModel to a domain DriverProfile entity.
func toDriverProfileDomain(data *model.DriverProfileModel) (*entity.DriverProfile, error) {
	if data == nil {
		return nil, nil
	}

	coords, err := entity.ParseCoordinates(data.Coordinates)
	if err != nil {
		return nil, errors.Wrapf(err, "driver %d has malformed stored coordinates", data.ParticipantID)
	}

	return &entity.DriverProfile{
		ParticipantID:  data.ParticipantID,
		CarClass:       entity.CarClass(data.CarClass),
		Coordinates:    coords,
		Active:         data.Active,
		CurrentOrderID: data.CurrentOrderID,
		DeviceToken:    data.DeviceToken,
		UpdatedAt:      data.UpdatedAt,
	}, nil
}

// fromDriverProfileDomain converts a domain DriverProfile entity to a GORM DriverProfileModel.
func fromDriverProfileDomain(data *entity.DriverProfile) *model.DriverProfileModel {
	if data == nil {
		return nil
	}

	return &model.DriverProfileModel{
		ParticipantID:  data.ParticipantID,
		CarClass:       data.CarClass.String(),
		Coordinates:    data.Coordinates.String(),
		Active:         data.Active,
		CurrentOrderID: data.CurrentOrderID,
		DeviceToken:    data.DeviceToken,
		UpdatedAt:      data.UpdatedAt,
	}
}
