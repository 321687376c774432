// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"hailer/config"
	deliverycontext "hailer/internal/delivery/context"
	"hailer/internal/domain/entity"
	domainerrors "hailer/internal/domain/errors"
	"hailer/internal/domain/repository"
	"hailer/internal/domain/service"
	"hailer/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager       repository.TransactionManager
	participantRepo repository.ParticipantRepository
	driverRepo      repository.DriverRepository
	hasher          service.PasswordHasher
	validator       service.CredentialValidator
	tokenService    service.TokenService
	logger          *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager       repository.TransactionManager
	ParticipantRepo repository.ParticipantRepository
	DriverRepo      repository.DriverRepository
	Hasher          service.PasswordHasher
	Validator       service.CredentialValidator
	TokenService    service.TokenService
	Config          *config.Config
	Logger          *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:       params.TxManager,
		participantRepo: params.ParticipantRepo,
		driverRepo:      params.DriverRepo,
		hasher:          params.Hasher,
		validator:       params.Validator,
		tokenService:    params.TokenService,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignUp registers a new rider account. The existence check and the insert run
// in one transaction; the store's unique name index backstops the check, so a
// concurrent sign-up with the same name surfaces as the same conflict error.
func (srv *accountService) SignUp(ctx context.Context, input *usecase.SignUpInput) (*usecase.SignUpOutput, error) {
	srv.log(ctx).Info("Starting sign-up", slog.String("name", input.Name))

	var created *entity.Participant
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		participantRepo := repoFactory.ParticipantRepo()

		_, err := participantRepo.FindByName(ctx, input.Name)
		if err == nil {
			return errors.Wrap(domainerrors.ErrNameTaken, "sign-up rejected")
		}
		if !errors.Is(err, repository.ErrParticipantNotFound) {
			return errors.Wrap(err, "failed to check name availability")
		}

		if err := srv.validator.ValidateCredentials(input.Password, input.Email, input.Phone); err != nil {
			srv.log(ctx).Warn("Credential validation failed during sign-up", slog.String("name", input.Name), slog.Any("error", err))

			return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
		}

		hashedPassword, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password during sign-up")
		}

		newParticipant := &entity.Participant{
			Name:         input.Name,
			PasswordHash: hashedPassword,
			Email:        input.Email,
			Phone:        input.Phone,
			Role:         entity.RoleRider,
		}

		if err := participantRepo.Create(ctx, newParticipant); err != nil {
			if errors.Is(err, repository.ErrNameTaken) {
				// Lost the race against a concurrent sign-up; the unique
				// index decided the winner.
				return errors.Wrap(domainerrors.ErrNameTaken, "sign-up rejected")
			}

			return errors.Wrap(err, "failed to create participant during sign-up")
		}

		created = newParticipant

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute sign-up transaction")
	}

	srv.log(ctx).Debug("Sign-up completed", slog.Int64("participantID", created.ID))

	return &usecase.SignUpOutput{Participant: created}, nil
}

// SignIn authenticates a participant by name and password. A driver signing in
// is marked active as a side effect.
func (srv *accountService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.SignInOutput, error) {
	srv.log(ctx).Debug("Starting sign-in", slog.String("name", input.Name))

	participant, err := srv.participantRepo.FindByName(ctx, input.Name)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return nil, errors.Wrap(domainerrors.ErrParticipantNotFound, "sign-in failed")
		}

		return nil, errors.Wrap(err, "failed to find participant by name")
	}

	// bcrypt check is CPU-bound; kept outside any transaction.
	if !srv.hasher.Check(input.Password, participant.PasswordHash) {
		srv.log(ctx).Warn("Sign-in failed", slog.String("name", input.Name), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "sign-in failed")
	}

	if participant.IsDriver() {
		if err := srv.driverRepo.SetActive(ctx, participant.ID, true); err != nil {
			return nil, errors.Wrap(err, "failed to mark driver active on sign-in")
		}
		srv.log(ctx).Info("Driver signed in", slog.Int64("participantID", participant.ID))
	}

	accessToken, err := srv.tokenService.Generate(participant.ID, entity.Roles{participant.Role}.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Debug("Participant signed in", slog.Int64("participantID", participant.ID))

	return &usecase.SignInOutput{Participant: participant, AccessToken: accessToken}, nil
}

// ChangeName renames a participant. The taken-name check and the update share
// one transaction, with the unique index as the final arbiter.
func (srv *accountService) ChangeName(ctx context.Context, input *usecase.ChangeNameInput) (*entity.Participant, error) {
	srv.log(ctx).Info("Changing participant name", slog.Int64("participantID", input.ParticipantID))

	var renamed *entity.Participant
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		participantRepo := repoFactory.ParticipantRepo()

		participant, err := participantRepo.FindByID(ctx, input.ParticipantID)
		if err != nil {
			if errors.Is(err, repository.ErrParticipantNotFound) {
				return errors.Wrap(domainerrors.ErrParticipantNotFound, "change name failed")
			}

			return errors.Wrap(err, "failed to find participant by id")
		}

		holder, err := participantRepo.FindByName(ctx, input.NewName)
		if err == nil && holder.ID != participant.ID {
			return errors.Wrap(domainerrors.ErrNameTaken, "change name rejected")
		}
		if err != nil && !errors.Is(err, repository.ErrParticipantNotFound) {
			return errors.Wrap(err, "failed to check name availability")
		}

		participant.Name = input.NewName
		if err := participantRepo.Update(ctx, participant); err != nil {
			if errors.Is(err, repository.ErrNameTaken) {
				return errors.Wrap(domainerrors.ErrNameTaken, "change name rejected")
			}

			return errors.Wrap(err, "failed to update participant name")
		}

		renamed = participant

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute change-name transaction")
	}

	return renamed, nil
}

// ChangePassword replaces a participant's password after verifying the current
// one and the repeat confirmation. The verify and the write run in one
// transaction, and the write touches only the password hash column so a
// concurrently committed rename is never reverted.
func (srv *accountService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) (*entity.Participant, error) {
	srv.log(ctx).Info("Changing participant password", slog.Int64("participantID", input.ParticipantID))

	var updated *entity.Participant
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		participantRepo := repoFactory.ParticipantRepo()

		participant, err := participantRepo.FindByID(ctx, input.ParticipantID)
		if err != nil {
			if errors.Is(err, repository.ErrParticipantNotFound) {
				return errors.Wrap(domainerrors.ErrParticipantNotFound, "change password failed")
			}

			return errors.Wrap(err, "failed to find participant by id")
		}

		if !srv.hasher.Check(input.Current, participant.PasswordHash) {
			srv.log(ctx).Warn("Current password mismatch on password change", slog.Int64("participantID", input.ParticipantID))

			return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password mismatch")
		}

		if err := srv.validator.ValidatePassword(input.NewPassword); err != nil {
			return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
		}

		if input.NewPassword != input.RepeatNewPassword {
			return errors.Wrap(domainerrors.ErrValidationFailed, "new passwords do not match")
		}

		hashedPassword, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash new password")
		}

		if err := participantRepo.UpdatePassword(ctx, participant.ID, hashedPassword); err != nil {
			if errors.Is(err, repository.ErrParticipantNotFound) {
				return errors.Wrap(domainerrors.ErrParticipantNotFound, "change password failed")
			}

			return errors.Wrap(err, "failed to persist new password")
		}

		participant.PasswordHash = hashedPassword
		updated = participant

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute change-password transaction")
	}

	return updated, nil
}
