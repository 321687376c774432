package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"hailer/config"
	"hailer/internal/domain/service"
)

// credentialValidator checks sign-up credentials against the configured
// policy using go-playground/validator tag expressions.
type credentialValidator struct {
	validate *validator.Validate
	policy   *config.CredentialPolicyConfig
}

// NewCredentialValidator is the constructor for credentialValidator.
func NewCredentialValidator(cfg *config.Config) service.CredentialValidator {
	return &credentialValidator{
		validate: validator.New(),
		policy:   cfg.Credential,
	}
}

func (v *credentialValidator) ValidateCredentials(password, email, phone string) error {
	if err := v.ValidatePassword(password); err != nil {
		return err
	}

	if err := v.validate.Var(email, v.policy.EmailRule); err != nil {
		return errors.Wrap(err, "invalid email")
	}

	if err := v.validate.Var(phone, v.policy.PhoneRule); err != nil {
		return errors.Wrap(err, "invalid phone")
	}

	return nil
}

func (v *credentialValidator) ValidatePassword(password string) error {
	rule := fmt.Sprintf("required,min=%d,max=%d", v.policy.MinPasswordLength, v.policy.MaxPasswordLength)
	if err := v.validate.Var(password, rule); err != nil {
		return errors.Wrap(err, "invalid password")
	}

	return nil
}
