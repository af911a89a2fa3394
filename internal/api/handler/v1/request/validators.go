package request

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/icpcsp/compreg/internal/domain"
)

// RegisterValidators adds the domain tags used in binding struct tags.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("competition_role", func(fl validator.FieldLevel) bool {
		return domain.CompetitionUserRole(fl.Field().String()).Valid()
	}); err != nil {
		return fmt.Errorf("v.RegisterValidation(competition_role) -> %w", err)
	}

	if err := v.RegisterValidation("competition_level", func(fl validator.FieldLevel) bool {
		return domain.CompetitionLevel(fl.Field().String()).Valid()
	}); err != nil {
		return fmt.Errorf("v.RegisterValidation(competition_level) -> %w", err)
	}

	if err := v.RegisterValidation("team_status", func(fl validator.FieldLevel) bool {
		return domain.TeamStatus(fl.Field().String()).Valid()
	}); err != nil {
		return fmt.Errorf("v.RegisterValidation(team_status) -> %w", err)
	}

	return nil
}

// RegisterBindings installs the custom tags on gin's default validator.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return RegisterValidators(v)
}
