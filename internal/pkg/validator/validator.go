package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/garden-shops-service/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// shop_category - id из статического набора категорий
	_ = validate.RegisterValidation("shop_category", func(fl validator.FieldLevel) bool {
		return domain.IsValidShopCategory(fl.Field().String())
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
