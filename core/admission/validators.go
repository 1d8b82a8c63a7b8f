package admission

import (
	"github.com/go-playground/validator/v10"

	"github.com/littleheartschool/backend/core"
)

var (
	categoryTag  = "category"
	categoryText = "invalid admission category"

	priorityTag  = "priority"
	priorityText = "invalid priority"

	statusTag  = "status"
	statusText = "invalid application status"
)

func init() {
	_ = core.Validate.RegisterValidation(categoryTag, categoryValidation)
	core.RegisterCustomTranslation(core.Validate, core.Translator, categoryTag, categoryText)

	_ = core.Validate.RegisterValidation(priorityTag, priorityValidation)
	core.RegisterCustomTranslation(core.Validate, core.Translator, priorityTag, priorityText)

	_ = core.Validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(core.Validate, core.Translator, statusTag, statusText)
}

func categoryValidation(fl validator.FieldLevel) bool {
	return Category(fl.Field().String()).Valid()
}

func priorityValidation(fl validator.FieldLevel) bool {
	return Priority(fl.Field().String()).Valid()
}

func statusValidation(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).Valid()
}
