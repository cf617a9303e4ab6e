package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("job_status", validateJobStatus); err != nil {
		return
	}
	if err := validate.RegisterValidation("job_type", validateJobType); err != nil {
		return
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateJobStatus(fl validator.FieldLevel) bool {
	status := fl.Field().String()
	validStatuses := []string{"pending", "interview", "declined", "offer"}

	for _, valid := range validStatuses {
		if status == valid {
			return true
		}
	}
	return false
}

func validateJobType(fl validator.FieldLevel) bool {
	jobType := fl.Field().String()
	validTypes := []string{"full-time", "part-time", "remote", "internship"}

	for _, valid := range validTypes {
		if jobType == valid {
			return true
		}
	}
	return false
}
