package validator

import "github.com/go-playground/validator/v10"

// Radius bounds for spatial queries. The lower bound rejects radii under
// the coordinate rounding resolution; the upper bound caps a query at the
// metropolitan scale, the widest corridor a route query needs.
const (
	MinRadiusKm = 0.1
	MaxRadiusKm = 50.0
)

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("lat", inRange(-90, 90))
	validate.RegisterValidation("lng", inRange(-180, 180))
	validate.RegisterValidation("radius_km", inRange(MinRadiusKm, MaxRadiusKm))
}

func inRange(min, max float64) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v := fl.Field().Float()
		return v >= min && v <= max
	}
}
