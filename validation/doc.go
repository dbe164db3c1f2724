// Package validation checks construction parameters and configuration
// structs, reporting failures as configuration errors.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    Workers int `mapstructure:"workers" validate:"gte=0,lte=4096"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    Min("workers", n, 1).
//	    Custom(end >= begin-1, "end", "must not precede begin by more than one").
//	    Validate()
package validation
