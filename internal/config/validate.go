package config

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func orientationSet() []interface{} {
	out := make([]interface{}, 0, len(Orientations))
	for key := range Orientations {
		out = append(out, key)
	}
	return out
}

func platformSet() []interface{} {
	out := make([]interface{}, 0, len(Platforms))
	for key := range Platforms {
		out = append(out, key)
	}
	return out
}

// Validate enforces the descriptor contract on a normalized Project. Every
// violation is reported at once, wrapped in ErrInvalidConfig, and nothing is
// generated for a descriptor that fails here.
func (p *Project) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.AppID,
			validation.Required.Error("descriptor is missing the appid"),
			validation.By(requireDot)),
		validation.Field(&p.Sources,
			validation.Required.Error("descriptor has no source files")),
		validation.Field(&p.Orientation,
			validation.In(orientationSet()...).Error("not a valid orientation")),
		validation.Field(&p.Targets,
			validation.Each(validation.In(platformSet()...).Error("not a valid platform"))),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// requireDot checks that an app id has at least one period, since every
// platform splits it into an organization part and a product part.
func requireDot(value interface{}) error {
	id, _ := value.(string)
	if id != "" && !strings.Contains(id, ".") {
		return errors.New("must contain at least one period")
	}
	return nil
}
