package release

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every entry for completeness and well-formed URLs and
// digests.
func (c Catalog) Validate() error {
	var errs []error
	seen := make(map[string]struct{}, len(c))
	for i, rel := range c {
		if err := validate.Struct(rel); err != nil {
			errs = append(errs, fmt.Errorf("release %d (%s): %w", i, rel, err))
			continue
		}
		if rel.Checksum == "" && !rel.Unverified {
			errs = append(errs, fmt.Errorf("release %d (%s): checksum is required", i, rel))
		}
		if !rel.Version.HasPatch {
			errs = append(errs, fmt.Errorf("release %d (%s): version has no patch component", i, rel))
		}
		key := rel.String()
		if _, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("release %d: duplicate entry %s", i, key))
		}
		seen[key] = struct{}{}
	}
	return errors.Join(errs...)
}

// Unverified returns the entries that carry no published digest.
func (c Catalog) Unverified() Catalog {
	var out Catalog
	for _, rel := range c {
		if rel.Unverified {
			out = append(out, rel)
		}
	}
	return out
}
