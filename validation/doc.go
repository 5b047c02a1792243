// Package validation checks decoded configuration, metadata and task
// descriptors.
//
// It supports struct tag validation (using the validator library) and
// programmatic validation with error collection for cross-field rules.
//
// # Struct Tag Validation
//
//	type Ref struct {
//	    File string `json:"file" validate:"required"`
//	}
//	err := validation.Validate(ref)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Check(len(sets) == numSplits, "train_set", "must have one entry per split")
//	err := v.Validate()
package validation
