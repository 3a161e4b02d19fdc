package jvmdeps

import (
	"errors"

	"github.com/hashicorp/go-multierror"
)

// A Model is the top-level value a manifest decodes to: its declared
// Dependencies, and optionally Replacements and Options.
type Model struct {
	Dependencies Dependencies
	Replacements *Replacements
	Options      *Options
}

// optionsOrDefault combines o with DefaultOptions so Policy() and the other
// accessors never need a nil receiver.
func optionsOrDefault(o *Options) Options {
	if o == nil {
		return DefaultOptions()
	}
	return o.Combine(DefaultOptions())
}

// Combine combines Options first to derive the effective policy, then
// Dependencies under that policy, then Replacements; errors from the
// Dependencies and Replacements steps are accumulated together (never
// short-circuited against each other).
func Combine(a, b Model) (Model, error) {
	combinedOptions := combineOptionalOptions(a.Options, b.Options)
	policy := optionsOrDefault(combinedOptions).Policy()

	var errs *multierror.Error

	deps, err := CombineDependencies(policy, a.Dependencies, b.Dependencies)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	repl, replErrs := combineOptionalReplacements(a.Replacements, b.Replacements)
	for _, e := range replErrs {
		errs = multierror.Append(errs, e)
	}

	return Model{
		Dependencies: deps,
		Replacements: repl,
		Options:      combinedOptions,
	}, errs.ErrorOrNil()
}

func combineOptionalOptions(a, b *Options) *Options {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	combined := a.Combine(*b)
	return &combined
}

// CombineAll left-folds Combine over a non-empty list of Models: the fold
// aborts at the first failing pairwise combine, though each pairwise combine
// itself still collects every error from its own Dependencies/Replacements
// steps.
func CombineAll(models ...Model) (Model, error) {
	if len(models) == 0 {
		return Model{}, errors.New("jvmdeps: CombineAll requires at least one model")
	}
	acc := models[0]
	for _, m := range models[1:] {
		merged, err := Combine(acc, m)
		if err != nil {
			return Model{}, err
		}
		acc = merged
	}
	return acc, nil
}
