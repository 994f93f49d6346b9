package core

import (
	"github.com/pkg/errors"
)

// ensure creates name when the listing does not contain it
func ensure(rep *Report, kind Kind, name string, list func() ([]string, error), create func() error) (Outcome, error) {
	names, err := list()
	if err != nil {
		return Unchanged, errors.Wrapf(err, "could not list %v", kind)
	}

	if contains(names, name) {
		return rep.record(kind, name, Unchanged, "already exists"), nil
	}

	if err := create(); err != nil {
		return Unchanged, errors.Wrapf(err, "could not create %v %v", kind, name)
	}

	return rep.record(kind, name, Changed, "created"), nil
}

// ensureSetting applies a setting on name unless it is already satisfied
func ensureSetting(rep *Report, kind Kind, name, setting string, satisfied func() (bool, error), apply func() error) (Outcome, error) {
	ok, err := satisfied()
	if err != nil {
		return Unchanged, errors.Wrapf(err, "could not read %v of %v %v", setting, kind, name)
	}

	if ok {
		return rep.record(kind, name, Unchanged, "already has "+setting), nil
	}

	if err := apply(); err != nil {
		return Unchanged, errors.Wrapf(err, "could not set %v of %v %v", setting, kind, name)
	}

	return rep.record(kind, name, Changed, setting+" set"), nil
}

// require reports an action for the operator when name is missing. The
// appliance API offers no way to create it.
func require(rep *Report, kind Kind, name string, list func() ([]string, error)) (Outcome, error) {
	names, err := list()
	if err != nil {
		return Unchanged, errors.Wrapf(err, "could not list %v", kind)
	}

	if contains(names, name) {
		return rep.record(kind, name, Unchanged, "already exists"), nil
	}

	return rep.record(kind, name, ActionRequired, "need to upload and configure "+name), nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
