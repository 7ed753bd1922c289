package fu

import (
	"golang.org/x/xerrors"
)

/*
ErrConfig marks fatal configuration errors like an unsupported transform,
split policy or field type
*/
var ErrConfig = xerrors.New("configuration error")

/*
ErrData marks fatal data integrity errors like an empty dataset or failed
truncation
*/
var ErrData = xerrors.New("data integrity error")

func ConfigErrorf(f string, a ...interface{}) error {
	return xerrors.Errorf(f+": %w", append(a, ErrConfig)...)
}

func DataErrorf(f string, a ...interface{}) error {
	return xerrors.Errorf(f+": %w", append(a, ErrData)...)
}
