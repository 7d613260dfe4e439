package importer

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration indicates the Discogs account settings are
// incomplete. Checked before any network call.
var ErrInvalidConfiguration = errors.New("discogs username, token and user agent must be configured")

// ErrInvalidProfile indicates the username/token pair failed validation
// against the profile endpoint. The store is never touched in this case.
var ErrInvalidProfile = errors.New("discogs profile validation failed: account and token do not match")

// Stage names the part of an import run that failed.
type Stage string

const (
	StageProfile    Stage = "profile validation"
	StageTruncate   Stage = "truncate"
	StageCollection Stage = "collection import"
	StageWantlist   Stage = "wantlist import"
)

// StageError wraps a failure with the import stage it happened in, so the
// caller can report which part of the run went wrong.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("import failed during %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
