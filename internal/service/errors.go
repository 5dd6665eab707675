package service

import "errors"

// Expected business outcomes. Handlers map these to response codes; the
// caller decides whether to retry (e.g. after earning more money).
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNotOwner           = errors.New("you do not own this resource")
	ErrAlreadyTraining    = errors.New("idol is still training")
	ErrAlreadyCompleted   = errors.New("promotion already completed")
	ErrNotReady           = errors.New("promotion is still running")
	ErrInvalidSelection   = errors.New("selection out of range")
	ErrPackExpired        = errors.New("pack offer expired or already redeemed")
	ErrMaxLevel           = errors.New("upgrade already at max level")
	ErrGroupSizeInvalid   = errors.New("group must keep between 2 and 7 members")
	ErrIdolUnavailable    = errors.New("idol is unavailable for this action")
	ErrSongNotReady       = errors.New("song is still in production")
	ErrRequirementsNotMet = errors.New("fan or reputation requirement not met")
	ErrSongGroupMismatch  = errors.New("song does not belong to this group")
	ErrCredentialsInvalid = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrBusy               = errors.New("system busy, please retry")
)
