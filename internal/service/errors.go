package service

import "errors"

var (
	// ErrInvalidToken is deliberately generic: a mismatched tag must not
	// reveal which field broke the link.
	ErrInvalidToken = errors.New("invalid or expired link")

	// ErrDispatchFailed marks a downstream email failure. The link stays
	// valid, so the caller may simply retry.
	ErrDispatchFailed = errors.New("notification dispatch failed")
)
