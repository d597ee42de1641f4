package gacha

import "errors"

var (
	ErrPackNotFound = errors.New("pack not found")
	ErrEmptyPack    = errors.New("pack has no cards")
)
