package storage

import "errors"

var (
	ErrorBookNotFound = errors.New("book not found")
	ErrorUserNotFound = errors.New("user not found")
	ErrorUserExists   = errors.New("user already exists")
)
