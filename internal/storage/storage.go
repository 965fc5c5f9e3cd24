package storage

import "errors"

var ErrAccountExists = errors.New("account already exists")
