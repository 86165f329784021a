package memory

import "errors"

var ErrDuplicateID = errors.New("id already exists")
