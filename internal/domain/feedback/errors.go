package feedback

import "errors"

var ErrUnknownCategory = errors.New("unknown feedback category")
