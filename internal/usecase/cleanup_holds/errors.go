package cleanup_holds

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("cleanup_holds: internal error")
