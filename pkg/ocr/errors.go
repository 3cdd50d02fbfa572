package ocr

import "errors"

// ErrEngineUnavailable is returned when Tesseract is missing or lacks the
// requested language. Batch callers abort before touching any image.
var ErrEngineUnavailable = errors.New("tesseract unavailable")
