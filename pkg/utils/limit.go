package utils

import (
	"fmt"
	"io"
)

// ReadAllLimit reads r fully but fails once max bytes are exceeded, so an
// oversized upload cannot be buffered into memory.
func ReadAllLimit(r io.Reader, max int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file exceeds %d bytes", max)
	}
	return b, nil
}
