package common

import (
	"github.com/inhies/go-bytesize"
)

// GetSize renders a byte count as "1.50MB".
func GetSize(sizeVal int64) string {
	size := bytesize.New(float64(sizeVal))
	return size.String()
}

// ParseSize parses a human size such as "5MB" into bytes.
func ParseSize(s string) (int64, error) {
	b, err := bytesize.Parse(s)
	if err != nil {
		return 0, err
	}
	return int64(b), nil
}
