package fingerprint

import (
	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Of returns a 64-bit content hash of data.
func Of(data []byte) (uint64, error) {
	h, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	if _, err = h.Write(data); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// Equal reports whether a and b hash the same.
func Equal(a, b []byte) (bool, error) {
	ha, err := Of(a)
	if err != nil {
		return false, err
	}
	hb, err := Of(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}
