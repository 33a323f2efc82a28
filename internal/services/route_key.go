package services

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"time"
	"tour-route-service/internal/domain"
)

// RouteKey derives a stable cache key for a route request.
// Names are length-prefixed so ["ab","c"] and ["a","bc"] differ.
func RouteKey(destinations []domain.Location, names []string, budget time.Duration) string {
	h := sha256.New()

	var buf [8]byte
	writeUint := func(v uint64) {
		binary.BigEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	writeUint(uint64(len(destinations)))
	for _, d := range destinations {
		writeUint(math.Float64bits(d.X))
		writeUint(math.Float64bits(d.Y))
	}

	writeUint(uint64(len(names)))
	for _, name := range names {
		writeUint(uint64(len(name)))
		h.Write([]byte(name))
	}

	writeUint(uint64(budget))

	return "route:" + hex.EncodeToString(h.Sum(nil))
}
