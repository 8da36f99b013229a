package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
)

// cacheKey fingerprints kind, image bytes, filename and request context.
// The filename is part of it because the local generators classify on it.
func cacheKey[T Result](job Job[T]) string {
	h := sha256.New()
	h.Write([]byte(job.Kind))
	h.Write([]byte{0})
	h.Write([]byte(job.TenantID))
	h.Write([]byte{0})
	if !job.Upload.Empty() {
		h.Write(job.Upload.Data)
	}
	h.Write([]byte{0})
	h.Write([]byte(job.Upload.Name()))
	h.Write([]byte{0})
	h.Write([]byte(job.CacheKey))
	return hex.EncodeToString(h.Sum(nil))
}
