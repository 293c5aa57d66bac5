package hotdog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"

	"github.com/corona10/goimagehash"
)

// labelCachePrefix namespaces label lists in Config.Cache.
const labelCachePrefix = "hotdog_labels"

// Fingerprint returns a perceptual difference hash of img. It is computed
// from luminance gradients only: rescaled or recoloured copies of a photo
// share a fingerprint, so it groups near-duplicates but does not identify
// an upload.
func Fingerprint(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("%w: no image", ErrInvalidInput)
	}
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return "", fmt.Errorf("hotdog: fingerprint: %w", err)
	}
	return hash.ToString(), nil
}

// ContentDigest returns the hex SHA-256 of encoded image bytes.
// Label cache entries are keyed by it.
func ContentDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
