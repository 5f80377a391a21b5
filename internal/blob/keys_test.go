package blob

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var suffixPattern = regexp.MustCompile(`^[0-9a-z]{7}$`)

func TestRandomSuffix_Format(t *testing.T) {
	for i := 0; i < 200; i++ {
		assert.Regexp(t, suffixPattern, RandomSuffix())
	}
}

func TestRandomSuffix_DistinctWithinSameMillisecond(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		key := ObjectKey("uploads", "original", Stamp{Millis: 1700000000000, Suffix: RandomSuffix()}, "png")
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestFolder(t *testing.T) {
	assert.Equal(t, "uploads", Folder(""))
	assert.Equal(t, "uploads", Folder("   "))
	assert.Equal(t, "orders/cs_test_123", Folder("cs_test_123"))
	assert.Equal(t, "orders/a-b", Folder("a/b"))
}

func TestObjectKey(t *testing.T) {
	stamp := Stamp{Millis: 1736950000000, Suffix: "k3j9x0a"}

	assert.Equal(t, "uploads/original-1736950000000-k3j9x0a.jpg", ObjectKey("uploads", "original", stamp, "jpg"))
	assert.Equal(t, "orders/42/processed-1736950000000-k3j9x0a.png", ObjectKey("orders/42", "processed", stamp, ""))
	assert.Equal(t, "uploads/image-1736950000000-k3j9x0a.png", ObjectKey("uploads", "", stamp, "png"))
	assert.Equal(t, "temp/1736950000000-k3j9x0a", TempFolder(stamp))
}

func TestExtFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.jpg", "jpg"},
		{"archive.tar.gz", "gz"},
		{"noextension", "png"},
		{"", "png"},
		{"trailingdot.", "png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtFromFilename(tt.name))
		})
	}
}

func TestExtFromMimeType(t *testing.T) {
	assert.Equal(t, "jpeg", ExtFromMimeType("image/jpeg"))
	assert.Equal(t, "png", ExtFromMimeType("image/png"))
	assert.Equal(t, "svg", ExtFromMimeType("image/svg+xml"))
	assert.Equal(t, "webp", ExtFromMimeType("image/webp; charset=binary"))
	assert.Equal(t, "png", ExtFromMimeType(""))
	assert.Equal(t, "png", ExtFromMimeType("image/"))
}
