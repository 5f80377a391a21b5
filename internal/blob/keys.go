package blob

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	suffixLen        = 7
	defaultExtension = "png"
	uploadsFolder    = "uploads"
)

// Stamp is the timestamp and random suffix shared by every key written in one request.
type Stamp struct {
	Millis int64
	Suffix string
}

func NewStamp() Stamp {
	return Stamp{Millis: time.Now().UnixMilli(), Suffix: RandomSuffix()}
}

func (s Stamp) String() string {
	return fmt.Sprintf("%d-%s", s.Millis, s.Suffix)
}

// RandomSuffix returns 7 base36 characters drawn from a v4 UUID.
func RandomSuffix() string {
	id := uuid.New()
	s := strconv.FormatUint(binary.BigEndian.Uint64(id[:8]), 36)
	if len(s) < suffixLen {
		s = strings.Repeat("0", suffixLen-len(s)) + s
	}
	return s[len(s)-suffixLen:]
}

// Folder is orders/<orderID> when an order is known, uploads otherwise.
func Folder(orderID string) string {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return uploadsFolder
	}
	return "orders/" + strings.ReplaceAll(orderID, "/", "-")
}

// TempFolder holds images written before payment, when no order id exists yet.
func TempFolder(s Stamp) string {
	return "temp/" + s.String()
}

// ObjectKey builds <folder>/<role>-<millis>-<suffix>.<ext>.
func ObjectKey(folder, role string, s Stamp, ext string) string {
	if role == "" {
		role = "image"
	}
	if ext == "" {
		ext = defaultExtension
	}
	return fmt.Sprintf("%s/%s-%s.%s", folder, role, s, ext)
}

// ExtFromFilename keeps the upload's extension, defaulting to png.
func ExtFromFilename(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return defaultExtension
	}
	return ext
}

// ExtFromMimeType uses the media subtype ("image/jpeg" -> "jpeg"), defaulting to png.
func ExtFromMimeType(mimeType string) string {
	_, sub, ok := strings.Cut(mimeType, "/")
	if !ok || sub == "" {
		return defaultExtension
	}
	if i := strings.IndexAny(sub, ";+"); i >= 0 {
		sub = sub[:i]
	}
	if sub == "" {
		return defaultExtension
	}
	return sub
}
