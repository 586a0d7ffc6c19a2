package photo

import (
	"strconv"
	"strings"

	"github.com/aperture-cloud/photodex/internal/db"
	"github.com/aperture-cloud/photodex/internal/domain"
	domphoto "github.com/aperture-cloud/photodex/internal/domain/photo"
)

// Hash field names of a photo document. labelSeparator matches the TAG
// separator in the FT index schema.
const (
	fieldBucket    = "bucket"
	fieldLabels    = "labels"
	fieldCaption   = "caption"
	fieldCreatedAt = "created_at"

	labelSeparator = ","
)

func photoKey(objectKey string) string {
	return domain.PhotoKeyPrefix + objectKey
}

func buildFields(p *domphoto.Photo) map[string]string {
	// HSET merges fields into an existing hash, so every indexed field is
	// written unconditionally: a re-index without a caption must clear the
	// stale one, or searches keep matching text the document no longer has.
	return map[string]string{
		fieldBucket:    p.Bucket(),
		fieldLabels:    strings.Join(p.Labels(), labelSeparator),
		fieldCaption:   p.Caption(),
		fieldCreatedAt: strconv.FormatInt(p.CreatedAt(), 10),
	}
}

func parsePhoto(objectKey string, fields map[string]string) domphoto.Photo {
	var labels []string
	if raw := fields[fieldLabels]; raw != "" {
		labels = strings.Split(raw, labelSeparator)
	}

	var createdAt int64
	if raw := fields[fieldCreatedAt]; raw != "" {
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			createdAt = ms
		}
	}

	return domphoto.Reconstruct(fields[fieldBucket], objectKey, labels, fields[fieldCaption], createdAt)
}

func parseSearchResult(sr *db.SearchResult) []domphoto.Photo {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	photos := make([]domphoto.Photo, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		objectKey := strings.TrimPrefix(entry.Key, domain.PhotoKeyPrefix)
		photos = append(photos, parsePhoto(objectKey, entry.Fields))
	}
	return photos
}
