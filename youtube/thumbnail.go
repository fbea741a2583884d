package youtube

import "google.golang.org/api/youtube/v3"

// BestThumbnail picks the highest-resolution thumbnail URL available, in
// the order maxres, standard, high, medium, default. The upstream contract
// guarantees the default variant is always present, so a non-nil input with
// any variant set yields a URL.
func BestThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, v := range []*youtube.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if v != nil && v.Url != "" {
			return v.Url
		}
	}
	return ""
}
