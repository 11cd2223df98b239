package realpath

import "strings"

// Category names the kind of provider that owns a locator
type Category int

// Provider categories.  Unrecognized is the zero value, so an unclassified
// locator never resolves by accident.
const (
	Unrecognized Category = iota
	PlainFile
	ExternalStorageDocument
	DownloadsDocument
	MediaDocument
	CloudPhotos
	GenericContent
)

var categoryNames = map[Category]string{
	Unrecognized:            "unrecognized",
	PlainFile:               "file",
	ExternalStorageDocument: "external-storage",
	DownloadsDocument:       "downloads",
	MediaDocument:           "media",
	CloudPhotos:             "cloud-photos",
	GenericContent:          "content",
}

// Categories lists every category, in declaration order
func Categories() []Category {
	return []Category{
		Unrecognized,
		PlainFile,
		ExternalStorageDocument,
		DownloadsDocument,
		MediaDocument,
		CloudPhotos,
		GenericContent,
	}
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[Unrecognized]
}

// ParseCategory parses a category name, as produced by String.  Unknown
// names parse to Unrecognized.
func ParseCategory(name string) Category {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range categoryNames {
		if n == name {
			return c
		}
	}
	return Unrecognized
}

// MediaKind selects the media collection backing a media document
type MediaKind string

// Media kinds, as they appear in the first segment of a media document id
const (
	NoMedia MediaKind = ""
	Image   MediaKind = "image"
	Video   MediaKind = "video"
	Audio   MediaKind = "audio"
)

// ParseMediaKind returns the media kind named by s, and false if s names none.
// Matching is case sensitive.
func ParseMediaKind(s string) (MediaKind, bool) {
	switch k := MediaKind(s); k {
	case Image, Video, Audio:
		return k, true
	default:
		return NoMedia, false
	}
}

// Classification is the result of classifying a locator.  Media is set only
// for the MediaDocument category.
type Classification struct {
	Category Category
	Media    MediaKind
}

func (c Classification) String() string {
	if c.Category == MediaDocument {
		return c.Category.String() + "/" + string(c.Media)
	}
	return c.Category.String()
}
