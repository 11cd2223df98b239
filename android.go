package realpath

// Provider authorities of a stock Android device
const (
	ExternalStorageAuthority = "com.android.externalstorage.documents"
	DownloadsAuthority       = "com.android.providers.downloads.documents"
	MediaAuthority           = "com.android.providers.media.documents"
	CloudPhotosAuthority     = "com.google.android.apps.photos.content"
)

// Default collections, i.e. the tables media and download rows live in
var (
	ImagesCollection          = New("content", "media", "/external/images/media")
	VideoCollection           = New("content", "media", "/external/video/media")
	AudioCollection           = New("content", "media", "/external/audio/media")
	FilesCollection           = New("content", "media", "/external/file")
	PublicDownloadsCollection = New("content", "downloads", "/public_downloads")
	DownloadsDocuments        = New("content", DownloadsAuthority, "/document")
)

// Storage layout defaults
const (
	PrimaryVolume   = "primary"
	PrimaryRoot     = "/storage/emulated/0"
	DownloadsRoot   = PrimaryRoot + "/Download"
	SecondaryPrefix = "storage"
)
