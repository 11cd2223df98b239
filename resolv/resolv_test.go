package resolv_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/birkland/realpath"
	"github.com/birkland/realpath/drivers/memory"
	"github.com/birkland/realpath/metadata"
	"github.com/birkland/realpath/resolv"
	"github.com/pkg/errors"
)

const (
	primaryRoot   = "/storage/emulated/0"
	downloadsRoot = "/storage/emulated/0/Download"
)

func testStore() *memory.Store {
	s := memory.New(nil)
	s.Put(realpath.ImagesCollection.String(), metadata.Row{"_id": "42", "_data": "/storage/emulated/0/DCIM/c.jpg"})
	s.Put(realpath.VideoCollection.String(), metadata.Row{"_id": "5", "_data": "/storage/emulated/0/Movies/v.mp4"})
	s.Put(realpath.AudioCollection.String(), metadata.Row{"_id": "6", "_data": "/storage/emulated/0/Music/s.mp3"})
	s.Put(realpath.DownloadsDocuments.String(), metadata.Row{"_id": "7", "_display_name": "report.pdf"})
	s.Put(realpath.PublicDownloadsCollection.String(), metadata.Row{"_id": "8", "_data": "/storage/emulated/0/Download/old.zip"})
	s.Put("content://com.example.provider/files/a", metadata.Row{"_id": "1", "_data": "/data/user/0/com.example/files/a"})
	return s
}

func testResolver(t *testing.T, q realpath.Querier) *resolv.Resolver {
	t.Helper()
	r, err := resolv.NewResolver(resolv.DefaultConfig(), q)
	if err != nil {
		t.Fatalf("could not create resolver: %+v", err)
	}
	return r
}

func document(authority, docID string) string {
	return realpath.DocumentLocator(authority, docID).String()
}

func TestResolve(t *testing.T) {
	r := testResolver(t, testStore())

	cases := []struct {
		name     string
		raw      string
		expected string
	}{
		{"file", "file:///sdcard/a.jpg", "/sdcard/a.jpg"},
		{"fileEscaped", "file:///sdcard/a%20b.jpg", "/sdcard/a b.jpg"},
		{"primary", document(realpath.ExternalStorageAuthority, "primary:Pictures/a.jpg"), primaryRoot + "/Pictures/a.jpg"},
		{"primaryCase", document(realpath.ExternalStorageAuthority, "PRIMARY:Pictures/a.jpg"), primaryRoot + "/Pictures/a.jpg"},
		{"primaryEmpty", document(realpath.ExternalStorageAuthority, "primary:"), primaryRoot + "/"},
		{"secondary", document(realpath.ExternalStorageAuthority, "1234-5678:Music/b.mp3"), "storage/1234-5678/Music/b.mp3"},
		{"image", document(realpath.MediaAuthority, "image:42"), "/storage/emulated/0/DCIM/c.jpg"},
		{"video", document(realpath.MediaAuthority, "video:5"), "/storage/emulated/0/Movies/v.mp4"},
		{"audio", document(realpath.MediaAuthority, "audio:6"), "/storage/emulated/0/Music/s.mp3"},
		{"downloadsByName", document(realpath.DownloadsAuthority, "7"), downloadsRoot + "/report.pdf"},
		{"downloadsById", document(realpath.DownloadsAuthority, "8"), "/storage/emulated/0/Download/old.zip"},
		{"generic", "content://com.example.provider/files/a", "/data/user/0/com.example/files/a"},
		{"genericAppendedID", "content://media/external/images/media/42", "/storage/emulated/0/DCIM/c.jpg"},
		{"cloudPhotos", "content://com.google.android.apps.photos.content/0/1/ORIGINAL/NONE/12345", "12345"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			res := r.Resolve(context.Background(), c.raw)
			if !res.OK() {
				t.Fatalf("could not resolve %s: %+v", c.raw, res.Err)
			}
			if res.Path != c.expected {
				t.Errorf("expected %s, got %s", c.expected, res.Path)
			}
			if res.Remote != (res.Classification.Category == realpath.CloudPhotos) {
				t.Errorf("unexpected remote flag %t for %s", res.Remote, res.Classification)
			}
		})
	}
}

func TestResolveUnresolved(t *testing.T) {
	r := testResolver(t, testStore())

	cases := []struct {
		name string
		raw  string
		kind resolv.Kind
	}{
		{"empty", "", resolv.Unrecognized},
		{"http", "https://example.com/a.jpg", resolv.Unrecognized},
		{"badEscape", "content://media/%zz", resolv.Malformed},
		{"fileNoPath", "file://", resolv.Malformed},
		{"unknownDocumentProvider", document("com.example.documents", "abc"), resolv.Unrecognized},
		{"mediaBadKind", document(realpath.MediaAuthority, "document:42"), resolv.Unrecognized},
		{"mediaNoColon", document(realpath.MediaAuthority, "image"), resolv.Malformed},
		{"mediaNonNumeric", document(realpath.MediaAuthority, "image:abc"), resolv.Malformed},
		{"mediaNoRow", document(realpath.MediaAuthority, "image:43"), resolv.Unresolvable},
		{"storageNoColon", document(realpath.ExternalStorageAuthority, "primary"), resolv.Malformed},
		{"storageNoVolume", document(realpath.ExternalStorageAuthority, ":Music/b.mp3"), resolv.Malformed},
		{"downloadsNonNumeric", document(realpath.DownloadsAuthority, "raw:/storage/emulated/0/Download/x"), resolv.Malformed},
		{"downloadsNegative", document(realpath.DownloadsAuthority, "-8"), resolv.Malformed},
		{"downloadsNoRow", document(realpath.DownloadsAuthority, "9"), resolv.Unresolvable},
		{"genericNoRow", "content://com.example.provider/files/b", resolv.Unresolvable},
		{"cloudPhotosNoSegment", "content://com.google.android.apps.photos.content", resolv.Malformed},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			res := r.Resolve(context.Background(), c.raw)
			if res.OK() || res.Path != "" {
				t.Fatalf("expected %s to be unresolved, got %s", c.raw, res.Path)
			}

			kind, ok := resolv.KindOf(res.Err)
			if !ok {
				t.Fatalf("expected a resolution error, got %+v", res.Err)
			}
			if kind != c.kind {
				t.Errorf("expected %s, got %s (%s)", c.kind, kind, res.Err)
			}
		})
	}
}

func TestResolveWithoutDocuments(t *testing.T) {
	cfg := resolv.DefaultConfig()
	cfg.Documents = false

	r, err := resolv.NewResolver(cfg, testStore())
	if err != nil {
		t.Fatal(err)
	}

	// A document locator is then just content, with no _data in the store
	res := r.Resolve(context.Background(), document(realpath.MediaAuthority, "image:42"))
	if res.OK() || res.Classification.Category != realpath.GenericContent {
		t.Errorf("expected unresolved generic content, got %+v", res)
	}
}

func TestResolveConfiguredRoots(t *testing.T) {
	cfg := resolv.DefaultConfig()
	cfg.PrimaryRoot = "/mnt/sdcard/"
	cfg.DownloadsRoot = "/mnt/sdcard/Downloads"
	cfg.SecondaryPrefix = "/mnt/media_rw"

	r, err := resolv.NewResolver(cfg, testStore())
	if err != nil {
		t.Fatal(err)
	}

	for raw, expected := range map[string]string{
		document(realpath.ExternalStorageAuthority, "primary:a.jpg"):         "/mnt/sdcard/a.jpg",
		document(realpath.ExternalStorageAuthority, "1234-5678:Music/b.mp3"): "/mnt/media_rw/1234-5678/Music/b.mp3",
		document(realpath.DownloadsAuthority, "7"):                           "/mnt/sdcard/Downloads/report.pdf",
	} {
		if res := r.Resolve(context.Background(), raw); res.Path != expected {
			t.Errorf("expected %s for %s, got %s (%v)", expected, raw, res.Path, res.Err)
		}
	}
}

// Records the queries it is asked, answering from a fixed table of
// target|column -> value
type recorder struct {
	mu      sync.Mutex
	answers map[string]string
	queries []realpath.Query
}

func (rec *recorder) Query(_ context.Context, q realpath.Query) (string, error) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.queries = append(rec.queries, q)

	if v, ok := rec.answers[q.Target.String()+"|"+q.Column]; ok {
		return v, nil
	}
	return "", realpath.ErrNotFound
}

func TestMediaQuery(t *testing.T) {
	rec := &recorder{answers: map[string]string{
		realpath.VideoCollection.String() + "|_data": "/storage/emulated/0/Movies/v.mp4",
	}}
	r := testResolver(t, rec)

	res := r.Resolve(context.Background(), document(realpath.MediaAuthority, "video:5"))
	if !res.OK() {
		t.Fatalf("could not resolve: %+v", res.Err)
	}

	if len(rec.queries) != 1 {
		t.Fatalf("expected a single query, got %d", len(rec.queries))
	}

	q := rec.queries[0]
	if q.Target != realpath.VideoCollection || q.Column != realpath.ColumnData ||
		q.Selection != realpath.SelectByID || len(q.Args) != 1 || q.Args[0] != "5" {
		t.Errorf("unexpected query %+v", q)
	}
}

func TestDownloadsFallback(t *testing.T) {
	rec := &recorder{answers: map[string]string{
		realpath.PublicDownloadsCollection.WithAppendedID(12).String() + "|_data": "/storage/emulated/0/Download/x.apk",
	}}
	r := testResolver(t, rec)

	res := r.Resolve(context.Background(), document(realpath.DownloadsAuthority, "12"))
	if res.Path != "/storage/emulated/0/Download/x.apk" {
		t.Fatalf("unexpected result %+v", res)
	}

	if len(rec.queries) != 2 {
		t.Fatalf("expected a display name query, then a data query, got %+v", rec.queries)
	}
	if rec.queries[0].Column != realpath.ColumnDisplayName || rec.queries[1].Column != realpath.ColumnData {
		t.Errorf("unexpected queries %+v", rec.queries)
	}
}

func TestNoQueriesForTextualStrategies(t *testing.T) {
	rec := &recorder{}
	r := testResolver(t, rec)

	for _, raw := range []string{
		"file:///sdcard/a.jpg",
		document(realpath.ExternalStorageAuthority, "primary:a.jpg"),
		document(realpath.ExternalStorageAuthority, "1234-5678:a.jpg"),
		"content://com.google.android.apps.photos.content/0/1/ORIGINAL/NONE/12345",
		"https://example.com/a.jpg",
	} {
		_ = r.Resolve(context.Background(), raw)
	}

	if len(rec.queries) != 0 {
		t.Errorf("expected no queries, got %+v", rec.queries)
	}
}

func TestQuerierFailures(t *testing.T) {
	cases := []struct {
		name    string
		querier realpath.QuerierFunc
		kind    resolv.Kind
	}{
		{"notFound", func(context.Context, realpath.Query) (string, error) {
			return "", errors.Wrap(realpath.ErrNotFound, "nothing here")
		}, resolv.Unresolvable},
		{"empty", func(context.Context, realpath.Query) (string, error) {
			return "", nil
		}, resolv.Unresolvable},
		{"denied", func(context.Context, realpath.Query) (string, error) {
			return "", fmt.Errorf("permission denied")
		}, resolv.Unavailable},
		{"panic", func(context.Context, realpath.Query) (string, error) {
			panic("cursor exploded")
		}, resolv.Unavailable},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			r := testResolver(t, c.querier)

			res := r.Resolve(context.Background(), document(realpath.MediaAuthority, "image:42"))
			if res.OK() {
				t.Fatalf("expected failure, got %s", res.Path)
			}
			if kind, _ := resolv.KindOf(res.Err); kind != c.kind {
				t.Errorf("expected %s, got %s", c.kind, kind)
			}
		})
	}
}

func TestNewResolverErrors(t *testing.T) {
	if _, err := resolv.NewResolver(resolv.DefaultConfig(), nil); err == nil {
		t.Errorf("expected an error without a querier")
	}

	cfg := resolv.DefaultConfig()
	cfg.PrimaryRoot = ""
	if _, err := resolv.NewResolver(cfg, testStore()); err == nil {
		t.Errorf("expected an error without a primary root")
	}

	cfg = resolv.DefaultConfig()
	cfg.Collections.Images = "content://media/%zz"
	if _, err := resolv.NewResolver(cfg, testStore()); err == nil {
		t.Errorf("expected an error with a bad collection")
	}
}

func TestResolveAll(t *testing.T) {
	r := testResolver(t, testStore())

	var raws, expected []string
	for i := 0; i < 200; i++ {
		switch i % 4 {
		case 0:
			raws = append(raws, fmt.Sprintf("file:///sdcard/%d.jpg", i))
			expected = append(expected, fmt.Sprintf("/sdcard/%d.jpg", i))
		case 1:
			raws = append(raws, document(realpath.MediaAuthority, "image:42"))
			expected = append(expected, "/storage/emulated/0/DCIM/c.jpg")
		case 2:
			raws = append(raws, document(realpath.DownloadsAuthority, "7"))
			expected = append(expected, downloadsRoot+"/report.pdf")
		case 3:
			raws = append(raws, document(realpath.MediaAuthority, "image:43"))
			expected = append(expected, "")
		}
	}

	for _, workers := range []int{0, 1, 8} {
		workers := workers
		t.Run(fmt.Sprintf("workers-%d", workers), func(t *testing.T) {
			results := r.ResolveAll(context.Background(), raws, workers)
			if len(results) != len(raws) {
				t.Fatalf("expected %d results, got %d", len(raws), len(results))
			}

			for i, res := range results {
				if res.Path != expected[i] {
					t.Errorf("result %d: expected %q, got %q", i, expected[i], res.Path)
				}
			}
		})
	}
}

func TestResolveCancelled(t *testing.T) {
	r := testResolver(t, testStore())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := r.Resolve(ctx, document(realpath.MediaAuthority, "image:42"))
	if kind, _ := resolv.KindOf(res.Err); kind != resolv.Unavailable {
		t.Errorf("expected unavailable, got %+v", res.Err)
	}
}

func TestErrorMessage(t *testing.T) {
	r := testResolver(t, testStore())

	res := r.Resolve(context.Background(), document(realpath.MediaAuthority, "image:abc"))
	if res.Err == nil || !strings.HasPrefix(res.Err.Error(), "malformed locator") {
		t.Errorf("unexpected error message %v", res.Err)
	}
}
