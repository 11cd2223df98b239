package resolv

import (
	"strings"

	"github.com/birkland/realpath"
)

// Classify assigns a locator to a provider category, using the authorities of
// a stock Android device.  documents is the host's structured-document
// addressing capability.
func Classify(loc realpath.Locator, documents bool) realpath.Classification {
	return DefaultAuthorities().Classify(loc, documents)
}

// Classify assigns a locator to a provider category.  It depends on nothing
// but its arguments, and never fails: anything it does not understand is
// Unrecognized.
//
// Rules, first match wins:
//
// file locators are plain files;
//
// content locators using document addressing (when supported) are split by
// authority into external storage, downloads and media documents.  Document
// locators of any other authority are unrecognized;
//
// content locators of the cloud photos authority are cloud photos;
//
// any other content locator is generic content.
func (a Authorities) Classify(loc realpath.Locator, documents bool) realpath.Classification {
	if loc.Scheme() == "file" {
		return realpath.Classification{Category: realpath.PlainFile}
	}

	if loc.Scheme() != "content" {
		return realpath.Classification{Category: realpath.Unrecognized}
	}

	if documents {
		if docID := loc.DocumentID(); docID != "" {
			return a.classifyDocument(loc.Authority(), docID)
		}
	}

	if loc.Authority() == a.CloudPhotos {
		return realpath.Classification{Category: realpath.CloudPhotos}
	}

	return realpath.Classification{Category: realpath.GenericContent}
}

func (a Authorities) classifyDocument(authority, docID string) realpath.Classification {
	switch authority {
	case a.ExternalStorage:
		return realpath.Classification{Category: realpath.ExternalStorageDocument}
	case a.Downloads:
		return realpath.Classification{Category: realpath.DownloadsDocument}
	case a.Media:
		kind, _, _ := splitDocumentID(docID)
		if media, ok := realpath.ParseMediaKind(kind); ok {
			return realpath.Classification{Category: realpath.MediaDocument, Media: media}
		}
	}

	return realpath.Classification{Category: realpath.Unrecognized}
}

// splitDocumentID splits a document id of the form <type>:<rest> on its first
// colon.  ok is false if there is no colon.
func splitDocumentID(docID string) (typ, rest string, ok bool) {
	if i := strings.IndexByte(docID, ':'); i >= 0 {
		return docID[:i], docID[i+1:], true
	}
	return docID, "", false
}
