package export

import (
	"fmt"
	"regexp"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// IDAlphabet is the character set used for document ids.
	IDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// IDLength is the number of random characters in a document id.
	IDLength = 10
	// IDPrefix is prepended to every generated document id.
	IDPrefix = "doc-"
)

// NewID returns a short, URL-safe document id.
func NewID() (string, error) {
	return generateID(IDPrefix, IDAlphabet, IDLength)
}

// IDGenerator returns an id function with its own prefix, alphabet and
// length, for use with generator.WithIDFunc. An empty alphabet or a
// non-positive length falls back to the defaults.
func IDGenerator(prefix, alphabet string, length int) func() (string, error) {
	if alphabet == "" {
		alphabet = IDAlphabet
	}
	if length <= 0 {
		length = IDLength
	}
	return func() (string, error) {
		return generateID(prefix, alphabet, length)
	}
}

func generateID(prefix, alphabet string, length int) (string, error) {
	id, err := nanoid.Generate(alphabet, length)
	if err != nil {
		return "", fmt.Errorf("export: generate id: %w", err)
	}
	return prefix + id, nil
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

// Filename builds a download name from a title (or template id), the document
// id and an extension: "Professional Invoice" becomes
// "professional-invoice-doc-abc123.html".
func Filename(title, id, ext string) string {
	stem := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if stem == "" {
		stem = "document"
	}
	if id != "" {
		stem += "-" + id
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return stem + ext
}
