package export

import (
	"context"
	"time"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
)

// Page is a substituted document body ready for encoding. Body holds the
// renderer's output in the template's own format.
type Page struct {
	ID         string
	Title      string
	TemplateID string
	Category   string
	Format     model.Format
	Body       string
	CreatedAt  time.Time
}

// Exporter encodes a Page into a downloadable artifact. PDF or word-processor
// encoders live outside this module and plug in through a Registry.
type Exporter interface {
	Name() string
	ContentType() string
	Extension() string
	Export(ctx context.Context, page Page) ([]byte, error)
}
