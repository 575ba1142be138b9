package usecase

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"resume-studio/internal/model"
	"resume-studio/internal/render"
	apperrors "resume-studio/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExportOptions configures the page-to-document export.
type ExportOptions struct {
	MarginMM        float64
	Landscape       bool
	PaperWidthIn    float64
	PaperHeightIn   float64
	PrintBackground bool
}

// DefaultExportOptions is A4 portrait with 12 mm margins and backgrounds.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		MarginMM:        12,
		PaperWidthIn:    8.27,
		PaperHeightIn:   11.69,
		PrintBackground: true,
	}
}

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string, opts ExportOptions) ([]byte, error)
}

// ArtifactSink stores export artifacts and returns where they went.
type ArtifactSink interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// Export is the result handed to the client: the PDF, or the print-ready
// HTML when Fallback is set.
type Export struct {
	Filename     string
	ContentType  string
	Data         []byte
	Fallback     bool
	HTMLLocation string
	PDFLocation  string
	RenderErr    error
}

type Exporter struct {
	renderer Renderer
	sink     ArtifactSink
	logger   *zap.Logger
	opts     ExportOptions
	attempts int
	backoff  func(attempt int) time.Duration
	now      func() time.Time
	newID    func() string
}

type ExporterOption func(*Exporter)

func WithSink(s ArtifactSink) ExporterOption {
	return func(x *Exporter) { x.sink = s }
}

func WithExportOptions(o ExportOptions) ExporterOption {
	return func(x *Exporter) { x.opts = o }
}

func WithAttempts(n int) ExporterOption {
	return func(x *Exporter) {
		if n > 0 {
			x.attempts = n
		}
	}
}

func WithBackoff(f func(attempt int) time.Duration) ExporterOption {
	return func(x *Exporter) { x.backoff = f }
}

func NewExporter(r Renderer, logger *zap.Logger, opts ...ExporterOption) *Exporter {
	x := &Exporter{
		renderer: r,
		logger:   logger,
		opts:     DefaultExportOptions(),
		attempts: 3,
		backoff: func(i int) time.Duration {
			return time.Duration(1<<i) * time.Second
		},
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(x)
	}
	return x
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportFilename is "<Name>_Resume.pdf" with whitespace runs replaced by "_".
func ExportFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Resume.pdf"
	}
	return whitespaceRun.ReplaceAllString(name, "_") + "_Resume.pdf"
}

// Export renders the print view, stores the HTML artifact, then tries the
// PDF renderer. When the PDF cannot be produced the HTML document is
// returned instead; only a failure to build the HTML is an error.
func (x *Exporter) Export(ctx context.Context, s model.Session, c model.Content) (*Export, error) {
	doc, err := render.Compose(render.Print, s, c)
	if err != nil {
		return nil, apperrors.NewExportError("failed to compose print view", "compose", err)
	}
	var buf bytes.Buffer
	if err := render.RenderPage(&buf, doc, render.PageOptions{}); err != nil {
		return nil, apperrors.NewExportError("failed to render print view", "html", err)
	}
	html := buf.String()

	// the sink is shared by all sessions
	base := fmt.Sprintf("resume_%s_%s", x.now().Format("20060102T150405"), x.newID())
	out := &Export{Filename: ExportFilename(s.PersonalInfo.Name)}

	// the HTML artifact is kept even if the PDF fails
	if x.sink != nil {
		loc, err := x.sink.Put(ctx, base+".html", "text/html; charset=utf-8", buf.Bytes())
		if err != nil {
			x.logger.Warn("Failed to store HTML artifact", zap.Error(err))
		} else {
			out.HTMLLocation = loc
		}
	}

	pdf, renderErr := x.renderPDF(ctx, html)
	if renderErr != nil {
		if ctx.Err() != nil {
			return nil, apperrors.NewExportError("export cancelled", "pdf", ctx.Err())
		}
		x.logger.Warn("PDF rendering failed, falling back to HTML",
			zap.Int("attempts", x.attempts), zap.Error(renderErr))
		out.Fallback = true
		out.RenderErr = renderErr
		out.Filename = strings.TrimSuffix(out.Filename, ".pdf") + ".html"
		out.ContentType = "text/html; charset=utf-8"
		out.Data = buf.Bytes()
		return out, nil
	}

	if x.sink != nil {
		loc, err := x.sink.Put(ctx, base+".pdf", "application/pdf", pdf)
		if err != nil {
			x.logger.Warn("Failed to store PDF artifact", zap.Error(err))
		} else {
			out.PDFLocation = loc
		}
	}
	out.ContentType = "application/pdf"
	out.Data = pdf
	x.logger.Info("Resume exported", zap.String("filename", out.Filename), zap.Int("bytes", len(pdf)))
	return out, nil
}

func (x *Exporter) renderPDF(ctx context.Context, html string) ([]byte, error) {
	if x.renderer == nil {
		return nil, fmt.Errorf("no PDF renderer configured")
	}
	var renderErr error
	for i := 0; i < x.attempts; i++ {
		pdf, err := x.renderer.RenderHTMLToPDF(ctx, html, x.opts)
		if err == nil {
			if len(pdf) > 0 && bytes.HasPrefix(pdf, []byte("%PDF")) {
				return pdf, nil
			}
			err = fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
		}
		renderErr = err
		x.logger.Debug("Render attempt failed", zap.Int("attempt", i+1), zap.Error(err))

		if i < x.attempts-1 {
			select {
			case <-time.After(x.backoff(i)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("rendering failed after %d attempts: %w", x.attempts, renderErr)
}
