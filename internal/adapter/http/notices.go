package http

import (
	"errors"

	"resume-studio/internal/render"
	apperrors "resume-studio/pkg/errors"

	"github.com/gofiber/fiber/v2"
)

var notices = map[string]render.Notice{
	"saved":   {Kind: "success", Message: "Resume saved successfully!"},
	"reset":   {Kind: "success", Message: "Resume reset to defaults."},
	"summary": {Kind: "success", Message: "Professional summary generated!"},
	"created": {Kind: "success", Message: "Resume created successfully!"},
	"updated": {Kind: "success", Message: "Preview updated. Save to keep your changes."},
}

func noticeFor(code string) *render.Notice {
	n, ok := notices[code]
	if !ok {
		return nil
	}
	return &n
}

// errorNotice maps an operation failure to a status and an error notice.
func errorNotice(err error) (int, *render.Notice) {
	var se *apperrors.StorageError
	if errors.As(err, &se) {
		return se.StatusCode, &render.Notice{
			Kind:    "error",
			Message: "Could not save: storage is unavailable. Your changes are kept for this session.",
		}
	}
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		return ve.StatusCode, &render.Notice{Kind: "error", Message: "Invalid " + ve.Field + ": " + ve.Message}
	}
	var ee *apperrors.ExportError
	if errors.As(err, &ee) {
		return ee.StatusCode, &render.Notice{Kind: "error", Message: "Export failed. Please try again."}
	}
	return fiber.StatusInternalServerError, &render.Notice{Kind: "error", Message: "Something went wrong."}
}
