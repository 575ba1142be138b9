package http

import (
	"bytes"
	"errors"
	"time"

	"resume-studio/internal/model"
	"resume-studio/internal/render"
	"resume-studio/internal/usecase"
	apperrors "resume-studio/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionLocal = "session"

type CookieConfig struct {
	Name   string
	Secure bool
}

type Handler struct {
	sessions *usecase.Sessions
	exporter *usecase.Exporter
	cookie   CookieConfig
	logger   *zap.Logger
}

func NewHandler(s *usecase.Sessions, x *usecase.Exporter, cookie CookieConfig, logger *zap.Logger) *Handler {
	if cookie.Name == "" {
		cookie.Name = "resume_session"
	}
	return &Handler{sessions: s, exporter: x, cookie: cookie, logger: logger}
}

// NewApp wires the routes. Form values are stored by the engine, so the
// app runs with Immutable set.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		Immutable:             true,
		DisableStartupMessage: true,
	})
	app.Use(h.logRequests, h.session)

	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/resume") })
	app.Get("/start", h.StartForm)
	app.Post("/start", h.Start)

	app.Get("/resume", h.ShowResume)
	app.Post("/resume/customize", h.Customize)
	app.Post("/resume/save", h.Save)
	app.Post("/resume/reset", h.Reset)
	app.Post("/resume/summary", h.GenerateSummary)
	app.Get("/resume/summary.txt", h.CopySummary)
	app.Get("/resume/text", h.CopyResumeText)
	app.Get("/resume/export", h.Export)

	api := app.Group("/api/achievements")
	api.Get("/", h.ListAchievements)
	api.Post("/", h.AddAchievement)
	api.Put("/demo/:index", h.EditDemoAchievement)
	api.Delete("/demo/:index", h.DeleteDemoAchievement)
	api.Put("/:index", h.EditAchievement)
	api.Delete("/:index", h.DeleteAchievement)
	return app
}

func (h *Handler) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	h.logger.Debug("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(start)),
	)
	return err
}

// session assigns a uuid cookie naming the storage scope of the visitor.
func (h *Handler) session(c *fiber.Ctx) error {
	id := c.Cookies(h.cookie.Name)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.New().String()
		c.Cookie(&fiber.Cookie{
			Name:     h.cookie.Name,
			Value:    id,
			Path:     "/",
			Expires:  time.Now().AddDate(1, 0, 0),
			HTTPOnly: true,
			Secure:   h.cookie.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	c.Locals(sessionLocal, id)
	return c.Next()
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionLocal).(string)
	return id
}

func (h *Handler) engine(c *fiber.Ctx) *usecase.Engine {
	return h.sessions.Engine(c.UserContext(), sessionID(c))
}

func (h *Handler) ShowResume(c *fiber.Ctx) error {
	profile := render.Interactive
	if c.Query("print") == "true" {
		profile = render.Print
	}
	return h.renderResume(c, fiber.StatusOK, profile, noticeFor(c.Query("notice")))
}

func (h *Handler) renderResume(c *fiber.Ctx, status int, profile render.Profile, notice *render.Notice) error {
	id := sessionID(c)
	s := h.engine(c).Snapshot()
	content := h.sessions.Achievements(id).Content(c.UserContext())

	doc, err := render.Compose(profile, s, content)
	if err != nil {
		h.logger.Error("Failed to compose resume", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render resume")
	}
	opts := render.PageOptions{Notice: notice}
	if profile == render.Interactive {
		opts.Controls = render.NewControls(s)
	}
	var buf bytes.Buffer
	if err := render.RenderPage(&buf, doc, opts); err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render resume")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// fail re-renders the resume with an error notice and the mapped status.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status, notice := errorNotice(err)
	return h.renderResume(c, status, render.Interactive, notice)
}

func personalInfoFromForm(c *fiber.Ctx) model.PersonalInfo {
	return model.PersonalInfo{
		Name:     c.FormValue("name"),
		Title:    c.FormValue("title"),
		Email:    c.FormValue("email"),
		Phone:    c.FormValue("phone"),
		Location: c.FormValue("location"),
		LinkedIn: c.FormValue("linkedin"),
		GitHub:   c.FormValue("github"),
		Summary:  c.FormValue("summary"),
	}
}

// customizationFromForm builds the complete next value; an unchecked
// section box means hidden.
func customizationFromForm(c *fiber.Ctx) model.ResumeCustomization {
	var vs model.VisibleSections
	for _, key := range model.SectionOrder() {
		vs = vs.With(key, c.FormValue("section_"+string(key)) != "")
	}
	return model.ResumeCustomization{
		Theme:           model.Theme(c.FormValue("theme")),
		FontSize:        model.FontSize(c.FormValue("fontSize")),
		Spacing:         model.Spacing(c.FormValue("spacing")),
		VisibleSections: vs,
	}
}

func (h *Handler) Customize(c *fiber.Ctx) error {
	e := h.engine(c)
	if err := e.UpdateCustomization(customizationFromForm(c)); err != nil {
		return h.fail(c, err)
	}
	e.UpdatePersonalInfo(personalInfoFromForm(c))

	if c.FormValue("action") == "save" {
		if err := e.Save(c.UserContext()); err != nil {
			return h.fail(c, err)
		}
		return c.Redirect("/resume?notice=saved", fiber.StatusSeeOther)
	}
	return c.Redirect("/resume?notice=updated", fiber.StatusSeeOther)
}

func (h *Handler) Save(c *fiber.Ctx) error {
	if err := h.engine(c).Save(c.UserContext()); err != nil {
		return h.fail(c, err)
	}
	return c.Redirect("/resume?notice=saved", fiber.StatusSeeOther)
}

func (h *Handler) Reset(c *fiber.Ctx) error {
	if err := h.engine(c).Reset(c.UserContext()); err != nil {
		return h.fail(c, err)
	}
	return c.Redirect("/resume?notice=reset", fiber.StatusSeeOther)
}

func (h *Handler) GenerateSummary(c *fiber.Ctx) error {
	if _, err := h.engine(c).GenerateSummaryInto(c.UserContext()); err != nil {
		return h.fail(c, err)
	}
	return c.Redirect("/resume?notice=summary", fiber.StatusSeeOther)
}

func (h *Handler) CopySummary(c *fiber.Ctx) error {
	text, err := render.SummaryText(h.engine(c).Snapshot().PersonalInfo)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("nothing to copy")
	}
	return c.SendString(text)
}

func (h *Handler) CopyResumeText(c *fiber.Ctx) error {
	return c.SendString(render.ResumeText(h.engine(c).Snapshot().PersonalInfo))
}

func (h *Handler) Export(c *fiber.Ctx) error {
	s := h.engine(c).Snapshot()
	content := h.sessions.Achievements(sessionID(c)).Content(c.UserContext())

	out, err := h.exporter.Export(c.UserContext(), s, content)
	if err != nil {
		h.logger.Error("Export failed", zap.Error(err))
		return h.fail(c, err)
	}
	if out.Fallback {
		c.Set("X-Export-Fallback", "html")
	}
	c.Attachment(out.Filename)
	c.Set(fiber.HeaderContentType, out.ContentType)
	return c.Send(out.Data)
}

func (h *Handler) StartForm(c *fiber.Ctx) error {
	return h.renderStart(c, fiber.StatusOK, render.StartPage{})
}

func (h *Handler) Start(c *fiber.Ctx) error {
	info := personalInfoFromForm(c)
	v, err := h.sessions.Start(c.UserContext(), sessionID(c), info)
	if err != nil {
		status, notice := errorNotice(err)
		return h.renderStart(c, status, render.StartPage{Info: info, Notice: notice})
	}
	if !v.Valid {
		return h.renderStart(c, fiber.StatusBadRequest, render.StartPage{Info: info, Missing: v.Missing})
	}
	return c.Redirect("/resume?notice=created", fiber.StatusSeeOther)
}

func (h *Handler) renderStart(c *fiber.Ctx, status int, page render.StartPage) error {
	var buf bytes.Buffer
	if err := render.RenderStart(&buf, page); err != nil {
		h.logger.Error("Failed to render start page", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

func (h *Handler) ListAchievements(c *fiber.Ctx) error {
	views := h.sessions.Achievements(sessionID(c)).Views(c.UserContext())
	return c.JSON(fiber.Map{"achievements": views})
}

func (h *Handler) AddAchievement(c *fiber.Ctx) error {
	var item model.StoredAchievement
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	out, err := h.sessions.Achievements(sessionID(c)).Add(c.UserContext(), item)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": out})
}

func (h *Handler) EditAchievement(c *fiber.Ctx) error {
	return h.editAchievement(c, false)
}

func (h *Handler) EditDemoAchievement(c *fiber.Ctx) error {
	return h.editAchievement(c, true)
}

func (h *Handler) editAchievement(c *fiber.Ctx, demo bool) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid index"})
	}
	var item model.StoredAchievement
	if err := c.BodyParser(&item); err != nil && !demo {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	out, err := h.sessions.Achievements(sessionID(c)).Edit(c.UserContext(), usecase.AchievementRef{Demo: demo, Index: index}, item)
	if err != nil {
		return jsonError(c, err)
	}
	return outcomeJSON(c, out)
}

func (h *Handler) DeleteAchievement(c *fiber.Ctx) error {
	return h.deleteAchievement(c, false)
}

func (h *Handler) DeleteDemoAchievement(c *fiber.Ctx) error {
	return h.deleteAchievement(c, true)
}

func (h *Handler) deleteAchievement(c *fiber.Ctx, demo bool) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid index"})
	}
	out, err := h.sessions.Achievements(sessionID(c)).Delete(c.UserContext(), usecase.AchievementRef{Demo: demo, Index: index})
	if err != nil {
		return jsonError(c, err)
	}
	return outcomeJSON(c, out)
}

func outcomeJSON(c *fiber.Ctx, out usecase.Outcome) error {
	if out == usecase.OutcomeNotPermitted {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  out,
			"message": "Demo records cannot be changed",
		})
	}
	return c.JSON(fiber.Map{"status": out})
}

func jsonError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "internal error"
	if app := appError(err); app != nil {
		status, msg = app.StatusCode, app.Message
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// appError finds the AppError carried by any of the typed errors.
func appError(err error) *apperrors.AppError {
	var se *apperrors.StorageError
	if errors.As(err, &se) {
		return se.AppError
	}
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		return ve.AppError
	}
	var ee *apperrors.ExportError
	if errors.As(err, &ee) {
		return ee.AppError
	}
	var ae *apperrors.AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
