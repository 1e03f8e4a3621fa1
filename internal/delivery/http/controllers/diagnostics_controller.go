package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"devcatalyst/internal/delivery/http/helpers"
	"devcatalyst/internal/delivery/http/views"
	"devcatalyst/internal/domain"
)

// DiagnosticsSuccessResponse is the success envelope for GET /api/diagnostics (200).
type DiagnosticsSuccessResponse struct {
	Data  *domain.DiagnosticsReport `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// DiagnosticsController serves the connection test, the debug page, and their JSON form.
type DiagnosticsController struct {
	pages
	Diagnostics domain.DiagnosticsService
}

func NewDiagnosticsController(logger *slog.Logger, v *views.Renderer, svc domain.DiagnosticsService) *DiagnosticsController {
	return &DiagnosticsController{pages: pages{Logger: logger, Views: v}, Diagnostics: svc}
}

// ConnectionTest runs the admin connection checks.
func (c *DiagnosticsController) ConnectionTest(w http.ResponseWriter, r *http.Request) {
	c.page(w, r, domain.SuiteConnection, "Connection test")
}

// Debug runs the production debug checks.
func (c *DiagnosticsController) Debug(w http.ResponseWriter, r *http.Request) {
	c.page(w, r, domain.SuiteDebug, "Production debug")
}

func (c *DiagnosticsController) page(w http.ResponseWriter, r *http.Request, suite domain.Suite, heading string) {
	report, err := c.Diagnostics.Run(r.Context(), suite)
	if err != nil {
		c.logFailure(r, err)
		c.render(w, r, http.StatusInternalServerError, views.PageDiagnostics, views.Page{
			Title:   heading,
			Error:   "Diagnostics could not run: " + err.Error(),
			Content: views.DiagnosticsView{Heading: heading},
		})
		return
	}
	c.render(w, r, http.StatusOK, views.PageDiagnostics, views.Page{
		Title:   heading,
		Content: views.DiagnosticsView{Heading: heading, Report: report},
	})
}

// Run godoc
// @Summary Run backend diagnostics
// @Description Runs the connection or debug checks against the content API and returns the report. Failed checks are reported inside the report, not as an error status. Requires an admin session.
// @Tags diagnostics
// @Produce json
// @Param suite query string false "connection (default) or debug"
// @Success 200 {object} controllers.DiagnosticsSuccessResponse "data contains the report"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/diagnostics [get]
func (c *DiagnosticsController) Run(w http.ResponseWriter, r *http.Request) {
	suite := domain.Suite(r.URL.Query().Get("suite"))
	if suite == "" {
		suite = domain.SuiteConnection
	}
	report, err := c.Diagnostics.Run(r.Context(), suite)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.logFailure(r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}

// Healthz godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status is ok"
// @Router /healthz [get]
func Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
}
