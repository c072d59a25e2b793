package reports

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mammocare/mammocare/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "physician", "radiologist"))
	g.GET("/reports/:id/pdf", h.DownloadPDF)
}

// DownloadPDF streams the generated report document as an attachment.
func (h *Handler) DownloadPDF(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	doc, err := h.svc.GeneratePDF(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, doc.Filename))
	return c.Blob(http.StatusOK, MediaType, doc.Content)
}
