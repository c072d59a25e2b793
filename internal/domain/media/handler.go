package media

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mammocare/mammocare/internal/platform/auth"
	"github.com/mammocare/mammocare/internal/platform/storage"
	"github.com/mammocare/mammocare/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("admin", "physician", "radiologist", "nurse"))
	read.GET("/mammograms", h.List)
	read.GET("/mammograms/:id", h.Get)
	read.GET("/mammograms/:id/image", h.DownloadImage)

	write := api.Group("", auth.RequireRole("admin", "physician", "radiologist"))
	write.POST("/mammograms", h.Upload)
	write.PUT("/mammograms/:id/analysis", h.RecordAnalysis)
	write.DELETE("/mammograms/:id", h.Delete)
}

func (h *Handler) Upload(c echo.Context) error {
	patientID, err := uuid.Parse(c.FormValue("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to open uploaded file")
	}
	defer src.Close()

	m, err := h.svc.Upload(c.Request().Context(), src, file.Filename, patientID)
	if err != nil {
		return mapStorageError(err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	m, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrMammogramNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "mammogram not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) DownloadImage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	rc, m, err := h.svc.Image(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrMammogramNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "mammogram not found")
		}
		return mapStorageError(err)
	}
	defer rc.Close()

	contentType := "application/octet-stream"
	if m.ContentType != nil {
		contentType = *m.ContentType
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, m.ID.String()))
	return c.Stream(http.StatusOK, contentType, rc)
}

func (h *Handler) List(c echo.Context) error {
	patientID, err := uuid.Parse(c.QueryParam("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id is required")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Mammogram{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) RecordAnalysis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Prediction    string    `json:"prediction"`
		Probabilities []float64 `json:"probabilities"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m, err := h.svc.RecordAnalysis(c.Request().Context(), id, body.Prediction, body.Probabilities)
	if err != nil {
		if errors.Is(err, ErrMammogramNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "mammogram not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrMammogramNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "mammogram not found")
		}
		return mapStorageError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// mapStorageError translates storage failures onto HTTP status codes.
// Containment is a client fault (a hostile path), not a server one.
func mapStorageError(err error) error {
	if errors.Is(err, storage.ErrEmptyUpload) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if errors.Is(err, storage.ErrFileTooLarge) {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
	}
	switch storage.KindOf(err) {
	case storage.KindContainment:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid path")
	case storage.KindNotFound:
		return echo.NewHTTPError(http.StatusNotFound, "file not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
