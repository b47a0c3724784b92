package scheduling

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/incubyte/booking/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	avail := api.Group("/availability")
	avail.GET("/doctor/:id", h.ListAvailability)
	avail.DELETE("/doctor/:id", h.DeleteAvailability)
	avail.GET("/:id", h.GetAvailability)
	avail.POST("", h.AddAvailability)

	appts := api.Group("/appointments")
	appts.GET("/doctor/:id", h.ListAppointments)
	appts.GET("/:id", h.GetAppointment)
	appts.POST("", h.CreateAppointment)
	appts.DELETE("/:id", h.DeleteAppointment)
}

type IDResponse struct {
	ID int64 `json:"id"`
}

func parseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// -- Availability Handlers --

func (h *Handler) AddAvailability(c echo.Context) error {
	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := h.svc.AddAvailability(c.Request().Context(), req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, IDResponse{ID: id})
}

func (h *Handler) GetAvailability(c echo.Context) error {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		return err
	}
	a, err := h.svc.GetAvailability(c.Request().Context(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAvailability(c echo.Context) error {
	doctorID, err := parseID(c.Param("id"), "doctor id")
	if err != nil {
		return err
	}
	items, err := h.svc.ListAvailability(c.Request().Context(), doctorID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DeleteAvailability(c echo.Context) error {
	doctorID, err := parseID(c.Param("id"), "doctor id")
	if err != nil {
		return err
	}
	id, err := parseID(c.QueryParam("availability_id"), "availability_id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteAvailability(c.Request().Context(), doctorID, id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Appointment Handlers --

func (h *Handler) CreateAppointment(c echo.Context) error {
	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := h.svc.CreateAppointment(c.Request().Context(), req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, IDResponse{ID: id})
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		return err
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	doctorID, err := parseID(c.Param("id"), "doctor id")
	if err != nil {
		return err
	}
	items, err := h.svc.ListAppointments(c.Request().Context(), doctorID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteAppointment(c.Request().Context(), id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
