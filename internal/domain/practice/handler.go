package practice

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
	doctors := api.Group("/doctors")
	doctors.GET("", h.ListDoctors)
	doctors.POST("", h.AddDoctor)
	doctors.GET("/:id", h.GetDoctor)
	doctors.PUT("/:id", h.UpdateDoctor)
	doctors.DELETE("/:id", h.DeleteDoctor)
	doctors.GET("/:id/locations", h.ListDoctorLocations)

	locations := api.Group("/locations")
	locations.GET("", h.ListLocations)
	locations.POST("", h.AddLocation)
	locations.POST("/associate-doctor-location", h.Associate)
	locations.DELETE("/deassociate-doctor-location", h.Deassociate)
	locations.GET("/:id", h.GetLocation)
	locations.PUT("/:id", h.UpdateLocation)
	locations.DELETE("/:id", h.DeleteLocation)
}

type AddDoctorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AddLocationRequest struct {
	Address string `json:"address"`
}

type AssociateRequest struct {
	DoctorID   int64 `json:"doctor_id"`
	LocationID int64 `json:"location_id"`
}

type IDResponse struct {
	ID int64 `json:"id"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type AssociationResponse struct {
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message"`
}

func parseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// -- Doctor Handlers --

func (h *Handler) ListDoctors(c echo.Context) error {
	items, err := h.svc.ListDoctors(c.Request().Context())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		return err
	}
	d, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) AddDoctor(c echo.Context) error {
	var req AddDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := h.svc.AddDoctor(c.Request().Context(), req.FirstName, req.LastName)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, IDResponse{ID: id})
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		return err
	}
	var patch DoctorPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateDoctor(c.Request().Context(), id, patch); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDoctor(c.Request().Context(), id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (h *Handler) ListDoctorLocations(c echo.Context) error {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		return err
	}
	items, err := h.svc.ListDoctorLocations(c.Request().Context(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// -- Location Handlers --

func (h *Handler) ListLocations(c echo.Context) error {
	items, err := h.svc.ListLocations(c.Request().Context())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetLocation(c echo.Context) error {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		return err
	}
	l, err := h.svc.GetLocation(c.Request().Context(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) AddLocation(c echo.Context) error {
	var req AddLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := h.svc.AddLocation(c.Request().Context(), req.Address)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, IDResponse{ID: id})
}

func (h *Handler) UpdateLocation(c echo.Context) error {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		return err
	}
	var patch LocationPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateLocation(c.Request().Context(), id, patch); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (h *Handler) DeleteLocation(c echo.Context) error {
	id, err := parseID(c.Param("id"), "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteLocation(c.Request().Context(), id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// -- Association Handlers --

func (h *Handler) Associate(c echo.Context) error {
	var req AssociateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := h.svc.Associate(c.Request().Context(), req.DoctorID, req.LocationID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, AssociationResponse{
		ID:      id,
		Message: "Doctor successfully associated with location",
	})
}

func (h *Handler) Deassociate(c echo.Context) error {
	doctorID, err := parseID(c.QueryParam("doctor_id"), "doctor_id")
	if err != nil {
		return err
	}
	locationID, err := parseID(c.QueryParam("location_id"), "location_id")
	if err != nil {
		return err
	}
	if err := h.svc.Deassociate(c.Request().Context(), doctorID, locationID); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, AssociationResponse{Message: "Doctor successfully deassociated from location"})
}
