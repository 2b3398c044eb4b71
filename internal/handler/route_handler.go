package handler

import (
	"github.com/fantastic-tour/service-routing/internal/application"
	"github.com/fantastic-tour/service-routing/internal/format"
	"github.com/fantastic-tour/service-routing/internal/response"
	"github.com/gin-gonic/gin"
)

// RouteHandler handles HTTP requests for route planning.
type RouteHandler struct {
	service *application.PlannerService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(service *application.PlannerService) *RouteHandler {
	return &RouteHandler{service: service}
}

// RegisterRoutes registers all planning routes on the given router group.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup) {
	api := r.Group("/api/v1")
	{
		api.POST("/routes/plan", h.PlanRoute)
		api.GET("/vehicles", h.ListVehicles)
	}
}

// PlanRouteRequest is the body of POST /api/v1/routes/plan.
type PlanRouteRequest struct {
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	Vehicle     string `json:"vehicle" binding:"required"`
	Units       string `json:"units"`
}

// PlanRouteResponse is the success payload: the raw route plan plus the
// rendered distance, duration and deep link.
type PlanRouteResponse struct {
	application.RoutePlan
	Distance     string                `json:"distance"`
	Duration     string                `json:"duration"`
	MapsURL      string                `json:"maps_url"`
	Instructions []InstructionResponse `json:"instructions"`
}

// InstructionResponse is one rendered turn instruction.
type InstructionResponse struct {
	Text           string  `json:"text"`
	DistanceMeters float64 `json:"distance_meters"`
	Distance       string  `json:"distance"`
}

// PlanRoute handles POST /api/v1/routes/plan.
func (h *RouteHandler) PlanRoute(c *gin.Context) {
	var req PlanRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	units, err := format.ParseUnitSystem(req.Units)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	plan, err := h.service.PlanRoute(c.Request.Context(), req.Origin, req.Destination, req.Vehicle)
	if err != nil {
		response.Error(c, err)
		return
	}

	instructions := make([]InstructionResponse, len(plan.Instructions))
	for i, in := range plan.Instructions {
		instructions[i] = InstructionResponse{
			Text:           in.Text,
			DistanceMeters: in.DistanceMeters,
			Distance:       format.Distance(in.DistanceMeters, units),
		}
	}

	response.Success(c, PlanRouteResponse{
		RoutePlan:    *plan,
		Distance:     format.Distance(plan.DistanceMeters, units),
		Duration:     format.Duration(plan.DurationMillis),
		MapsURL:      format.MapsURL(plan.Origin, plan.Destination, plan.Vehicle),
		Instructions: instructions,
	})
}

// ListVehicles handles GET /api/v1/vehicles.
func (h *RouteHandler) ListVehicles(c *gin.Context) {
	response.Success(c, gin.H{"vehicles": h.service.Vehicles().List()})
}
