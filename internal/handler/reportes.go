package handler

import (
	"net/http"

	"github.com/vibesind/vibes-gestion/internal/apierror"
	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

func bindReporteFilter(c *gin.Context) (dto.ReporteFilter, bool) {
	var filter dto.ReporteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return filter, false
	}
	return filter, true
}

func (h *ReportesHandler) VentasPorDia(c *gin.Context) {
	filter, ok := bindReporteFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.VentasPorDia(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el reporte"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) TopProductos(c *gin.Context) {
	filter, ok := bindReporteFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.TopProductos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el reporte"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) Ganancias(c *gin.Context) {
	filter, ok := bindReporteFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.Ganancias(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el reporte"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) AlertasStock(c *gin.Context) {
	resp, err := h.svc.AlertasStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el reporte"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) Resumen(c *gin.Context) {
	filter, ok := bindReporteFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el reporte"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
