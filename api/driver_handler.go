package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridedispatch/pkg/models"
)

func (s *Server) listDrivers(c *gin.Context) {
	active, ok := queryBool(c, "is_active")
	if !ok {
		return
	}
	page, err := s.svc.Driver().List(c.Request.Context(), listQuery(c), active)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) getDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	driver, err := s.svc.Driver().Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (s *Server) createDriver(c *gin.Context) {
	var req driverRequest
	if !s.bindJSON(c, &req) {
		return
	}
	driver, err := s.svc.Driver().Create(c.Request.Context(), req.model(0))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

func (s *Server) updateDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req driverRequest
	if !s.bindJSON(c, &req) {
		return
	}
	driver, err := s.svc.Driver().Update(c.Request.Context(), req.model(id))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (s *Server) deleteDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.svc.Driver().Delete(c.Request.Context(), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listDriverRides(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := s.svc.Driver().Get(c.Request.Context(), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	s.writeRides(c, models.RideFilter{DriverID: &id, Status: c.Query("status")})
}
