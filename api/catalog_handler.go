package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ride classes and extra options are the reference data operators pick from.

func (s *Server) listRideClasses(c *gin.Context) {
	page, err := s.svc.RideClass().List(c.Request.Context(), listQuery(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) getRideClass(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	class, err := s.svc.RideClass().Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (s *Server) createRideClass(c *gin.Context) {
	var req rideClassRequest
	if !s.bindJSON(c, &req) {
		return
	}
	class, err := s.svc.RideClass().Create(c.Request.Context(), req.model(0))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, class)
}

func (s *Server) updateRideClass(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req rideClassRequest
	if !s.bindJSON(c, &req) {
		return
	}
	class, err := s.svc.RideClass().Update(c.Request.Context(), req.model(id))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (s *Server) deleteRideClass(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.svc.RideClass().Delete(c.Request.Context(), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listExtraOptions(c *gin.Context) {
	page, err := s.svc.ExtraOption().List(c.Request.Context(), listQuery(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) getExtraOption(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	option, err := s.svc.ExtraOption().Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, option)
}

func (s *Server) createExtraOption(c *gin.Context) {
	var req extraOptionRequest
	if !s.bindJSON(c, &req) {
		return
	}
	option, err := s.svc.ExtraOption().Create(c.Request.Context(), req.model(0))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, option)
}

func (s *Server) updateExtraOption(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req extraOptionRequest
	if !s.bindJSON(c, &req) {
		return
	}
	option, err := s.svc.ExtraOption().Update(c.Request.Context(), req.model(id))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, option)
}

func (s *Server) deleteExtraOption(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.svc.ExtraOption().Delete(c.Request.Context(), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
