package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listRides(c *gin.Context) {
	f, ok := rideFilter(c)
	if !ok {
		return
	}
	s.writeRides(c, f)
}

func (s *Server) getRide(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ride, err := s.svc.Ride().Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ride)
}

func (s *Server) createRide(c *gin.Context) {
	var req rideRequest
	if !s.bindJSON(c, &req) {
		return
	}
	ride, err := s.svc.Ride().Create(c.Request.Context(), req.model(0), currentUserID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ride)
}

func (s *Server) updateRide(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req rideRequest
	if !s.bindJSON(c, &req) {
		return
	}
	ride, err := s.svc.Ride().Update(c.Request.Context(), req.model(id))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ride)
}

func (s *Server) deleteRide(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.svc.Ride().Delete(c.Request.Context(), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) quoteRide(c *gin.Context) {
	var req quoteRequest
	if !s.bindJSON(c, &req) {
		return
	}
	quote, err := s.svc.Ride().Quote(c.Request.Context(), req.RideClassID, req.points())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
