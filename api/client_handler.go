package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridedispatch/pkg/models"
)

func (s *Server) listClients(c *gin.Context) {
	page, err := s.svc.Client().List(c.Request.Context(), listQuery(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) getClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	client, err := s.svc.Client().Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (s *Server) createClient(c *gin.Context) {
	var req clientRequest
	if !s.bindJSON(c, &req) {
		return
	}
	client, err := s.svc.Client().Create(c.Request.Context(), req.model(0))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (s *Server) updateClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req clientRequest
	if !s.bindJSON(c, &req) {
		return
	}
	client, err := s.svc.Client().Update(c.Request.Context(), req.model(id))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (s *Server) deleteClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.svc.Client().Delete(c.Request.Context(), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listClientRides(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := s.svc.Client().Get(c.Request.Context(), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	s.writeRides(c, models.RideFilter{ClientID: &id, Status: c.Query("status")})
}

func (s *Server) writeRides(c *gin.Context, f models.RideFilter) {
	page, err := s.svc.Ride().List(c.Request.Context(), listQuery(c), f)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
