package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridedispatch/pkg/models"
)

func (s *Server) listUsers(c *gin.Context) {
	page, err := s.svc.User().List(c.Request.Context(), listQuery(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := s.svc.User().Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if !s.bindJSON(c, &req) {
		return
	}
	user, err := s.svc.User().Create(c.Request.Context(), &models.User{
		Username:     req.Username,
		FullName:     req.FullName,
		Role:         req.Role,
		AvatarFileID: req.AvatarFileID,
	}, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) updateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if !s.bindJSON(c, &req) {
		return
	}
	user, err := s.svc.User().Update(c.Request.Context(), &models.User{
		ID:           id,
		Username:     req.Username,
		FullName:     req.FullName,
		Role:         req.Role,
		AvatarFileID: req.AvatarFileID,
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) changePassword(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req passwordRequest
	if !s.bindJSON(c, &req) {
		return
	}
	if err := s.svc.User().ChangePassword(c.Request.Context(), currentClaims(c), id, req.Password); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.svc.User().Delete(c.Request.Context(), currentClaims(c), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
