package api

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridedispatch/service"
)

// multipartOverhead leaves room for boundaries and headers around the file part.
const multipartOverhead = 1 << 20

func (s *Server) uploadFile(c *gin.Context) {
	if s.cfg.MaxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadSize+multipartOverhead)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "multipart field \"file\" is required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	defer f.Close()

	meta, err := s.svc.File().Upload(c.Request.Context(), service.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
		UploadedBy:  currentUserID(c),
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meta)
}

func (s *Server) downloadFile(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	meta, body, err := s.svc.File().Open(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	defer body.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": meta.OriginalName})
	c.DataFromReader(http.StatusOK, meta.Size, meta.MimeType, body, map[string]string{
		"Content-Disposition": disposition,
	})
}

func (s *Server) getFileMeta(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	meta, err := s.svc.File().Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (s *Server) deleteFile(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := s.svc.File().Delete(c.Request.Context(), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
