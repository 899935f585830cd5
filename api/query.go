package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"ridedispatch/pkg/models"
)

func listQuery(c *gin.Context) models.ListQuery {
	return models.ListQuery{
		Page:   cast.ToInt(c.Query("page")),
		Limit:  cast.ToInt(c.Query("limit")),
		Sort:   c.Query("sort"),
		Desc:   !strings.EqualFold(c.DefaultQuery("order", "desc"), "asc"),
		Search: strings.TrimSpace(c.Query("search")),
	}
}

// pathID parses the :id parameter, writing a 400 when it is not a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func pathUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func queryInt64(c *gin.Context, key string) (*int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return nil, false
	}
	return &v, true
}

func queryTime(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + key + ", expected RFC3339"})
		return nil, false
	}
	return &t, true
}

func queryBool(c *gin.Context, key string) (*bool, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return nil, false
	}
	return &v, true
}

func rideFilter(c *gin.Context) (models.RideFilter, bool) {
	f := models.RideFilter{Status: c.Query("status")}
	var ok bool
	if f.ClientID, ok = queryInt64(c, "client_id"); !ok {
		return f, false
	}
	if f.DriverID, ok = queryInt64(c, "driver_id"); !ok {
		return f, false
	}
	if f.RideClassID, ok = queryInt64(c, "ride_class_id"); !ok {
		return f, false
	}
	if f.From, ok = queryTime(c, "from"); !ok {
		return f, false
	}
	if f.To, ok = queryTime(c, "to"); !ok {
		return f, false
	}
	return f, true
}
