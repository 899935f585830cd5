package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ridesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rides_created_total",
		Help: "Total number of rides created",
	})
	authLogins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Login attempts by result",
	}, []string{"result"})
	authRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_refresh_total",
		Help: "Refresh attempts by result",
	}, []string{"result"})
	quoteCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "route_quote_cache_total",
		Help: "Route distance cache lookups by result",
	}, []string{"result"})
)
