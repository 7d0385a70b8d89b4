package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tokenVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worldforge_token_verifications_total",
		Help: "Bearer token verification attempts by outcome.",
	}, []string{"outcome"})

	ownershipChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worldforge_ownership_checks_total",
		Help: "Row ownership checks by resource kind and outcome.",
	}, []string{"kind", "outcome"})

	signupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "worldforge_signups_total",
		Help: "Successful account registrations.",
	})

	loginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "worldforge_logins_total",
		Help: "Successful logins.",
	})
)
