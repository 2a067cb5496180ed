package controllers

import (
	"hotspotbill-backend/providers/snmp"
	"hotspotbill-backend/session"
)

// Lifecycle is the shared session lifecycle controller, wired in main.
var Lifecycle *session.Controller

// routerHealthCfg is the SNMP target for the admin health endpoint, wired in
// main so requests never re-read the environment.
var routerHealthCfg snmp.Config

func SetLifecycle(l *session.Controller) {
	Lifecycle = l
}

func SetRouterHealthConfig(cfg snmp.Config) {
	routerHealthCfg = cfg
}

// jwtSecret signs admin tokens, wired in main alongside the JWT middleware.
var jwtSecret string

func SetJWTSecret(secret string) {
	jwtSecret = secret
}
