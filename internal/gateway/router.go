package gateway

import (
	"net/http"

	"medibook/pkg/client"
	"medibook/pkg/config"
	"medibook/pkg/token"
)

// Route prefixes exposed by the gateway. The auth and consults prefixes
// are public; users and doctors require a bearer token.
const (
	AuthPrefix     = "/auth"
	UsersPrefix    = "/api/users"
	DoctorsPrefix  = "/doctors"
	ConsultsPrefix = "/consults"
)

// NewRouter assembles the gateway's route table:
//
//	/auth/*      -> users service /userauth/*, falling back to the
//	                consult service /api/backup/* when users is down
//	/api/users/* -> users service, prefix stripped, token required
//	/doctors/*   -> doctor service, prefix stripped, token required
//	/consults/*  -> consult service /api/consults/*
func NewRouter(cfg *config.Config) (http.Handler, error) {
	primaryAuth, err := NewServiceProxy(cfg.UserServiceURL, AuthPrefix, "/userauth", cfg)
	if err != nil {
		return nil, err
	}
	backupAuth, err := NewServiceProxy(cfg.ConsultServiceURL, AuthPrefix, "/api/backup", cfg)
	if err != nil {
		return nil, err
	}
	users, err := NewServiceProxy(cfg.UserServiceURL, UsersPrefix, "", cfg)
	if err != nil {
		return nil, err
	}
	doctors, err := NewServiceProxy(cfg.DoctorServiceURL, DoctorsPrefix, "", cfg)
	if err != nil {
		return nil, err
	}
	consults, err := NewServiceProxy(cfg.ConsultServiceURL, ConsultsPrefix, "/api/consults", cfg)
	if err != nil {
		return nil, err
	}

	// The probe client gets its own timeout so a hung primary cannot
	// stall the request for longer than ProbeTimeout.
	probeClient := client.NewHttpClient(cfg.UserServiceURL, cfg.ProbeTimeout)
	failover := NewFailoverRouter(probeClient, primaryAuth, backupAuth, cfg)

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTLifetime)
	authed := RequireAuth(issuer, cfg)

	mux := http.NewServeMux()
	mux.Handle(AuthPrefix+"/", failover)
	mux.Handle(UsersPrefix+"/", authed(users))
	mux.Handle(DoctorsPrefix+"/", authed(doctors))
	mux.Handle(ConsultsPrefix+"/", consults)
	mux.Handle(ConsultsPrefix, consults)
	return mux, nil
}
