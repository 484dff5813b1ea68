package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// PlaceHandler is the set of route handlers the router wires up.
type PlaceHandler interface {
	GetPlace(w http.ResponseWriter, r *http.Request)
	RenderPlace(w http.ResponseWriter, r *http.Request)
	GetPlaceHours(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	placeHandler PlaceHandler
	router       *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	placeHandler PlaceHandler,
	router *mux.Router) *Router {
	return &Router{
		placeHandler: placeHandler,
		router:       router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/v1/place/{place_id}", r.placeHandler.GetPlace).Methods("GET")
	r.router.HandleFunc("/v1/place/{place_id}/render", r.placeHandler.RenderPlace).Methods("GET")
	r.router.HandleFunc("/v1/place/{place_id}/hours", r.placeHandler.GetPlaceHours).Methods("GET")

	r.router.HandleFunc("/ping", r.placeHandler.Ping).Methods("GET")
}
