package router

import (
	"github.com/gorilla/mux"
)

// Controller mounts its routes on the shared router.
type Controller interface {
	Register(router *mux.Router)
}
