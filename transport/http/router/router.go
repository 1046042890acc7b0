package router

import (
	"clinic/internal/handlers/booking"
	"clinic/internal/handlers/catalog"
	"clinic/internal/handlers/provider"
	"clinic/internal/handlers/wizard"
	"clinic/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Catalog  catalog.Handler
	Provider provider.Handler
	Booking  booking.Handler
	Wizard   wizard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

// SetupRoutes mounts the public booking surface and, behind auth, the admin schedule.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Provider.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Wizard.Router(routerGroup)

		routerGroup.Group(func(admin chi.Router) {
			admin.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)
			r.DomainHandlers.Booking.AdminRouter(admin)
		})
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
