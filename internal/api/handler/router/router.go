// Package router monta o httprouter da API a partir das listas de rotas de cada handler.
package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"

	"github.com/Chelsea-799/ga4-analytics-tool/pkg/apiErrors"
)

// WithRoutes registra um grupo de rotas; server.go chama uma vez por handler.
var WithRoutes = func(routes ...Route) ConfigRouter {
	return func(router *Router) {
		router.AddRoutes(routes...)
	}
}

// Route liga método e caminho ao handler. Middlewares valem só para esta rota e rodam na
// ordem da lista, o primeiro mais externo.
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler
}

type Router struct {
	router *httprouter.Router
}

type ConfigRouter func(router *Router)

// New cria o router com respostas 404 e 405 no mesmo JSON de erro da API.
func New(configs ...ConfigRouter) Router {
	rt := httprouter.New()
	rt.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrRouteNotFound, "Rota não encontrada: "+r.URL.Path, nil)
	})
	rt.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed, "Método "+r.Method+" não aceito em "+r.URL.Path, nil)
	})

	router := &Router{router: rt}
	for _, config := range configs {
		config(router)
	}

	return *router
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes encadeia os middlewares da rota com alice antes de registrar.
func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		chain := alice.New()
		for _, mw := range route.Middlewares {
			chain = chain.Append(mw)
		}

		r.router.Handler(route.Method, route.Path, chain.Then(route.Handler))
	}
}
