package router

import (
	"net/http"

	"github.com/GuilhermeTBedin/backend-controle-financeiro/handler"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/GuilhermeTBedin/backend-controle-financeiro/docs"
)

func NewRouter(authHandler *handler.AuthHandler, transactionHandler *handler.TransactionHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.Handler())

	// Public auth routes
	mux.Handle("POST /auth/register", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("POST /auth/login", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("POST /auth/refresh-token", handler.ErrorHandlingMiddleware(authHandler.Refresh))
	mux.Handle("POST /auth/logout", handler.ErrorHandlingMiddleware(authHandler.Logout))

	// Protected transaction routes
	mux.Handle("POST /transactions", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(transactionHandler.Create)))
	mux.Handle("GET /transactions", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(transactionHandler.List)))
	mux.Handle("GET /transactions/summary", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(transactionHandler.Summary)))
	mux.Handle("GET /transactions/{id}", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(transactionHandler.GetByID)))
	mux.Handle("PUT /transactions/{id}", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(transactionHandler.Update)))
	mux.Handle("DELETE /transactions/{id}", handler.AuthMiddleware(handler.ErrorHandlingMiddleware(transactionHandler.Delete)))

	return mux
}
