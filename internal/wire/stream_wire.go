package wire

import (
	"electromart/internal/adaptor"
	"electromart/internal/data/repository"
	"electromart/pkg/middleware"
	"electromart/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireStream(
	r chi.Router,
	streamHandler *adaptor.StreamHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, repo.User, log)

	// Product stream is public, orders/inquiries require a session.
	r.Get("/api/stream/products", streamHandler.StreamProducts)
	r.With(auth).Get("/api/stream/{table}", streamHandler.Stream)
}
