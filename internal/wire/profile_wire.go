package wire

import (
	"electromart/internal/adaptor"
	"electromart/internal/data/repository"
	"electromart/pkg/middleware"
	"electromart/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProfile(
	r chi.Router,
	profileHandler *adaptor.ProfileHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, repo.User, log)

	r.With(auth).Get("/api/profile", profileHandler.GetProfile)
	r.With(auth).Put("/api/profile", profileHandler.UpsertProfile)
}
