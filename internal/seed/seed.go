package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/app/repositories"
	"github.com/emre/communia/internal/pkg/apperrors"
	"github.com/emre/communia/internal/pkg/auth"
)

const (
	demoUsername = "communia"
	demoEmail    = "hello@communia.app"
	demoPassword = "Communia-Demo-2024"

	demoCommunityName = "Communia Lounge"
)

// CreateDefaultData seeds a demo account and a public community on first
// startup so a fresh instance is explorable. Existing data is left alone;
// seed failures are reported but never block startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")

	taken, err := repos.User.UsernameOrEmailExists(ctx, nil, demoUsername, demoEmail)
	if err != nil {
		return err
	}
	if taken {
		lgr.Debug().Msg("Default data already present, skipping seed")
		return nil
	}

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return err
	}

	userID, err := repos.User.Create(ctx, nil, &models.User{
		Username:     demoUsername,
		Email:        demoEmail,
		PasswordHash: hash,
		ChatIDs:      []int64{},
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUsernameOrEmailUsed) {
			return nil
		}
		return err
	}

	communityID, err := repos.Community.Create(ctx, nil, &models.Community{
		Name:            demoCommunityName,
		Description:     "The default community every fresh installation starts with.",
		IsPublic:        true,
		CreatorID:       userID,
		Status:          models.StatusActive,
		AdminIDs:        []int64{userID},
		MemberIDs:       []int64{userID},
		ChatIDs:         []int64{},
		EventIDs:        []int64{},
		VisibleInSearch: true,
	})
	if err != nil {
		return err
	}

	lgr.Info().
		Int64("userId", userID).
		Int64("communityId", communityID).
		Msg("Default data created")
	return nil
}
