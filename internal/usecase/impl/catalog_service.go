package impl

import (
	"context"
	"log/slog"
	"slices"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/shopspring/decimal"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	orchestrator
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params ServiceParams) usecase.CatalogUsecase {
	return &catalogService{orchestrator: newOrchestrator(params)}
}

func (srv *catalogService) CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (uint64, error) {
	ctx, logger := srv.start(ctx, "CreateCategory", slog.String("name", input.Name))

	id, err := srv.createCategory(ctx, input)

	return id, srv.finish(logger, "CreateCategory", err)
}

func (srv *catalogService) createCategory(ctx context.Context, input usecase.CreateCategoryInput) (uint64, error) {
	if err := srv.check(input); err != nil {
		return 0, err
	}
	category, err := entity.NewCategory(input.Name, input.Description)
	if err != nil {
		return 0, err
	}

	err = srv.uow.SaveChanges(ctx, func(repos repository.RepositoryFactory) error {
		return repos.CategoryRepo().Create(ctx, category)
	})
	if err != nil {
		return 0, err
	}

	return category.ID, nil
}

func (srv *catalogService) PublishVideogame(ctx context.Context, input usecase.PublishVideogameInput) (uint64, error) {
	ctx, logger := srv.start(ctx, "PublishVideogame",
		slog.Uint64("vendorID", input.VendorID),
		slog.Uint64("categoryID", input.CategoryID),
		slog.String("price", input.Price.String()))

	id, err := srv.publishVideogame(ctx, input)

	return id, srv.finish(logger, "PublishVideogame", err)
}

func (srv *catalogService) publishVideogame(ctx context.Context, input usecase.PublishVideogameInput) (uint64, error) {
	if err := srv.check(input); err != nil {
		return 0, err
	}
	videogame, err := entity.NewVideogame(input.Price, nil)
	if err != nil {
		return 0, err
	}

	err = srv.uow.Execute(ctx, func(repos repository.RepositoryFactory) error {
		vendor, err := repos.VendorRepo().FindByID(ctx, input.VendorID)
		if err != nil {
			return err
		}
		category, err := repos.CategoryRepo().FindByID(ctx, input.CategoryID)
		if err != nil {
			return err
		}

		if err := repos.VideogameRepo().Create(ctx, videogame); err != nil {
			return err
		}
		entity.LinkCategoryVideogame(category, videogame)
		entity.LinkPublishedVideogame(vendor, videogame)

		if err := repos.VideogameRepo().Update(ctx, videogame); err != nil {
			return err
		}

		return repos.VendorRepo().Update(ctx, vendor)
	})
	if err != nil {
		return 0, err
	}

	return videogame.ID, nil
}

func (srv *catalogService) DeleteVideogame(ctx context.Context, videogameID uint64) error {
	ctx, logger := srv.start(ctx, "DeleteVideogame", slog.Uint64("videogameID", videogameID))

	err := srv.uow.SaveChanges(ctx, func(repos repository.RepositoryFactory) error {
		videogame, err := repos.VideogameRepo().FindByID(ctx, videogameID)
		if err != nil {
			return err
		}
		if videogame.Price.GreaterThan(srv.rules.VideogameDeleteCap) {
			return domainerrors.ErrVideogameAboveCap.WithDetailsf("price %s exceeds %s", videogame.Price, srv.rules.VideogameDeleteCap)
		}

		return repos.VideogameRepo().Delete(ctx, videogame)
	})

	return srv.finish(logger, "DeleteVideogame", err)
}

// FilterVideogamesByPrice reads outside any transaction. Ties on price keep
// identifier order.
func (srv *catalogService) FilterVideogamesByPrice(ctx context.Context, input usecase.PriceFilterInput) ([]*entity.Videogame, error) {
	if input.Min.IsNegative() || input.Max.IsNegative() || input.Min.GreaterThan(input.Max) {
		return nil, domainerrors.ErrInvalidPriceRange.WithDetailsf("min %s, max %s", input.Min, input.Max)
	}

	videogames, err := srv.candidates(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	matched := make([]*entity.Videogame, 0, len(videogames))
	for _, v := range videogames {
		if inRange(v.Price, input.Min, input.Max) {
			matched = append(matched, v)
		}
	}
	slices.SortStableFunc(matched, func(a, b *entity.Videogame) int {
		return a.Price.Cmp(b.Price)
	})

	return matched, nil
}

func (srv *catalogService) candidates(ctx context.Context, categoryID *uint64) ([]*entity.Videogame, error) {
	videogames := srv.uow.Repositories().VideogameRepo()
	if categoryID != nil {
		return videogames.FindByCategoryID(ctx, *categoryID)
	}

	return videogames.FindAll(ctx)
}

func inRange(price, minPrice, maxPrice decimal.Decimal) bool {
	return price.GreaterThanOrEqual(minPrice) && price.LessThanOrEqual(maxPrice)
}

func (srv *catalogService) ListVideogamesByCategory(ctx context.Context, categoryName string) ([]*entity.Videogame, error) {
	return srv.uow.Repositories().VideogameRepo().FindByCategoryName(ctx, categoryName)
}

func (srv *catalogService) CreateChallenge(ctx context.Context, input usecase.CreateChallengeInput) (uint64, error) {
	ctx, logger := srv.start(ctx, "CreateChallenge",
		slog.String("name", input.Name),
		slog.Int("videogames", len(input.VideogameIDs)))

	id, err := srv.createChallenge(ctx, input)

	return id, srv.finish(logger, "CreateChallenge", err)
}

func (srv *catalogService) createChallenge(ctx context.Context, input usecase.CreateChallengeInput) (uint64, error) {
	if err := srv.check(input); err != nil {
		return 0, err
	}
	if len(input.VideogameIDs) == 0 {
		return 0, domainerrors.ErrEmptySelection
	}
	challenge, err := entity.NewChallenge(input.Name, input.Description)
	if err != nil {
		return 0, err
	}

	var ids entity.IDs
	for _, id := range input.VideogameIDs {
		ids.Add(id)
	}

	err = srv.uow.Execute(ctx, func(repos repository.RepositoryFactory) error {
		videogames, err := loadVideogames(ctx, repos.VideogameRepo(), ids)
		if err != nil {
			return err
		}

		if err := repos.ChallengeRepo().Create(ctx, challenge); err != nil {
			return err
		}
		for _, v := range videogames {
			entity.LinkChallengeVideogame(challenge, v)
		}

		if err := repos.ChallengeRepo().Update(ctx, challenge); err != nil {
			return err
		}
		for _, v := range videogames {
			if err := repos.VideogameRepo().Update(ctx, v); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return challenge.ID, nil
}

func (srv *catalogService) AttachBadgeToChallenge(ctx context.Context, challengeID, badgeID uint64) error {
	ctx, logger := srv.start(ctx, "AttachBadgeToChallenge",
		slog.Uint64("challengeID", challengeID),
		slog.Uint64("badgeID", badgeID))

	err := srv.uow.Execute(ctx, func(repos repository.RepositoryFactory) error {
		challenge, err := repos.ChallengeRepo().FindByID(ctx, challengeID)
		if err != nil {
			return err
		}
		badge, err := repos.BadgeRepo().FindByID(ctx, badgeID)
		if err != nil {
			return err
		}

		entity.LinkChallengeBadge(challenge, badge)
		if err := repos.ChallengeRepo().Update(ctx, challenge); err != nil {
			return err
		}

		return repos.BadgeRepo().Update(ctx, badge)
	})

	return srv.finish(logger, "AttachBadgeToChallenge", err)
}

// loadVideogames resolves every id in order; the first missing one aborts.
func loadVideogames(ctx context.Context, repo repository.VideogameRepository, ids []uint64) ([]*entity.Videogame, error) {
	videogames := make([]*entity.Videogame, 0, len(ids))
	for _, id := range ids {
		v, err := repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		videogames = append(videogames, v)
	}

	return videogames, nil
}
