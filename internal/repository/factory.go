package repository

import (
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/cache"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/config"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/client"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/company"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/facility"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/servicelineitem"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/logger"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/postgres"
	postgresRepo "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/repository/postgres"
)

func NewCompanyRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache, cfg *config.Configuration) company.Repository {
	return postgresRepo.NewCompanyRepository(db, logger, cache, cfg)
}

func NewClientRepository(db *postgres.DB, logger *logger.Logger) client.Repository {
	return postgresRepo.NewClientRepository(db, logger)
}

func NewFacilityRepository(db *postgres.DB, logger *logger.Logger) facility.Repository {
	return postgresRepo.NewFacilityRepository(db, logger)
}

func NewServiceLineItemRepository(db *postgres.DB, logger *logger.Logger) servicelineitem.Repository {
	return postgresRepo.NewServiceLineItemRepository(db, logger)
}
