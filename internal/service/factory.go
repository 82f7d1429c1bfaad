package service

import (
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/config"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/client"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/company"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/facility"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/servicelineitem"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/logger"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Sentry *sentry.Service

	// Repositories
	CompanyRepo         company.Repository
	ClientRepo          client.Repository
	FacilityRepo        facility.Repository
	ServiceLineItemRepo servicelineitem.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	sentry *sentry.Service,
	companyRepo company.Repository,
	clientRepo client.Repository,
	facilityRepo facility.Repository,
	serviceLineItemRepo servicelineitem.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:              logger,
		Config:              config,
		Sentry:              sentry,
		CompanyRepo:         companyRepo,
		ClientRepo:          clientRepo,
		FacilityRepo:        facilityRepo,
		ServiceLineItemRepo: serviceLineItemRepo,
	}
}
