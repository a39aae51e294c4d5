package config

import (
	"context"
	"fmt"

	"sebbi-server/internal/domain"
	"sebbi-server/internal/repository"
	"sebbi-server/internal/service"
	"sebbi-server/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config             domain.Config
	Logger             domain.Logger
	SupabaseClient     domain.SupabaseClient
	UserRepository     domain.UserRepository
	DocumentRepository domain.DocumentRepository
	PdfRepository      domain.PdfRepository
	Storage            domain.ObjectStorage
	Generator          domain.TextGenerator
	Fetcher            domain.Fetcher
	AuthService        domain.AuthService
	DocumentService    domain.DocumentService
	PDFService         domain.PDFService
	QuestionService    domain.QuestionService
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context) (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Initialize Supabase client
	supabaseClient := repository.NewSupabaseClient(config, appLogger)
	if err := supabaseClient.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize supabase client: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewSupabaseUserRepository(supabaseClient, appLogger)
	documentRepo := repository.NewSupabaseDocumentRepository(supabaseClient, appLogger)
	pdfRepo := repository.NewSupabasePdfRepository(supabaseClient, appLogger)

	// Initialize infrastructure services
	storage := service.NewStorageService(
		config.GetSupabaseURL(),
		config.GetSupabaseKey(),
		config.GetStorageBucket(),
	)
	generator, err := service.NewVertexGenerator(
		ctx,
		config.GetGCPProjectID(),
		config.GetGCPLocation(),
		config.GetGeminiModel(),
		appLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize text generator: %w", err)
	}
	fetcher := service.NewHTTPFetcher(config.GetFetchTimeout())

	// Initialize domain services
	authService := service.NewAuthService(userRepo, service.NewPasswordHasher(), appLogger)
	documentService := service.NewDocumentService(userRepo, documentRepo, appLogger)
	pdfService := service.NewPdfService(userRepo, pdfRepo, storage, generator, fetcher, appLogger)
	questionService := service.NewQuestionService(generator, fetcher, appLogger)

	return &Container{
		Config:             config,
		Logger:             appLogger,
		SupabaseClient:     supabaseClient,
		UserRepository:     userRepo,
		DocumentRepository: documentRepo,
		PdfRepository:      pdfRepo,
		Storage:            storage,
		Generator:          generator,
		Fetcher:            fetcher,
		AuthService:        authService,
		DocumentService:    documentService,
		PDFService:         pdfService,
		QuestionService:    questionService,
	}, nil
}
