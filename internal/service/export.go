package service

import (
	"context"
	"fmt"

	"github.com/salasintercc/expo-admin-api/internal/domain"
	"github.com/salasintercc/expo-admin-api/internal/export"
)

type ExportUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type ExportEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type ExportConfigRepository interface {
	FindByUserAndEvent(ctx context.Context, userID, eventID uint) ([]domain.StandConfig, error)
}

type ExportSchemaRepository interface {
	FindByID(ctx context.Context, id uint) (domain.StandOption, error)
}

type PDFRenderer interface {
	Render(ctx context.Context, doc export.Document) ([]byte, error)
}

// ExportService assembles the export document for one exhibitor and
// event, in JSON or PDF form. Submitted and draft configurations are
// both included so admins can review work in progress.
type ExportService struct {
	users    ExportUserRepository
	events   ExportEventRepository
	configs  ExportConfigRepository
	schemas  ExportSchemaRepository
	renderer PDFRenderer
}

func NewExportService(
	users ExportUserRepository,
	events ExportEventRepository,
	configs ExportConfigRepository,
	schemas ExportSchemaRepository,
	renderer PDFRenderer,
) *ExportService {
	return &ExportService{
		users:    users,
		events:   events,
		configs:  configs,
		schemas:  schemas,
		renderer: renderer,
	}
}

// schemaSource adapts the stand option repository to the resolver's
// lookup interface.
type schemaSource struct {
	repo ExportSchemaRepository
}

func (s schemaSource) GetStandOption(ctx context.Context, id uint) (domain.StandOption, error) {
	return s.repo.FindByID(ctx, id)
}

// BuildDocument resolves the exhibitor's configurations for the event
// into the export document. The schema cache lives for this call only.
func (s *ExportService) BuildDocument(ctx context.Context, userID, eventID uint) (export.Document, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return export.Document{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return export.Document{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	configs, err := s.configs.FindByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return export.Document{}, fmt.Errorf("s.configs.FindByUserAndEvent -> %w", err)
	}

	resolver := export.NewResolver(export.NewSchemaCache(schemaSource{repo: s.schemas}))

	return resolver.Resolve(ctx, user, event, configs), nil
}

// ExportPDF renders the document to PDF bytes and returns the suggested
// download filename alongside.
func (s *ExportService) ExportPDF(ctx context.Context, userID, eventID uint) ([]byte, string, error) {
	doc, err := s.BuildDocument(ctx, userID, eventID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.renderer.Render(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("s.renderer.Render -> %w", err)
	}

	return pdf, export.Filename(doc.Exhibitor.Name, "pdf"), nil
}
