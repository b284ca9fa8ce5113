package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/mapper"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/pkg/serverutils"
	"faq-chatbot-be/internal/repository/specification"
	"faq-chatbot-be/internal/repository/unitofwork"
	"faq-chatbot-be/pkg/events"
	"faq-chatbot-be/pkg/matcher"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const (
	corpusCacheKey    = "faq:corpus"
	corpusLoadTimeout = 30 * time.Second
)

// EventPublisher is satisfied by *nats.Publisher
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IFaqService interface {
	// FetchAll returns every FAQ in insertion order. Satisfies conversation.FaqCorpus.
	FetchAll(ctx context.Context) ([]matcher.Entry, error)
	Create(ctx context.Context, req *dto.FaqRequest) (*dto.FaqResponse, error)
	Update(ctx context.Context, id uint, req *dto.FaqRequest) (*dto.FaqResponse, error)
	Delete(ctx context.Context, id uint) error
	Show(ctx context.Context, id uint) (*dto.FaqResponse, error)
	List(ctx context.Context, req *dto.ListFaqRequest) (*dto.PaginatedResponse[*dto.FaqResponse], error)
	Import(ctx context.Context, items []dto.FaqRequest) (*dto.ImportFaqResult, error)
	// HandleEvent drops the cached corpus when another instance changed the FAQ table
	HandleEvent(ctx context.Context, event events.Event) error
	Invalidate()
}

type faqService struct {
	uowFactory unitofwork.RepositoryFactory
	mapper     *mapper.FaqMapper
	cache      *cache.Cache
	group      singleflight.Group
	generation atomic.Uint64
	publisher  EventPublisher
	instanceId string
	logger     logger.ILogger
}

// NewFaqService caches the corpus for cacheTTL. A non-positive TTL disables
// expiry; writes on this instance and FAQ_ADDED events always invalidate.
// publisher may be nil when NATS is not configured.
func NewFaqService(
	uowFactory unitofwork.RepositoryFactory,
	cacheTTL time.Duration,
	publisher EventPublisher,
	instanceId string,
	log logger.ILogger,
) IFaqService {
	if cacheTTL <= 0 {
		cacheTTL = cache.NoExpiration
	}
	return &faqService{
		uowFactory: uowFactory,
		mapper:     mapper.NewFaqMapper(),
		cache:      cache.New(cacheTTL, 10*time.Minute),
		publisher:  publisher,
		instanceId: instanceId,
		logger:     log,
	}
}

func (s *faqService) FetchAll(ctx context.Context) ([]matcher.Entry, error) {
	if x, found := s.cache.Get(corpusCacheKey); found {
		return x.([]matcher.Entry), nil
	}

	// Concurrent misses share one query. It outlives the caller that started
	// it, so a cancelled request does not fail the others.
	ch := s.group.DoChan(corpusCacheKey, func() (interface{}, error) {
		gen := s.generation.Load()
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), corpusLoadTimeout)
		defer cancel()

		uow := s.uowFactory.NewUnitOfWork(loadCtx)
		faqs, err := uow.FaqRepository().FindAll(loadCtx, specification.OrderBy{Field: "id"})
		if err != nil {
			return nil, err
		}
		entries := s.mapper.ToMatcherEntries(faqs)
		if s.generation.Load() == gen {
			s.cache.SetDefault(corpusCacheKey, entries)
		}
		return entries, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("failed to load faq corpus: %w", res.Err)
		}
		return res.Val.([]matcher.Entry), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *faqService) Invalidate() {
	s.generation.Add(1)
	s.cache.Delete(corpusCacheKey)
	s.group.Forget(corpusCacheKey)
}

func (s *faqService) toResponse(f *entity.Faq) *dto.FaqResponse {
	return &dto.FaqResponse{
		Id:        f.Id,
		Question:  f.Question,
		Answer:    f.Answer,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (s *faqService) Create(ctx context.Context, req *dto.FaqRequest) (*dto.FaqResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.FaqRepository().FindOne(ctx, specification.ByQuestion{Question: req.Question})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("faq %q: %w", req.Question, serverutils.ErrConflict)
	}

	faq := &entity.Faq{
		Question:  req.Question,
		Answer:    req.Answer,
		CreatedAt: time.Now(),
	}
	if err := uow.FaqRepository().Create(ctx, faq); err != nil {
		return nil, err
	}

	s.changed(ctx, faq)
	return s.toResponse(faq), nil
}

func (s *faqService) Update(ctx context.Context, id uint, req *dto.FaqRequest) (*dto.FaqResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	faq, err := uow.FaqRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if faq == nil {
		return nil, fmt.Errorf("faq %d: %w", id, serverutils.ErrNotFound)
	}

	if faq.Question != req.Question {
		clash, err := uow.FaqRepository().FindOne(ctx, specification.ByQuestion{Question: req.Question})
		if err != nil {
			return nil, err
		}
		if clash != nil {
			return nil, fmt.Errorf("faq %q: %w", req.Question, serverutils.ErrConflict)
		}
	}

	now := time.Now()
	faq.Question = req.Question
	faq.Answer = req.Answer
	faq.UpdatedAt = &now
	if err := uow.FaqRepository().Update(ctx, faq); err != nil {
		return nil, err
	}

	s.changed(ctx, faq)
	return s.toResponse(faq), nil
}

func (s *faqService) Delete(ctx context.Context, id uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	faq, err := uow.FaqRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if faq == nil {
		return fmt.Errorf("faq %d: %w", id, serverutils.ErrNotFound)
	}

	if err := uow.FaqRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.changed(ctx, faq)
	return nil
}

func (s *faqService) Show(ctx context.Context, id uint) (*dto.FaqResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	faq, err := uow.FaqRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if faq == nil {
		return nil, fmt.Errorf("faq %d: %w", id, serverutils.ErrNotFound)
	}
	return s.toResponse(faq), nil
}

func (s *faqService) List(ctx context.Context, req *dto.ListFaqRequest) (*dto.PaginatedResponse[*dto.FaqResponse], error) {
	page, limit := normalizePage(req.Page, req.Limit)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	filter := specification.QuestionContains{Keyword: req.Keyword}
	total, err := uow.FaqRepository().Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	faqs, err := uow.FaqRepository().FindAll(ctx,
		filter,
		specification.OrderBy{Field: "id"},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.FaqResponse, 0, len(faqs))
	for _, f := range faqs {
		items = append(items, s.toResponse(f))
	}

	return &dto.PaginatedResponse[*dto.FaqResponse]{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Import upserts by question inside one transaction
func (s *faqService) Import(ctx context.Context, items []dto.FaqRequest) (*dto.ImportFaqResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	result := &dto.ImportFaqResult{}
	now := time.Now()
	for i := range items {
		item := items[i]
		if err := serverutils.ValidateRequest(item); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		existing, err := uow.FaqRepository().FindOne(ctx, specification.ByQuestion{Question: item.Question})
		if err != nil {
			return nil, err
		}
		if existing == nil {
			if err := uow.FaqRepository().Create(ctx, &entity.Faq{Question: item.Question, Answer: item.Answer, CreatedAt: now}); err != nil {
				return nil, err
			}
			result.Created++
			continue
		}
		if existing.Answer == item.Answer {
			continue
		}
		existing.Answer = item.Answer
		existing.UpdatedAt = &now
		if err := uow.FaqRepository().Update(ctx, existing); err != nil {
			return nil, err
		}
		result.Updated++
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if result.Created+result.Updated > 0 {
		s.changed(ctx, &entity.Faq{})
	}
	return result, nil
}

// changed invalidates locally and tells the other instances
func (s *faqService) changed(ctx context.Context, faq *entity.Faq) {
	s.Invalidate()

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewFaqAdded(faq.Id, faq.Question, s.instanceId)); err != nil {
		s.logger.Warn("FaqService", "Failed to publish FAQ change", map[string]interface{}{
			"faq_id": faq.Id,
			"error":  err.Error(),
		})
	}
}

func (s *faqService) HandleEvent(ctx context.Context, event events.Event) error {
	if event.EventType() != events.FaqAdded {
		return nil
	}
	if origin, _ := event.Payload()["origin"].(string); origin == s.instanceId {
		return nil
	}

	s.Invalidate()
	s.logger.Info("FaqService", "FAQ corpus invalidated by remote change", map[string]interface{}{
		"origin": event.Payload()["origin"],
	})
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
