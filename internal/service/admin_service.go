package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/pkg/serverutils"
	"faq-chatbot-be/internal/repository/specification"
	"faq-chatbot-be/internal/repository/unitofwork"
	"faq-chatbot-be/pkg/conversation"
)

type IAdminService interface {
	// Chat logs
	GetChatLogs(ctx context.Context, req *dto.ListChatLogRequest) (*dto.PaginatedResponse[*dto.ChatLogResponse], error)
	GetBranchStats(ctx context.Context, sinceMinutes int) (map[string]int64, error)

	// System logs
	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	now        func() time.Time
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		logger:     log,
		now:        time.Now,
	}
}

var allBranches = []conversation.Branch{
	conversation.BranchRepeat,
	conversation.BranchRepeatNoContext,
	conversation.BranchLanguageGate,
	conversation.BranchChoiceResolved,
	conversation.BranchChoiceUnsupported,
	conversation.BranchChoiceInvalid,
	conversation.BranchGreeting,
	conversation.BranchFaq,
	conversation.BranchSuggestion,
	conversation.BranchUnsupported,
}

func humanBranches() []string {
	var out []string
	for _, b := range allBranches {
		if b.NeedsHuman() {
			out = append(out, string(b))
		}
	}
	return out
}

// ============================================================================
// Chat logs
// ============================================================================

func (s *adminService) chatLogFilters(req *dto.ListChatLogRequest) []specification.Specification {
	var specs []specification.Specification
	if req.UserId != "" {
		specs = append(specs, specification.ByUserId{UserId: req.UserId})
	}
	switch {
	case req.Branch != "":
		specs = append(specs, specification.ByBranches{Branches: []string{req.Branch}})
	case req.NeedsHuman:
		specs = append(specs, specification.ByBranches{Branches: humanBranches()})
	}
	if req.SinceMinutes > 0 {
		specs = append(specs, specification.Since{Time: s.now().Add(-time.Duration(req.SinceMinutes) * time.Minute)})
	}
	return specs
}

func toChatLogResponse(l *entity.ChatLog) *dto.ChatLogResponse {
	return &dto.ChatLogResponse{
		Id:          l.Id,
		UserId:      l.UserId,
		UserMessage: l.UserMessage,
		BotResponse: l.BotResponse,
		Branch:      l.Branch,
		Tone:        l.Tone,
		Language:    l.Language,
		Timestamp:   l.Timestamp,
	}
}

func (s *adminService) GetChatLogs(ctx context.Context, req *dto.ListChatLogRequest) (*dto.PaginatedResponse[*dto.ChatLogResponse], error) {
	page, limit := normalizePage(req.Page, req.Limit)
	uow := s.uowFactory.NewUnitOfWork(ctx)
	filters := s.chatLogFilters(req)

	total, err := uow.ChatLogRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	logs, err := uow.ChatLogRepository().FindAll(ctx, append(filters,
		specification.OrderBy{Field: "timestamp", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ChatLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, toChatLogResponse(l))
	}

	return &dto.PaginatedResponse[*dto.ChatLogResponse]{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// GetBranchStats counts replies per branch, every branch present even at zero
func (s *adminService) GetBranchStats(ctx context.Context, sinceMinutes int) (map[string]int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stats := make(map[string]int64, len(allBranches))

	for _, b := range allBranches {
		specs := s.chatLogFilters(&dto.ListChatLogRequest{Branch: string(b), SinceMinutes: sinceMinutes})
		count, err := uow.ChatLogRepository().Count(ctx, specs...)
		if err != nil {
			return nil, fmt.Errorf("failed to count branch %s: %w", b, err)
		}
		stats[string(b)] = count
	}
	return stats, nil
}

// ============================================================================
// System logs
// ============================================================================

// parseLogTime accepts the ISO8601 layout the zap file encoder writes
func parseLogTime(ts string) time.Time {
	if t, err := time.Parse("2006-01-02T15:04:05.000Z0700", ts); err == nil {
		return t
	}
	t, _ := time.Parse(time.RFC3339, ts)
	return t
}

func (s *adminService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	page, limit = normalizePage(page, limit)
	logs, err := s.logger.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LogListResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, &dto.LogListResponse{
			Id:        l.Id,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: parseLogTime(l.Timestamp),
		})
	}
	return res, nil
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	l, err := s.logger.GetLogById(logId)
	if err != nil {
		if errors.Is(err, logger.ErrLogNotFound) {
			return nil, fmt.Errorf("log %s: %w", logId, serverutils.ErrNotFound)
		}
		return nil, err
	}

	return &dto.LogDetailResponse{
		LogListResponse: dto.LogListResponse{
			Id:        logId,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: parseLogTime(l.Timestamp),
		},
		Details: l.Details,
	}, nil
}
