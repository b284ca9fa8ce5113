package mapper

import (
	"time"

	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/model"
	"faq-chatbot-be/pkg/matcher"
)

type FaqMapper struct{}

func NewFaqMapper() *FaqMapper {
	return &FaqMapper{}
}

func (m *FaqMapper) ToEntity(f *model.Faq) *entity.Faq {
	if f == nil {
		return nil
	}

	var updatedAt *time.Time
	if !f.UpdatedAt.IsZero() {
		t := f.UpdatedAt
		updatedAt = &t
	}

	return &entity.Faq{
		Id:        f.Id,
		Question:  f.Question,
		Answer:    f.Answer,
		CreatedAt: f.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *FaqMapper) ToModel(f *entity.Faq) *model.Faq {
	if f == nil {
		return nil
	}

	var updatedAt time.Time
	if f.UpdatedAt != nil {
		updatedAt = *f.UpdatedAt
	}

	return &model.Faq{
		Id:        f.Id,
		Question:  f.Question,
		Answer:    f.Answer,
		CreatedAt: f.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *FaqMapper) ToEntities(models []*model.Faq) []*entity.Faq {
	entities := make([]*entity.Faq, len(models))
	for i, f := range models {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

// ToMatcherEntries keeps the input order, which the matcher relies on for ties
func (m *FaqMapper) ToMatcherEntries(faqs []*entity.Faq) []matcher.Entry {
	entries := make([]matcher.Entry, 0, len(faqs))
	for _, f := range faqs {
		entries = append(entries, matcher.Entry{Question: f.Question, Answer: f.Answer})
	}
	return entries
}
