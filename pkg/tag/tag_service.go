package tag

import (
	"context"
	"errors"

	"github.com/foodgram-app/foodgram-backend/domain"
	"github.com/foodgram-app/foodgram-backend/entities"
	"gorm.io/gorm"
)

type (
	TagService interface {
		GetTags(ctx context.Context) ([]domain.Tag, error)
		GetTagByID(ctx context.Context, id string) (domain.Tag, error)
	}

	tagService struct {
		tagRepository TagRepository
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{tagRepository: tagRepository}
}

func (s *tagService) GetTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tagRepository.GetTags(ctx)
	if err != nil {
		return nil, domain.StorageError(err)
	}

	result := make([]domain.Tag, 0, len(tags))
	for _, tag := range tags {
		result = append(result, toDomain(tag))
	}
	return result, nil
}

func (s *tagService) GetTagByID(ctx context.Context, id string) (domain.Tag, error) {
	tag, err := s.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Tag{}, domain.ErrTagNotFound
		}
		return domain.Tag{}, domain.StorageError(err)
	}
	return toDomain(tag), nil
}

func toDomain(tag *entities.Tag) domain.Tag {
	return domain.Tag{
		ID:   tag.ID.String(),
		Name: tag.Name,
		Slug: tag.Slug,
	}
}
