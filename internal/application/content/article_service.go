package content

import (
	"context"
	"errors"
	"time"

	"github.com/appleshop/backend/internal/domain/catalog"
	"github.com/appleshop/backend/internal/domain/content"
	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ArticleService handles storefront editorial content
type ArticleService struct {
	articleRepo  content.Repository
	categoryRepo catalog.CategoryRepository
}

// NewArticleService creates a new ArticleService
func NewArticleService(articleRepo content.Repository, categoryRepo catalog.CategoryRepository) *ArticleService {
	return &ArticleService{
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
	}
}

// Create publishes a new article
func (s *ArticleService) Create(ctx context.Context, req CreateArticleRequest) (*ArticleResponse, error) {
	publishedAt := time.Time{}
	if req.PublishedAt != nil {
		publishedAt = *req.PublishedAt
	}

	article, err := content.NewArticle(req.Title, req.Teaser, req.Body, req.SourceURL, req.Featured, publishedAt)
	if err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	return ToArticleResponse(article), nil
}

// GetByID retrieves an article by ID
func (s *ArticleService) GetByID(ctx context.Context, id uuid.UUID) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToArticleResponse(article), nil
}

// List retrieves articles with pagination
func (s *ArticleService) List(ctx context.Context, filter ArticleListFilter) ([]ArticleResponse, int64, error) {
	domainFilter := shared.Filter{
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Featured != nil {
		domainFilter.Filters["featured"] = *filter.Featured
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "published_at"
		domainFilter.OrderDir = "desc"
	}

	articles, err := s.articleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.articleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(articles), total, nil
}

// Recent retrieves the latest published articles for the storefront
func (s *ArticleService) Recent(ctx context.Context, limit int) ([]ArticleResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	articles, err := s.articleRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	return toResponses(articles), nil
}

// ByCategory retrieves articles linked to a category, heaviest first
func (s *ArticleService) ByCategory(ctx context.Context, categoryID uuid.UUID, filter ArticleListFilter) ([]ArticleResponse, int64, error) {
	domainFilter := shared.Filter{Filters: make(map[string]interface{})}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	articles, err := s.articleRepo.FindByCategory(ctx, categoryID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.articleRepo.CountByCategory(ctx, categoryID)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(articles), total, nil
}

// Update edits an article
func (s *ArticleService) Update(ctx context.Context, id uuid.UUID, req UpdateArticleRequest) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := article.Update(req.Title, req.Teaser, req.Body, req.SourceURL, req.Featured); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	return ToArticleResponse(article), nil
}

// LinkCategory attaches an article to a catalog category
func (s *ArticleService) LinkCategory(ctx context.Context, id uuid.UUID, req LinkCategoryRequest) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Category not found")
		}
		return nil, err
	}

	weight := req.Weight
	if weight == 0 {
		weight = 1
	}
	if err := article.LinkCategory(req.CategoryID, weight); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	return ToArticleResponse(article), nil
}

// UnlinkCategory removes a category link
func (s *ArticleService) UnlinkCategory(ctx context.Context, id, categoryID uuid.UUID) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := article.UnlinkCategory(categoryID); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	return ToArticleResponse(article), nil
}

// Delete removes an article
func (s *ArticleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.articleRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.articleRepo.Delete(ctx, id)
}

func toResponses(articles []content.Article) []ArticleResponse {
	responses := make([]ArticleResponse, len(articles))
	for i := range articles {
		responses[i] = *ToArticleResponse(&articles[i])
	}
	return responses
}
