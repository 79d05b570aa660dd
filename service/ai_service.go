// service/ai_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

const (
	defaultExcerptLength = 160
	maxGeneratedTags     = 8
	wordsPerMinute       = 200
	maxPromptContent     = 8000
)

// TextGenerator is a hosted text model.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string, maxTokens int) (string, error)
}

type IAIService interface {
	GenerateExcerpt(ctx context.Context, req model.ExcerptRequest) (*model.ExcerptResult, error)
	GenerateTags(ctx context.Context, req model.TagsRequest) (*model.TagsResult, error)
	AnalyzeContent(ctx context.Context, req model.AnalysisRequest) (*model.ContentAnalysis, error)
}

type AIService struct {
	generator      TextGenerator
	validationUtil *util.ValidationUtil
}

var _ IAIService = &AIService{}

func NewAIService(generator TextGenerator, validationUtil *util.ValidationUtil) *AIService {
	return &AIService{generator: generator, validationUtil: validationUtil}
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (s *AIService) GenerateExcerpt(ctx context.Context, req model.ExcerptRequest) (*model.ExcerptResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", blog_errors.ErrInvalidInput)
	}
	maxLength := req.MaxLength
	if maxLength <= 0 {
		maxLength = defaultExcerptLength
	}

	system := fmt.Sprintf("You write blog post excerpts. Reply with a single excerpt of at most %d characters and nothing else.", maxLength)
	out, err := s.generator.Generate(ctx, system, clip(req.Content, maxPromptContent), maxLength)
	if err != nil {
		return nil, err
	}
	excerpt := strings.Trim(strings.TrimSpace(out), `"`)
	return &model.ExcerptResult{Excerpt: clip(excerpt, maxLength)}, nil
}

func (s *AIService) GenerateTags(ctx context.Context, req model.TagsRequest) (*model.TagsResult, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", blog_errors.ErrInvalidInput)
	}

	system := fmt.Sprintf("You tag blog posts. Reply with at most %d short lowercase tags separated by commas and nothing else.", maxGeneratedTags)
	prompt := "Title: " + req.Title + "\n\n" + clip(req.Content, maxPromptContent)
	out, err := s.generator.Generate(ctx, system, prompt, 100)
	if err != nil {
		return nil, err
	}

	raw := strings.FieldsFunc(out, func(r rune) bool { return r == ',' || r == '\n' })
	for i, t := range raw {
		raw[i] = strings.Trim(strings.TrimSpace(t), `"#.-* `)
	}
	tags, err := s.validationUtil.NormalizeTags(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrInference, err)
	}
	if len(tags) > maxGeneratedTags {
		tags = tags[:maxGeneratedTags]
	}
	return &model.TagsResult{Tags: tags}, nil
}

// AnalyzeContent counts words locally and asks the model for editorial feedback.
func (s *AIService) AnalyzeContent(ctx context.Context, req model.AnalysisRequest) (*model.ContentAnalysis, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", blog_errors.ErrInvalidInput)
	}

	words := len(strings.Fields(req.Content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	system := "You are an editor. Give brief, concrete feedback on readability, structure and SEO for this blog post."
	prompt := clip(req.Content, maxPromptContent)
	if req.Title != "" {
		prompt = "Title: " + req.Title + "\n\n" + prompt
	}
	feedback, err := s.generator.Generate(ctx, system, prompt, 400)
	if err != nil {
		return nil, err
	}

	return &model.ContentAnalysis{
		WordCount:          words,
		ReadingTimeMinutes: minutes,
		Feedback:           feedback,
	}, nil
}
