// service/author_service.go
package service

import (
	"context"
	"fmt"

	"github.com/dev-mohitbeniwal/blog-api/dao"
	"github.com/dev-mohitbeniwal/blog-api/model"
)

type IAuthorService interface {
	ListAuthors(ctx context.Context) ([]model.Author, error)
	GetAuthor(ctx context.Context, id int64) (*model.Author, error)
}

// AuthorService serves the public author directory. Email, role and
// password digest never leave it.
type AuthorService struct {
	authorDAO *dao.AuthorDAO
}

var _ IAuthorService = &AuthorService{}

func NewAuthorService(authorDAO *dao.AuthorDAO) *AuthorService {
	return &AuthorService{authorDAO: authorDAO}
}

func (s *AuthorService) ListAuthors(ctx context.Context) ([]model.Author, error) {
	authors, err := s.authorDAO.ListAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	public := make([]model.Author, 0, len(authors))
	for _, a := range authors {
		public = append(public, a.Public())
	}
	return public, nil
}

func (s *AuthorService) GetAuthor(ctx context.Context, id int64) (*model.Author, error) {
	author, err := s.authorDAO.GetAuthorByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	public := author.Public()
	return &public, nil
}
