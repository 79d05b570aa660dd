// util/validation_util.go

package util

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/dev-mohitbeniwal/blog-api/model"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type ValidationUtil struct {
	validate *validator.Validate
}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{validate: validator.New()}
}

// Slugify lowercases s, strips accents and joins words with dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range norm.NFD.String(s) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(unicode.ToLower(r))
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (v *ValidationUtil) ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("slug %q must be lowercase words separated by dashes", slug)
	}
	return nil
}

func (v *ValidationUtil) ValidatePostUpdate(update model.UpdatePostRequest) error {
	if update.Empty() {
		return fmt.Errorf("no fields to update")
	}
	if err := v.validate.Struct(update); err != nil {
		return err
	}
	if update.Slug != nil {
		return v.ValidateSlug(*update.Slug)
	}
	return nil
}

func (v *ValidationUtil) ValidateCategoryUpdate(update model.UpdateCategoryRequest) error {
	if update.Name == nil && update.Slug == nil && update.Description == nil {
		return fmt.Errorf("no fields to update")
	}
	if err := v.validate.Struct(update); err != nil {
		return err
	}
	if update.Slug != nil {
		return v.ValidateSlug(*update.Slug)
	}
	return nil
}

func (v *ValidationUtil) ValidateCommentStatus(status string) error {
	return v.validate.Var(status, "required,oneof=pending approved spam")
}

// NormalizeTags trims tags, drops empties and rejects oversized lists.
func (v *ValidationUtil) NormalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		if len(t) > 50 {
			return nil, fmt.Errorf("tag %q is longer than 50 characters", t)
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) > 20 {
		return nil, fmt.Errorf("at most 20 tags are allowed")
	}
	return out, nil
}
