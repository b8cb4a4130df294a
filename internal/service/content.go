package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dstrand/accountd/internal/markdown"
)

type ContentPage struct {
	Title   string
	Slug    string
	Content string
}

// ContentService renders static markdown pages (the landing page) from the
// content directory.
type ContentService struct {
	contentDir string
}

func NewContentService(contentDir string) *ContentService {
	return &ContentService{contentDir: contentDir}
}

func (s *ContentService) Page(slug string) (*ContentPage, error) {
	source, err := os.ReadFile(filepath.Join(s.contentDir, slug+".md"))
	if err != nil {
		return nil, fmt.Errorf("failed to read page %s: %w", slug, err)
	}

	parser := markdown.NewParser()
	html, meta, err := parser.ParseWithFrontmatter(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", slug, err)
	}

	title, _ := meta["title"].(string)
	if title == "" {
		title = cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	}

	return &ContentPage{
		Title:   title,
		Slug:    slug,
		Content: string(html),
	}, nil
}
