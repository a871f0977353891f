package service

import (
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"anoa.com/swetter/internal/entity"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const postsIndex = "posts"

// MeiliSearchService mirrors visible posts into a Meilisearch index.
// Blocked or deleted posts must never stay in the index.
type MeiliSearchService interface {
	IndexPost(post *entity.Post, authorUsername string) error
	DeletePost(id uint) error
	GenerateSearchToken() (string, error)
}

type meiliSearchService struct {
	client        meilisearch.ServiceManager
	signingKeyUID string
	signingKey    string
	sanitizer     *bluemonday.Policy
}

func NewMeiliSearchService(client meilisearch.ServiceManager) MeiliSearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	s.initSigningKey()
	return s
}

func (s *meiliSearchService) initIndexes() {
	filterableAttrs := []string{"user_id", "auto_answer"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(postsIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		slog.Warn("failed to update posts filterable attributes", "error", err)
	}

	sortableAttrs := []string{"created_at"}
	if _, err := s.client.Index(postsIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		slog.Warn("failed to update posts sortable attributes", "error", err)
	}
}

func (s *meiliSearchService) initSigningKey() {
	resp, err := s.client.GetKeys(&meilisearch.KeysQuery{
		Limit: 20,
	})
	if err != nil {
		slog.Warn("failed to get meilisearch keys", "error", err)
		return
	}

	for _, key := range resp.Results {
		if key.Name == "PostSearchSigner" {
			s.signingKeyUID = key.UID
			s.signingKey = key.Key
			return
		}
	}

	key, err := s.client.CreateKey(&meilisearch.Key{
		Description: "Key to sign tenant tokens for post search",
		Name:        "PostSearchSigner",
		Actions:     []string{"search"},
		Indexes:     []string{postsIndex},
		ExpiresAt:   time.Now().AddDate(100, 0, 0),
	})
	if err != nil {
		slog.Warn("failed to create meilisearch signing key", "error", err)
		return
	}

	s.signingKeyUID = key.UID
	s.signingKey = key.Key
}

type meiliPostDoc struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	AutoAnswer bool   `json:"auto_answer"`
	CreatedAt  int64  `json:"created_at"`
}

func (s *meiliSearchService) cleanContentForIndex(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *meiliSearchService) IndexPost(post *entity.Post, authorUsername string) error {
	if post.IsBlocked() {
		return s.DeletePost(post.ID)
	}

	doc := meiliPostDoc{
		ID:         strconv.FormatUint(uint64(post.ID), 10),
		Title:      s.cleanContentForIndex(post.Title),
		Content:    s.cleanContentForIndex(post.Content),
		UserID:     post.UserID,
		Username:   authorUsername,
		AutoAnswer: post.AutoAnswer,
		CreatedAt:  post.CreatedAt.Unix(),
	}

	task, err := s.client.Index(postsIndex).AddDocuments([]meiliPostDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	slog.Debug("indexed post", "post_id", post.ID, "task_uid", task.TaskUID)
	return nil
}

func (s *meiliSearchService) DeletePost(id uint) error {
	_, err := s.client.Index(postsIndex).DeleteDocument(strconv.FormatUint(uint64(id), 10))
	return err
}

// GenerateSearchToken returns a tenant token that can only search the posts index.
func (s *meiliSearchService) GenerateSearchToken() (string, error) {
	if s.signingKeyUID == "" || s.signingKey == "" {
		return "", fmt.Errorf("signing key not initialized")
	}

	searchRules := map[string]any{
		postsIndex: map[string]any{},
	}

	return s.client.GenerateTenantToken(s.signingKeyUID, searchRules, &meilisearch.TenantTokenOptions{
		APIKey:    s.signingKey,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
}

func strPtr(s string) *string {
	return &s
}
