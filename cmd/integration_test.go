//go:build integration

package main

import (
	"cmp"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/siahsang/ncnews/internal/config"
	"github.com/siahsang/ncnews/internal/filter"
	"github.com/siahsang/ncnews/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type apiServer struct {
	t      *testing.T
	db     *sqlx.DB
	server *httptest.Server
}

// setupAPIServer starts PostgreSQL in a container and serves the API against it.
// Each test function gets its own container, so subtests may mutate freely.
func setupAPIServer(t *testing.T) *apiServer {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("nc_news_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		// byte order collation, so text sorts compare like Go strings
		testcontainers.WithEnv(map[string]string{"POSTGRES_INITDB_ARGS": "--locale=C --encoding=UTF8"}),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "starting postgres container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sqlx.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		Server:         config.DefaultServerConfig(),
		Database:       config.DefaultDatabaseConfig(),
		AllowedOrigins: []string{"*"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := &apiServer{t: t, db: db}
	s.reseed()

	app := newApplication(cfg, logger, db)
	s.server = httptest.NewServer(app.routes())
	t.Cleanup(s.server.Close)

	return s
}

func (s *apiServer) reseed() {
	s.t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(s.t, seed.Run(context.Background(), s.db, logger, seed.TestData()))
}

func (s *apiServer) do(method, path, body string) (int, map[string]any) {
	s.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	require.NoError(s.t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.server.Client().Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	if len(raw) == 0 {
		return resp.StatusCode, nil
	}

	var decoded map[string]any
	require.NoError(s.t, json.Unmarshal(raw, &decoded), string(raw))
	return resp.StatusCode, decoded
}

func articleIDs(body map[string]any) []float64 {
	var ids []float64
	for _, a := range body["articles"].([]any) {
		ids = append(ids, a.(map[string]any)["article_id"].(float64))
	}
	return ids
}

// compareArticles orders a and b by column the way the listing should.
func compareArticles(t *testing.T, column string, a, b map[string]any) int {
	t.Helper()

	switch x := a[column].(type) {
	case float64:
		return cmp.Compare(x, b[column].(float64))
	case string:
		if column != "created_at" {
			return strings.Compare(x, b[column].(string))
		}
		ta, err := time.Parse(time.RFC3339, x)
		require.NoError(t, err)
		tb, err := time.Parse(time.RFC3339, b[column].(string))
		require.NoError(t, err)
		return ta.Compare(tb)
	}

	t.Fatalf("unexpected %s value %v", column, a[column])
	return 0
}

func TestIntegration_ArticleListing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	s := setupAPIServer(t)

	t.Run("defaults", func(t *testing.T) {
		status, body := s.do(http.MethodGet, "/api/articles", "")

		require.Equal(t, http.StatusOK, status)
		assert.Len(t, body["articles"], 10)
		assert.Equal(t, float64(13), body["total_count"])

		var previous time.Time
		for i, a := range body["articles"].([]any) {
			createdAt, err := time.Parse(time.RFC3339, a.(map[string]any)["created_at"].(string))
			require.NoError(t, err)
			if i > 0 {
				assert.False(t, createdAt.After(previous), "articles must be newest first")
			}
			previous = createdAt
		}
	})

	t.Run("every sort column and order", func(t *testing.T) {
		for _, column := range filter.SortableColumns {
			for _, order := range []string{"asc", "desc"} {
				t.Run(column+" "+order, func(t *testing.T) {
					status, body := s.do(http.MethodGet, "/api/articles?limit=20&sort_by="+column+"&order="+order, "")

					require.Equal(t, http.StatusOK, status)
					articles := body["articles"].([]any)
					require.Len(t, articles, 13)

					for i := 1; i < len(articles); i++ {
						prev := articles[i-1].(map[string]any)
						cur := articles[i].(map[string]any)

						c := compareArticles(t, column, prev, cur)
						if order == "desc" {
							c = -c
						}
						assert.LessOrEqual(t, c, 0, "%s %s: article %v before %v", column, order, prev["article_id"], cur["article_id"])
						if c == 0 {
							assert.Less(t, prev["article_id"].(float64), cur["article_id"].(float64), "ties break on article_id ascending")
						}
					}
				})
			}
		}
	})

	t.Run("topic page three", func(t *testing.T) {
		status, body := s.do(http.MethodGet, "/api/articles?topic=mitch&limit=5&p=3", "")

		require.Equal(t, http.StatusOK, status)
		assert.Len(t, body["articles"], 2)
		assert.Equal(t, float64(12), body["total_count"])
	})

	t.Run("total count is stable across pages", func(t *testing.T) {
		seen := map[float64]bool{}
		for _, p := range []string{"1", "2", "3"} {
			status, body := s.do(http.MethodGet, "/api/articles?topic=mitch&limit=5&sort_by=votes&p="+p, "")
			require.Equal(t, http.StatusOK, status)
			assert.Equal(t, float64(12), body["total_count"])
			for _, id := range articleIDs(body) {
				assert.False(t, seen[id], "article %v repeated across pages", id)
				seen[id] = true
			}
		}
		assert.Len(t, seen, 12)
	})

	t.Run("page past the end", func(t *testing.T) {
		status, body := s.do(http.MethodGet, "/api/articles?topic=mitch&p=50", "")

		require.Equal(t, http.StatusOK, status)
		assert.Empty(t, body["articles"])
		assert.Equal(t, float64(12), body["total_count"])
	})

	t.Run("sorted by comment count", func(t *testing.T) {
		status, body := s.do(http.MethodGet, "/api/articles?sort_by=comment_count&limit=1", "")

		require.Equal(t, http.StatusOK, status)
		first := body["articles"].([]any)[0].(map[string]any)
		assert.Equal(t, float64(1), first["article_id"])
		assert.Equal(t, float64(11), first["comment_count"])
	})

	t.Run("existing topic without articles", func(t *testing.T) {
		status, body := s.do(http.MethodGet, "/api/articles?topic=paper", "")

		require.Equal(t, http.StatusOK, status)
		assert.Empty(t, body["articles"])
		assert.Equal(t, float64(0), body["total_count"])
	})

	t.Run("unknown topic", func(t *testing.T) {
		status, body := s.do(http.MethodGet, "/api/articles?topic=not-a-topic", "")

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Topic not found", body["msg"])
	})

	t.Run("unknown author", func(t *testing.T) {
		status, body := s.do(http.MethodGet, "/api/articles?author=nobody", "")

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Author not found", body["msg"])
	})

	t.Run("sort column is never interpolated", func(t *testing.T) {
		status, body := s.do(http.MethodGet, "/api/articles?sort_by=votes%3BDROP%20TABLE%20articles", "")

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid sort_by column", body["msg"])

		status, _ = s.do(http.MethodGet, "/api/articles", "")
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestIntegration_Mutations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	s := setupAPIServer(t)

	t.Run("article votes", func(t *testing.T) {
		status, body := s.do(http.MethodPatch, "/api/articles/1", `{"inc_votes": 1}`)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, float64(101), body["article"].(map[string]any)["votes"])

		status, body = s.do(http.MethodPatch, "/api/articles/1", `{"inc_votes": -200}`)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, float64(-99), body["article"].(map[string]any)["votes"])
	})

	t.Run("comment lifecycle", func(t *testing.T) {
		status, body := s.do(http.MethodPost, "/api/articles/2/comments", `{"username": "butter_bridge", "body": "x"}`)
		require.Equal(t, http.StatusCreated, status)
		comment := body["comment"].(map[string]any)
		assert.Equal(t, "butter_bridge", comment["author"])
		assert.Equal(t, "x", comment["body"])
		assert.Equal(t, float64(2), comment["article_id"])
		assert.Equal(t, float64(0), comment["votes"])

		_, body = s.do(http.MethodGet, "/api/articles/2", "")
		assert.Equal(t, float64(1), body["article"].(map[string]any)["comment_count"])

		path := "/api/comments/" + jsonNumber(comment["comment_id"])
		status, _ = s.do(http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNoContent, status)

		status, body = s.do(http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Comment not found", body["msg"])
	})

	t.Run("article checked before username", func(t *testing.T) {
		status, body := s.do(http.MethodPost, "/api/articles/9999/comments", `{"username": "nobody", "body": "x"}`)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Article not found", body["msg"])
	})

	t.Run("create article with default image", func(t *testing.T) {
		status, body := s.do(http.MethodPost, "/api/articles",
			`{"title": "New", "topic": "paper", "author": "lurker", "body": "first words"}`)

		require.Equal(t, http.StatusCreated, status)
		article := body["article"].(map[string]any)
		assert.Equal(t, float64(0), article["votes"])
		assert.Equal(t, float64(0), article["comment_count"])
		assert.NotEmpty(t, article["article_img_url"])

		_, body = s.do(http.MethodGet, "/api/articles?topic=paper", "")
		assert.Equal(t, float64(1), body["total_count"])
	})

	t.Run("delete article removes its comments", func(t *testing.T) {
		status, _ := s.do(http.MethodDelete, "/api/articles/1", "")
		require.Equal(t, http.StatusNoContent, status)

		status, _ = s.do(http.MethodGet, "/api/articles/1", "")
		assert.Equal(t, http.StatusNotFound, status)

		var remaining int
		require.NoError(t, s.db.Get(&remaining, `SELECT COUNT(*) FROM comments WHERE article_id = 1`))
		assert.Zero(t, remaining)
	})

	t.Run("duplicate topic", func(t *testing.T) {
		status, body := s.do(http.MethodPost, "/api/topics", `{"slug": "mitch", "description": "again"}`)

		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "Topic already exists", body["msg"])
	})
}

func jsonNumber(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
