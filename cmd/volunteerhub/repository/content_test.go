package repository

import (
	"context"
	"testing"

	"volunteerhub-backend/cmd/volunteerhub/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newsRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "status", "view_count"}).
		AddRow("news-1", "Cleanup recap", string(model.NewsPublished), 420).
		AddRow("news-2", "New shelter opens", string(model.NewsPublished), 97)
}

func TestContentRepo_PopularNews_OrdersByViews(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewContentRepo(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "news" WHERE status = \$1 AND published_at <= \$2(.+)ORDER BY view_count DESC`).
		WillReturnRows(newsRows())

	ctx := context.Background()
	news, err := repo.PopularNews(ctx, 2)

	assert.NoError(t, err)
	assert.Len(t, news, 2)
	assert.Equal(t, 420, news[0].ViewCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepo_FeaturedNews_FiltersFeatured(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewContentRepo(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "news" WHERE status = \$1 AND published_at <= \$2 AND is_featured = \$3(.+)ORDER BY published_at DESC`).
		WillReturnRows(newsRows())

	ctx := context.Background()
	news, err := repo.FeaturedNews(ctx, 0)

	assert.NoError(t, err)
	assert.Len(t, news, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepo_PopularKnowledge_OrdersByViews(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	}()

	repo := NewContentRepo(gormDB)

	rows := sqlmock.NewRows([]string{"id", "title", "is_public", "view_count"}).
		AddRow("kb-1", "Volunteer onboarding guide", true, 310)

	mock.ExpectQuery(`SELECT \* FROM "knowledge_base" WHERE is_public = \$1(.+)ORDER BY view_count DESC`).
		WillReturnRows(rows)

	ctx := context.Background()
	materials, err := repo.PopularKnowledge(ctx, 5)

	assert.NoError(t, err)
	assert.Len(t, materials, 1)
	assert.Equal(t, 310, materials[0].ViewCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
