package repository

import (
	"testing"
	"time"

	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Member{},
		&domain.Report{},
		&domain.Penalty{},
		&domain.DeletionLog{},
		&domain.BoardFile{},
	); err != nil {
		t.Fatalf("failed to migrate shared tables: %v", err)
	}
	for _, boardType := range domain.AllBoardTypes {
		if err := db.Table(WriteTableName(boardType)).AutoMigrate(&domain.WriteRow{}); err != nil {
			t.Fatalf("failed to migrate board table %s: %v", boardType, err)
		}
	}
	return db
}

func TestWriteTableName(t *testing.T) {
	tests := []struct {
		boardType domain.BoardType
		expected  string
	}{
		{domain.BoardFreeboard, "write_freeboard"},
		{domain.BoardNews, "write_news"},
		{domain.BoardNotice, "write_notice"},
		{domain.BoardInquiry, "write_inquiry"},
		{domain.BoardChatboard, "write_chatboard"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, WriteTableName(tt.boardType))
	}
}

func TestRegistryDistinguishesPostsFromComments(t *testing.T) {
	db := setupTestDB(t)
	registry := NewContentRegistry(db)
	table := WriteTableName(domain.BoardFreeboard)

	post := &domain.WriteRow{ID: 1, AuthorID: 10, Title: "post", Visibility: domain.VisibilityVisible}
	assert.NoError(t, db.Table(table).Create(post).Error)
	comment := &domain.WriteRow{ID: 2, IsComment: true, ParentID: 1, AuthorID: 11, Visibility: domain.VisibilityVisible}
	assert.NoError(t, db.Table(table).Create(comment).Error)

	item, err := registry.Find(domain.ContentRef{BoardType: domain.BoardFreeboard, ContentKind: domain.KindPost, ContentID: 1})
	assert.NoError(t, err)
	assert.Equal(t, uint64(10), item.AuthorID)

	item, err = registry.Find(domain.ContentRef{BoardType: domain.BoardFreeboard, ContentKind: domain.KindComment, ContentID: 2})
	assert.NoError(t, err)
	assert.Equal(t, uint64(11), item.AuthorID)

	// A post id resolved as a comment does not match
	_, err = registry.Find(domain.ContentRef{BoardType: domain.BoardFreeboard, ContentKind: domain.KindComment, ContentID: 1})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRegistryBoardIsolation(t *testing.T) {
	db := setupTestDB(t)
	registry := NewContentRegistry(db)

	post := &domain.WriteRow{ID: 1, AuthorID: 10, Title: "post", Visibility: domain.VisibilityVisible}
	assert.NoError(t, db.Table(WriteTableName(domain.BoardFreeboard)).Create(post).Error)

	// Same id on a different board is a different (absent) item
	_, err := registry.Find(domain.ContentRef{BoardType: domain.BoardNews, ContentKind: domain.KindPost, ContentID: 1})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRegistryRejectsInvalidRef(t *testing.T) {
	db := setupTestDB(t)
	registry := NewContentRegistry(db)

	_, err := registry.Find(domain.ContentRef{BoardType: "marketplace", ContentKind: domain.KindPost, ContentID: 1})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRegistryVisibilityUpdates(t *testing.T) {
	db := setupTestDB(t)
	registry := NewContentRegistry(db)
	table := WriteTableName(domain.BoardFreeboard)

	post := &domain.WriteRow{ID: 1, AuthorID: 10, Title: "post", Visibility: domain.VisibilityVisible}
	assert.NoError(t, db.Table(table).Create(post).Error)
	ref := domain.ContentRef{BoardType: domain.BoardFreeboard, ContentKind: domain.KindPost, ContentID: 1}

	assert.NoError(t, registry.MarkHidden(ref, "under review"))
	item, err := registry.Find(ref)
	assert.NoError(t, err)
	assert.Equal(t, domain.VisibilityHidden, item.Visibility)
	assert.Equal(t, "under review", item.HideReason)

	now := time.Now()
	assert.NoError(t, registry.MarkDeleted(ref, 7, now))
	item, err = registry.Find(ref)
	assert.NoError(t, err)
	assert.Equal(t, domain.VisibilityDeleted, item.Visibility)

	assert.NoError(t, registry.MarkVisible(ref))
	item, err = registry.Find(ref)
	assert.NoError(t, err)
	assert.Equal(t, domain.VisibilityVisible, item.Visibility)
	assert.Empty(t, item.HideReason)
	assert.Nil(t, item.DeletedAt)

	// Updates on a missing row report not found
	missing := domain.ContentRef{BoardType: domain.BoardFreeboard, ContentKind: domain.KindPost, ContentID: 99}
	assert.ErrorIs(t, registry.MarkHidden(missing, "x"), common.ErrNotFound)
}

func TestMarkDeletedIsConditional(t *testing.T) {
	db := setupTestDB(t)
	registry := NewContentRegistry(db)
	table := WriteTableName(domain.BoardFreeboard)

	post := &domain.WriteRow{ID: 1, AuthorID: 10, Title: "post", Visibility: domain.VisibilityVisible}
	assert.NoError(t, db.Table(table).Create(post).Error)
	ref := domain.ContentRef{BoardType: domain.BoardFreeboard, ContentKind: domain.KindPost, ContentID: 1}

	now := time.Now()
	assert.NoError(t, registry.MarkDeleted(ref, 7, now))

	// The second deleter loses, regardless of what it read beforehand
	assert.ErrorIs(t, registry.MarkDeleted(ref, 8, now), common.ErrAlreadyDeleted)

	// The winner's stamp is untouched
	item, err := registry.Find(ref)
	assert.NoError(t, err)
	if assert.NotNil(t, item.DeletedBy) {
		assert.Equal(t, uint64(7), *item.DeletedBy)
	}

	// A hidden item can still be deleted through the guard
	hidden := &domain.WriteRow{ID: 2, AuthorID: 10, Title: "hidden", Visibility: domain.VisibilityHidden}
	assert.NoError(t, db.Table(table).Create(hidden).Error)
	hiddenRef := domain.ContentRef{BoardType: domain.BoardFreeboard, ContentKind: domain.KindPost, ContentID: 2}
	assert.NoError(t, registry.MarkDeleted(hiddenRef, 7, now))

	missing := domain.ContentRef{BoardType: domain.BoardFreeboard, ContentKind: domain.KindPost, ContentID: 99}
	assert.ErrorIs(t, registry.MarkDeleted(missing, 7, now), common.ErrNotFound)
}
