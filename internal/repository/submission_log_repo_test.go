package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"globassets_dev_v1_202608/internal/model"
)

func newSubmissionLogTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.SubmissionLog{}))
	return db
}

func TestSubmissionLogCreateAndList(t *testing.T) {
	repo := NewSubmissionLogRepository(newSubmissionLogTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.SubmissionLog{
		SessionID:    "sess-1",
		RemoteEmail:  "a@b.com",
		Mode:         "create",
		PropertyType: "HouseForRent",
		Slug:         "houses-for-rent",
		PropertyID:   "prop-1",
		Outcome:      model.SubmissionOK,
		ImageKeys:    []string{"key-1", "key-2"},
		Payload:      []byte(`{"rent":"150000"}`),
		CostMs:       420,
	}))
	require.NoError(t, repo.Create(ctx, &model.SubmissionLog{
		SessionID:   "sess-2",
		RemoteEmail: "a@b.com",
		Mode:        "edit",
		PropertyID:  "prop-1",
		Outcome:     model.SubmissionOK,
		DeletedIDs:  []string{"img-9"},
		Warnings:    []string{"failed to delete image img-9: timeout"},
	}))
	require.NoError(t, repo.Create(ctx, &model.SubmissionLog{
		SessionID:   "sess-3",
		RemoteEmail: "c@d.com",
		Mode:        "create",
		Outcome:     model.SubmissionFailed,
		ErrorMsg:    "image upload failed: slot 0",
	}))

	// 无条件：全量，新的在前
	rows, total, err := repo.List(ctx, SubmissionLogFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 3)
	assert.Equal(t, "sess-3", rows[0].SessionID)

	// 数组/JSON 字段完整回读
	last := rows[2]
	assert.Equal(t, []string{"key-1", "key-2"}, []string(last.ImageKeys))
	assert.JSONEq(t, `{"rent":"150000"}`, string(last.Payload))

	// 按账号过滤
	rows, total, err = repo.List(ctx, SubmissionLogFilter{RemoteEmail: "a@b.com"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// 模式 + 结果组合过滤
	rows, total, err = repo.List(ctx, SubmissionLogFilter{Mode: "create", Outcome: model.SubmissionFailed})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "image upload failed: slot 0", rows[0].ErrorMsg)
}

func TestSubmissionLogListPagination(t *testing.T) {
	repo := NewSubmissionLogRepository(newSubmissionLogTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &model.SubmissionLog{
			SessionID: "sess",
			Mode:      "create",
			Outcome:   model.SubmissionOK,
		}))
	}

	rows, total, err := repo.List(ctx, SubmissionLogFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, rows, 2)

	// 越过末页返回空页
	rows, total, err = repo.List(ctx, SubmissionLogFilter{Page: 4, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, rows, 0)
}
