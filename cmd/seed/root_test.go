package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"faq-chatbot-be/internal/model"
	"faq-chatbot-be/internal/pkg/testdb"
	"faq-chatbot-be/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeed_BundledFile(t *testing.T) {
	items, err := loadSeed("faq.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.Equal(t, "営業時間", items[0].Question)
	assert.Len(t, items, 9)
	for _, item := range items {
		assert.NotEmpty(t, item.Answer, item.Question)
	}
}

func TestLoadSeed_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("faqs: []\n"), 0o600))

	_, err := loadSeed(path)
	assert.Error(t, err)
}

func TestLoadSeed_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("faqs: [question"), 0o600))

	_, err := loadSeed(path)
	assert.Error(t, err)
}

func TestRunSeed_IsIdempotent(t *testing.T) {
	db := testdb.Open(t)
	var out bytes.Buffer

	require.NoError(t, runSeed(context.Background(), db, "faq.yaml", &out))
	assert.Contains(t, out.String(), "9 created, 0 updated")

	out.Reset()
	require.NoError(t, runSeed(context.Background(), db, "faq.yaml", &out))
	assert.Contains(t, out.String(), "0 created, 0 updated")

	var count int64
	require.NoError(t, db.Model(&model.Faq{}).Count(&count).Error)
	assert.Equal(t, int64(9), count)
}

func TestSeedCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")
	t.Setenv("DB_DRIVER", database.DriverSQLite)
	t.Setenv("DB_CONNECTION_STRING", dbPath)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--file", "faq.yaml"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "9 created")

	db, err := database.NewQuietGormDB(database.DriverSQLite, dbPath)
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&model.Faq{}).Count(&count).Error)
	assert.Equal(t, int64(9), count)
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func TestSeedCommand_MissingFile(t *testing.T) {
	t.Setenv("DB_DRIVER", database.DriverSQLite)
	t.Setenv("DB_CONNECTION_STRING", filepath.Join(t.TempDir(), "seed.db"))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-f", "does-not-exist.yaml"})
	assert.Error(t, cmd.Execute())
}
