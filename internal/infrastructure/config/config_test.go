package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.MQ.Enabled)
	assert.Equal(t, "catalog.events", cfg.MQ.Exchange)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := []byte("server:\n  port: 8080\nstore:\n  driver: sqlite\n  sqlite:\n    path: test.db\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	t.Run("读取配置文件", func(t *testing.T) {
		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "sqlite", cfg.Store.Driver)
		assert.Equal(t, "test.db", cfg.Store.SQLite.Path)
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		t.Setenv("LIBRARY_STORE_DRIVER", "memory")
		t.Setenv("LIBRARY_SERVER_PORT", "9090")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "memory", cfg.Store.Driver)
	})
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("不支持的存储驱动", func(t *testing.T) {
		t.Setenv("LIBRARY_STORE_DRIVER", "mongodb")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("端口越界", func(t *testing.T) {
		t.Setenv("LIBRARY_SERVER_PORT", "70000")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 3306, User: "u", Password: "p", DBName: "lib",
		Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai"}

	assert.Equal(t, "u:p@tcp(db:3306)/lib?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.MySQLDSN())

	d.Port = 5432
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=lib sslmode=disable", d.PostgresDSN())
}
