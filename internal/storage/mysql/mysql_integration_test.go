//go:build integration

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcart_sentiment/internal/domain"
	mysqlrepo "shopcart_sentiment/internal/storage/mysql"
)

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations", "mysql")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(migrationsDir(), "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no .sql files in %s", migrationsDir())
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		require.NoError(t, err, "read %s", f)
		_, err = db.Exec(string(sqlBytes))
		require.NoError(t, err, "exec %s", f)
	}
}

func TestRepo_MySQL_ScoreRoundTrip(t *testing.T) {
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "dockertest")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=shopcart",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "run mysql")
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/shopcart?parseTime=true&multiStatements=true",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	require.NoError(t, pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}), "connect mysql")
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	const p1, p2 = "64b7f0c2a1b2c3d4e5f60001", "64b7f0c2a1b2c3d4e5f60002"
	_, err = db.Exec(`INSERT INTO products (id, name, price, image, score) VALUES (?, 'Lamp', 19.5, 'lamp.png', 0), (?, 'Mug', 7, 'mug.png', 42)`, p1, p2)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO reviews (id, product_id, review_text) VALUES ('r1', ?, 'great'), ('r2', ?, NULL)`, p1, p1)
	require.NoError(t, err)

	repo := mysqlrepo.New(db)
	ctx := context.Background()
	id1, _ := domain.ParseProductID(p1)

	rs, err := repo.ListReviews(ctx, id1)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, "", rs[1].Text)

	require.NoError(t, repo.SetScore(ctx, id1, 64))
	ps, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, 64, ps[0].Score)
	assert.Equal(t, 42, ps[1].Score)
}
