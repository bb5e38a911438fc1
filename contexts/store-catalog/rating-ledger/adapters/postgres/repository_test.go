package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	domainerrors "storerating/contexts/store-catalog/rating-ledger/domain/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// stalledServer accepts TCP connections and never answers, so every
// connection attempt hangs in the startup handshake.
func stalledServer(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	var mu sync.Mutex
	var conns []net.Conn
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, conn := range conns {
			_ = conn.Close()
		}
	})
	return ln.Addr().String()
}

func stalledGorm(t *testing.T) *gorm.DB {
	t.Helper()
	addr := stalledServer(t)
	cfg, err := pgx.ParseConfig(fmt.Sprintf("postgres://app:secret@%s/storerating?sslmode=disable", addr))
	if err != nil {
		t.Fatalf("parse dsn: %v", err)
	}
	cfg.ConnectTimeout = 0
	sqlDB := stdlib.OpenDB(*cfg)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	return gdb
}

func TestReconcileAggregatesHonorsTimeout(t *testing.T) {
	repo := NewRepository(stalledGorm(t), slog.Default(), 200*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := repo.ReconcileAggregates(context.Background())
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, domainerrors.ErrServiceUnavailable) {
			t.Fatalf("expected ErrServiceUnavailable, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("reconcile sweep ignored the repository timeout")
	}
}

func TestStatsHonorsTimeout(t *testing.T) {
	repo := NewRepository(stalledGorm(t), slog.Default(), 200*time.Millisecond)

	start := time.Now()
	_, err := repo.Stats(context.Background())
	if !errors.Is(err, domainerrors.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("stats call took %s", time.Since(start))
	}
}
