package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, root string, rel string, imports ...string) {
	t.Helper()
	body := "package x\n\nimport (\n"
	for _, imp := range imports {
		body += "\t_ \"" + imp + "\"\n"
	}
	body += ")\n"
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func rulesFor(violations []violation, importPath string) []string {
	var rules []string
	for _, v := range violations {
		if v.Import == importPath {
			rules = append(rules, v.Rule)
		}
	}
	return rules
}

func TestCollectViolations(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "store-catalog/rating-ledger/application/commands/submit.go",
		"context",
		"golang.org/x/sync/errgroup",
		"storerating/internal/shared/identity",
		"storerating/contexts/store-catalog/rating-ledger/ports",
		"storerating/contexts/identity-access/account-service/ports",
		"storerating/internal/platform/db",
	)
	writeSource(t, root, "store-catalog/rating-ledger/domain/entities/rating.go",
		"time",
		"storerating/internal/shared/validation",
		"github.com/google/uuid",
	)
	writeSource(t, root, "store-catalog/rating-ledger/adapters/postgres/repository.go",
		"gorm.io/gorm",
		"storerating/internal/platform/db",
	)
	writeSource(t, root, "store-catalog/rating-ledger/application/commands/submit_test.go",
		"storerating/contexts/identity-access/account-service/ports",
	)

	violations := collectViolations(root)

	for _, allowed := range []string{
		"context",
		"golang.org/x/sync/errgroup",
		"storerating/internal/shared/identity",
		"storerating/internal/shared/validation",
		"storerating/contexts/store-catalog/rating-ledger/ports",
		"gorm.io/gorm",
	} {
		if rules := rulesFor(violations, allowed); len(rules) != 0 {
			t.Fatalf("expected %s allowed, got %v", allowed, rules)
		}
	}

	if rules := rulesFor(violations, "storerating/contexts/identity-access/account-service/ports"); len(rules) != 2 {
		t.Fatalf("expected cross-module import flagged twice, got %v", rules)
	}
	if rules := rulesFor(violations, "storerating/internal/platform/db"); len(rules) != 2 {
		t.Fatalf("expected platform import flagged only in application, got %v", rules)
	}
	if rules := rulesFor(violations, "github.com/google/uuid"); len(rules) != 1 {
		t.Fatalf("expected third-party domain import flagged, got %v", rules)
	}
}
