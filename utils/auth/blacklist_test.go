package auth_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/utils/auth"
	"gorm.io/gorm/clause"
)

func TestConsumeTokenOnce(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	store, err := database.Open(dsn, "pgx", true)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer store.Close()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db := store.DB()

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	role := model.Role{Name: "tokens-" + suffix}
	if err := db.Create(&role).Error; err != nil {
		t.Fatal(err)
	}
	user := model.User{Email: "tokens-" + suffix + "@example.test", PasswordHash: "x", FullName: "Tokens", RoleID: role.ID, Active: true}
	if err := db.Omit(clause.Associations).Create(&user).Error; err != nil {
		t.Fatal(err)
	}

	blacklist := auth.NewBlacklistService(db)
	ctx := context.Background()
	jti := uuid.NewString()
	expires := time.Now().Add(time.Hour)

	const callers = 8
	var wg sync.WaitGroup
	results := make(chan bool, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			consumed, err := blacklist.ConsumeToken(ctx, jti, user.ID, expires, auth.ReasonTokenRefresh)
			if err != nil {
				t.Errorf("ConsumeToken: %v", err)
				return
			}
			results <- consumed
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for consumed := range results {
		if consumed {
			winners++
		}
	}
	if winners != 1 {
		t.Errorf("%d callers consumed the token, want 1", winners)
	}

	if err := blacklist.RevokeToken(ctx, jti, user.ID, expires, auth.ReasonLogout); err != nil {
		t.Errorf("revoking a revoked token: %v", err)
	}
	revoked, err := blacklist.IsTokenRevoked(ctx, jti)
	if err != nil || !revoked {
		t.Errorf("IsTokenRevoked() = %v, %v; want true", revoked, err)
	}
}
