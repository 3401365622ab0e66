package services

import (
	"errors"
	"fmt"
	"testing"

	"safebaby/models"
	"safebaby/testutil"
)

func TestFavoriteFreeTierCap(t *testing.T) {
	db := testutil.DB(t)
	user := testutil.SeedUser(t, db, "free@example.com", models.TierFree)
	svc := NewFavoriteService(db)

	for i := 0; i < FreeTierFavoriteLimit; i++ {
		p := testutil.SeedLabTestedProduct(t, db, fmt.Sprintf("00000000010%d", i), 90, nil)
		if _, err := svc.Add(user.ID, p.ID); err != nil {
			t.Fatalf("favorite %d should fit under the cap: %v", i+1, err)
		}
	}

	extra := testutil.SeedLabTestedProduct(t, db, "000000000200", 90, nil)
	_, err := svc.Add(user.ID, extra.ID)
	if !errors.Is(err, ErrFavoriteLimit) {
		t.Fatalf("expected ErrFavoriteLimit, got %v", err)
	}
}

func TestFavoritePremiumUncapped(t *testing.T) {
	db := testutil.DB(t)
	user := testutil.SeedUser(t, db, "premium@example.com", models.TierPremium)
	svc := NewFavoriteService(db)

	for i := 0; i < FreeTierFavoriteLimit+3; i++ {
		p := testutil.SeedLabTestedProduct(t, db, fmt.Sprintf("00000000030%d", i), 90, nil)
		if _, err := svc.Add(user.ID, p.ID); err != nil {
			t.Fatalf("premium favorite %d failed: %v", i+1, err)
		}
	}
}

func TestFavoriteDoubleTapIsNoOp(t *testing.T) {
	db := testutil.DB(t)
	user := testutil.SeedUser(t, db, "parent@example.com", models.TierFree)
	p := testutil.SeedLabTestedProduct(t, db, "000000000400", 90, nil)
	svc := NewFavoriteService(db)

	if _, err := svc.Add(user.ID, p.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.Add(user.ID, p.ID); err != nil {
		t.Fatalf("second add must be a no-op: %v", err)
	}

	var count int64
	db.Model(&models.UserFavorite{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("favorites = %d, want 1", count)
	}
}

func TestFavoriteRemoveAndList(t *testing.T) {
	db := testutil.DB(t)
	user := testutil.SeedUser(t, db, "parent2@example.com", models.TierFree)
	p1 := testutil.SeedLabTestedProduct(t, db, "000000000501", 90, nil)
	p2 := testutil.SeedLabTestedProduct(t, db, "000000000502", 85, nil)
	svc := NewFavoriteService(db)

	if _, err := svc.Add(user.ID, p1.ID); err != nil {
		t.Fatalf("add p1: %v", err)
	}
	if _, err := svc.Add(user.ID, p2.ID); err != nil {
		t.Fatalf("add p2: %v", err)
	}
	if err := svc.Remove(user.ID, p1.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	favs, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(favs) != 1 || favs[0].ProductID != p2.ID {
		t.Fatalf("list after remove = %+v, want only p2", favs)
	}
	if favs[0].Product.ID != p2.ID {
		t.Fatal("List should preload the product")
	}
}

func TestUsersWhoFavoritedFeedsFanOut(t *testing.T) {
	db := testutil.DB(t)
	u1 := testutil.SeedUser(t, db, "a@example.com", models.TierFree)
	u2 := testutil.SeedUser(t, db, "b@example.com", models.TierPremium)
	testutil.SeedUser(t, db, "c@example.com", models.TierFree) // never favorites
	p := testutil.SeedLabTestedProduct(t, db, "000000000600", 90, nil)
	svc := NewFavoriteService(db)

	if _, err := svc.Add(u1.ID, p.ID); err != nil {
		t.Fatalf("add u1: %v", err)
	}
	if _, err := svc.Add(u2.ID, p.ID); err != nil {
		t.Fatalf("add u2: %v", err)
	}

	ids, err := svc.UsersWhoFavorited(p.ID)
	if err != nil {
		t.Fatalf("fan-out query: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("user ids = %v, want both favoriting users", ids)
	}
}
