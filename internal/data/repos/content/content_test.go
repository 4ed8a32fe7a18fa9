package content

import (
	"context"
	"testing"
	"time"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos/testutil"
	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
)

func TestPostRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewPostRepo(db, testutil.Logger(t))

	now := time.Now().UTC()
	author := testutil.SeedUser(t, ctx, tx, "grace")
	testutil.SeedPost(t, ctx, tx, "old", types.PostStatusPublished, nil, now.Add(-40*24*time.Hour))
	fresh := testutil.SeedPost(t, ctx, tx, "fresh", types.PostStatusPublished, testutil.PtrUint(author.ID), now.Add(-time.Hour))
	testutil.SeedPost(t, ctx, tx, "draft", types.PostStatusDraft, nil, now.Add(-time.Minute))

	if n, err := repo.CountPublished(ctx, tx); err != nil || n != 2 {
		t.Fatalf("CountPublished: err=%v n=%d", err, n)
	}
	if n, err := repo.CountPublishedCreatedBetween(ctx, tx, now.Add(-30*24*time.Hour), now); err != nil || n != 1 {
		t.Fatalf("CountPublishedCreatedBetween: err=%v n=%d", err, n)
	}

	recent, err := repo.ListRecentPublished(ctx, tx, time.Time{}, 5)
	if err != nil || len(recent) != 2 {
		t.Fatalf("ListRecentPublished: err=%v len=%d", err, len(recent))
	}
	if recent[0].ID != fresh.ID || recent[0].Author == nil || recent[0].Author.Name != "grace" {
		t.Fatalf("ListRecentPublished: unexpected first row %+v", recent[0])
	}
	if recent[1].Author != nil {
		t.Fatalf("ListRecentPublished: authorless post got an author")
	}

	week, err := repo.ListRecentPublished(ctx, tx, now.Add(-7*24*time.Hour), 5)
	if err != nil || len(week) != 1 {
		t.Fatalf("ListRecentPublished since: err=%v len=%d", err, len(week))
	}
}

func TestSubscriberAndCampaignRepos(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	subs := NewSubscriberRepo(db, testutil.Logger(t))
	campaigns := NewCampaignRepo(db, testutil.Logger(t))

	now := time.Now().UTC()
	testutil.SeedSubscriber(t, ctx, tx, "a@example.com", types.SubscriberStatusActive, now.Add(-2*time.Hour))
	testutil.SeedSubscriber(t, ctx, tx, "b@example.com", types.SubscriberStatusActive, now.Add(-45*24*time.Hour))
	testutil.SeedSubscriber(t, ctx, tx, "c@example.com", types.SubscriberStatusUnsubscribed, now.Add(-time.Hour))
	testutil.SeedCampaign(t, ctx, tx, "launch")

	if n, err := subs.CountActive(ctx, tx); err != nil || n != 2 {
		t.Fatalf("CountActive: err=%v n=%d", err, n)
	}
	if n, err := subs.CountActiveCreatedBetween(ctx, tx, now.Add(-30*24*time.Hour), now); err != nil || n != 1 {
		t.Fatalf("CountActiveCreatedBetween: err=%v n=%d", err, n)
	}
	recent, err := subs.ListRecentActive(ctx, tx, now.Add(-7*24*time.Hour), 5)
	if err != nil || len(recent) != 1 || recent[0].Email != "a@example.com" {
		t.Fatalf("ListRecentActive: err=%v rows=%v", err, recent)
	}

	if n, err := campaigns.Count(ctx, tx); err != nil || n != 1 {
		t.Fatalf("Count campaigns: err=%v n=%d", err, n)
	}
}
