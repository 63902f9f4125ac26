package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/adapters/persistence/repositories"
	"nagari-society/internal/core/domain"
)

func newNoticeService(t *testing.T) (*NoticeService, context.Context) {
	t.Helper()
	return NewNoticeService(repositories.NewNoticeRepository(newTestDB(t))), context.Background()
}

func TestNoticeReadFlagsArePerViewer(t *testing.T) {
	svc, ctx := newNoticeService(t)

	notice, err := svc.Create(ctx, &CreateNoticeInput{
		Title:   "Water Supply Maintenance Tomorrow",
		Content: "Water supply will be interrupted from 10 AM to 2 PM.",
		Type:    models.NoticeAnnouncement,
		Tags:    []string{"maintenance", "water"},
	}, "Society Admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.MarkRead(ctx, notice.ID, 1); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	// Reader 1 sees it read, reader 2 does not
	views, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 1 || !views[0].IsRead {
		t.Errorf("viewer 1 should see the notice as read: %+v", views)
	}

	views, err = svc.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 1 || views[0].IsRead {
		t.Errorf("viewer 2 should see the notice as unread: %+v", views)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	svc, ctx := newNoticeService(t)

	notice, err := svc.Create(ctx, &CreateNoticeInput{Title: "Lift Service"}, "Society Admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.MarkRead(ctx, notice.ID, 1); err != nil {
		t.Fatalf("first MarkRead: %v", err)
	}
	if err := svc.MarkRead(ctx, notice.ID, 1); err != nil {
		t.Fatalf("repeat MarkRead should be a no-op, got %v", err)
	}
}

func TestMarkReadUnknownNotice(t *testing.T) {
	svc, ctx := newNoticeService(t)

	if err := svc.MarkRead(ctx, 999, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestNoticeCreateValidation(t *testing.T) {
	svc, ctx := newNoticeService(t)

	if _, err := svc.Create(ctx, &CreateNoticeInput{Title: "  "}, "Admin"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank title = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Create(ctx, &CreateNoticeInput{Title: "X", Type: "gossip"}, "Admin"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad type = %v, want ErrInvalidInput", err)
	}

	// Empty type defaults to announcement
	notice, err := svc.Create(ctx, &CreateNoticeInput{Title: "X"}, "Admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if notice.Type != models.NoticeAnnouncement {
		t.Errorf("default type = %s, want announcement", notice.Type)
	}
}

func TestNoticeTagsRoundTrip(t *testing.T) {
	svc, ctx := newNoticeService(t)

	created, err := svc.Create(ctx, &CreateNoticeInput{
		Title: "Diwali Celebration",
		Type:  models.NoticeEvent,
		Tags:  []string{"festival", "community"},
	}, "Admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(ctx, created.ID, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got.Tags, []string{"festival", "community"}) {
		t.Errorf("tags = %v", got.Tags)
	}
}
