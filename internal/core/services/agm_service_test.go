package services

import (
	"context"
	"errors"
	"testing"

	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/adapters/persistence/repositories"
	"nagari-society/internal/core/domain"
)

func newAGMService(t *testing.T) (*AGMService, context.Context) {
	t.Helper()
	return NewAGMService(repositories.NewAGMRepository(newTestDB(t))), context.Background()
}

func TestAGMSessionWithAgenda(t *testing.T) {
	svc, ctx := newAGMService(t)

	session, err := svc.Create(ctx, &CreateAGMInput{
		Year:    2024,
		Date:    "15 March 2024",
		Time:    "6:00 PM",
		Venue:   "Clubhouse Hall",
		Status:  models.AGMCompleted,
		Quorum:  "68 of 90 flats",
		Present: 68,
		Absent:  22,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	item, err := svc.AddAgendaItem(ctx, 2024, &AgendaItemInput{
		Title:    "Repaint building exterior",
		Status:   models.AgendaApproved,
		YesVotes: 52,
		NoVotes:  16,
	})
	if err != nil {
		t.Fatalf("AddAgendaItem: %v", err)
	}
	if item.AGMSessionID != session.ID {
		t.Errorf("agenda item bound to session %d, want %d", item.AGMSessionID, session.ID)
	}

	got, err := svc.GetByYear(ctx, 2024)
	if err != nil {
		t.Fatalf("GetByYear: %v", err)
	}
	if got.Venue != "Clubhouse Hall" {
		t.Errorf("venue = %q", got.Venue)
	}
	if len(got.Agenda) != 1 || got.Agenda[0].Title != "Repaint building exterior" {
		t.Errorf("agenda = %+v, want the recorded item", got.Agenda)
	}
}

func TestAGMUnknownYear(t *testing.T) {
	svc, ctx := newAGMService(t)

	if _, err := svc.GetByYear(ctx, 1997); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if _, err := svc.AddAgendaItem(ctx, 1997, &AgendaItemInput{Title: "X"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("agenda for unknown year = %v, want ErrNotFound", err)
	}
}

func TestRecordOutcome(t *testing.T) {
	svc, ctx := newAGMService(t)

	if _, err := svc.Create(ctx, &CreateAGMInput{Year: 2025, Venue: "Clubhouse Hall"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	item, err := svc.AddAgendaItem(ctx, 2025, &AgendaItemInput{Title: "Install solar panels"})
	if err != nil {
		t.Fatalf("AddAgendaItem: %v", err)
	}
	if item.Status != models.AgendaDeferred {
		t.Fatalf("default agenda status = %s, want deferred", item.Status)
	}

	item, err = svc.RecordOutcome(ctx, item.ID, models.AgendaApproved, 61, 7)
	if err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}
	if item.Status != models.AgendaApproved || item.YesVotes != 61 || item.NoVotes != 7 {
		t.Errorf("outcome = %+v", item)
	}

	if _, err := svc.RecordOutcome(ctx, item.ID, "maybe", 0, 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad status = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.RecordOutcome(ctx, 999, models.AgendaRejected, 0, 0); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown item = %v, want ErrNotFound", err)
	}
}
