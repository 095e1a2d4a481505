package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"studyhub-backend/models"

	"github.com/google/uuid"
)

type fakeStore struct {
	mu sync.Mutex

	advance    []DueExam
	today      []DueExam
	advanceErr error
	todayErr   error
	markErr    error

	advanceTargets []time.Time
	todayCalls     int
	marked         []uuid.UUID
	logs           []models.ReminderLog
}

func (f *fakeStore) FindDueAdvance(target time.Time) ([]DueExam, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advanceTargets = append(f.advanceTargets, target)
	return f.advance, f.advanceErr
}

func (f *fakeStore) FindDueToday(today time.Time) ([]DueExam, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.todayCalls++
	return f.today, f.todayErr
}

func (f *fakeStore) MarkReminderSent(examID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, examID)
	return nil
}

func (f *fakeStore) LogDispatch(entry *models.ReminderLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, *entry)
	return nil
}

type fakeMailer struct {
	mu       sync.Mutex
	failFor  map[string]error
	panicFor map[string]bool
	sent     []string
}

func (m *fakeMailer) SendExamReminder(ctx context.Context, toEmail, toName string, exam models.Exam) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panicFor[exam.Title] {
		panic("transport exploded")
	}
	if err, ok := m.failFor[exam.Title]; ok {
		return err
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

func newTestService(store *fakeStore, mailer *fakeMailer, now time.Time) *ReminderService {
	return &ReminderService{
		store:   store,
		mailer:  mailer,
		nowFunc: func() time.Time { return now },
	}
}

func dueExam(title, email string) DueExam {
	return DueExam{
		Exam: models.Exam{
			ID:     uuid.New(),
			UserID: uuid.New(),
			Title:  title,
		},
		OwnerName:  "Ana",
		OwnerEmail: email,
	}
}

// Sweeps run at 15:00 unless a test needs the same-day window.
var sweepTime = time.Date(2024, 6, 8, 15, 0, 0, 0, time.UTC)

func TestSweepAdvanceSuccessMarksFlag(t *testing.T) {
	exam := dueExam("Calculus", "ana@test.com")
	store := &fakeStore{advance: []DueExam{exam}}
	mailer := &fakeMailer{}
	svc := newTestService(store, mailer, sweepTime)

	svc.Sweep(sweepTime)

	if len(mailer.sent) != 1 || mailer.sent[0] != "ana@test.com" {
		t.Fatalf("sent = %v, want one email to ana@test.com", mailer.sent)
	}
	if len(store.marked) != 1 || store.marked[0] != exam.ID {
		t.Errorf("marked = %v, want [%v]", store.marked, exam.ID)
	}
	if len(store.logs) != 1 || store.logs[0].Status != "sent" || store.logs[0].Kind != KindAdvance {
		t.Errorf("logs = %+v, want one sent advance entry", store.logs)
	}
}

func TestSweepAdvanceFailureLeavesFlagUnset(t *testing.T) {
	exam := dueExam("Calculus", "ana@test.com")
	store := &fakeStore{advance: []DueExam{exam}}
	mailer := &fakeMailer{failFor: map[string]error{"Calculus": errors.New("smtp down")}}
	svc := newTestService(store, mailer, sweepTime)

	svc.Sweep(sweepTime)

	if len(store.marked) != 0 {
		t.Errorf("marked = %v, want none after a failed send", store.marked)
	}
	if len(store.logs) != 1 || store.logs[0].Status != "failed" {
		t.Errorf("logs = %+v, want one failed entry", store.logs)
	}
}

func TestSweepOneFailureDoesNotAbortOthers(t *testing.T) {
	a := dueExam("Algebra", "a@test.com")
	b := dueExam("Biology", "b@test.com")
	c := dueExam("Chemistry", "c@test.com")
	store := &fakeStore{advance: []DueExam{a, b, c}}
	mailer := &fakeMailer{failFor: map[string]error{"Biology": errors.New("timeout")}}
	svc := newTestService(store, mailer, sweepTime)

	svc.Sweep(sweepTime)

	if len(store.marked) != 2 {
		t.Fatalf("marked %d exams, want 2", len(store.marked))
	}
	for _, id := range store.marked {
		if id == b.ID {
			t.Errorf("failed exam %v must not be marked", b.ID)
		}
	}
	if len(store.logs) != 3 {
		t.Errorf("logged %d attempts, want 3", len(store.logs))
	}
}

func TestSweepAdvanceTargetDate(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeMailer{}, sweepTime)

	svc.Sweep(sweepTime)

	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if len(store.advanceTargets) != 1 || !store.advanceTargets[0].Equal(want) {
		t.Errorf("advance target = %v, want [%v]", store.advanceTargets, want)
	}
}

func TestSweepSameDayHourGate(t *testing.T) {
	tests := []struct {
		name      string
		hour      int
		wantCalls int
		wantSent  int
	}{
		{name: "before window", hour: 7, wantCalls: 0, wantSent: 0},
		{name: "inside window", hour: 8, wantCalls: 1, wantSent: 1},
		{name: "after window", hour: 9, wantCalls: 0, wantSent: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{today: []DueExam{dueExam("History", "h@test.com")}}
			mailer := &fakeMailer{}
			now := time.Date(2024, 6, 10, tt.hour, 30, 0, 0, time.UTC)
			svc := newTestService(store, mailer, now)

			svc.Sweep(now)

			if store.todayCalls != tt.wantCalls {
				t.Errorf("todayCalls = %d, want %d", store.todayCalls, tt.wantCalls)
			}
			if len(mailer.sent) != tt.wantSent {
				t.Errorf("sent = %d, want %d", len(mailer.sent), tt.wantSent)
			}
		})
	}
}

func TestSweepSameDayIgnoresReminderSentAndNeverMarks(t *testing.T) {
	exam := dueExam("History", "h@test.com")
	exam.ReminderSent = true
	store := &fakeStore{today: []DueExam{exam}}
	mailer := &fakeMailer{}
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	svc := newTestService(store, mailer, now)

	svc.Sweep(now)

	if len(mailer.sent) != 1 {
		t.Fatalf("sent = %v, want the same-day reminder despite the flag", mailer.sent)
	}
	if len(store.marked) != 0 {
		t.Errorf("marked = %v, same-day sends must not touch the flag", store.marked)
	}
	if len(store.logs) != 1 || store.logs[0].Kind != KindSameDay {
		t.Errorf("logs = %+v, want one same_day entry", store.logs)
	}
}

func TestSweepStoreErrorsContained(t *testing.T) {
	store := &fakeStore{
		advanceErr: errors.New("db gone"),
		todayErr:   errors.New("db gone"),
	}
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	svc := newTestService(store, &fakeMailer{}, now)

	// Must not panic
	svc.Sweep(now)
}

func TestSweepMailerPanicContained(t *testing.T) {
	a := dueExam("Algebra", "a@test.com")
	b := dueExam("Biology", "b@test.com")
	store := &fakeStore{advance: []DueExam{a, b}}
	mailer := &fakeMailer{panicFor: map[string]bool{"Algebra": true}}
	svc := newTestService(store, mailer, sweepTime)

	svc.Sweep(sweepTime)

	if len(store.marked) != 1 || store.marked[0] != b.ID {
		t.Errorf("marked = %v, want only %v after the panicking dispatch", store.marked, b.ID)
	}
}

func TestSweepMarkErrorDoesNotAbortCycle(t *testing.T) {
	a := dueExam("Algebra", "a@test.com")
	b := dueExam("Biology", "b@test.com")
	store := &fakeStore{advance: []DueExam{a, b}, markErr: errors.New("update failed")}
	mailer := &fakeMailer{}
	svc := newTestService(store, mailer, sweepTime)

	svc.Sweep(sweepTime)

	if len(mailer.sent) != 2 {
		t.Errorf("sent = %d, want both dispatches despite flag write failures", len(mailer.sent))
	}
}

func TestStartSchedulerRefusesSecondStart(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeMailer{}, sweepTime)

	if err := svc.StartScheduler(); err != nil {
		t.Fatalf("first start: %v", err)
	}
	defer svc.StopScheduler()

	if err := svc.StartScheduler(); err == nil {
		t.Error("second start succeeded, want refusal while running")
	}

	svc.StopScheduler()
	if err := svc.StartScheduler(); err != nil {
		t.Errorf("restart after stop: %v", err)
	}
}
