// services/reminder_service.go
package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"studyhub-backend/models"
	"studyhub-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	// Advance reminders go out this many days before the exam date,
	// at most once per exam.
	advanceDays = 2
	// Same-day reminders fire only during this hour of the day.
	sameDayHour = 8

	sweepSchedule   = "@every 1h"
	dispatchTimeout = 30 * time.Second
)

const (
	KindAdvance = "advance"
	KindSameDay = "same_day"
)

// DueExam is an exam joined with its owner's contact details.
type DueExam struct {
	models.Exam
	OwnerName  string
	OwnerEmail string
}

// ReminderStore is the persistence surface a sweep needs.
type ReminderStore interface {
	FindDueAdvance(target time.Time) ([]DueExam, error)
	FindDueToday(today time.Time) ([]DueExam, error)
	MarkReminderSent(examID uuid.UUID) error
	LogDispatch(entry *models.ReminderLog) error
}

// Mailer delivers a single exam reminder.
type Mailer interface {
	SendExamReminder(ctx context.Context, toEmail, toName string, exam models.Exam) error
}

type ReminderService struct {
	store  ReminderStore
	mailer Mailer

	nowFunc func() time.Time

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{
		store:   &gormReminderStore{db: db},
		mailer:  NewEmailService(),
		nowFunc: time.Now,
	}
}

// StartScheduler begins the hourly sweep cycle. Exactly one scheduler may
// run per process; a second call while one is running is refused.
func (s *ReminderService) StartScheduler() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("reminder scheduler already running")
	}

	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddFunc(sweepSchedule, func() { s.Sweep(s.nowFunc()) }); err != nil {
		return err
	}
	s.cron = c
	s.started = true

	// First sweep fires right away, the rest on the hourly cadence.
	go s.Sweep(s.nowFunc())
	c.Start()
	log.Println("Reminder scheduler started")
	return nil
}

// StopScheduler halts the cadence and waits for any in-flight cron entry to
// return. Safe to call when not started.
func (s *ReminderService) StopScheduler() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
	s.started = false
	log.Println("Reminder scheduler stopped")
}

// Sweep runs one selection+dispatch cycle for the given instant. Failures
// anywhere in the cycle are logged and contained so the next tick still
// fires.
func (s *ReminderService) Sweep(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Reminder sweep panicked: %v", r)
		}
	}()

	sent := 0

	// Advance class: exams exactly advanceDays out that have not been
	// notified yet. The flag is only set after a confirmed delivery, so a
	// failed send stays eligible on the next sweep.
	target := utils.BeginningOfDay(now.AddDate(0, 0, advanceDays))
	advance, err := s.store.FindDueAdvance(target)
	if err != nil {
		log.Printf("Failed to fetch advance reminders: %v", err)
	}
	for _, exam := range advance {
		if !s.dispatch(exam, KindAdvance) {
			continue
		}
		sent++
		if err := s.store.MarkReminderSent(exam.ID); err != nil {
			// The email already went out; the next sweep may re-send.
			log.Printf("Failed to mark reminder sent for exam %s: %v", exam.ID, err)
		}
	}

	// Same-day class: exams due today, sent during the morning hour window
	// regardless of the advance flag.
	if now.Hour() == sameDayHour {
		today, err := s.store.FindDueToday(utils.BeginningOfDay(now))
		if err != nil {
			log.Printf("Failed to fetch same-day reminders: %v", err)
		}
		for _, exam := range today {
			if s.dispatch(exam, KindSameDay) {
				sent++
			}
		}
	}

	if sent > 0 {
		log.Printf("Reminder sweep completed, %d email(s) sent", sent)
	}
}

// dispatch attempts one reminder email with a bounded timeout. It never
// panics out of the sweep and reports delivery as a plain bool; every
// attempt lands in the reminder log.
func (s *ReminderService) dispatch(exam DueExam, kind string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Reminder dispatch panicked for exam %s: %v", exam.ID, r)
			ok = false
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	err := s.mailer.SendExamReminder(ctx, exam.OwnerEmail, exam.OwnerName, exam.Exam)

	entry := &models.ReminderLog{
		ExamID:    exam.ID,
		UserID:    exam.UserID,
		Kind:      kind,
		Recipient: exam.OwnerEmail,
		Subject:   "Reminder: " + exam.Title,
		Status:    "sent",
		SentAt:    time.Now(),
	}
	if err != nil {
		log.Printf("Failed to send %s reminder for exam %s to %s: %v", kind, exam.ID, exam.OwnerEmail, err)
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	} else {
		log.Printf("Sent %s reminder for exam %s to %s", kind, exam.ID, exam.OwnerEmail)
	}
	if logErr := s.store.LogDispatch(entry); logErr != nil {
		log.Printf("Failed to log reminder for exam %s: %v", exam.ID, logErr)
	}

	return err == nil
}

type gormReminderStore struct {
	db *gorm.DB
}

func (g *gormReminderStore) FindDueAdvance(target time.Time) ([]DueExam, error) {
	var rows []DueExam
	// Inner join drops exams whose owner no longer resolves.
	err := g.db.Table("exams").
		Select("exams.*, users.name AS owner_name, users.email AS owner_email").
		Joins("INNER JOIN users ON users.id = exams.user_id AND users.deleted_at IS NULL").
		Where("exams.due_date = ? AND exams.reminder_sent = ? AND exams.deleted_at IS NULL",
			utils.FormatDate(target), false).
		Scan(&rows).Error
	return rows, err
}

func (g *gormReminderStore) FindDueToday(today time.Time) ([]DueExam, error) {
	var rows []DueExam
	err := g.db.Table("exams").
		Select("exams.*, users.name AS owner_name, users.email AS owner_email").
		Joins("INNER JOIN users ON users.id = exams.user_id AND users.deleted_at IS NULL").
		Where("exams.due_date = ? AND exams.deleted_at IS NULL", utils.FormatDate(today)).
		Scan(&rows).Error
	return rows, err
}

func (g *gormReminderStore) MarkReminderSent(examID uuid.UUID) error {
	return g.db.Model(&models.Exam{}).Where("id = ?", examID).
		Update("reminder_sent", true).Error
}

func (g *gormReminderStore) LogDispatch(entry *models.ReminderLog) error {
	return g.db.Create(entry).Error
}
