package service

import (
	"testing"
	"time"

	"trivia_backend/internal/model"
	"trivia_backend/internal/repository"
	"trivia_backend/pkg/database"
	"trivia_backend/pkg/logger"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	logger.Log = zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	// One connection so every session sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testEnv struct {
	db            *gorm.DB
	events        *EventService
	groups        *GroupService
	sections      *SectionService
	questions     *QuestionService
	users         *UserService
	participation *ParticipationService
	reports       *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	eventRepo := repository.NewEventRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	userRepo := repository.NewUserRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	resultRepo := repository.NewResultRepository(db)

	return &testEnv{
		db:            db,
		events:        NewEventService(eventRepo),
		groups:        NewGroupService(groupRepo, eventRepo, nil),
		sections:      NewSectionService(sectionRepo, eventRepo),
		questions:     NewQuestionService(questionRepo, sectionRepo, db),
		users:         NewUserService(userRepo),
		participation: NewParticipationService(attemptRepo, groupRepo, userRepo, questionRepo, db),
		reports:       NewReportService(attemptRepo, resultRepo, db),
	}
}

// mustCreateGroup seeds an event with one open group.
func (env *testEnv) mustCreateGroup(t *testing.T, maxAttempts int, cooldownSeconds int64) *model.Group {
	t.Helper()
	event, err := env.events.CreateEvent(&EventCreateRequest{Name: "Quiz Night " + t.Name()})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	group, err := env.groups.CreateGroup(&GroupCreateRequest{
		EventID:         event.ID,
		Name:            "Round 1",
		StartTime:       time.Now().UTC().Add(-time.Hour),
		CloseTime:       time.Now().UTC().Add(time.Hour),
		MaxAttempts:     maxAttempts,
		CooldownSeconds: cooldownSeconds,
	})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	return group
}

// mustCreateQuestions seeds a section under the group's event with two
// single-choice questions (correct option 1) and one open question. Returned
// in that order.
func (env *testEnv) mustCreateQuestions(t *testing.T, eventID uint) []*model.Question {
	t.Helper()
	section, err := env.sections.CreateSection(&SectionCreateRequest{EventID: eventID, Name: "General"})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}

	correct := 1
	var questions []*model.Question
	for _, text := range []string{"Capital of France?", "Largest ocean?"} {
		q, err := env.questions.CreateQuestion(&QuestionCreateRequest{
			SectionID:     section.ID,
			Text:          text,
			Kind:          model.QuestionSingleChoice,
			CorrectOption: &correct,
			Options: []OptionRequest{
				{Order: 1, Text: "Right"},
				{Order: 2, Text: "Wrong"},
			},
		})
		if err != nil {
			t.Fatalf("create question %q: %v", text, err)
		}
		questions = append(questions, q)
	}

	open, err := env.questions.CreateQuestion(&QuestionCreateRequest{
		SectionID: section.ID,
		Text:      "Why did you join?",
		Kind:      model.QuestionOpen,
	})
	if err != nil {
		t.Fatalf("create open question: %v", err)
	}
	return append(questions, open)
}
