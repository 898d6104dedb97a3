package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"trivia_backend/internal/model"
	"trivia_backend/internal/util"

	"gorm.io/gorm"
)

func TestJoinStartsFirstAttempt(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 3, 300)

	result, err := env.participation.ResolveOrStartAttempt("maria perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	if result.Action != ActionStart {
		t.Errorf("action = %q, want %q", result.Action, ActionStart)
	}
	if result.AttemptNumber != 1 {
		t.Errorf("attempt number = %d, want 1", result.AttemptNumber)
	}
	if result.Name != "Maria Perez" {
		t.Errorf("name = %q, want title-cased %q", result.Name, "Maria Perez")
	}
	if result.RemainingSeconds != 0 {
		t.Errorf("remaining = %d, want 0", result.RemainingSeconds)
	}
	if string(result.ChoiceAnswers) != "[]" || string(result.OpenAnswers) != "[]" {
		t.Errorf("answers = %s / %s, want empty arrays", result.ChoiceAnswers, result.OpenAnswers)
	}
}

func TestJoinResumesPendingAttempt(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 3, 300)

	first, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("first join: %v", err)
	}

	second, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("second join: %v", err)
	}

	if second.Action != ActionResume {
		t.Errorf("action = %q, want %q", second.Action, ActionResume)
	}
	if second.AttemptID != first.AttemptID {
		t.Errorf("attempt id = %d, want %d (same attempt)", second.AttemptID, first.AttemptID)
	}
	if second.AttemptNumber != 1 {
		t.Errorf("attempt number = %d, want 1", second.AttemptNumber)
	}
}

func TestJoinWaitsDuringCooldown(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 3, 240)
	questions := env.mustCreateQuestions(t, group.EventID)

	first, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := env.participation.FinishAttempt(first.AttemptID, []SubmittedAnswer{
		{QuestionID: questions[0].ID, SelectedOption: 1},
	}, "00:01:30"); err != nil {
		t.Fatalf("finish: %v", err)
	}

	again, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("join during cooldown: %v", err)
	}

	if again.Action != ActionWait {
		t.Fatalf("action = %q, want %q", again.Action, ActionWait)
	}
	if again.RemainingSeconds < 235 || again.RemainingSeconds > 240 {
		t.Errorf("remaining = %ds, want about 240s", again.RemainingSeconds)
	}
	if again.AttemptNumber != 1 {
		t.Errorf("attempt number = %d, want the finished attempt's 1", again.AttemptNumber)
	}
}

func TestJoinStartsNextAttemptAfterCooldown(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 3, 240)
	questions := env.mustCreateQuestions(t, group.EventID)

	first, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := env.participation.FinishAttempt(first.AttemptID, []SubmittedAnswer{
		{QuestionID: questions[0].ID, SelectedOption: 1},
	}, "00:01:30"); err != nil {
		t.Fatalf("finish: %v", err)
	}

	// Backdate the finish so the cooldown has passed.
	past := time.Now().UTC().Add(-10 * time.Minute)
	if err := env.db.Model(&model.Attempt{}).Where("id = ?", first.AttemptID).
		Update("finished_at", past).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	again, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("join after cooldown: %v", err)
	}

	if again.Action != ActionStart {
		t.Errorf("action = %q, want %q", again.Action, ActionStart)
	}
	if again.AttemptNumber != 2 {
		t.Errorf("attempt number = %d, want 2", again.AttemptNumber)
	}
}

func TestJoinReportsExhaustedAttempts(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 1, 0)
	questions := env.mustCreateQuestions(t, group.EventID)

	first, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := env.participation.FinishAttempt(first.AttemptID, []SubmittedAnswer{
		{QuestionID: questions[0].ID, SelectedOption: 1},
	}, "00:00:45"); err != nil {
		t.Fatalf("finish: %v", err)
	}

	again, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("join after exhaustion: %v", err)
	}

	if again.Action != ActionFinished {
		t.Errorf("action = %q, want %q", again.Action, ActionFinished)
	}
	if again.Elapsed == nil || *again.Elapsed != "00:00:45" {
		t.Errorf("elapsed = %v, want 00:00:45", again.Elapsed)
	}
}

func TestJoinRejectsClosedGroup(t *testing.T) {
	env := newTestEnv(t)
	event, err := env.events.CreateEvent(&EventCreateRequest{Name: "Closed Event"})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	group, err := env.groups.CreateGroup(&GroupCreateRequest{
		EventID:   event.ID,
		Name:      "Old Round",
		StartTime: time.Now().UTC().Add(-2 * time.Hour),
		CloseTime: time.Now().UTC().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	_, err = env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if !errors.Is(err, util.ErrGroupNotOpen) {
		t.Errorf("err = %v, want ErrGroupNotOpen", err)
	}
}

func TestJoinRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 1, 0)

	tests := []struct {
		name       string
		personName string
		nationalID string
		groupID    uint
	}{
		{"short national id", "Maria Perez", "123", group.ID},
		{"non-digit national id", "Maria Perez", "12a45678", group.ID},
		{"blank name", "   ", "12345678", group.ID},
		{"unknown group", "Maria Perez", "12345678", group.ID + 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.participation.ResolveOrStartAttempt(tt.personName, tt.nationalID, tt.groupID, 0)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestConcurrentJoinsShareOneAttempt(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 3, 300)

	const joiners = 8
	results := make([]*JoinResult, joiners)
	errs := make([]error, joiners)

	var wg sync.WaitGroup
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
		}(i)
	}
	wg.Wait()

	starts := 0
	for i := 0; i < joiners; i++ {
		if errs[i] != nil {
			t.Fatalf("join %d: %v", i, errs[i])
		}
		switch results[i].Action {
		case ActionStart:
			starts++
		case ActionResume:
		default:
			t.Errorf("join %d: action = %q, want start or resume", i, results[i].Action)
		}
	}
	if starts != 1 {
		t.Errorf("starts = %d, want exactly 1", starts)
	}

	var count int64
	if err := env.db.Model(&model.Attempt{}).Count(&count).Error; err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if count != 1 {
		t.Errorf("attempts in db = %d, want 1", count)
	}
}

func TestLostInsertRaceResumesWinner(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 3, 300)

	winner, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	var user model.User
	if err := env.db.Where("national_id = ?", "12345678").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}

	// A colliding insert for the same attempt number hits the unique index;
	// the loser must come back resuming the winner's pending attempt, not
	// surface the constraint violation.
	err = env.db.Transaction(func(tx *gorm.DB) error {
		result, err := env.participation.startAttempt(tx, user.ID, group.ID, 1, time.Now().UTC())
		if err != nil {
			return err
		}
		if result.Action != ActionResume {
			t.Errorf("action = %q, want %q", result.Action, ActionResume)
		}
		if result.AttemptID != winner.AttemptID {
			t.Errorf("attempt id = %d, want the winner's %d", result.AttemptID, winner.AttemptID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("colliding insert: %v", err)
	}

	var count int64
	if err := env.db.Model(&model.Attempt{}).Count(&count).Error; err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if count != 1 {
		t.Errorf("attempts in db = %d, want 1", count)
	}
}

func TestFinishScoresAndPartitionsAnswers(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 1, 0)
	questions := env.mustCreateQuestions(t, group.EventID)

	join, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	attempt, err := env.participation.FinishAttempt(join.AttemptID, []SubmittedAnswer{
		{QuestionID: questions[0].ID, SelectedOption: 1}, // correct
		{QuestionID: questions[1].ID, SelectedOption: 2}, // wrong
		{QuestionID: questions[2].ID, OpenText: "for fun"},
	}, "00:02:05")
	if err != nil {
		t.Fatalf("finish: %v", err)
	}

	if attempt.State != model.AttemptFinished {
		t.Errorf("state = %q, want finished", attempt.State)
	}
	if attempt.FinishedAt == nil {
		t.Error("finished_at not set")
	}
	if attempt.ElapsedSeconds == nil || *attempt.ElapsedSeconds != 125 {
		t.Errorf("elapsed seconds = %v, want 125", attempt.ElapsedSeconds)
	}

	if attempt.Result == nil {
		t.Fatal("result not created")
	}
	if attempt.Result.TotalQuestions != 3 {
		t.Errorf("total = %d, want 3", attempt.Result.TotalQuestions)
	}
	if attempt.Result.Correct != 1 {
		t.Errorf("correct = %d, want 1 (open answers never auto-correct)", attempt.Result.Correct)
	}
	if attempt.Result.Accuracy != 33.33 {
		t.Errorf("accuracy = %.2f, want 33.33", attempt.Result.Accuracy)
	}

	var stored model.Attempt
	if err := env.db.First(&stored, join.AttemptID).Error; err != nil {
		t.Fatalf("reload attempt: %v", err)
	}
	if stored.ChoiceAnswers == "[]" || stored.ChoiceAnswers == "" {
		t.Error("choice answers not recorded")
	}
	if stored.OpenAnswers == "[]" || stored.OpenAnswers == "" {
		t.Error("open answers not recorded")
	}
}

func TestFinishTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 1, 0)
	questions := env.mustCreateQuestions(t, group.EventID)

	join, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	answers := []SubmittedAnswer{{QuestionID: questions[0].ID, SelectedOption: 1}}
	if _, err := env.participation.FinishAttempt(join.AttemptID, answers, "00:01:00"); err != nil {
		t.Fatalf("first finish: %v", err)
	}

	_, err = env.participation.FinishAttempt(join.AttemptID, answers, "00:01:10")
	if !errors.Is(err, util.ErrAttemptAlreadyFinished) {
		t.Errorf("err = %v, want ErrAttemptAlreadyFinished", err)
	}

	var count int64
	if err := env.db.Model(&model.Result{}).Where("attempt_id = ?", join.AttemptID).Count(&count).Error; err != nil {
		t.Fatalf("count results: %v", err)
	}
	if count != 1 {
		t.Errorf("results = %d, want exactly 1", count)
	}
}

func TestFinishValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 1, 0)
	questions := env.mustCreateQuestions(t, group.EventID)

	join, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	tests := []struct {
		name    string
		answers []SubmittedAnswer
		elapsed string
		wantErr error
	}{
		{"no answers", nil, "00:01:00", nil},
		{"bad elapsed format", []SubmittedAnswer{{QuestionID: questions[0].ID, SelectedOption: 1}}, "1:00", nil},
		{"minutes overflow", []SubmittedAnswer{{QuestionID: questions[0].ID, SelectedOption: 1}}, "00:61:00", nil},
		{"unknown question", []SubmittedAnswer{{QuestionID: 9999, SelectedOption: 1}}, "00:01:00", util.ErrQuestionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.participation.FinishAttempt(join.AttemptID, tt.answers, tt.elapsed)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	_, err = env.participation.FinishAttempt(join.AttemptID+100, []SubmittedAnswer{
		{QuestionID: questions[0].ID, SelectedOption: 1},
	}, "00:01:00")
	if !errors.Is(err, util.ErrAttemptNotFound) {
		t.Errorf("err = %v, want ErrAttemptNotFound", err)
	}
}

func TestDeleteAttemptRemovesIt(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 1, 0)

	join, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := env.participation.DeleteAttempt(join.AttemptID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := env.participation.DeleteAttempt(join.AttemptID); !errors.Is(err, util.ErrAttemptNotFound) {
		t.Errorf("second delete err = %v, want ErrAttemptNotFound", err)
	}

	// The slot is free again: joining starts over at attempt 1.
	again, err := env.participation.ResolveOrStartAttempt("Maria Perez", "12345678", group.ID, 0)
	if err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if again.Action != ActionStart || again.AttemptNumber != 1 {
		t.Errorf("rejoin = %q #%d, want start #1", again.Action, again.AttemptNumber)
	}
}

func TestSearchAttemptsRequiresFilter(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.participation.SearchAttempts("", 0, 0); err == nil {
		t.Error("expected error for unfiltered search")
	}
}
