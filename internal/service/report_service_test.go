package service

import (
	"testing"

	"trivia_backend/internal/model"
)

// seedFinishedAttempt joins and finalizes one attempt, answering the two
// single-choice questions with the given options.
func seedFinishedAttempt(t *testing.T, env *testEnv, questions []*model.Question, name, nationalID string, groupID uint, first, second int, elapsed string) {
	t.Helper()
	join, err := env.participation.ResolveOrStartAttempt(name, nationalID, groupID, 0)
	if err != nil {
		t.Fatalf("join %s: %v", nationalID, err)
	}
	_, err = env.participation.FinishAttempt(join.AttemptID, []SubmittedAnswer{
		{QuestionID: questions[0].ID, SelectedOption: first},
		{QuestionID: questions[1].ID, SelectedOption: second},
	}, elapsed)
	if err != nil {
		t.Fatalf("finish %s: %v", nationalID, err)
	}
}

func TestRankingOrdersAndDenseRanks(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 1, 0)
	questions := env.mustCreateQuestions(t, group.EventID)

	// Correct option is 1 for both questions.
	seedFinishedAttempt(t, env, questions, "Alice A", "10000001", group.ID, 1, 2, "00:03:00") // 1 correct, slow
	seedFinishedAttempt(t, env, questions, "Bob B", "10000002", group.ID, 1, 1, "00:02:00")   // 2 correct
	seedFinishedAttempt(t, env, questions, "Cara C", "10000003", group.ID, 1, 2, "00:01:00")  // 1 correct, fast
	seedFinishedAttempt(t, env, questions, "Dan D", "10000004", group.ID, 2, 2, "00:01:30")   // 0 correct
	seedFinishedAttempt(t, env, questions, "Eve E", "10000005", group.ID, 1, 2, "00:01:00")   // ties Cara

	entries, err := env.reports.Ranking(group.ID, 0)
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("entries = %d, want 5", len(entries))
	}

	if entries[0].NationalID != "10000002" || entries[0].Rank != 1 {
		t.Errorf("first = %s rank %d, want Bob at rank 1", entries[0].NationalID, entries[0].Rank)
	}

	// Cara and Eve tie on (1 correct, 60s) and share rank 2 in either order.
	if entries[1].Rank != 2 || entries[2].Rank != 2 {
		t.Errorf("ranks = %d, %d, want a shared rank 2", entries[1].Rank, entries[2].Rank)
	}
	tied := map[string]bool{entries[1].NationalID: true, entries[2].NationalID: true}
	if !tied["10000003"] || !tied["10000005"] {
		t.Errorf("tied pair = %v, want Cara and Eve", tied)
	}

	// Dense ranking: the next distinct score takes rank 3, not 4.
	if entries[3].NationalID != "10000001" || entries[3].Rank != 3 {
		t.Errorf("fourth = %s rank %d, want Alice at rank 3", entries[3].NationalID, entries[3].Rank)
	}
	if entries[4].NationalID != "10000004" || entries[4].Rank != 4 {
		t.Errorf("last = %s rank %d, want Dan at rank 4", entries[4].NationalID, entries[4].Rank)
	}

	if entries[0].Elapsed != "00:02:00" {
		t.Errorf("elapsed = %q, want 00:02:00", entries[0].Elapsed)
	}
	if entries[0].Accuracy != 100 {
		t.Errorf("accuracy = %.2f, want 100", entries[0].Accuracy)
	}
}

func TestRankingFilters(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 2, 0)
	questions := env.mustCreateQuestions(t, group.EventID)

	seedFinishedAttempt(t, env, questions, "Alice A", "10000001", group.ID, 1, 1, "00:01:00")
	// Second attempt for the same user.
	seedFinishedAttempt(t, env, questions, "Alice A", "10000001", group.ID, 1, 2, "00:02:00")

	all, err := env.reports.Ranking(group.ID, 0)
	if err != nil {
		t.Fatalf("ranking: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("entries = %d, want both attempts", len(all))
	}

	second, err := env.reports.Ranking(group.ID, 2)
	if err != nil {
		t.Fatalf("ranking filtered: %v", err)
	}
	if len(second) != 1 || second[0].AttemptNumber != 2 {
		t.Errorf("filtered = %v, want only attempt 2", second)
	}

	none, err := env.reports.Ranking(group.ID+100, 0)
	if err != nil {
		t.Fatalf("ranking empty group: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("entries = %d, want 0 for unknown group", len(none))
	}
}

func TestAttemptsByState(t *testing.T) {
	env := newTestEnv(t)
	group := env.mustCreateGroup(t, 1, 0)
	questions := env.mustCreateQuestions(t, group.EventID)

	seedFinishedAttempt(t, env, questions, "Alice A", "10000001", group.ID, 1, 1, "00:01:00")
	if _, err := env.participation.ResolveOrStartAttempt("Bob B", "10000002", group.ID, 0); err != nil {
		t.Fatalf("join: %v", err)
	}

	pending, err := env.reports.AttemptsByState(model.AttemptPending, 0, 0)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].NationalID != "10000002" {
		t.Errorf("pending = %v, want just Bob", pending)
	}
	if pending[0].FinishedAt != nil || pending[0].Elapsed != nil {
		t.Error("pending row carries finish data")
	}

	finished, err := env.reports.AttemptsByState(model.AttemptFinished, group.EventID, group.ID)
	if err != nil {
		t.Fatalf("finished: %v", err)
	}
	if len(finished) != 1 || finished[0].NationalID != "10000001" {
		t.Errorf("finished = %v, want just Alice", finished)
	}
	if finished[0].Elapsed == nil || *finished[0].Elapsed != "00:01:00" {
		t.Errorf("elapsed = %v, want 00:01:00", finished[0].Elapsed)
	}
}
