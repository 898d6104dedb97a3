package service

import (
	"time"

	"trivia_backend/internal/model"
	"trivia_backend/internal/repository"
	"trivia_backend/internal/util"

	"gorm.io/gorm"
)

type ReportService struct {
	AttemptRepo *repository.AttemptRepository
	ResultRepo  *repository.ResultRepository
	DB          *gorm.DB
}

func NewReportService(attemptRepo *repository.AttemptRepository, resultRepo *repository.ResultRepository, db *gorm.DB) *ReportService {
	return &ReportService{AttemptRepo: attemptRepo, ResultRepo: resultRepo, DB: db}
}

// AttemptReportRow is one line of the pending / finished participation reports.
type AttemptReportRow struct {
	AttemptID     uint       `json:"attemptId"`
	AttemptNumber int        `json:"attemptNumber"`
	UserID        uint       `json:"userId"`
	Name          string     `json:"name"`
	NationalID    string     `json:"nationalId"`
	GroupID       uint       `json:"groupId"`
	StartedAt     time.Time  `json:"startedAt"`
	FinishedAt    *time.Time `json:"finishedAt,omitempty"`
	Elapsed       *string    `json:"elapsed,omitempty"`
}

// AttemptsByState lists attempts in the given state, optionally narrowed to
// one event or one group.
func (s *ReportService) AttemptsByState(state model.AttemptState, eventID, groupID uint) ([]AttemptReportRow, error) {
	attempts, err := s.AttemptRepo.ListByState(state, eventID, groupID)
	if err != nil {
		return nil, err
	}

	rows := make([]AttemptReportRow, 0, len(attempts))
	for _, a := range attempts {
		row := AttemptReportRow{
			AttemptID:     a.ID,
			AttemptNumber: a.AttemptNumber,
			UserID:        a.UserID,
			Name:          a.User.Name,
			NationalID:    a.User.NationalID,
			GroupID:       a.GroupID,
			StartedAt:     a.StartedAt,
			FinishedAt:    a.FinishedAt,
		}
		if a.ElapsedSeconds != nil {
			e := util.FormatElapsed(*a.ElapsedSeconds)
			row.Elapsed = &e
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// RankingEntry is one leaderboard line. Rank is dense: ties share a rank and
// the next distinct score takes the following one.
type RankingEntry struct {
	Rank           int     `json:"rank"`
	UserID         uint    `json:"userId"`
	Name           string  `json:"name"`
	NationalID     string  `json:"nationalId"`
	GroupID        uint    `json:"groupId"`
	GroupName      string  `json:"groupName"`
	AttemptID      uint    `json:"attemptId"`
	AttemptNumber  int     `json:"attemptNumber"`
	Correct        int     `json:"correct"`
	TotalQuestions int     `json:"totalQuestions"`
	Accuracy       float64 `json:"accuracy"`
	ElapsedSeconds int64   `json:"elapsedSeconds"`
	Elapsed        string  `json:"elapsed"`
}

// Ranking orders finished attempts by correct answers, fastest time breaking
// ties. Both filters are optional; zero means all.
func (s *ReportService) Ranking(groupID uint, attemptNumber int) ([]RankingEntry, error) {
	query := s.DB.Table("results").
		Select(`users.id AS user_id, users.name, users.national_id,
			groups.id AS group_id, groups.name AS group_name,
			attempts.id AS attempt_id, attempts.attempt_number,
			results.correct, results.total_questions, results.accuracy, results.elapsed_seconds`).
		Joins("JOIN attempts ON attempts.id = results.attempt_id").
		Joins("JOIN users ON users.id = attempts.user_id").
		Joins("JOIN groups ON groups.id = attempts.group_id")
	if groupID > 0 {
		query = query.Where("attempts.group_id = ?", groupID)
	}
	if attemptNumber > 0 {
		query = query.Where("attempts.attempt_number = ?", attemptNumber)
	}

	var entries []RankingEntry
	err := query.Order("results.correct DESC, results.elapsed_seconds ASC").Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	rank := 0
	for i := range entries {
		if i == 0 || entries[i].Correct != entries[i-1].Correct || entries[i].ElapsedSeconds != entries[i-1].ElapsedSeconds {
			rank++
		}
		entries[i].Rank = rank
		entries[i].Elapsed = util.FormatElapsed(entries[i].ElapsedSeconds)
	}
	return entries, nil
}
