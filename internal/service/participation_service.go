package service

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"trivia_backend/internal/model"
	"trivia_backend/internal/repository"
	"trivia_backend/internal/util"

	"gorm.io/gorm"
)

// Admission decisions returned by ResolveOrStartAttempt.
const (
	ActionStart    = "start"
	ActionResume   = "resume"
	ActionWait     = "wait"
	ActionFinished = "finished"
)

type ParticipationService struct {
	AttemptRepo  *repository.AttemptRepository
	GroupRepo    *repository.GroupRepository
	UserRepo     *repository.UserRepository
	QuestionRepo *repository.QuestionRepository
	DB           *gorm.DB
}

func NewParticipationService(
	attemptRepo *repository.AttemptRepository,
	groupRepo *repository.GroupRepository,
	userRepo *repository.UserRepository,
	questionRepo *repository.QuestionRepository,
	db *gorm.DB,
) *ParticipationService {
	return &ParticipationService{
		AttemptRepo:  attemptRepo,
		GroupRepo:    groupRepo,
		UserRepo:     userRepo,
		QuestionRepo: questionRepo,
		DB:           db,
	}
}

// ChoiceAnswer is one single-choice answer as stored on the attempt.
type ChoiceAnswer struct {
	QuestionID     uint `json:"questionId"`
	SelectedOption int  `json:"selectedOption"`
}

// OpenAnswer is one free-text answer as stored on the attempt.
type OpenAnswer struct {
	QuestionID uint   `json:"questionId"`
	OpenText   string `json:"openText"`
}

// JoinResult is the attempt snapshot handed back to a joining participant.
type JoinResult struct {
	Action           string          `json:"action"`
	AttemptID        uint            `json:"attemptId"`
	AttemptNumber    int             `json:"attemptNumber"`
	GroupID          uint            `json:"groupId"`
	EventID          uint            `json:"eventId"`
	Name             string          `json:"name"`
	NationalID       string          `json:"nationalId"`
	ChoiceAnswers    json.RawMessage `json:"choiceAnswers"`
	OpenAnswers      json.RawMessage `json:"openAnswers"`
	StartedAt        time.Time       `json:"startedAt"`
	FinishedAt       *time.Time      `json:"finishedAt,omitempty"`
	Elapsed          *string         `json:"elapsed,omitempty"`
	RemainingSeconds int64           `json:"remainingSeconds"`
	Remaining        string          `json:"remaining"`
}

// ResolveOrStartAttempt decides, in one transaction, what joining a group
// means for this participant: start a fresh attempt, resume the pending one,
// wait out the cooldown, or report that the attempts are used up.
//
// The user row is locked for the duration of the transaction so concurrent
// joins by the same participant serialize; the unique index on
// (user_id, group_id, attempt_number) is the backstop when they do not.
// eventID is optional; when non-zero it must be the group's event.
func (s *ParticipationService) ResolveOrStartAttempt(name, nationalID string, groupID, eventID uint) (*JoinResult, error) {
	nationalID, err := normalizeNationalID(nationalID)
	if err != nil {
		return nil, err
	}
	name, err = normalizeName(name)
	if err != nil {
		return nil, err
	}

	group, err := s.GroupRepo.FindByID(groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	if eventID != 0 && group.EventID != eventID {
		return nil, util.Validation("group does not belong to the given event")
	}

	now := time.Now().UTC()
	if !group.OpenAt(now) {
		return nil, util.ErrGroupNotOpen
	}

	var out *JoinResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// The window can close between the check above and here.
		var g model.Group
		if err := tx.First(&g, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrGroupNotFound
			}
			return err
		}
		if !g.OpenAt(now) {
			return util.ErrGroupNotOpen
		}

		user, err := s.upsertUser(tx, name, nationalID)
		if err != nil {
			return err
		}

		// Locking read: under REPEATABLE READ a plain read could miss an
		// attempt committed after this transaction took its snapshot.
		latest, err := s.AttemptRepo.Latest(repository.LockForUpdate(tx), user.ID, g.ID)
		if err != nil {
			return err
		}

		switch {
		case latest == nil:
			out, err = s.startAttempt(tx, user.ID, g.ID, 1, now)
			return err

		case latest.State == model.AttemptPending:
			out = joinResultFrom(ActionResume, latest, 0)
			return nil

		case latest.AttemptNumber >= g.MaxAttempts:
			out = joinResultFrom(ActionFinished, latest, 0)
			return nil

		default:
			readyAt := latest.FinishedAt.Add(g.Cooldown())
			if now.Before(readyAt) {
				out = joinResultFrom(ActionWait, latest, readyAt.Sub(now))
				return nil
			}
			out, err = s.startAttempt(tx, user.ID, g.ID, latest.AttemptNumber+1, now)
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	out.GroupID = group.ID
	out.EventID = group.EventID
	out.Name = name
	out.NationalID = nationalID
	return out, nil
}

// upsertUser resolves the participant by national ID, creating the record on
// first contact and refreshing the display name when it changed.
func (s *ParticipationService) upsertUser(tx *gorm.DB, name, nationalID string) (*model.User, error) {
	var user model.User
	err := repository.LockForUpdate(tx).Where("national_id = ?", nationalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = model.User{NationalID: nationalID, Name: name}
		if err := tx.Create(&user).Error; err != nil {
			if !repository.IsDuplicateKey(err) {
				return nil, err
			}
			// Another join created the user first; take its row.
			if err := repository.LockForUpdate(tx).Where("national_id = ?", nationalID).First(&user).Error; err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}

	if user.Name != name {
		user.Name = name
		if err := tx.Model(&user).Update("name", name).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

func (s *ParticipationService) startAttempt(tx *gorm.DB, userID, groupID uint, number int, now time.Time) (*JoinResult, error) {
	attempt := &model.Attempt{
		UserID:        userID,
		GroupID:       groupID,
		AttemptNumber: number,
		ChoiceAnswers: "[]",
		OpenAnswers:   "[]",
		State:         model.AttemptPending,
		StartedAt:     now,
	}

	err := tx.Create(attempt).Error
	if repository.IsDuplicateKey(err) {
		// Lost a concurrent join for the same attempt number. The locking
		// read sees past this transaction's snapshot to the winner's freshly
		// committed pending row; resume it instead of failing.
		latest, lerr := s.AttemptRepo.Latest(repository.LockForUpdate(tx), userID, groupID)
		if lerr != nil {
			return nil, lerr
		}
		if latest != nil && latest.State == model.AttemptPending {
			return joinResultFrom(ActionResume, latest, 0), nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return joinResultFrom(ActionStart, attempt, 0), nil
}

func joinResultFrom(action string, attempt *model.Attempt, remaining time.Duration) *JoinResult {
	if remaining < 0 {
		remaining = 0
	}
	remainingSeconds := int64(math.Ceil(remaining.Seconds()))

	var elapsed *string
	if attempt.ElapsedSeconds != nil {
		e := util.FormatElapsed(*attempt.ElapsedSeconds)
		elapsed = &e
	}

	choice := attempt.ChoiceAnswers
	if choice == "" {
		choice = "[]"
	}
	open := attempt.OpenAnswers
	if open == "" {
		open = "[]"
	}

	return &JoinResult{
		Action:           action,
		AttemptID:        attempt.ID,
		AttemptNumber:    attempt.AttemptNumber,
		ChoiceAnswers:    json.RawMessage(choice),
		OpenAnswers:      json.RawMessage(open),
		StartedAt:        attempt.StartedAt,
		FinishedAt:       attempt.FinishedAt,
		Elapsed:          elapsed,
		RemainingSeconds: remainingSeconds,
		Remaining:        util.FormatElapsed(remainingSeconds),
	}
}

// SubmittedAnswer is one answer in a finalize request. The stored question's
// kind decides how it is recorded; the client does not get a vote.
type SubmittedAnswer struct {
	QuestionID     uint   `json:"questionId" binding:"required"`
	SelectedOption int    `json:"selectedOption"`
	OpenText       string `json:"openText"`
}

// FinishAttempt records the submitted answers, computes the score and closes
// the attempt. A second finalize on the same attempt is a conflict, never a
// silent success.
func (s *ParticipationService) FinishAttempt(attemptID uint, answers []SubmittedAnswer, elapsedStr string) (*model.Attempt, error) {
	if len(answers) == 0 {
		return nil, util.Validation("at least one answer is required")
	}
	elapsed, err := util.ParseElapsed(elapsedStr)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(answers))
	for _, a := range answers {
		if a.QuestionID == 0 {
			return nil, util.Validation("answer is missing its question id")
		}
		ids = append(ids, a.QuestionID)
	}

	questions, err := s.QuestionRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	qByID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		qByID[q.ID] = q
	}
	for _, a := range answers {
		if _, ok := qByID[a.QuestionID]; !ok {
			return nil, util.ErrQuestionNotFound
		}
	}

	var attempt model.Attempt
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&attempt, attemptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrAttemptNotFound
			}
			return err
		}
		if attempt.State == model.AttemptFinished {
			return util.ErrAttemptAlreadyFinished
		}

		var choice []ChoiceAnswer
		var open []OpenAnswer
		correct := 0
		for _, a := range answers {
			q := qByID[a.QuestionID]
			if q.Kind == model.QuestionOpen {
				open = append(open, OpenAnswer{QuestionID: a.QuestionID, OpenText: a.OpenText})
				continue
			}
			choice = append(choice, ChoiceAnswer{QuestionID: a.QuestionID, SelectedOption: a.SelectedOption})
			if q.CorrectOption != nil && a.SelectedOption == *q.CorrectOption {
				correct++
			}
		}

		choiceJSON, err := json.Marshal(choice)
		if err != nil {
			return err
		}
		openJSON, err := json.Marshal(open)
		if err != nil {
			return err
		}

		total := len(answers)
		accuracy := math.Round(float64(correct)/float64(total)*100*100) / 100
		elapsedSeconds := int64(elapsed.Seconds())
		now := time.Now().UTC()

		// Conditional update: a concurrent finalize flips state first and this
		// one must observe zero affected rows, not overwrite the result.
		res := tx.Model(&model.Attempt{}).
			Where("id = ? AND state = ?", attemptID, model.AttemptPending).
			Updates(map[string]interface{}{
				"choice_answers":  string(choiceJSON),
				"open_answers":    string(openJSON),
				"state":           model.AttemptFinished,
				"finished_at":     now,
				"elapsed_seconds": elapsedSeconds,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrAttemptAlreadyFinished
		}

		result := &model.Result{
			AttemptID:      attemptID,
			TotalQuestions: total,
			Correct:        correct,
			Accuracy:       accuracy,
			ElapsedSeconds: elapsedSeconds,
		}
		if err := tx.Create(result).Error; err != nil {
			return err
		}

		attempt.ChoiceAnswers = string(choiceJSON)
		attempt.OpenAnswers = string(openJSON)
		attempt.State = model.AttemptFinished
		attempt.FinishedAt = &now
		attempt.ElapsedSeconds = &elapsedSeconds
		attempt.Result = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (s *ParticipationService) DeleteAttempt(attemptID uint) error {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrAttemptNotFound
	}
	if err != nil {
		return err
	}
	return s.AttemptRepo.Delete(attempt)
}

func (s *ParticipationService) ListAttempts() ([]model.Attempt, error) {
	return s.AttemptRepo.List()
}

func (s *ParticipationService) ListAttemptsByGroup(groupID uint) ([]model.Attempt, error) {
	if _, err := s.GroupRepo.FindByID(groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGroupNotFound
		}
		return nil, err
	}
	return s.AttemptRepo.ListByGroup(groupID)
}

func (s *ParticipationService) ListAttemptsByState(state model.AttemptState, eventID, groupID uint) ([]model.Attempt, error) {
	if !state.Valid() {
		return nil, util.Validation("invalid attempt state")
	}
	return s.AttemptRepo.ListByState(state, eventID, groupID)
}

// SearchAttempts requires at least one filter; an unfiltered dump goes
// through ListAttempts instead.
func (s *ParticipationService) SearchAttempts(nationalID string, eventID, groupID uint) ([]model.Attempt, error) {
	if nationalID == "" && eventID == 0 && groupID == 0 {
		return nil, util.Validation("at least one search filter is required (national id, event or group)")
	}
	return s.AttemptRepo.Search(nationalID, eventID, groupID)
}
