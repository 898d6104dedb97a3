package service

import (
	"regexp"
	"strings"
	"unicode"

	"trivia_backend/internal/model"
	"trivia_backend/internal/repository"
	"trivia_backend/internal/util"
)

var nationalIDPattern = regexp.MustCompile(`^[0-9]{4,20}$`)

// normalizeNationalID trims the identifier and enforces the 4 to 20 digit
// format shared by every endpoint that accepts one.
func normalizeNationalID(nationalID string) (string, error) {
	nationalID = strings.TrimSpace(nationalID)
	if !nationalIDPattern.MatchString(nationalID) {
		return "", util.Validation("national id must be 4 to 20 digits")
	}
	return nationalID, nil
}

// normalizeName collapses whitespace and title-cases each word so the same
// person typing "maria PEREZ" and "Maria Perez" stays one record.
func normalizeName(name string) (string, error) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", util.Validation("name must not be empty")
	}
	for i, f := range fields {
		runes := []rune(strings.ToLower(f))
		runes[0] = unicode.ToUpper(runes[0])
		fields[i] = string(runes)
	}
	return strings.Join(fields, " "), nil
}

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

type UserCreateRequest struct {
	Name       string `json:"name" binding:"required"`
	NationalID string `json:"nationalId" binding:"required"`
}

func (s *UserService) CreateUser(req *UserCreateRequest) (*model.User, error) {
	nationalID, err := normalizeNationalID(req.NationalID)
	if err != nil {
		return nil, err
	}
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}

	existing, err := s.UserRepo.FindByNationalID(nationalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrNationalIDTaken
	}

	user := &model.User{Name: name, NationalID: nationalID}
	if err := s.UserRepo.Create(user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, util.ErrNationalIDTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByNationalID(nationalID string) (*model.User, error) {
	nationalID, err := normalizeNationalID(nationalID)
	if err != nil {
		return nil, err
	}
	user, err := s.UserRepo.FindByNationalID(nationalID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) ListUsers() ([]model.User, error) {
	return s.UserRepo.List()
}

// DeleteUser removes the user and, through the FK constraints, every attempt
// and result they left behind.
func (s *UserService) DeleteUser(nationalID string) error {
	user, err := s.GetByNationalID(nationalID)
	if err != nil {
		return err
	}
	return s.UserRepo.Delete(user)
}

func (s *UserService) DeleteAllUsers() error {
	return s.UserRepo.DeleteAll()
}
