package application

import (
	"errors"

	"github.com/fundbridge/intake-go/internal/domain/user"
	"github.com/fundbridge/intake-go/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type UserService struct {
	repos *repository.Repos
}

func NewUserService(repos *repository.Repos) *UserService {
	return &UserService{repos: repos}
}

func (s *UserService) Register(input user.RegisterDTO) (user.User, error) {
	role := user.RoleEntrepreneur
	if input.Role != "" {
		parsed, ok := user.ParseRole(input.Role)
		if !ok {
			return user.User{}, errors.New("unknown role: " + input.Role)
		}
		role = parsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, err
	}

	u := user.User{
		Username: input.Username,
		Password: string(hashed),
		Email:    input.Email,
		FullName: input.FullName,
		Role:     role,
		// admins always carry review permission, analysts are granted it
		// separately
		CanReview: role == user.RoleAdmin,
	}
	if err := s.repos.User.Create(&u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (s *UserService) Authenticate(input user.LoginDTO) (user.User, error) {
	u, err := s.repos.User.GetByUsername(input.Username)
	if err != nil {
		return user.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(input.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// SetReviewPermission grants or revokes an analyst's review capability.
// Admin permission is implicit and entrepreneurs can never hold it.
func (s *UserService) SetReviewPermission(id uint, canReview bool) (user.User, error) {
	u, err := s.repos.User.GetByID(id)
	if err != nil {
		return user.User{}, ErrUserNotFound
	}
	if u.Role != user.RoleAnalyst {
		return user.User{}, errors.New("review permission applies to analysts only")
	}
	u.CanReview = canReview
	if err := s.repos.User.Update(&u); err != nil {
		return user.User{}, err
	}
	return u, nil
}
