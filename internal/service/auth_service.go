package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/copier"
	"github.com/lshigami/Quillback/config"
	"github.com/lshigami/Quillback/internal/dto"
	"github.com/lshigami/Quillback/internal/model"
	"github.com/lshigami/Quillback/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDeactivated = errors.New("account has been deactivated")
	ErrInvalidToken       = errors.New("invalid token")
)

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(req dto.RegisterRequest) (*dto.UserDTO, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	ParseToken(tokenString string) (*model.User, error)
	GetProfile(userID uint) (*dto.ProfileDTO, error)
	Dashboard(user *model.User) (*dto.DashboardDTO, error)
	UpdateProfile(userID uint, req dto.UpdateProfileRequest) (*dto.UserDTO, error)
}

type authService struct {
	userRepo          repository.UserRepository
	questionnaireRepo repository.QuestionnaireRepository
	responseRepo      repository.ResponseRepository
	secret            []byte
	tokenExpiry       time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	questionnaireRepo repository.QuestionnaireRepository,
	responseRepo repository.ResponseRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:          userRepo,
		questionnaireRepo: questionnaireRepo,
		responseRepo:      responseRepo,
		secret:            []byte(cfg.Auth.JWTSecret),
		tokenExpiry:       cfg.Auth.TokenExpiry,
	}
}

func (s *authService) Register(req dto.RegisterRequest) (*dto.UserDTO, error) {
	verr := newValidationError()
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		verr.add("username", "Username is already taken.")
	}
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		verr.add("email", "Email is already registered.")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		LastSeen:     time.Now(),
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to create user")
		return nil, fmt.Errorf("database error creating user: %w", err)
	}

	log.Info().Str("username", user.Username).Str("role", user.Role).Msg("New user registered")

	var resp dto.UserDTO
	copier.Copy(&resp, &user)
	return &resp, nil
}

func (s *authService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		log.Warn().Str("username", req.Username).Msg("Failed login attempt: unknown username")
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Str("username", req.Username).Msg("Failed login attempt: bad password")
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		log.Warn().Str("username", user.Username).Msg("Login attempt for deactivated user")
		return nil, ErrAccountDeactivated
	}

	user.LastSeen = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Failed to stamp last_seen")
	}

	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	log.Info().Str("username", user.Username).Msg("User logged in")

	var userDTO dto.UserDTO
	copier.Copy(&userDTO, user)
	return &dto.LoginResponse{Token: token, User: userDTO}, nil
}

// ParseToken validates a bearer token and loads the matching active user.
func (s *authService) ParseToken(tokenString string) (*model.User, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}
	return user, nil
}

func (s *authService) GetProfile(userID uint) (*dto.ProfileDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	created, err := s.questionnaireRepo.CountByCreator(userID)
	if err != nil {
		return nil, err
	}
	responded, err := s.responseRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	var resp dto.ProfileDTO
	copier.Copy(&resp.UserDTO, user)
	resp.QuestionnairesCreated = created
	resp.ResponsesSubmitted = responded
	return &resp, nil
}

func (s *authService) Dashboard(user *model.User) (*dto.DashboardDTO, error) {
	profile, err := s.GetProfile(user.ID)
	if err != nil {
		return nil, err
	}

	questionnaires, err := s.questionnaireRepo.ListByCreator(user.ID, 5)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.ListCompleteByUser(user.ID, 5)
	if err != nil {
		return nil, err
	}

	dashboard := dto.DashboardDTO{Stats: *profile}
	copier.Copy(&dashboard.RecentQuestionnaires, &questionnaires)
	dashboard.RecentResponses = make([]dto.ResponseSummaryDTO, 0, len(responses))
	for i := range responses {
		var summary dto.ResponseSummaryDTO
		copier.Copy(&summary, &responses[i])
		responses[i].User = user
		summary.Respondent = responses[i].Respondent()
		dashboard.RecentResponses = append(dashboard.RecentResponses, summary)
	}
	return &dashboard, nil
}

func (s *authService) UpdateProfile(userID uint, req dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	verr := newValidationError()

	if req.Username != "" && req.Username != user.Username {
		if existing, err := s.userRepo.FindByUsername(req.Username); err == nil && existing.ID != userID {
			verr.add("username", "Username is already taken.")
		} else {
			user.Username = req.Username
		}
	}
	if req.Email != "" && req.Email != user.Email {
		if existing, err := s.userRepo.FindByEmail(req.Email); err == nil && existing.ID != userID {
			verr.add("email", "Email is already registered.")
		} else {
			user.Email = req.Email
		}
	}

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			verr.add("current_password", "Current password is required to change password.")
		} else if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
			verr.add("current_password", "Current password is incorrect.")
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password: %w", err)
			}
			user.PasswordHash = string(hash)
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	if err := s.userRepo.Update(user); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to update profile")
		return nil, fmt.Errorf("database error updating profile: %w", err)
	}

	log.Info().Str("username", user.Username).Msg("User updated profile")

	var resp dto.UserDTO
	copier.Copy(&resp, user)
	return &resp, nil
}
