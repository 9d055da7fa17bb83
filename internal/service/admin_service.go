package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Quillback/internal/dto"
	"github.com/lshigami/Quillback/internal/model"
	"github.com/lshigami/Quillback/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrUserHasContent blocks deletion of users who still own questionnaires or
// responses; such accounts are deactivated instead of removed.
var ErrUserHasContent = errors.New("user still owns questionnaires or responses")

type AdminService interface {
	Dashboard() (*dto.AdminDashboardDTO, error)
	ListUsers(filter repository.UserFilter, page, perPage int) (*dto.Page[dto.UserDTO], error)
	ToggleUserStatus(actor *model.User, userID uint) (*dto.UserDTO, error)
	ChangeUserRole(actor *model.User, userID uint, role string) (*dto.UserDTO, error)
	DeleteUser(actor *model.User, userID uint) error
}

type adminService struct {
	userRepo          repository.UserRepository
	questionnaireRepo repository.QuestionnaireRepository
	responseRepo      repository.ResponseRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	questionnaireRepo repository.QuestionnaireRepository,
	responseRepo repository.ResponseRepository,
) AdminService {
	return &adminService{
		userRepo:          userRepo,
		questionnaireRepo: questionnaireRepo,
		responseRepo:      responseRepo,
	}
}

func (s *adminService) Dashboard() (*dto.AdminDashboardDTO, error) {
	var (
		dashboard dto.AdminDashboardDTO
		err       error
	)

	if dashboard.Stats.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, err
	}
	if dashboard.Stats.ActiveUsers, err = s.userRepo.CountActive(); err != nil {
		return nil, err
	}
	if dashboard.Stats.TotalQuestionnaires, err = s.questionnaireRepo.Count(); err != nil {
		return nil, err
	}
	if dashboard.Stats.ActiveQuestionnaires, err = s.questionnaireRepo.CountActive(); err != nil {
		return nil, err
	}
	if dashboard.Stats.PublicQuestionnaires, err = s.questionnaireRepo.CountPublicActive(); err != nil {
		return nil, err
	}
	if dashboard.Stats.TotalResponses, err = s.responseRepo.Count(); err != nil {
		return nil, err
	}
	if dashboard.Stats.CompleteResponses, err = s.responseRepo.CountComplete(); err != nil {
		return nil, err
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	if dashboard.GrowthStats.NewQuestionnaires, err = s.questionnaireRepo.CountCreatedSince(thirtyDaysAgo); err != nil {
		return nil, err
	}
	if dashboard.GrowthStats.NewResponses, err = s.responseRepo.CountCompleteSince(thirtyDaysAgo); err != nil {
		return nil, err
	}
	if dashboard.GrowthStats.NewUsers, err = s.userRepo.CountCreatedSince(thirtyDaysAgo); err != nil {
		return nil, err
	}

	recentUsers, err := s.userRepo.FindRecent(5)
	if err != nil {
		return nil, err
	}
	copier.Copy(&dashboard.RecentUsers, &recentUsers)

	recentQuestionnaires, err := s.questionnaireRepo.FindRecent(5)
	if err != nil {
		return nil, err
	}
	copier.Copy(&dashboard.RecentQuestionnaires, &recentQuestionnaires)

	recentResponses, err := s.responseRepo.FindRecentComplete(10)
	if err != nil {
		return nil, err
	}
	dashboard.RecentResponses = make([]dto.ResponseSummaryDTO, 0, len(recentResponses))
	for i := range recentResponses {
		var summary dto.ResponseSummaryDTO
		copier.Copy(&summary, &recentResponses[i])
		summary.Respondent = recentResponses[i].Respondent()
		dashboard.RecentResponses = append(dashboard.RecentResponses, summary)
	}

	topCreators, err := s.questionnaireRepo.TopCreators(5)
	if err != nil {
		return nil, err
	}
	copier.Copy(&dashboard.TopCreators, &topCreators)

	return &dashboard, nil
}

func (s *adminService) ListUsers(filter repository.UserFilter, page, perPage int) (*dto.Page[dto.UserDTO], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	users, total, err := s.userRepo.List(filter, (page-1)*perPage, perPage)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		return nil, fmt.Errorf("error fetching users: %w", err)
	}
	items := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		var d dto.UserDTO
		copier.Copy(&d, &users[i])
		items = append(items, d)
	}
	return &dto.Page[dto.UserDTO]{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}

func (s *adminService) ToggleUserStatus(actor *model.User, userID uint) (*dto.UserDTO, error) {
	if actor.ID == userID {
		verr := newValidationError()
		verr.add("user_id", "You cannot deactivate your own account.")
		return nil, verr
	}
	user, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := s.userRepo.Update(user); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to toggle user status")
		return nil, fmt.Errorf("database error updating user: %w", err)
	}

	status := "deactivated"
	if user.IsActive {
		status = "activated"
	}
	log.Info().Str("username", user.Username).Str("admin", actor.Username).Msgf("User %s", status)

	var d dto.UserDTO
	copier.Copy(&d, user)
	return &d, nil
}

func (s *adminService) ChangeUserRole(actor *model.User, userID uint, role string) (*dto.UserDTO, error) {
	verr := newValidationError()
	if role != model.RoleUser && role != model.RoleCreator && role != model.RoleAdmin {
		verr.add("role", "Invalid role specified.")
	}
	if actor.ID == userID && role != model.RoleAdmin {
		verr.add("role", "You cannot change your own admin role.")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	user, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}

	oldRole := user.Role
	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to change user role")
		return nil, fmt.Errorf("database error updating user: %w", err)
	}

	log.Info().Str("username", user.Username).Str("from", oldRole).Str("to", role).
		Str("admin", actor.Username).Msg("User role changed")

	var d dto.UserDTO
	copier.Copy(&d, user)
	return &d, nil
}

// DeleteUser removes an account, but only when it owns nothing: users with
// questionnaires or responses must be deactivated instead so their content
// and its attribution survive.
func (s *adminService) DeleteUser(actor *model.User, userID uint) error {
	if actor.ID == userID {
		verr := newValidationError()
		verr.add("user_id", "You cannot delete your own account.")
		return verr
	}
	user, err := s.loadUser(userID)
	if err != nil {
		return err
	}

	owned, err := s.questionnaireRepo.CountByCreator(userID)
	if err != nil {
		return err
	}
	responded, err := s.responseRepo.CountByUser(userID)
	if err != nil {
		return err
	}
	if owned > 0 || responded > 0 {
		return ErrUserHasContent
	}

	if err := s.userRepo.Delete(userID); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to delete user")
		return fmt.Errorf("database error deleting user: %w", err)
	}
	log.Info().Str("username", user.Username).Str("admin", actor.Username).Msg("User deleted")
	return nil
}

func (s *adminService) loadUser(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
