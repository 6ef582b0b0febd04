// Package businessflow contains the business logic for the visitor register.
package businessflow

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/front-desk/visitor-register/app/dto"
	"github.com/front-desk/visitor-register/models"
	"github.com/front-desk/visitor-register/repository"
	"github.com/front-desk/visitor-register/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserManagementFlow handles admin-only account administration
type UserManagementFlow interface {
	List(ctx context.Context, query *dto.ListUsersQuery) (*dto.ListUsersResponse, error)
	Create(ctx context.Context, request *dto.CreateUserRequest, actor AuthenticatedUser) (*dto.UserDTO, error)
	Update(ctx context.Context, id uuid.UUID, request *dto.UpdateUserRequest, actor AuthenticatedUser) error
	Delete(ctx context.Context, id uuid.UUID, actor AuthenticatedUser) error
}

// UserManagementFlowImpl implements the user management business flow
type UserManagementFlowImpl struct {
	userRepo repository.UserRepository
	db       *gorm.DB
}

// NewUserManagementFlow creates a new user management flow instance
func NewUserManagementFlow(
	userRepo repository.UserRepository,
	db *gorm.DB,
) UserManagementFlow {
	return &UserManagementFlowImpl{
		userRepo: userRepo,
		db:       db,
	}
}

// ClampPage returns the page number clamped to a 1-indexed minimum.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampLimit returns the page size, falling back to the default when non-positive.
func ClampLimit(limit int) int {
	if limit < 1 {
		return utils.DefaultPageSize
	}
	return limit
}

// List returns a filtered, paginated account list ordered by creation time,
// newest first. Non-positive or unparsable page/limit values are clamped.
func (uf *UserManagementFlowImpl) List(ctx context.Context, query *dto.ListUsersQuery) (*dto.ListUsersResponse, error) {
	page := ClampPage(query.Page)
	limit := ClampLimit(query.Limit)

	filter := models.UserFilter{}
	if query.Search != "" {
		filter.UsernameSearch = &query.Search
	}
	if role := models.UserRole(query.Role); role.Valid() {
		filter.Role = &role
	}

	total, err := uf.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("USER_LIST_FAILED", "Failed to list users", err)
	}

	users, err := uf.userRepo.ByFilter(ctx, filter, "created_at DESC", limit, (page-1)*limit)
	if err != nil {
		return nil, NewBusinessError("USER_LIST_FAILED", "Failed to list users", err)
	}

	userDTOs := make([]dto.UserDTO, 0, len(users))
	for _, user := range users {
		userDTOs = append(userDTOs, ToUserDTO(*user))
	}

	return &dto.ListUsersResponse{
		Users: userDTOs,
		Pagination: dto.PaginationDTO{
			TotalUsers:  total,
			TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
			CurrentPage: page,
			PerPage:     limit,
		},
	}, nil
}

// Create adds a new account. The password is hashed before it touches the
// store; username uniqueness violations surface as a conflict.
func (uf *UserManagementFlowImpl) Create(ctx context.Context, request *dto.CreateUserRequest, actor AuthenticatedUser) (*dto.UserDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewBusinessError("USER_CREATE_FAILED", "Failed to create user", err)
	}

	var user *models.User

	err = repository.WithTransaction(ctx, uf.db, func(txCtx context.Context) error {
		existing, err := uf.userRepo.ByUsername(txCtx, request.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrUsernameAlreadyExists
		}

		user = &models.User{
			Username:     request.Username,
			PasswordHash: string(hash),
			Role:         models.UserRole(request.Role),
		}

		return uf.userRepo.Save(txCtx, user)
	})
	if err != nil {
		if IsUsernameAlreadyExists(err) {
			return nil, err
		}
		// Concurrent creates can pass the read; uk_users_username reports
		// the loser as a duplicate key.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameAlreadyExists
		}
		return nil, NewBusinessError("USER_CREATE_FAILED", "Failed to create user", err)
	}

	log.Printf("User account created: %s (%s) by %s", user.Username, user.Role, actor.Username)

	userDTO := ToUserDTO(*user)
	return &userDTO, nil
}

// Update applies a partial account update. An admin cannot change their own
// role away from admin.
func (uf *UserManagementFlowImpl) Update(ctx context.Context, id uuid.UUID, request *dto.UpdateUserRequest, actor AuthenticatedUser) error {
	if request.Username == nil && request.Password == nil && request.Role == nil {
		return ErrNoFieldsToUpdate
	}

	if actor.ID == id.String() && request.Role != nil && *request.Role != utils.RoleAdmin {
		return ErrSelfDemoteForbidden
	}

	err := repository.WithTransaction(ctx, uf.db, func(txCtx context.Context) error {
		user, err := uf.userRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		if request.Username != nil && *request.Username != user.Username {
			existing, err := uf.userRepo.ByUsername(txCtx, *request.Username)
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrUsernameAlreadyExists
			}
			user.Username = *request.Username
		}

		if request.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user.PasswordHash = string(hash)
		}

		if request.Role != nil {
			user.Role = models.UserRole(*request.Role)
		}

		return uf.userRepo.Update(txCtx, user)
	})
	if err != nil {
		if IsUserNotFound(err) || IsUsernameAlreadyExists(err) {
			return err
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameAlreadyExists
		}
		return NewBusinessError("USER_UPDATE_FAILED", "Failed to update user", err)
	}

	log.Printf("User account updated: %s by %s", id, actor.Username)

	return nil
}

// Delete removes an account. An admin cannot delete their own account.
func (uf *UserManagementFlowImpl) Delete(ctx context.Context, id uuid.UUID, actor AuthenticatedUser) error {
	if actor.ID == id.String() {
		return ErrSelfDeleteForbidden
	}

	err := repository.WithTransaction(ctx, uf.db, func(txCtx context.Context) error {
		user, err := uf.userRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		return uf.userRepo.Delete(txCtx, id)
	})
	if err != nil {
		if IsUserNotFound(err) {
			return err
		}
		return NewBusinessError("USER_DELETE_FAILED", "Failed to delete user", err)
	}

	log.Printf("User account deleted: %s by %s", id, actor.Username)

	return nil
}
