package usecase

import (
	"context"
	"errors"
	"fmt"

	"kickstreet/internal/data/entity"
	"kickstreet/internal/data/repository"
	"kickstreet/internal/dto/request"
	"kickstreet/internal/dto/response"
	"kickstreet/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	// EnsureAdmin promotes the account with email to admin, creating a verified one when
	// it does not exist.
	EnsureAdmin(ctx context.Context, name, email, phone, password string) (*response.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	config *utils.Config
	deps   Deps
	log    *zap.Logger
}

func NewUserService(repo *repository.Repository, config *utils.Config, deps Deps, log *zap.Logger) UserService {
	return &userService{
		repo:   repo,
		config: config,
		deps:   deps,
		log:    log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errorf(ErrNotFound, "user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := us.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errorf(ErrNotFound, "user not found")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil && *req.Phone != user.Phone {
		other, err := us.repo.User.FindByPhone(ctx, *req.Phone)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, errorf(ErrConflict, "phone already registered")
		}
		user.Phone = *req.Phone
	}
	if req.ShippingAddress != nil {
		user.ShippingAddress = req.ShippingAddress.ToEntity(defaultCountry(us.config))
	}

	if err := us.repo.User.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errorf(ErrConflict, "phone already registered")
		}
		return nil, err
	}

	us.log.Info("Profile updated", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := us.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := us.repo.User.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, req.Page, req.Limit(), total), nil
}

func (us *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	user, err := us.repo.User.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errorf(ErrNotFound, "user not found")
	}
	if user.Role == entity.RoleAdmin {
		return errorf(ErrForbidden, "admin accounts cannot be deleted")
	}

	return us.repo.User.Delete(ctx, userID)
}

func (us *userService) EnsureAdmin(ctx context.Context, name, email, phone, password string) (*response.UserResponse, error) {
	email = utils.NormalizeEmail(email)

	user, err := us.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user != nil {
		if err := us.repo.User.SetRole(ctx, user.ID, entity.RoleAdmin); err != nil {
			return nil, err
		}
		user.Role = entity.RoleAdmin
		us.log.Info("User promoted to admin", zap.String("user_id", user.ID.String()))
		resp := response.UserToResponse(user)
		return &resp, nil
	}

	reg := &request.RegisterRequest{Name: name, Email: email, Phone: phone, Password: password}
	if err := validate(reg); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password, us.config.Security.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	now := us.deps.Clock()
	user = &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		IsVerified:   true,
	}
	if err := us.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errorf(ErrConflict, "phone already registered")
		}
		return nil, err
	}

	us.log.Info("Admin created", zap.String("user_id", user.ID.String()))
	resp := response.UserToResponse(user)
	return &resp, nil
}

func defaultCountry(config *utils.Config) string {
	if len(config.Payment.ShippingCountries) > 0 {
		return config.Payment.ShippingCountries[0]
	}
	return "IN"
}
