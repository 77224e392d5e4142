package auth

import (
	"context"
	"errors"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/constants"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/logger"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/store"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/utils"
)

type Service struct {
	store store.Store
}

func NewService(store store.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) SignupUser(ctx context.Context, request *domain.SignupUserRequest) (*domain.AuthResponse, error) {
	if _, err := svc.store.GetUserByEmail(ctx, request.Email); !errors.Is(err, constants.ErrDBNotFound) {
		if err == nil {
			return nil, constants.ErrEmailAlreadyTaken
		}
		return nil, err
	}

	if _, err := svc.store.GetDealerByID(ctx, request.DealerID); err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:     request.Email,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		DealerID:  request.DealerID,
		Status:    string(domain.UserStatusApproved),
	}
	if err := user.UserPassword.Init(request.Password); err != nil {
		return nil, err
	}

	if err := svc.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	authToken, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{UserID: user.ID, DealerID: user.DealerID})
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{User: user, AuthToken: authToken}, nil
}

func (svc *Service) LoginUser(ctx context.Context, request *domain.LoginUserRequest) (*domain.AuthResponse, error) {
	user, err := svc.store.GetUserByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrUnauthorized
		}
		return nil, err
	}

	if err := user.UserPassword.Validate(request.Password); err != nil {
		return nil, constants.ErrUnauthorized
	}

	logger.Debugf(ctx, "login: userID: [%v]", user.ID)

	authToken, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{UserID: user.ID, DealerID: user.DealerID})
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{User: user, AuthToken: authToken}, nil
}
