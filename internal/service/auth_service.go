package service

import (
	"context"
	"fmt"
	"time"

	"qr-dine-be/internal/dto"
	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/pkg/apperr"
	"qr-dine-be/internal/pkg/logger"
	"qr-dine-be/internal/pkg/otp"
	"qr-dine-be/internal/pkg/sms"
	"qr-dine-be/internal/repository/specification"
	"qr-dine-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IAuthService interface {
	RequestCode(ctx context.Context, req *dto.RequestCodeRequest) error
	VerifyCode(ctx context.Context, req *dto.VerifyCodeRequest) (*dto.AuthResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	otpStore   *otp.Store
	smsSender  sms.Sender
	logger     logger.ILogger
	jwtSecret  string
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, otpStore *otp.Store, smsSender sms.Sender, log logger.ILogger, jwtSecret string) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		otpStore:   otpStore,
		smsSender:  smsSender,
		logger:     log,
		jwtSecret:  jwtSecret,
	}
}

func (s *authService) RequestCode(ctx context.Context, req *dto.RequestCodeRequest) error {
	code, err := s.otpStore.Issue(ctx, req.PhoneNumber)
	if err != nil {
		return apperr.Internal(err)
	}

	message := fmt.Sprintf("Your login code is %s. It expires in 10 minutes.", code)
	if err := s.smsSender.Send(ctx, req.PhoneNumber, message); err != nil {
		return apperr.Internal(err)
	}

	s.logger.Info("AuthService", "Login code issued", map[string]interface{}{
		"phone_number": req.PhoneNumber,
	})
	return nil
}

// VerifyCode exchanges a valid code for a session token, creating the user
// row on first login.
func (s *authService) VerifyCode(ctx context.Context, req *dto.VerifyCodeRequest) (*dto.AuthResponse, error) {
	ok, err := s.otpStore.Verify(ctx, req.PhoneNumber, req.Code)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, apperr.Validation("invalid or expired code", nil)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByPhoneNumber{PhoneNumber: req.PhoneNumber})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		user = &entity.User{
			Id:          uuid.New(),
			PhoneNumber: req.PhoneNumber,
			Name:        req.Name,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, apperr.Internal(err)
		}
		s.logger.Info("AuthService", "User provisioned", map[string]interface{}{"user_id": user.Id})
	} else if req.Name != "" && user.Name == "" {
		user.Name = req.Name
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, apperr.Internal(err)
		}
	}

	token, err := s.signToken(jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    "customer",
		"exp":     time.Now().Add(30 * 24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		User: dto.UserDTO{
			Id:           user.Id,
			PhoneNumber:  user.PhoneNumber,
			Name:         user.Name,
			TokenBalance: user.TokenBalance,
		},
	}, nil
}

func (s *authService) signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
