package service

import (
	"context"
	"time"

	"qr-dine-be/internal/dto"
	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/pkg/apperr"
	"qr-dine-be/internal/pkg/logger"
	"qr-dine-be/internal/repository/specification"
	"qr-dine-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IMerchantService interface {
	Login(ctx context.Context, req *dto.MerchantLoginRequest) (*dto.MerchantLoginResponse, error)
	GetSettings(ctx context.Context, merchantId uuid.UUID) (*dto.MerchantSettingsResponse, error)
	UpdateSettings(ctx context.Context, merchantId uuid.UUID, req *dto.UpdateMerchantSettingsRequest) (*dto.MerchantSettingsResponse, error)

	ListRewardRules(ctx context.Context, merchantId uuid.UUID) ([]*dto.RewardRuleResponse, error)
	CreateRewardRule(ctx context.Context, merchantId uuid.UUID, req *dto.RewardRuleRequest) (*dto.RewardRuleResponse, error)
	UpdateRewardRule(ctx context.Context, merchantId, ruleId uuid.UUID, req *dto.RewardRuleRequest) (*dto.RewardRuleResponse, error)
	DeleteRewardRule(ctx context.Context, merchantId, ruleId uuid.UUID) error
}

type merchantService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	jwtSecret  string
}

func NewMerchantService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger, jwtSecret string) IMerchantService {
	return &merchantService{
		uowFactory: uowFactory,
		logger:     log,
		jwtSecret:  jwtSecret,
	}
}

func (s *merchantService) Login(ctx context.Context, req *dto.MerchantLoginRequest) (*dto.MerchantLoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	merchant, err := uow.MerchantRepository().FindOne(ctx,
		specification.ByEmail{Email: req.Email},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if merchant == nil {
		return nil, apperr.Validation("invalid credentials", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(merchant.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Validation("invalid credentials", nil)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"merchant_id": merchant.Id.String(),
		"role":        "merchant",
		"exp":         time.Now().Add(12 * time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	s.logger.Info("MerchantService", "Merchant login", map[string]interface{}{"merchant_id": merchant.Id})

	return &dto.MerchantLoginResponse{
		AccessToken: signed,
		Merchant: dto.MerchantDTO{
			Id:    merchant.Id,
			Name:  merchant.Name,
			Email: merchant.Email,
		},
	}, nil
}

func (s *merchantService) GetSettings(ctx context.Context, merchantId uuid.UUID) (*dto.MerchantSettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	merchant, err := uow.MerchantRepository().FindOne(ctx, specification.ByID{ID: merchantId})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if merchant == nil {
		return nil, apperr.NotFound("merchant")
	}

	return merchantToSettings(merchant), nil
}

func (s *merchantService) UpdateSettings(ctx context.Context, merchantId uuid.UUID, req *dto.UpdateMerchantSettingsRequest) (*dto.MerchantSettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	merchant, err := uow.MerchantRepository().FindOne(ctx, specification.ByID{ID: merchantId})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if merchant == nil {
		return nil, apperr.NotFound("merchant")
	}

	if req.Name != nil {
		merchant.Name = *req.Name
	}
	if req.TokenRatio != nil {
		merchant.TokenRatio = *req.TokenRatio
	}
	if req.NewUserReward != nil {
		merchant.NewUserReward = *req.NewUserReward
	}
	if req.QrCodeUrl != nil {
		merchant.QrCodeUrl = *req.QrCodeUrl
	}

	if err := uow.MerchantRepository().Update(ctx, merchant); err != nil {
		return nil, apperr.Internal(err)
	}

	return merchantToSettings(merchant), nil
}

func merchantToSettings(m *entity.Merchant) *dto.MerchantSettingsResponse {
	return &dto.MerchantSettingsResponse{
		Id:            m.Id,
		Name:          m.Name,
		Email:         m.Email,
		TokenRatio:    m.TokenRatio,
		NewUserReward: m.NewUserReward,
		QrCodeUrl:     m.QrCodeUrl,
		IsActive:      m.IsActive,
	}
}

func (s *merchantService) ListRewardRules(ctx context.Context, merchantId uuid.UUID) ([]*dto.RewardRuleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rules, err := uow.RewardRuleRepository().FindAll(ctx,
		specification.MerchantOwnedBy{MerchantID: merchantId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	res := make([]*dto.RewardRuleResponse, 0, len(rules))
	for _, rule := range rules {
		res = append(res, ruleToResponse(rule))
	}
	return res, nil
}

func (s *merchantService) CreateRewardRule(ctx context.Context, merchantId uuid.UUID, req *dto.RewardRuleRequest) (*dto.RewardRuleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tokenType, err := uow.TokenTypeRepository().FindOne(ctx, specification.ByID{ID: req.TokenTypeId})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if tokenType == nil || !tokenType.IsActive {
		return nil, apperr.NotFound("token type")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	rule := &entity.RewardRule{
		Id:           uuid.New(),
		MerchantId:   merchantId,
		TokenTypeId:  req.TokenTypeId,
		Name:         req.Name,
		Description:  req.Description,
		TriggerType:  entity.TriggerType(req.TriggerType),
		TriggerValue: req.TriggerValue,
		RewardAmount: req.RewardAmount,
		RewardType:   entity.RewardType(req.RewardType),
		IsActive:     isActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
		TokenType:    tokenType,
	}

	if err := uow.RewardRuleRepository().Create(ctx, rule); err != nil {
		return nil, apperr.Internal(err)
	}

	s.logger.Info("MerchantService", "Reward rule created", map[string]interface{}{
		"merchant_id": merchantId,
		"rule_id":     rule.Id,
	})
	return ruleToResponse(rule), nil
}

func (s *merchantService) UpdateRewardRule(ctx context.Context, merchantId, ruleId uuid.UUID, req *dto.RewardRuleRequest) (*dto.RewardRuleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rule, err := uow.RewardRuleRepository().FindOne(ctx,
		specification.ByID{ID: ruleId},
		specification.MerchantOwnedBy{MerchantID: merchantId},
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if rule == nil {
		return nil, apperr.NotFound("reward rule")
	}

	rule.TokenTypeId = req.TokenTypeId
	rule.Name = req.Name
	rule.Description = req.Description
	rule.TriggerType = entity.TriggerType(req.TriggerType)
	rule.TriggerValue = req.TriggerValue
	rule.RewardAmount = req.RewardAmount
	rule.RewardType = entity.RewardType(req.RewardType)
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := uow.RewardRuleRepository().Update(ctx, rule); err != nil {
		return nil, apperr.Internal(err)
	}

	return ruleToResponse(rule), nil
}

func (s *merchantService) DeleteRewardRule(ctx context.Context, merchantId, ruleId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rule, err := uow.RewardRuleRepository().FindOne(ctx,
		specification.ByID{ID: ruleId},
		specification.MerchantOwnedBy{MerchantID: merchantId},
	)
	if err != nil {
		return apperr.Internal(err)
	}
	if rule == nil {
		return apperr.NotFound("reward rule")
	}

	return uow.RewardRuleRepository().Delete(ctx, ruleId)
}

func ruleToResponse(rule *entity.RewardRule) *dto.RewardRuleResponse {
	res := &dto.RewardRuleResponse{
		Id:           rule.Id,
		TokenTypeId:  rule.TokenTypeId,
		Name:         rule.Name,
		Description:  rule.Description,
		TriggerType:  string(rule.TriggerType),
		TriggerValue: rule.TriggerValue,
		RewardAmount: rule.RewardAmount,
		RewardType:   string(rule.RewardType),
		IsActive:     rule.IsActive,
	}
	if rule.TokenType != nil {
		res.TokenSymbol = rule.TokenType.Symbol
	}
	return res
}
