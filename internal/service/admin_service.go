// FILE: internal/service/admin_service.go
package service

import (
	"context"
	"time"

	"heartgift-be/internal/dto"
	"heartgift-be/internal/entity"
	"heartgift-be/internal/repository/specification"
	"heartgift-be/internal/repository/unitofwork"
	"heartgift-be/pkg/qrserver"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAdminService interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
	ListGifts(ctx context.Context, status, sender string, page, perPage int) (*dto.AdminGiftListResponse, error)
}

type adminService struct {
	uowFactory   unitofwork.RepositoryFactory
	qr           *qrserver.Client
	email        string
	passwordHash string
	jwtSecret    string
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, qr *qrserver.Client, email, passwordHash, jwtSecret string) IAdminService {
	return &adminService{
		uowFactory:   uowFactory,
		qr:           qr,
		email:        email,
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
	}
}

func (s *adminService) Login(_ context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if req.Email != s.email {
		return nil, entity.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": s.email,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.AdminLoginResponse{AccessToken: signed}, nil
}

func (s *adminService) ListGifts(ctx context.Context, status, sender string, page, perPage int) (*dto.AdminGiftListResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	specs := []specification.Specification{}
	if status != "" {
		specs = append(specs, specification.ByPaymentStatus{Status: entity.PaymentStatus(status)})
	}
	if sender != "" {
		specs = append(specs, specification.BySenderName{SenderName: sender})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.GiftRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: perPage, Offset: (page - 1) * perPage},
	)
	gifts, err := uow.GiftRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	out := make([]dto.GiftResponse, 0, len(gifts))
	for _, g := range gifts {
		out = append(out, dto.GiftResponse{
			Id:              g.Id,
			Theme:           string(g.Theme),
			RecipientName:   g.RecipientName,
			SenderName:      g.SenderName,
			Message:         g.Message,
			SpecialDate:     g.SpecialDate.Format(specialDateLayout),
			BackgroundColor: g.Customization.Background.Color,
			TextColor:       g.Customization.TextColor,
			Customization:   g.Customization,
			SpotifyTrack:    g.Track,
			Photos:          g.Photos,
			QRCode:          g.QRCodeURL,
			PaymentId:       g.PaymentId,
			PaymentStatus:   string(g.PaymentStatus),
			PlanTier:        string(g.PlanTier),
			ShareURL:        s.qr.ShareURL(g.Id.String()),
			CreatedAt:       g.CreatedAt,
			UpdatedAt:       g.UpdatedAt,
		})
	}

	return &dto.AdminGiftListResponse{Total: total, Gifts: out}, nil
}
