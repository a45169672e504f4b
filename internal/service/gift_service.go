// FILE: internal/service/gift_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"heartgift-be/internal/dto"
	"heartgift-be/internal/entity"
	"heartgift-be/internal/pkg/logger"
	"heartgift-be/internal/repository/specification"
	"heartgift-be/internal/repository/unitofwork"
	"heartgift-be/pkg/countdown"
	"heartgift-be/pkg/events"
	"heartgift-be/pkg/qrserver"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	specialDateLayout = "2006-01-02"

	giftCacheTTL = 10 * time.Minute
)

type IGiftService interface {
	// Stateless draft operations; the client holds the draft between calls.
	NewDraft(ctx context.Context, req *dto.CreateDraftRequest) (*dto.GiftDraft, error)
	ApplyUpdate(ctx context.Context, req *dto.ApplyUpdateRequest) (*dto.GiftDraft, error)
	Reset(ctx context.Context, req *dto.ResetDraftRequest) (*dto.GiftDraft, error)
	Validate(ctx context.Context, req *dto.ValidateDraftRequest) (*dto.ValidateDraftResponse, error)

	// Persistence flow.
	Finalize(ctx context.Context, req *dto.FinalizeGiftRequest) (*dto.FinalizeGiftResponse, error)
	Fetch(ctx context.Context, id uuid.UUID) (*dto.GiftResponse, error)
	Countdown(ctx context.Context, id uuid.UUID) (*dto.CountdownResponse, error)
	QRCode(ctx context.Context, id uuid.UUID, size qrserver.Size) (string, error)
}

type giftService struct {
	uowFactory  unitofwork.RepositoryFactory
	planService IPlanService
	qr          *qrserver.Client
	cache       *redis.Client // nil when redis is not configured
	pubSub      *gochannel.GoChannel
	topicName   string
	logger      logger.ILogger
}

func NewGiftService(
	uowFactory unitofwork.RepositoryFactory,
	planService IPlanService,
	qr *qrserver.Client,
	cache *redis.Client,
	pubSub *gochannel.GoChannel,
	topicName string,
	log logger.ILogger,
) IGiftService {
	return &giftService{
		uowFactory:  uowFactory,
		planService: planService,
		qr:          qr,
		cache:       cache,
		pubSub:      pubSub,
		topicName:   topicName,
		logger:      log,
	}
}

// themeDefaults returns the background color, accent color and particle
// effect a fresh draft starts with. Text color is white across all themes.
func themeDefaults(theme entity.Theme) (background, accent, particle string) {
	switch theme {
	case entity.ThemeBirthday:
		return "#4ecdc4", "#ffc107", "confetti"
	case entity.ThemeCorporate:
		return "#6366f1", "#8b5cf6", "sparkles"
	default:
		return "#ff6b9d", "#ff8fab", "hearts"
	}
}

func defaultCustomization(theme entity.Theme) entity.Customization {
	background, accent, particle := themeDefaults(theme)
	return entity.Customization{
		TextColor:   "#ffffff",
		AccentColor: accent,
		Background: entity.Background{
			Type:  entity.BackgroundSolid,
			Color: background,
		},
		Typography: entity.Typography{
			FontFamily: "Inter",
			FontSize:   16,
			LineHeight: 1.5,
			Alignment:  "center",
			Transform:  "none",
		},
		Layout: entity.Layout{
			Type:         "classic",
			Spacing:      16,
			Padding:      24,
			BorderRadius: 12,
		},
		Animation: entity.Animation{
			Type:      "fade",
			Direction: "up",
			Duration:  1,
			Speed:     1,
		},
		Filters: entity.Filters{
			Brightness: 100,
			Contrast:   100,
			Saturation: 100,
		},
		ParticleEffect:  particle,
		PhotoFrame:      "classic",
		ShadowIntensity: 30,
	}
}

func (s *giftService) NewDraft(_ context.Context, req *dto.CreateDraftRequest) (*dto.GiftDraft, error) {
	theme := entity.Theme(req.Theme)
	if !theme.Valid() {
		return nil, entity.ErrUnsupportedThemeKind
	}

	tier := entity.ParseTier(req.Plan)

	return &dto.GiftDraft{
		Theme:         string(theme),
		Customization: defaultCustomization(theme),
		Photos:        []string{},
		PlanTier:      string(tier),
	}, nil
}

// ApplyUpdate merges a partial patch into a draft. Fields belonging to a
// gated editor group are dropped without error when the draft's plan does
// not include the group; the caller sees the unchanged value echoed back.
func (s *giftService) ApplyUpdate(_ context.Context, req *dto.ApplyUpdateRequest) (*dto.GiftDraft, error) {
	draft := req.Draft
	patch := req.Patch

	ent, err := s.planService.EntitlementsFor(entity.ParseTier(draft.PlanTier))
	if err != nil {
		return nil, err
	}

	applyContent(&draft, &patch)
	applyColors(&draft, &patch, ent)
	applyText(&draft, &patch)
	applyAdvanced(&draft, &patch, ent)
	applyEffects(&draft, &patch, ent)
	applyAnimation(&draft, &patch, ent)
	applyFrames(&draft, &patch, ent)
	applyPhotos(&draft, &patch, ent)
	applyTrack(&draft, &patch, ent)

	draft.PlanTier = string(entity.ParseTier(draft.PlanTier))
	return &draft, nil
}

func applyContent(d *dto.GiftDraft, p *dto.DraftPatch) {
	if p.RecipientName != nil {
		d.RecipientName = *p.RecipientName
	}
	if p.SenderName != nil {
		d.SenderName = *p.SenderName
	}
	if p.Message != nil {
		d.Message = *p.Message
	}
	if p.SpecialDate != nil {
		d.SpecialDate = *p.SpecialDate
	}
}

func applyColors(d *dto.GiftDraft, p *dto.DraftPatch, ent entity.Entitlement) {
	if !ent.CustomColors {
		return
	}
	if p.BackgroundColor != nil {
		d.Customization.Background.Color = *p.BackgroundColor
	}
	if p.TextColor != nil {
		d.Customization.TextColor = *p.TextColor
	}
	if p.AccentColor != nil {
		d.Customization.AccentColor = *p.AccentColor
	}
}

// Basic text controls are available on every plan.
func applyText(d *dto.GiftDraft, p *dto.DraftPatch) {
	if p.FontFamily != nil {
		d.Customization.Typography.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		d.Customization.Typography.FontSize = clampInt(*p.FontSize, 10, 48)
	}
	if p.BorderRadius != nil {
		d.Customization.Layout.BorderRadius = clampInt(*p.BorderRadius, 0, 50)
	}
}

func applyAdvanced(d *dto.GiftDraft, p *dto.DraftPatch, ent entity.Entitlement) {
	if !ent.AdvancedCustomization {
		return
	}
	if p.LineHeight != nil {
		d.Customization.Typography.LineHeight = clampFloat(*p.LineHeight, 0.8, 3)
	}
	if p.LetterSpacing != nil {
		d.Customization.Typography.LetterSpacing = clampFloat(*p.LetterSpacing, -2, 10)
	}
	if p.Alignment != nil {
		d.Customization.Typography.Alignment = *p.Alignment
	}
	if p.Transform != nil {
		d.Customization.Typography.Transform = *p.Transform
	}
	if p.TextShadow != nil {
		d.Customization.Typography.Shadow = *p.TextShadow
	}
	if p.LayoutType != nil {
		d.Customization.Layout.Type = *p.LayoutType
	}
	if p.Spacing != nil {
		d.Customization.Layout.Spacing = clampInt(*p.Spacing, 0, 100)
	}
	if p.Padding != nil {
		d.Customization.Layout.Padding = clampInt(*p.Padding, 0, 100)
	}
	if p.Margin != nil {
		d.Customization.Layout.Margin = clampInt(*p.Margin, 0, 100)
	}
	if p.Background != nil {
		d.Customization.Background = *p.Background
	}
	if p.Filters != nil {
		d.Customization.Filters = clampFilters(*p.Filters)
	}
	if p.Decorations != nil {
		d.Customization.Decorations = p.Decorations
	}
}

func applyEffects(d *dto.GiftDraft, p *dto.DraftPatch, ent entity.Entitlement) {
	if !ent.VisualEffects {
		return
	}
	if p.ParticleEffect != nil {
		d.Customization.ParticleEffect = *p.ParticleEffect
	}
	if p.ShadowIntensity != nil {
		d.Customization.ShadowIntensity = clampInt(*p.ShadowIntensity, 0, 100)
	}
	if p.AnimationSpeed != nil {
		d.Customization.Animation.Speed = clampFloat(*p.AnimationSpeed, 0.25, 4)
	}
}

func applyAnimation(d *dto.GiftDraft, p *dto.DraftPatch, ent entity.Entitlement) {
	if !ent.Animations {
		return
	}
	if p.AnimationType != nil {
		d.Customization.Animation.Type = *p.AnimationType
	}
	if p.AnimationDirection != nil {
		d.Customization.Animation.Direction = *p.AnimationDirection
	}
	if p.AnimationDuration != nil {
		d.Customization.Animation.Duration = clampFloat(*p.AnimationDuration, 0.1, 10)
	}
	if p.AnimationDelay != nil {
		d.Customization.Animation.Delay = clampFloat(*p.AnimationDelay, 0, 10)
	}
	if p.HoverEnabled != nil {
		d.Customization.Animation.HoverEnabled = *p.HoverEnabled
	}
}

func applyFrames(d *dto.GiftDraft, p *dto.DraftPatch, ent entity.Entitlement) {
	if !ent.PhotoFrames {
		return
	}
	if p.PhotoFrame != nil {
		d.Customization.PhotoFrame = *p.PhotoFrame
	}
}

// applyPhotos appends new photos up to the plan cap, dropping anything over
// it, and removes by index when the index is in range.
func applyPhotos(d *dto.GiftDraft, p *dto.DraftPatch, ent entity.Entitlement) {
	if p.RemovePhotoIndex != nil {
		i := *p.RemovePhotoIndex
		if i >= 0 && i < len(d.Photos) {
			d.Photos = append(d.Photos[:i], d.Photos[i+1:]...)
		}
	}
	for _, photo := range p.AddPhotos {
		if !ent.AllowsPhotoCount(len(d.Photos) + 1) {
			break
		}
		d.Photos = append(d.Photos, photo)
	}
}

func applyTrack(d *dto.GiftDraft, p *dto.DraftPatch, ent entity.Entitlement) {
	if p.ClearTrack {
		d.SpotifyTrack = nil
	}
	if p.SpotifyTrack == nil {
		return
	}
	switch p.SpotifyTrack.Provider {
	case "upload":
		if ent.MusicUpload {
			d.SpotifyTrack = p.SpotifyTrack
		}
	default:
		if ent.SpotifyIntegration {
			d.SpotifyTrack = p.SpotifyTrack
		}
	}
}

// Reset reverts the presentation to theme defaults. Content, photos and the
// selected track survive. Applying it twice yields the same draft.
func (s *giftService) Reset(_ context.Context, req *dto.ResetDraftRequest) (*dto.GiftDraft, error) {
	draft := req.Draft

	theme := entity.Theme(draft.Theme)
	if !theme.Valid() {
		return nil, entity.ErrUnsupportedThemeKind
	}

	draft.Customization = defaultCustomization(theme)
	draft.PlanTier = string(entity.ParseTier(draft.PlanTier))
	return &draft, nil
}

// Validate collects every violation in the draft so the UI can surface the
// full list at once.
func (s *giftService) Validate(_ context.Context, req *dto.ValidateDraftRequest) (*dto.ValidateDraftResponse, error) {
	violations, err := s.collectViolations(&req.Draft)
	if err != nil {
		return nil, err
	}
	return &dto.ValidateDraftResponse{
		Valid:      len(violations) == 0,
		Violations: violations,
	}, nil
}

func (s *giftService) collectViolations(draft *dto.GiftDraft) ([]entity.Violation, error) {
	ent, err := s.planService.EntitlementsFor(entity.ParseTier(draft.PlanTier))
	if err != nil {
		return nil, err
	}

	violations := []entity.Violation{}

	if draft.RecipientName == "" {
		violations = append(violations, entity.MissingField("recipientName"))
	}
	if draft.SenderName == "" {
		violations = append(violations, entity.MissingField("senderName"))
	}
	if draft.Message == "" {
		violations = append(violations, entity.MissingField("message"))
	}
	if draft.SpecialDate == "" {
		violations = append(violations, entity.MissingField("specialDate"))
	} else if _, err := time.Parse(specialDateLayout, draft.SpecialDate); err != nil {
		violations = append(violations, entity.InvalidDate("specialDate", draft.SpecialDate))
	}

	if !ent.AllowsPhotoCount(len(draft.Photos)) {
		violations = append(violations, entity.PhotoLimitExceeded(ent.MaxPhotos, len(draft.Photos)))
	}

	// A draft can carry gated values its current plan never unlocked, e.g.
	// after the client swapped the plan token. Flag each such group.
	defaults := defaultCustomization(entity.Theme(draft.Theme))
	cust := draft.Customization

	if !ent.CustomColors &&
		(cust.Background.Color != defaults.Background.Color ||
			cust.TextColor != defaults.TextColor ||
			cust.AccentColor != defaults.AccentColor) {
		violations = append(violations, entity.FeatureNotEntitled("colors", entity.FeatureCustomColors))
	}
	if !ent.VisualEffects &&
		(cust.ParticleEffect != defaults.ParticleEffect ||
			cust.ShadowIntensity != defaults.ShadowIntensity ||
			cust.Animation.Speed != defaults.Animation.Speed) {
		violations = append(violations, entity.FeatureNotEntitled("effects", entity.FeatureVisualEffects))
	}
	if !ent.PhotoFrames && cust.PhotoFrame != defaults.PhotoFrame {
		violations = append(violations, entity.FeatureNotEntitled("photoFrame", entity.FeaturePhotoFrames))
	}
	if !ent.Animations && animationChanged(cust.Animation, defaults.Animation) {
		violations = append(violations, entity.FeatureNotEntitled("animation", entity.FeatureAnimations))
	}
	if !ent.AdvancedCustomization && advancedChanged(cust, defaults) {
		violations = append(violations, entity.FeatureNotEntitled("advanced", entity.FeatureAdvancedCustomization))
	}

	if draft.SpotifyTrack != nil {
		switch draft.SpotifyTrack.Provider {
		case "upload":
			if !ent.MusicUpload {
				violations = append(violations, entity.FeatureNotEntitled("spotifyTrack", entity.FeatureMusicUpload))
			}
		default:
			if !ent.SpotifyIntegration {
				violations = append(violations, entity.FeatureNotEntitled("spotifyTrack", entity.FeatureSpotifyIntegration))
			}
		}
	}

	return violations, nil
}

func animationChanged(a, def entity.Animation) bool {
	// Speed belongs to the effects group; compare everything else.
	a.Speed = def.Speed
	return a != def
}

func advancedChanged(cust, def entity.Customization) bool {
	if cust.Filters != def.Filters {
		return true
	}
	if len(cust.Decorations) > 0 {
		return true
	}
	t, dt := cust.Typography, def.Typography
	// FontFamily and FontSize are basic controls.
	t.FontFamily, t.FontSize = dt.FontFamily, dt.FontSize
	if t != dt {
		return true
	}
	l, dl := cust.Layout, def.Layout
	l.BorderRadius = dl.BorderRadius
	if l != dl {
		return true
	}
	b, db := cust.Background, def.Background
	// Color alone is the colors group; a type change is advanced.
	b.Color = db.Color
	return b != db
}

// Finalize persists a valid draft as a pending gift and returns the share
// link plus QR image URLs. Invalid drafts fail with the full violation list.
func (s *giftService) Finalize(ctx context.Context, req *dto.FinalizeGiftRequest) (*dto.FinalizeGiftResponse, error) {
	violations, err := s.collectViolations(&req.Draft)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, &entity.ValidationErrors{Violations: violations}
	}

	gift, err := s.draftToEntity(&req.Draft)
	if err != nil {
		return nil, err
	}

	gift.Id = uuid.New()
	gift.PaymentStatus = entity.PaymentStatusPending
	qrURL, _ := s.qr.ImageURL(gift.Id.String(), qrserver.SizeMedium)
	gift.QRCodeURL = qrURL

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.GiftRepository().Create(ctx, gift); err != nil {
		return nil, err
	}

	s.publishEvent(events.TypeGiftFinalized, map[string]interface{}{
		"giftId":   gift.Id.String(),
		"planTier": string(gift.PlanTier),
		"theme":    string(gift.Theme),
	})

	s.logger.Info("gift_service", "gift finalized", map[string]interface{}{
		"giftId": gift.Id.String(),
		"tier":   string(gift.PlanTier),
	})

	return &dto.FinalizeGiftResponse{
		Id:       gift.Id,
		ShareURL: s.qr.ShareURL(gift.Id.String()),
		QRCodes:  s.qr.AllImageURLs(gift.Id.String()),
	}, nil
}

func (s *giftService) Fetch(ctx context.Context, id uuid.UUID) (*dto.GiftResponse, error) {
	if cached := s.cacheGet(ctx, id); cached != nil {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	gift, err := uow.GiftRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if gift == nil {
		return nil, entity.ErrGiftNotFound
	}

	res := s.entityToResponse(gift)
	s.cacheSet(ctx, res)
	return res, nil
}

func (s *giftService) Countdown(ctx context.Context, id uuid.UUID) (*dto.CountdownResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	gift, err := uow.GiftRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if gift == nil {
		return nil, entity.ErrGiftNotFound
	}

	snap := countdown.Remaining(gift.SpecialDate, time.Now())
	return &dto.CountdownResponse{
		Days:    snap.Days,
		Hours:   snap.Hours,
		Minutes: snap.Minutes,
		Seconds: snap.Seconds,
		IsPast:  snap.IsPast,
	}, nil
}

func (s *giftService) QRCode(ctx context.Context, id uuid.UUID, size qrserver.Size) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	gift, err := uow.GiftRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return "", err
	}
	if gift == nil {
		return "", entity.ErrGiftNotFound
	}
	return s.qr.ImageURL(id.String(), size)
}

// cacheGet/cacheSet degrade silently: redis being down must never break the
// viewing flow.
func (s *giftService) cacheGet(ctx context.Context, id uuid.UUID) *dto.GiftResponse {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, giftCacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var res dto.GiftResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil
	}
	return &res
}

func (s *giftService) cacheSet(ctx context.Context, res *dto.GiftResponse) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, giftCacheKey(res.Id), raw, giftCacheTTL).Err(); err != nil {
		s.logger.Warn("gift_service", "gift cache write failed", map[string]interface{}{
			"giftId": res.Id.String(),
			"error":  err.Error(),
		})
	}
}

func giftCacheKey(id uuid.UUID) string {
	return "gift:" + id.String()
}

func (s *giftService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.pubSub == nil {
		return
	}
	body, err := json.Marshal(events.BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.logger.Warn("gift_service", "event publish failed", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func (s *giftService) draftToEntity(draft *dto.GiftDraft) (*entity.GiftConfiguration, error) {
	specialDate, err := time.Parse(specialDateLayout, draft.SpecialDate)
	if err != nil {
		return nil, entity.InvalidDate("specialDate", draft.SpecialDate)
	}

	now := time.Now()
	return &entity.GiftConfiguration{
		Theme:         entity.Theme(draft.Theme),
		RecipientName: draft.RecipientName,
		SenderName:    draft.SenderName,
		Message:       draft.Message,
		SpecialDate:   specialDate,
		Customization: draft.Customization,
		Photos:        draft.Photos,
		Track:         draft.SpotifyTrack,
		PlanTier:      entity.ParseTier(draft.PlanTier),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (s *giftService) entityToResponse(g *entity.GiftConfiguration) *dto.GiftResponse {
	return &dto.GiftResponse{
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
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFilters(f entity.Filters) entity.Filters {
	f.Brightness = clampInt(f.Brightness, 0, 200)
	f.Contrast = clampInt(f.Contrast, 0, 200)
	f.Saturation = clampInt(f.Saturation, 0, 200)
	f.Hue = clampInt(f.Hue, 0, 360)
	f.Sepia = clampInt(f.Sepia, 0, 100)
	f.Blur = clampInt(f.Blur, 0, 20)
	return f
}
