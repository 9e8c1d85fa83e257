package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// StylistDressStore is the dress surface the stylist needs.
type StylistDressStore interface {
	FindByID(ctx context.Context, id string) (*models.Dress, error)
	Update(ctx context.Context, id string, fields bson.M) (*models.Dress, error)
}

// StylistFeatureStore resolves credit-billed feature definitions.
type StylistFeatureStore interface {
	GetByCode(ctx context.Context, code string) (*models.Feature, error)
}

// StylistUserStore reads and debits user balances.
type StylistUserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	AddCredits(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

// StylistCreditStore records consumption ledger entries.
type StylistCreditStore interface {
	Create(ctx context.Context, tx *models.CreditTransaction) error
}

// TagGenerator produces style tags for a dress. Implemented by
// GeminiTagGenerator; faked in tests.
type TagGenerator interface {
	GenerateStyleTags(ctx context.Context, dress *models.Dress) ([]string, error)
}

// FeatureStylistAnalysis is the feature code charged per analysis.
const FeatureStylistAnalysis = "stylist_analysis"

// StylistService runs Gemini-backed style analysis on a dress, charging
// the feature's credit cost against the owner's balance.
type StylistService struct {
	dressStore   StylistDressStore
	featureStore StylistFeatureStore
	userStore    StylistUserStore
	creditStore  StylistCreditStore
	generator    TagGenerator
	logger       *ActivityLogger
}

// StylistServiceOption is a functional option for StylistService
type StylistServiceOption func(*StylistService)

// StylistWithDressStore sets the dress store
func StylistWithDressStore(store StylistDressStore) StylistServiceOption {
	return func(s *StylistService) {
		s.dressStore = store
	}
}

// StylistWithFeatureStore sets the feature store
func StylistWithFeatureStore(store StylistFeatureStore) StylistServiceOption {
	return func(s *StylistService) {
		s.featureStore = store
	}
}

// StylistWithUserStore sets the user store
func StylistWithUserStore(store StylistUserStore) StylistServiceOption {
	return func(s *StylistService) {
		s.userStore = store
	}
}

// StylistWithCreditStore sets the credit ledger store
func StylistWithCreditStore(store StylistCreditStore) StylistServiceOption {
	return func(s *StylistService) {
		s.creditStore = store
	}
}

// StylistWithGenerator sets the tag generator
func StylistWithGenerator(gen TagGenerator) StylistServiceOption {
	return func(s *StylistService) {
		s.generator = gen
	}
}

// StylistWithActivityLogger sets the activity logger
func StylistWithActivityLogger(logger *ActivityLogger) StylistServiceOption {
	return func(s *StylistService) {
		s.logger = logger
	}
}

// NewStylistService creates a new stylist service
func NewStylistService(opts ...StylistServiceOption) *StylistService {
	s := &StylistService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeDressRequest represents a request for stylist analysis
type AnalyzeDressRequest struct {
	UserID  uuid.UUID
	DressID string
}

// AnalyzeDressResult carries the tagged dress and the debited balance
type AnalyzeDressResult struct {
	Dress      *models.Dress
	Tags       []string
	NewBalance int
}

// AnalyzeDress generates style tags for one of the user's dresses.
// The feature's credit cost is checked up front and debited once the
// tags are stored, with a consumption entry in the credit ledger.
func (s *StylistService) AnalyzeDress(ctx context.Context, req AnalyzeDressRequest) (*AnalyzeDressResult, error) {
	if s.dressStore == nil || s.featureStore == nil || s.userStore == nil || s.creditStore == nil || s.generator == nil {
		return nil, errors.New("stylist service stores not set")
	}

	feature, err := s.featureStore.GetByCode(ctx, FeatureStylistAnalysis)
	if err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user.CreditBalance < feature.CreditCost {
		return nil, apperr.Conflict("INSUFFICIENT_CREDITS", "not enough credits for stylist analysis").
			WithMeta("required", feature.CreditCost).
			WithMeta("balance", user.CreditBalance)
	}

	dress, err := s.dressStore.FindByID(ctx, req.DressID)
	if err != nil {
		return nil, err
	}
	if dress.UserID != req.UserID.String() {
		return nil, apperr.NotFound("DRESS_NOT_FOUND", "dress not found")
	}

	tags, err := s.generator.GenerateStyleTags(ctx, dress)
	if err != nil {
		s.logger.Log(ctx, &models.ActivityLog{
			UserID:           req.UserID,
			ActionType:       "STYLIST_ANALYSIS",
			SourceFeature:    "stylist",
			TargetEntityType: "dress",
			TargetEntityID:   req.DressID,
			Status:           models.ActivityFailure,
			Metadata:         models.ActivityMeta{"error": err.Error()},
		})
		return nil, apperr.Storage("stylist generation failed", err)
	}

	updated, err := s.dressStore.Update(ctx, req.DressID, bson.M{"ai_features.generated_tags": tags})
	if err != nil {
		return nil, err
	}

	code := feature.FeatureCode
	description := "stylist analysis of dress " + req.DressID
	entry := &models.CreditTransaction{
		UserID:             req.UserID,
		TransactionType:    models.CreditConsumption,
		Amount:             feature.CreditCost,
		RelatedFeatureCode: &code,
		Description:        &description,
	}
	if err := s.creditStore.Create(ctx, entry); err != nil {
		return nil, err
	}

	balance, err := s.userStore.AddCredits(ctx, req.UserID, -feature.CreditCost)
	if err != nil {
		return nil, err
	}

	s.logger.Log(ctx, &models.ActivityLog{
		UserID:           req.UserID,
		ActionType:       "STYLIST_ANALYSIS",
		SourceFeature:    "stylist",
		TargetEntityType: "dress",
		TargetEntityID:   req.DressID,
		Status:           models.ActivitySuccess,
		Metadata:         models.ActivityMeta{"tags": len(tags), "credits_charged": feature.CreditCost},
	})

	return &AnalyzeDressResult{Dress: updated, Tags: tags, NewBalance: balance}, nil
}

// GeminiTagGenerator generates style tags with a Gemini model.
type GeminiTagGenerator struct {
	client    *genai.Client
	modelName string
}

// NewGeminiTagGenerator creates a generator over a Gemini client.
func NewGeminiTagGenerator(client *genai.Client, modelName string) *GeminiTagGenerator {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiTagGenerator{client: client, modelName: modelName}
}

// GenerateStyleTags asks the model for a comma-separated tag list and
// parses it.
func (g *GeminiTagGenerator) GenerateStyleTags(ctx context.Context, dress *models.Dress) ([]string, error) {
	if g.client == nil {
		return nil, errors.New("gemini client not set")
	}

	prompt := fmt.Sprintf(
		`You are a fashion stylist. Given this garment, reply with 5-10 short style tags as a single comma-separated line, nothing else.

Name: %s
Description: %s
Materials: %s
Pattern: %s
Seasons: %s
Occasions: %s`,
		dress.Name,
		dress.Description,
		strings.Join(dress.Material, ", "),
		deref(dress.Pattern),
		strings.Join(dress.SeasonSuitability, ", "),
		strings.Join(dress.OccasionSuitability, ", "),
	)

	model := g.client.GenerativeModel(g.modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate tags: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("model returned no candidates")
	}

	var raw strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw.WriteString(string(text))
		}
	}

	var tags []string
	for _, piece := range strings.Split(raw.String(), ",") {
		tag := strings.ToLower(strings.TrimSpace(piece))
		tag = strings.Trim(tag, ".")
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil, errors.New("model returned no tags")
	}
	return tags, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
