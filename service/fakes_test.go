package service

import (
	"context"
	"sync"

	"hoku-backend/apperr"
	"hoku-backend/models"
	"hoku-backend/payments"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes shared by the service tests. Each one implements the
// narrow store interface the service under test consumes.

type fakeActivityStore struct {
	mu      sync.Mutex
	entries []*models.ActivityLog
	err     error
}

func (f *fakeActivityStore) Create(ctx context.Context, entry *models.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeActivityStore) byAction(action string) []*models.ActivityLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.ActivityLog
	for _, e := range f.entries {
		if e.ActionType == action {
			out = append(out, e)
		}
	}
	return out
}

type fakeUserAccounts struct {
	users     map[uuid.UUID]*models.User
	createErr error
}

func newFakeUserAccounts() *fakeUserAccounts {
	return &fakeUserAccounts{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserAccounts) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.EmailID == user.EmailID && u.IsActive {
			return apperr.Conflict("DUPLICATE_EMAIL", "a user with this email already exists")
		}
	}
	user.ID = uuid.New()
	user.IsActive = true
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserAccounts) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok || !u.IsActive {
		return nil, apperr.NotFound("USER_NOT_FOUND", "user not found")
	}
	return u, nil
}

func (f *fakeUserAccounts) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.EmailID == email && u.IsActive {
			return u, nil
		}
	}
	return nil, apperr.NotFound("USER_NOT_FOUND", "user not found")
}

func (f *fakeUserAccounts) FindByEmailForAuth(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.EmailID == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("USER_NOT_FOUND", "user not found")
}

func (f *fakeUserAccounts) List(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserAccounts) UpdateProfile(ctx context.Context, id uuid.UUID, update models.ProfileUpdate) (*models.User, error) {
	u, ok := f.users[id]
	if !ok || !u.IsActive {
		return nil, apperr.NotFound("USER_NOT_FOUND", "user not found")
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.ColourTone != nil {
		u.ColourTone = update.ColourTone
	}
	return u, nil
}

func (f *fakeUserAccounts) AddCredits(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	u, ok := f.users[id]
	if !ok || !u.IsActive {
		return 0, apperr.NotFound("USER_NOT_FOUND", "user not found")
	}
	u.CreditBalance += delta
	return u.CreditBalance, nil
}

func (f *fakeUserAccounts) SoftDelete(ctx context.Context, id uuid.UUID) error {
	u, ok := f.users[id]
	if !ok || !u.IsActive {
		return apperr.NotFound("USER_NOT_FOUND", "user not found")
	}
	u.IsActive = false
	return nil
}

func (f *fakeUserAccounts) HardDelete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return apperr.NotFound("USER_NOT_FOUND", "user not found")
	}
	delete(f.users, id)
	return nil
}

type fakeWardrobeStore struct {
	wardrobes map[uuid.UUID]*models.Wardrobe
	createErr error
	failAfter int // fail Create once this many rows exist; 0 disables
}

func newFakeWardrobeStore() *fakeWardrobeStore {
	return &fakeWardrobeStore{wardrobes: make(map[uuid.UUID]*models.Wardrobe)}
}

func (f *fakeWardrobeStore) Create(ctx context.Context, w *models.Wardrobe) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.failAfter > 0 && len(f.wardrobes) >= f.failAfter {
		return apperr.Storage("insert failed", nil)
	}
	w.ID = uuid.New()
	w.Position = len(f.wardrobes)
	f.wardrobes[w.ID] = w
	return nil
}

func (f *fakeWardrobeStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Wardrobe, error) {
	w, ok := f.wardrobes[id]
	if !ok {
		return nil, apperr.NotFound("WARDROBE_NOT_FOUND", "wardrobe not found")
	}
	return w, nil
}

func (f *fakeWardrobeStore) FindByUserIDAndName(ctx context.Context, userID uuid.UUID, name string) (*models.Wardrobe, error) {
	for _, w := range f.wardrobes {
		if w.UserID == userID && w.Name == name {
			return w, nil
		}
	}
	return nil, apperr.NotFound("WARDROBE_NOT_FOUND", "wardrobe not found")
}

func (f *fakeWardrobeStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Wardrobe, error) {
	var out []*models.Wardrobe
	for _, w := range f.wardrobes {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWardrobeStore) List(ctx context.Context) ([]*models.Wardrobe, error) {
	var out []*models.Wardrobe
	for _, w := range f.wardrobes {
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeWardrobeStore) Update(ctx context.Context, id uuid.UUID, update models.WardrobeUpdate) (*models.Wardrobe, error) {
	w, ok := f.wardrobes[id]
	if !ok {
		return nil, apperr.NotFound("WARDROBE_NOT_FOUND", "wardrobe not found")
	}
	if update.Name != nil {
		w.Name = *update.Name
	}
	if update.Intent != nil {
		w.Intent = update.Intent
	}
	return w, nil
}

func (f *fakeWardrobeStore) Delete(ctx context.Context, id uuid.UUID) (*models.Wardrobe, error) {
	w, ok := f.wardrobes[id]
	if !ok {
		return nil, apperr.NotFound("WARDROBE_NOT_FOUND", "wardrobe not found")
	}
	delete(f.wardrobes, id)
	return w, nil
}

func (f *fakeWardrobeStore) Reorder(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	for pos, id := range orderedIDs {
		w, ok := f.wardrobes[id]
		if !ok || w.UserID != userID {
			return apperr.NotFound("WARDROBE_NOT_FOUND", "wardrobe not found")
		}
		w.Position = pos
	}
	return nil
}

// seed creates a wardrobe directly, bypassing Create side effects.
func (f *fakeWardrobeStore) seed(userID uuid.UUID, name string) *models.Wardrobe {
	w := &models.Wardrobe{ID: uuid.New(), UserID: userID, Name: name, Position: len(f.wardrobes)}
	f.wardrobes[w.ID] = w
	return w
}

type fakeDressStore struct {
	dresses map[string]*models.Dress
}

func newFakeDressStore() *fakeDressStore {
	return &fakeDressStore{dresses: make(map[string]*models.Dress)}
}

func (f *fakeDressStore) Create(ctx context.Context, d *models.Dress) error {
	d.ID = primitive.NewObjectID()
	f.dresses[d.ID.Hex()] = d
	return nil
}

func (f *fakeDressStore) FindByID(ctx context.Context, id string) (*models.Dress, error) {
	d, ok := f.dresses[id]
	if !ok {
		return nil, apperr.NotFound("DRESS_NOT_FOUND", "dress not found")
	}
	return d, nil
}

func (f *fakeDressStore) FindByUserID(ctx context.Context, userID string) ([]*models.Dress, error) {
	var out []*models.Dress
	for _, d := range f.dresses {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDressStore) FindByIDs(ctx context.Context, ids []string) ([]*models.Dress, error) {
	var out []*models.Dress
	for _, id := range ids {
		if d, ok := f.dresses[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDressStore) Update(ctx context.Context, id string, fields bson.M) (*models.Dress, error) {
	d, ok := f.dresses[id]
	if !ok {
		return nil, apperr.NotFound("DRESS_NOT_FOUND", "dress not found")
	}
	if tags, ok := fields["ai_features.generated_tags"].([]string); ok {
		d.AIFeatures.GeneratedTags = tags
	}
	if name, ok := fields["name"].(string); ok {
		d.Name = name
	}
	return d, nil
}

func (f *fakeDressStore) Delete(ctx context.Context, id string) (*models.Dress, error) {
	d, ok := f.dresses[id]
	if !ok {
		return nil, apperr.NotFound("DRESS_NOT_FOUND", "dress not found")
	}
	delete(f.dresses, id)
	return d, nil
}

type linkKey struct {
	wardrobeID uuid.UUID
	docID      string
}

type fakeDressLinkStore struct {
	links   map[linkKey]bool
	linkErr error
	nextID  int64
}

func newFakeDressLinkStore() *fakeDressLinkStore {
	return &fakeDressLinkStore{links: make(map[linkKey]bool)}
}

func (f *fakeDressLinkStore) Link(ctx context.Context, wardrobeID uuid.UUID, dressID string) (*models.WardrobeDressLink, bool, error) {
	if f.linkErr != nil {
		return nil, false, f.linkErr
	}
	key := linkKey{wardrobeID, dressID}
	if f.links[key] {
		return &models.WardrobeDressLink{WardrobeID: wardrobeID, DressID: dressID}, false, nil
	}
	f.links[key] = true
	f.nextID++
	return &models.WardrobeDressLink{ID: f.nextID, WardrobeID: wardrobeID, DressID: dressID}, true, nil
}

func (f *fakeDressLinkStore) Unlink(ctx context.Context, wardrobeID uuid.UUID, dressID string) (bool, error) {
	key := linkKey{wardrobeID, dressID}
	if !f.links[key] {
		return false, nil
	}
	delete(f.links, key)
	return true, nil
}

func (f *fakeDressLinkStore) UnlinkAll(ctx context.Context, dressID string) (int64, error) {
	var removed int64
	for key := range f.links {
		if key.docID == dressID {
			delete(f.links, key)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeDressLinkStore) DressIDsByWardrobe(ctx context.Context, wardrobeID uuid.UUID) ([]string, error) {
	var out []string
	for key := range f.links {
		if key.wardrobeID == wardrobeID {
			out = append(out, key.docID)
		}
	}
	return out, nil
}

type fakePlanStore struct {
	plans map[uuid.UUID]*models.Plan
}

func newFakePlanStore() *fakePlanStore {
	return &fakePlanStore{plans: make(map[uuid.UUID]*models.Plan)}
}

func (f *fakePlanStore) Create(ctx context.Context, plan *models.Plan) error {
	plan.ID = uuid.New()
	plan.IsActive = true
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, apperr.NotFound("PLAN_NOT_FOUND", "plan not found")
	}
	return p, nil
}

func (f *fakePlanStore) List(ctx context.Context, productID *uuid.UUID) ([]*models.Plan, error) {
	var out []*models.Plan
	for _, p := range f.plans {
		if productID == nil || p.ProductID == *productID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlanStore) Deactivate(ctx context.Context, id uuid.UUID) error {
	p, ok := f.plans[id]
	if !ok {
		return apperr.NotFound("PLAN_NOT_FOUND", "plan not found")
	}
	p.IsActive = false
	return nil
}

type fakePaymentStore struct {
	payments map[string]*models.Payment // keyed by gateway order id
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[string]*models.Payment)}
}

func (f *fakePaymentStore) SaveOrder(ctx context.Context, payment *models.Payment) error {
	payment.ID = uuid.New()
	f.payments[payment.GatewayOrderID] = payment
	return nil
}

func (f *fakePaymentStore) MarkPaid(ctx context.Context, gatewayOrderID, gatewayPaymentID string) (*models.Payment, error) {
	p, ok := f.payments[gatewayOrderID]
	if !ok {
		return nil, apperr.NotFound("PAYMENT_NOT_FOUND", "payment not found for this order")
	}
	p.GatewayPaymentID = &gatewayPaymentID
	p.Status = models.PaymentPaid
	return p, nil
}

func (f *fakePaymentStore) GetByOrderID(ctx context.Context, gatewayOrderID string) (*models.Payment, error) {
	p, ok := f.payments[gatewayOrderID]
	if !ok {
		return nil, apperr.NotFound("PAYMENT_NOT_FOUND", "payment not found for this order")
	}
	return p, nil
}

func (f *fakePaymentStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCreditStore struct {
	entries []*models.CreditTransaction
}

func (f *fakeCreditStore) Create(ctx context.Context, tx *models.CreditTransaction) error {
	if tx.RelatedPaymentID != nil {
		for _, e := range f.entries {
			if e.RelatedPaymentID != nil && *e.RelatedPaymentID == *tx.RelatedPaymentID {
				return apperr.Conflict("PAYMENT_ALREADY_CREDITED", "credits already granted for this payment")
			}
		}
	}
	tx.ID = uuid.New()
	f.entries = append(f.entries, tx)
	return nil
}

func (f *fakeCreditStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.CreditTransaction, error) {
	var out []*models.CreditTransaction
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCreditStore) LedgerByPlan(ctx context.Context) ([]*models.PlanLedgerRow, error) {
	return nil, nil
}

type fakeGateway struct {
	secret    string
	orders    int
	createErr error
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*payments.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.orders++
	return &payments.Order{
		ID:       "order_" + uuid.NewString()[:8],
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (f *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == f.secret+"|"+orderID+"|"+paymentID
}

func (f *fakeGateway) sign(orderID, paymentID string) string {
	return f.secret + "|" + orderID + "|" + paymentID
}

type fakeFeatureStore struct {
	features map[string]*models.Feature
}

func (f *fakeFeatureStore) GetByCode(ctx context.Context, code string) (*models.Feature, error) {
	feat, ok := f.features[code]
	if !ok || !feat.IsActive {
		return nil, apperr.NotFound("FEATURE_NOT_FOUND", "feature not found")
	}
	return feat, nil
}

type fakeTagGenerator struct {
	tags []string
	err  error
}

func (f *fakeTagGenerator) GenerateStyleTags(ctx context.Context, dress *models.Dress) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tags, nil
}
