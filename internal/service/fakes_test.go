package service

import (
	"context"
	"errors"
	"time"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/model"
	"qr-dine-be/internal/pkg/logger"
	"qr-dine-be/internal/pkg/mailer"
	"qr-dine-be/internal/repository/contract"
	"qr-dine-be/internal/repository/specification"
	"qr-dine-be/internal/repository/unitofwork"
	"qr-dine-be/pkg/events"

	"github.com/google/uuid"
)

// In-memory repository fakes. They interpret the same specification structs
// the GORM implementations translate to SQL, so the services under test run
// unchanged. Transactions are no-ops: every write lands in the shared store.

type memStore struct {
	users        map[uuid.UUID]*entity.User
	merchants    map[uuid.UUID]*entity.Merchant
	products     map[uuid.UUID]*entity.Product
	orders       map[uuid.UUID]*entity.Order
	tokenTypes   map[uuid.UUID]*entity.TokenType
	transactions []*entity.TokenTransaction
	redemptions  []*entity.TokenRedemption
	rules        []*entity.RewardRule
	payEvents    []*model.PaymentEvent

	// onUserLock runs when a user row lock is acquired, letting tests
	// interleave a concurrent writer at the serialization point.
	onUserLock func(*entity.User)
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[uuid.UUID]*entity.User{},
		merchants:  map[uuid.UUID]*entity.Merchant{},
		products:   map[uuid.UUID]*entity.Product{},
		orders:     map[uuid.UUID]*entity.Order{},
		tokenTypes: map[uuid.UUID]*entity.TokenType{},
	}
}

func (st *memStore) addUser(name string) *entity.User {
	u := &entity.User{Id: uuid.New(), PhoneNumber: "+628123456789", Name: name}
	st.users[u.Id] = u
	return u
}

func (st *memStore) addMerchant(name string, newUserReward int) *entity.Merchant {
	m := &entity.Merchant{Id: uuid.New(), Name: name, TokenRatio: 1.0, NewUserReward: newUserReward, IsActive: true}
	st.merchants[m.Id] = m
	return m
}

func (st *memStore) addTokenType(name, symbol string) *entity.TokenType {
	t := &entity.TokenType{Id: uuid.New(), Name: name, Symbol: symbol, IsActive: true}
	st.tokenTypes[t.Id] = t
	return t
}

func (st *memStore) addProduct(merchantId uuid.UUID, name string, price float64) *entity.Product {
	p := &entity.Product{Id: uuid.New(), MerchantId: merchantId, Name: name, Price: price, IsAvailable: true}
	st.products[p.Id] = p
	return p
}

func (st *memStore) addPendingOrder(userId, merchantId uuid.UUID, total float64) *entity.Order {
	o := &entity.Order{
		Id:          uuid.New(),
		UserId:      userId,
		MerchantId:  merchantId,
		Status:      entity.OrderStatusPending,
		TotalAmount: total,
		FinalAmount: total,
		CreatedAt:   time.Now(),
	}
	st.orders[o.Id] = o
	return o
}

func (st *memStore) addRule(merchantId, tokenTypeId uuid.UUID, name string, rewardType entity.RewardType, trigger float64, amount int) *entity.RewardRule {
	r := &entity.RewardRule{
		Id:           uuid.New(),
		MerchantId:   merchantId,
		TokenTypeId:  tokenTypeId,
		Name:         name,
		TriggerType:  entity.TriggerTypeOrderAmount,
		TriggerValue: trigger,
		RewardAmount: amount,
		RewardType:   rewardType,
		IsActive:     true,
	}
	st.rules = append(st.rules, r)
	return r
}

type fakeFactory struct {
	store *memStore
}

func newFakeFactory(store *memStore) unitofwork.RepositoryFactory {
	return &fakeFactory{store: store}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *memStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository { return &fakeUserRepo{u.store} }
func (u *fakeUow) MerchantRepository() contract.MerchantRepository {
	return &fakeMerchantRepo{u.store}
}
func (u *fakeUow) ProductRepository() contract.ProductRepository { return &fakeProductRepo{u.store} }
func (u *fakeUow) OrderRepository() contract.OrderRepository     { return &fakeOrderRepo{u.store} }
func (u *fakeUow) TokenTypeRepository() contract.TokenTypeRepository {
	return &fakeTokenTypeRepo{u.store}
}
func (u *fakeUow) TokenTransactionRepository() contract.TokenTransactionRepository {
	return &fakeLedgerRepo{u.store}
}
func (u *fakeUow) TokenRedemptionRepository() contract.TokenRedemptionRepository {
	return &fakeRedemptionRepo{u.store}
}
func (u *fakeUow) RewardRuleRepository() contract.RewardRuleRepository {
	return &fakeRuleRepo{u.store}
}
func (u *fakeUow) PaymentEventRepository() contract.PaymentEventRepository {
	return &fakePaymentEventRepo{u.store}
}

// ---- users ----

type fakeUserRepo struct{ store *memStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.store.users {
		if matchUser(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindOneForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u := r.store.users[id]
	if u != nil && r.store.onUserLock != nil {
		r.store.onUserLock(u)
	}
	return u, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.store.users[user.Id] = user
	return nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if u.Id != sp.ID {
				return false
			}
		case specification.ByPhoneNumber:
			if u.PhoneNumber != sp.PhoneNumber {
				return false
			}
		}
	}
	return true
}

// ---- merchants ----

type fakeMerchantRepo struct{ store *memStore }

func (r *fakeMerchantRepo) Create(ctx context.Context, m *entity.Merchant) error {
	r.store.merchants[m.Id] = m
	return nil
}

func (r *fakeMerchantRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Merchant, error) {
	for _, m := range r.store.merchants {
		if matchMerchant(m, specs) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMerchantRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Merchant, error) {
	var out []*entity.Merchant
	for _, m := range r.store.merchants {
		if matchMerchant(m, specs) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMerchantRepo) Update(ctx context.Context, m *entity.Merchant) error {
	r.store.merchants[m.Id] = m
	return nil
}

func matchMerchant(m *entity.Merchant, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if m.Id != sp.ID {
				return false
			}
		case specification.ByEmail:
			if m.Email != sp.Email {
				return false
			}
		case specification.ActiveOnly:
			if !m.IsActive {
				return false
			}
		}
	}
	return true
}

// ---- products ----

type fakeProductRepo struct{ store *memStore }

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.store.products[p.Id] = p
	return nil
}

func (r *fakeProductRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	for _, p := range r.store.products {
		if matchProduct(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if matchProduct(p, specs) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.store.products[p.Id] = p
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.products, id)
	return nil
}

func matchProduct(p *entity.Product, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if p.Id != sp.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range sp.IDs {
				if p.Id == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.MerchantOwnedBy:
			if p.MerchantId != sp.MerchantID {
				return false
			}
		case specification.FilterBy:
			if sp.Field == "is_available" && p.IsAvailable != sp.Value.(bool) {
				return false
			}
		}
	}
	return true
}

// ---- orders ----

type fakeOrderRepo struct{ store *memStore }

func (r *fakeOrderRepo) Create(ctx context.Context, o *entity.Order) error {
	r.store.orders[o.Id] = o
	return nil
}

func (r *fakeOrderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	for _, o := range r.store.orders {
		if matchOrder(o, specs) {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) FindOneWithItems(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	return r.FindOne(ctx, specs...)
}

func (r *fakeOrderRepo) FindAllWithItems(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.store.orders {
		if matchOrder(o, specs) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	orders, _ := r.FindAllWithItems(ctx, specs...)
	return int64(len(orders)), nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, o *entity.Order) error {
	r.store.orders[o.Id] = o
	return nil
}

func matchOrder(o *entity.Order, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if o.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if o.UserId != sp.UserID {
				return false
			}
		case specification.MerchantOwnedBy:
			if o.MerchantId != sp.MerchantID {
				return false
			}
		case specification.ByStatus:
			if string(o.Status) != sp.Status {
				return false
			}
		}
	}
	return true
}

// ---- token types ----

type fakeTokenTypeRepo struct{ store *memStore }

func (r *fakeTokenTypeRepo) Create(ctx context.Context, t *entity.TokenType) error {
	r.store.tokenTypes[t.Id] = t
	return nil
}

func (r *fakeTokenTypeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TokenType, error) {
	for _, t := range r.store.tokenTypes {
		if matchTokenType(t, specs) {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTokenTypeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TokenType, error) {
	var out []*entity.TokenType
	for _, t := range r.store.tokenTypes {
		if matchTokenType(t, specs) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTokenTypeRepo) Update(ctx context.Context, t *entity.TokenType) error {
	r.store.tokenTypes[t.Id] = t
	return nil
}

func matchTokenType(t *entity.TokenType, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if t.Id != sp.ID {
				return false
			}
		case specification.BySymbol:
			if t.Symbol != sp.Symbol {
				return false
			}
		case specification.ActiveOnly:
			if !t.IsActive {
				return false
			}
		}
	}
	return true
}

// ---- ledger ----

type fakeLedgerRepo struct{ store *memStore }

// Create mirrors the partial unique index on signup rows: a second signup
// credit for the same user fails with a duplicate key error.
func (r *fakeLedgerRepo) Create(ctx context.Context, tx *entity.TokenTransaction) error {
	if tx.SourceType == entity.SourceTypeSignup {
		for _, existing := range r.store.transactions {
			if existing.UserId == tx.UserId && existing.SourceType == entity.SourceTypeSignup {
				return errors.New(`duplicate key value violates unique constraint "idx_one_signup_bonus_per_user"`)
			}
		}
	}
	r.store.transactions = append(r.store.transactions, tx)
	return nil
}

func (r *fakeLedgerRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TokenTransaction, error) {
	for _, tx := range r.store.transactions {
		if matchTransaction(tx, specs) {
			return tx, nil
		}
	}
	return nil, nil
}

func (r *fakeLedgerRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TokenTransaction, error) {
	var matched []*entity.TokenTransaction
	for _, tx := range r.store.transactions {
		if matchTransaction(tx, specs) {
			matched = append(matched, tx)
		}
	}

	limit, offset := -1, 0
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.OrderBy:
			if sp.Desc {
				for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
					matched[i], matched[j] = matched[j], matched[i]
				}
			}
		case specification.Pagination:
			limit, offset = sp.Limit, sp.Offset
		}
	}

	if offset > 0 {
		if offset >= len(matched) {
			return nil, nil
		}
		matched = matched[offset:]
	}
	if limit >= 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeLedgerRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	count := int64(0)
	for _, tx := range r.store.transactions {
		if matchTransaction(tx, specs) {
			count++
		}
	}
	return count, nil
}

func (r *fakeLedgerRepo) SumAmounts(ctx context.Context, userId, tokenTypeId uuid.UUID) (int, error) {
	sum := 0
	for _, tx := range r.store.transactions {
		if tx.UserId == userId && tx.TokenTypeId == tokenTypeId {
			sum += tx.Amount
		}
	}
	return sum, nil
}

func (r *fakeLedgerRepo) SumExpiredPending(ctx context.Context, userId, tokenTypeId uuid.UUID, now time.Time) (int, error) {
	sum := 0
	for _, tx := range r.store.transactions {
		if tx.UserId == userId && tx.TokenTypeId == tokenTypeId && r.isExpiredUnreversed(tx, now) {
			sum += tx.Amount
		}
	}
	return sum, nil
}

func (r *fakeLedgerRepo) LatestByUserAndType(ctx context.Context, userId, tokenTypeId uuid.UUID) (*entity.TokenTransaction, error) {
	for i := len(r.store.transactions) - 1; i >= 0; i-- {
		tx := r.store.transactions[i]
		if tx.UserId == userId && tx.TokenTypeId == tokenTypeId {
			return tx, nil
		}
	}
	return nil, nil
}

func (r *fakeLedgerRepo) FindExpiredUnreversed(ctx context.Context, now time.Time, limit int) ([]*entity.TokenTransaction, error) {
	var out []*entity.TokenTransaction
	for _, tx := range r.store.transactions {
		if r.isExpiredUnreversed(tx, now) {
			out = append(out, tx)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) isExpiredUnreversed(tx *entity.TokenTransaction, now time.Time) bool {
	if tx.TransactionType != entity.TransactionTypeEarned || tx.ExpiresAt == nil || !tx.ExpiresAt.Before(now) {
		return false
	}
	for _, other := range r.store.transactions {
		if other.TransactionType == entity.TransactionTypeExpired &&
			other.SourceId != nil && *other.SourceId == tx.Id {
			return false
		}
	}
	return true
}

func matchTransaction(tx *entity.TokenTransaction, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if tx.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if tx.UserId != sp.UserID {
				return false
			}
		case specification.ByTokenType:
			if tx.TokenTypeId != sp.TokenTypeID {
				return false
			}
		}
	}
	return true
}

// ---- redemptions ----

type fakeRedemptionRepo struct{ store *memStore }

func (r *fakeRedemptionRepo) Create(ctx context.Context, redemption *entity.TokenRedemption) error {
	r.store.redemptions = append(r.store.redemptions, redemption)
	return nil
}

func (r *fakeRedemptionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TokenRedemption, error) {
	for _, red := range r.store.redemptions {
		if matchRedemption(red, specs) {
			return red, nil
		}
	}
	return nil, nil
}

func (r *fakeRedemptionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TokenRedemption, error) {
	var out []*entity.TokenRedemption
	for _, red := range r.store.redemptions {
		if matchRedemption(red, specs) {
			out = append(out, red)
		}
	}
	return out, nil
}

func (r *fakeRedemptionRepo) Update(ctx context.Context, redemption *entity.TokenRedemption) error {
	for i, red := range r.store.redemptions {
		if red.Id == redemption.Id {
			r.store.redemptions[i] = redemption
			return nil
		}
	}
	return errors.New("redemption not found")
}

func matchRedemption(red *entity.TokenRedemption, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if red.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if red.UserId != sp.UserID {
				return false
			}
		case specification.ByStatus:
			if string(red.Status) != sp.Status {
				return false
			}
		case specification.FilterBy:
			if sp.Field == "order_id" {
				orderId, ok := sp.Value.(uuid.UUID)
				if !ok || red.OrderId == nil || *red.OrderId != orderId {
					return false
				}
			}
		}
	}
	return true
}

// ---- reward rules ----

type fakeRuleRepo struct{ store *memStore }

func (r *fakeRuleRepo) Create(ctx context.Context, rule *entity.RewardRule) error {
	r.store.rules = append(r.store.rules, rule)
	return nil
}

func (r *fakeRuleRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RewardRule, error) {
	for _, rule := range r.store.rules {
		if matchRule(rule, specs) {
			return rule, nil
		}
	}
	return nil, nil
}

func (r *fakeRuleRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RewardRule, error) {
	var out []*entity.RewardRule
	for _, rule := range r.store.rules {
		if matchRule(rule, specs) {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeRuleRepo) Update(ctx context.Context, rule *entity.RewardRule) error {
	for i, existing := range r.store.rules {
		if existing.Id == rule.Id {
			r.store.rules[i] = rule
			return nil
		}
	}
	return errors.New("rule not found")
}

func (r *fakeRuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, rule := range r.store.rules {
		if rule.Id == id {
			r.store.rules = append(r.store.rules[:i], r.store.rules[i+1:]...)
			return nil
		}
	}
	return nil
}

func matchRule(rule *entity.RewardRule, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if rule.Id != sp.ID {
				return false
			}
		case specification.MerchantOwnedBy:
			if rule.MerchantId != sp.MerchantID {
				return false
			}
		case specification.ActiveOnly:
			if !rule.IsActive {
				return false
			}
		}
	}
	return true
}

// ---- payment events ----

type fakePaymentEventRepo struct{ store *memStore }

func (r *fakePaymentEventRepo) Create(ctx context.Context, event *model.PaymentEvent) error {
	r.store.payEvents = append(r.store.payEvents, event)
	return nil
}

func (r *fakePaymentEventRepo) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	for _, e := range r.store.payEvents {
		if e.Id == id {
			now := time.Now()
			e.ProcessedAt = &now
			return nil
		}
	}
	return nil
}

func (r *fakePaymentEventRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.PaymentEvent, error) {
	return r.store.payEvents, nil
}

// ---- collaborators ----

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, 0, len(p.published))
	for _, e := range p.published {
		out = append(out, e.EventType())
	}
	return out
}

type recordingMailer struct {
	sent []*mailer.ReceiptData
}

func (m *recordingMailer) SendOrderReceipt(toEmail string, data *mailer.ReceiptData) error {
	m.sent = append(m.sent, data)
	return nil
}
