package repositories

import (
	"context"
	"sort"
	"sync"

	"walletcore/internal/models"
)

// Memory is an in-memory LedgerRepository for tests and local
// development. All operations run under one mutex, and
// ExecuteInTransaction restores a snapshot on failure, so it honors
// the same atomicity and no-lost-update contract as the GORM store.
type Memory struct {
	mu sync.Mutex

	users        map[uint]models.User
	accounts     map[uint]models.Account
	transactions map[uint]models.Transaction
	products     map[uint]models.Product

	nextUserID    uint
	nextAccountID uint
	nextTxID      uint
	nextProductID uint
}

func NewMemory() *Memory {
	return &Memory{
		users:        make(map[uint]models.User),
		accounts:     make(map[uint]models.Account),
		transactions: make(map[uint]models.Transaction),
		products:     make(map[uint]models.Product),
	}
}

func (m *Memory) GetUserByID(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getUserLocked(id)
}

func (m *Memory) getUserLocked(id uint) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (m *Memory) GetUserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *Memory) GetUsers(limit, offset int) ([]models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *Memory) CreateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == 0 {
		m.nextUserID++
		user.ID = m.nextUserID
	} else if user.ID > m.nextUserID {
		m.nextUserID = user.ID
	}
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) UpdateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) DeleteUser(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *Memory) AdjustPoints(userID uint, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adjustPointsLocked(userID, delta)
}

func (m *Memory) adjustPointsLocked(userID uint, delta int64) error {
	user, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	if user.Points+delta < 0 {
		return ErrInsufficientPoints
	}
	user.Points += delta
	m.users[userID] = user
	return nil
}

func (m *Memory) GetAccountByID(id uint) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getAccountLocked(id)
}

func (m *Memory) getAccountLocked(id uint) (*models.Account, error) {
	account, ok := m.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}

func (m *Memory) GetAccountsByUserID(userID uint) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var accounts []models.Account
	for _, account := range m.accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (m *Memory) CreateAccount(account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if account.ID == 0 {
		m.nextAccountID++
		account.ID = m.nextAccountID
	} else if account.ID > m.nextAccountID {
		m.nextAccountID = account.ID
	}
	m.accounts[account.ID] = *account
	return nil
}

func (m *Memory) DeleteAccount(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *Memory) AdjustBalance(accountID uint, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adjustBalanceLocked(accountID, delta)
}

func (m *Memory) adjustBalanceLocked(accountID uint, delta int64) error {
	account, ok := m.accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	if account.Balance+delta < 0 {
		return ErrInsufficientFunds
	}
	account.Balance += delta
	m.accounts[accountID] = account
	return nil
}

func (m *Memory) GetTransactionByID(id uint) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getTransactionLocked(id)
}

func (m *Memory) getTransactionLocked(id uint) (*models.Transaction, error) {
	tx, ok := m.transactions[id]
	if !ok {
		return nil, ErrTransactionNotFound
	}
	return &tx, nil
}

func (m *Memory) GetUserTransactions(userID uint) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var txs []models.Transaction
	for _, tx := range m.transactions {
		if tx.UserID == userID {
			txs = append(txs, tx)
		}
	}
	sortTransactionsByDateDesc(txs)
	return txs, nil
}

func (m *Memory) GetTransactions(limit, offset int) ([]models.Transaction, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]models.Transaction, 0, len(m.transactions))
	for _, tx := range m.transactions {
		all = append(all, tx)
	}
	sortTransactionsByDateDesc(all)

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *Memory) CreateTransaction(tx *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createTransactionLocked(tx)
}

func (m *Memory) createTransactionLocked(tx *models.Transaction) error {
	if tx.ID == 0 {
		m.nextTxID++
		tx.ID = m.nextTxID
	} else if tx.ID > m.nextTxID {
		m.nextTxID = tx.ID
	}
	m.transactions[tx.ID] = *tx
	return nil
}

func (m *Memory) UpdateTransaction(tx *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateTransactionLocked(tx)
}

func (m *Memory) updateTransactionLocked(tx *models.Transaction) error {
	if _, ok := m.transactions[tx.ID]; !ok {
		return ErrTransactionNotFound
	}
	m.transactions[tx.ID] = *tx
	return nil
}

func (m *Memory) DeleteTransaction(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteTransactionLocked(id)
}

func (m *Memory) deleteTransactionLocked(id uint) error {
	if _, ok := m.transactions[id]; !ok {
		return ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *Memory) GetProductByID(id uint) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (m *Memory) GetProducts() ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	products := make([]models.Product, 0, len(m.products))
	for _, product := range m.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *Memory) CreateProduct(product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if product.ID == 0 {
		m.nextProductID++
		product.ID = m.nextProductID
	} else if product.ID > m.nextProductID {
		m.nextProductID = product.ID
	}
	m.products[product.ID] = *product
	return nil
}

// ExecuteInTransaction holds the store lock for the whole unit and
// restores a snapshot if fn fails or ctx is cancelled, so partial
// mutations are never observable.
func (m *Memory) ExecuteInTransaction(ctx context.Context, fn func(LedgerRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.snapshotLocked()
	err := fn(&memoryTx{m})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		m.restoreLocked(snapshot)
		return err
	}
	return nil
}

type memorySnapshot struct {
	users        map[uint]models.User
	accounts     map[uint]models.Account
	transactions map[uint]models.Transaction
	nextUserID   uint
	nextAccID    uint
	nextTxID     uint
}

func (m *Memory) snapshotLocked() memorySnapshot {
	s := memorySnapshot{
		users:        make(map[uint]models.User, len(m.users)),
		accounts:     make(map[uint]models.Account, len(m.accounts)),
		transactions: make(map[uint]models.Transaction, len(m.transactions)),
		nextUserID:   m.nextUserID,
		nextAccID:    m.nextAccountID,
		nextTxID:     m.nextTxID,
	}
	for id, u := range m.users {
		s.users[id] = u
	}
	for id, a := range m.accounts {
		s.accounts[id] = a
	}
	for id, t := range m.transactions {
		s.transactions[id] = t
	}
	return s
}

func (m *Memory) restoreLocked(s memorySnapshot) {
	m.users = s.users
	m.accounts = s.accounts
	m.transactions = s.transactions
	m.nextUserID = s.nextUserID
	m.nextAccountID = s.nextAccID
	m.nextTxID = s.nextTxID
}

// memoryTx runs inside an ExecuteInTransaction unit: the outer lock is
// already held, so it delegates to the unlocked core methods.
type memoryTx struct {
	m *Memory
}

func (t *memoryTx) GetUserByID(id uint) (*models.User, error) { return t.m.getUserLocked(id) }

func (t *memoryTx) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range t.m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (t *memoryTx) GetUsers(limit, offset int) ([]models.User, int64, error) {
	all := make([]models.User, 0, len(t.m.users))
	for _, user := range t.m.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (t *memoryTx) CreateUser(user *models.User) error {
	if user.ID == 0 {
		t.m.nextUserID++
		user.ID = t.m.nextUserID
	}
	t.m.users[user.ID] = *user
	return nil
}

func (t *memoryTx) UpdateUser(user *models.User) error {
	if _, ok := t.m.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	t.m.users[user.ID] = *user
	return nil
}

func (t *memoryTx) DeleteUser(id uint) error {
	if _, ok := t.m.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(t.m.users, id)
	return nil
}

func (t *memoryTx) AdjustPoints(userID uint, delta int64) error {
	return t.m.adjustPointsLocked(userID, delta)
}

func (t *memoryTx) GetAccountByID(id uint) (*models.Account, error) {
	return t.m.getAccountLocked(id)
}

func (t *memoryTx) GetAccountsByUserID(userID uint) ([]models.Account, error) {
	var accounts []models.Account
	for _, account := range t.m.accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (t *memoryTx) CreateAccount(account *models.Account) error {
	if account.ID == 0 {
		t.m.nextAccountID++
		account.ID = t.m.nextAccountID
	}
	t.m.accounts[account.ID] = *account
	return nil
}

func (t *memoryTx) DeleteAccount(id uint) error {
	if _, ok := t.m.accounts[id]; !ok {
		return ErrAccountNotFound
	}
	delete(t.m.accounts, id)
	return nil
}

func (t *memoryTx) AdjustBalance(accountID uint, delta int64) error {
	return t.m.adjustBalanceLocked(accountID, delta)
}

func (t *memoryTx) GetTransactionByID(id uint) (*models.Transaction, error) {
	return t.m.getTransactionLocked(id)
}

func (t *memoryTx) GetUserTransactions(userID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	for _, tx := range t.m.transactions {
		if tx.UserID == userID {
			txs = append(txs, tx)
		}
	}
	sortTransactionsByDateDesc(txs)
	return txs, nil
}

func (t *memoryTx) GetTransactions(limit, offset int) ([]models.Transaction, int64, error) {
	all := make([]models.Transaction, 0, len(t.m.transactions))
	for _, tx := range t.m.transactions {
		all = append(all, tx)
	}
	sortTransactionsByDateDesc(all)
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (t *memoryTx) CreateTransaction(tx *models.Transaction) error {
	return t.m.createTransactionLocked(tx)
}

func (t *memoryTx) UpdateTransaction(tx *models.Transaction) error {
	return t.m.updateTransactionLocked(tx)
}

func (t *memoryTx) DeleteTransaction(id uint) error {
	return t.m.deleteTransactionLocked(id)
}

func (t *memoryTx) GetProductByID(id uint) (*models.Product, error) {
	product, ok := t.m.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (t *memoryTx) GetProducts() ([]models.Product, error) {
	products := make([]models.Product, 0, len(t.m.products))
	for _, product := range t.m.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// Nested units join the outer one.
func (t *memoryTx) ExecuteInTransaction(_ context.Context, fn func(LedgerRepository) error) error {
	return fn(t)
}

func sortTransactionsByDateDesc(txs []models.Transaction) {
	sort.Slice(txs, func(i, j int) bool {
		if txs[i].Date.Equal(txs[j].Date) {
			return txs[i].ID > txs[j].ID
		}
		return txs[i].Date.After(txs[j].Date)
	})
}
