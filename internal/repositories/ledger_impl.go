package repositories

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"walletcore/internal/models"
)

type ledgerRepository struct {
	db    *gorm.DB
	cache CacheRepository
}

// NewLedgerRepository creates the GORM-backed ledger repository.
// cache may be nil, in which case lookups always hit the database.
func NewLedgerRepository(db *gorm.DB, cache CacheRepository) LedgerRepository {
	if db == nil {
		panic("db is required")
	}
	if cache == nil {
		cache = NoopCache{}
	}
	return &ledgerRepository{db: db, cache: cache}
}

// Users

func (r *ledgerRepository) GetUserByID(id uint) (*models.User, error) {
	if user, err := r.cache.GetUser(context.Background(), id); err == nil {
		return user, nil
	}

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := r.cache.SetUser(context.Background(), &user); err != nil {
		log.Printf("failed to cache user %d: %v", user.ID, err)
	}
	return &user, nil
}

func (r *ledgerRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *ledgerRepository) GetUsers(limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	err := r.db.Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (r *ledgerRepository) CreateUser(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *ledgerRepository) UpdateUser(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	r.invalidateUser(user.ID)
	return nil
}

func (r *ledgerRepository) DeleteUser(id uint) error {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	r.invalidateUser(id)
	return nil
}

func (r *ledgerRepository) AdjustPoints(userID uint, delta int64) error {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND points + ? >= 0", userID, delta).
		UpdateColumn("points", gorm.Expr("points + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust points: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to adjust points: %w", err)
		}
		if count == 0 {
			return ErrUserNotFound
		}
		return ErrInsufficientPoints
	}
	r.invalidateUser(userID)
	return nil
}

// Accounts

func (r *ledgerRepository) GetAccountByID(id uint) (*models.Account, error) {
	if account, err := r.cache.GetAccount(context.Background(), id); err == nil {
		return account, nil
	}

	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if err := r.cache.SetAccount(context.Background(), &account); err != nil {
		log.Printf("failed to cache account %d: %v", account.ID, err)
	}
	return &account, nil
}

func (r *ledgerRepository) GetAccountsByUserID(userID uint) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *ledgerRepository) CreateAccount(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *ledgerRepository) DeleteAccount(id uint) error {
	result := r.db.Delete(&models.Account{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	r.invalidateAccount(id)
	return nil
}

// AdjustBalance is a single guarded UPDATE, so the read-modify-write is
// serialized on the account row and a committed balance can never be
// negative.
func (r *ledgerRepository) AdjustBalance(accountID uint, delta int64) error {
	result := r.db.Model(&models.Account{}).
		Where("id = ? AND balance + ? >= 0", accountID, delta).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.Account{}).Where("id = ?", accountID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to adjust balance: %w", err)
		}
		if count == 0 {
			return ErrAccountNotFound
		}
		return ErrInsufficientFunds
	}
	r.invalidateAccount(accountID)
	return nil
}

// Transactions

func (r *ledgerRepository) GetTransactionByID(id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.First(&tx, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *ledgerRepository) GetUserTransactions(userID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func (r *ledgerRepository) GetTransactions(limit, offset int) ([]models.Transaction, int64, error) {
	var txs []models.Transaction
	var total int64
	if err := r.db.Model(&models.Transaction{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	err := r.db.Order("date DESC").Limit(limit).Offset(offset).Find(&txs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, total, nil
}

func (r *ledgerRepository) CreateTransaction(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *ledgerRepository) UpdateTransaction(tx *models.Transaction) error {
	if err := r.db.Save(tx).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

func (r *ledgerRepository) DeleteTransaction(id uint) error {
	result := r.db.Delete(&models.Transaction{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// Products

func (r *ledgerRepository) GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *ledgerRepository) GetProducts() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *ledgerRepository) ExecuteInTransaction(ctx context.Context, fn func(LedgerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx, cache: r.cache})
	})
}

func (r *ledgerRepository) invalidateUser(id uint) {
	if err := r.cache.DeleteUser(context.Background(), id); err != nil {
		log.Printf("failed to invalidate user cache %d: %v", id, err)
	}
}

func (r *ledgerRepository) invalidateAccount(id uint) {
	if err := r.cache.DeleteAccount(context.Background(), id); err != nil {
		log.Printf("failed to invalidate account cache %d: %v", id, err)
	}
}
