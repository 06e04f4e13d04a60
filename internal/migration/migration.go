package migration

import (
	customerdomain "github.com/smallbiznis/collectra/internal/customer/domain"
	debtworkdomain "github.com/smallbiznis/collectra/internal/debtwork/domain"
	invoicedomain "github.com/smallbiznis/collectra/internal/invoice/domain"
	"gorm.io/gorm"
)

// RunMigrations creates the core tables so the service is usable out of the
// box for local and self-hosted environments.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&customerdomain.Customer{},
		&invoicedomain.Invoice{},
		&debtworkdomain.DebtWorkRecord{},
	)
}
