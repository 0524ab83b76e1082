package models

// Company represents a snack manufacturer
type Company struct {
	ID            int64   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name          string  `gorm:"type:varchar(255);not null;column:name" json:"name"`
	StockTicker   *string `gorm:"type:varchar(16);column:stock_ticker" json:"stock_ticker"`
	StockExchange *string `gorm:"type:varchar(32);column:stock_exchange" json:"stock_exchange"`
}

// TableName specifies the table name for Company
func (Company) TableName() string {
	return "companies"
}
