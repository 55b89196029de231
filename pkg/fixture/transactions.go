package fixture

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of a transaction.
type Side string

const (
	Buy  Side = "Buy"
	Sell Side = "Sell"
)

// Color is the label color the page uses for the side.
func (s Side) Color() string {
	if s == Sell {
		return "red"
	}
	return "green"
}

// TransactionTimeLayout is how transaction dates render in the table.
const TransactionTimeLayout = "2006-01-02 15:04"

// Transaction is one row of the recent transactions table.
type Transaction struct {
	At     time.Time
	Side   Side
	Symbol string
	Amount decimal.Decimal
	Price  decimal.Decimal
	Status string
}

// Date renders At using TransactionTimeLayout.
func (t Transaction) Date() string {
	return t.At.Format(TransactionTimeLayout)
}

// TransactionColumns are the table headers in order.
var TransactionColumns = []string{"Date", "Type", "Asset", "Amount", "Price", "Status"}

// DefaultTransactions returns the three fixture rows, newest first.
func DefaultTransactions() []Transaction {
	at := func(s string) time.Time {
		t, err := time.Parse(TransactionTimeLayout, s)
		if err != nil {
			panic(err)
		}
		return t
	}
	return []Transaction{
		{At: at("2025-09-01 14:30"), Side: Buy, Symbol: "BTC", Amount: decimal.RequireFromString("0.1"), Price: decimal.NewFromInt(43100), Status: "Completed"},
		{At: at("2025-08-31 09:15"), Side: Sell, Symbol: "ETH", Amount: decimal.RequireFromString("1.0"), Price: decimal.NewFromInt(2650), Status: "Completed"},
		{At: at("2025-08-30 16:45"), Side: Buy, Symbol: "SOL", Amount: decimal.NewFromInt(10), Price: decimal.RequireFromString("95.20"), Status: "Completed"},
	}
}
