package entity

import "github.com/shopspring/decimal"

// Classification is a legal transaction seen from one agent's book.
type Classification struct {
	Kind   Kind
	Amount decimal.Decimal
}

// Asset builds an asset classification.
func Asset(amount decimal.Decimal) Classification {
	return Classification{Kind: KindAsset, Amount: amount}
}

// Liability builds a liability classification.
func Liability(amount decimal.Decimal) Classification {
	return Classification{Kind: KindLiability, Amount: amount}
}
