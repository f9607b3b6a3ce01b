package entity

import "github.com/shopspring/decimal"

// MoneyScale cantidad de decimales para precios y totales.
const MoneyScale = 2

// NormalizeMoney redondea a MoneyScale decimales (mitad alejándose de cero).
func NormalizeMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// LineTotal calcula cantidad × precio unitario. Con el precio ya normalizado el
// resultado es exacto y no se vuelve a redondear.
func LineTotal(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}
