package connector

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Los drivers devuelven los valores con tipos distintos según el
// dialecto (string, int64, float64, decimal.Decimal con pgx). Estas
// conversiones normalizan a los tipos de la fuente.

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

func asDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return t
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero
		}
		return d
	case int64:
		return decimal.NewFromInt(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case float64:
		return decimal.NewFromFloat(t)
	case float32:
		return decimal.NewFromFloat32(t)
	default:
		d, err := decimal.NewFromString(fmt.Sprintf("%v", t))
		if err != nil {
			return decimal.Zero
		}
		return d
	}
}
