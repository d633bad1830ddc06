package turno

import (
	"context"
	"time"

	"github.com/billartiochichi/billar-api/internal/domain/repository"
)

// StockLedger puerto hacia el inventario: mueve stock dentro de la transacción del turno.
type StockLedger interface {
	RegisterOUTInTx(ctx context.Context, tx repository.Tx, productID string, quantity int, reference, userID string, now time.Time) error
	RegisterINInTx(ctx context.Context, tx repository.Tx, productID string, quantity int, reference, userID string, now time.Time) error
}
