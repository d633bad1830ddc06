package caja

import "github.com/billartiochichi/billar-api/internal/domain/entity"

// ReceiptRenderer genera el comprobante PDF de un arqueo.
type ReceiptRenderer interface {
	RenderClosing(c *entity.CashClosing, username string) ([]byte, error)
}
